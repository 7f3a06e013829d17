package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"tableorder/internal/domain/model"
	repo "tableorder/internal/repository"
)

// カートとテーブルIDをセッションキーで保存する。
type CartStore struct {
	kv repo.Storage
}

// DI
func NewCartStore(kv repo.Storage) *CartStore {
	return &CartStore{kv: kv}
}

func (r *CartStore) Load(ctx context.Context, sessionID string) (model.Cart, error) {
	b, err := r.kv.Get(ctx, sessionKey(sessionID, keyCart))
	if errors.Is(err, repo.ErrNotFound) {
		return model.Cart{}, nil
	}
	if err != nil {
		return model.Cart{}, err
	}

	var lines []model.CartLine
	if err := json.Unmarshal(b, &lines); err != nil {
		return model.Cart{}, fmt.Errorf("unmarshal cart: %w", err)
	}
	return model.Cart{Lines: lines}, nil
}

// Save は明細の配列だけを保存する。
func (r *CartStore) Save(ctx context.Context, sessionID string, cart model.Cart) error {
	lines := cart.Lines
	if lines == nil {
		lines = []model.CartLine{}
	}
	b, err := json.Marshal(lines)
	if err != nil {
		return fmt.Errorf("marshal cart: %w", err)
	}
	return r.kv.Set(ctx, sessionKey(sessionID, keyCart), b)
}

func (r *CartStore) Clear(ctx context.Context, sessionID string) error {
	return r.kv.Remove(ctx, sessionKey(sessionID, keyCart))
}

func (r *CartStore) LoadTableID(ctx context.Context, sessionID string) (string, error) {
	b, err := r.kv.Get(ctx, sessionKey(sessionID, keyTableID))
	if errors.Is(err, repo.ErrNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (r *CartStore) SaveTableID(ctx context.Context, sessionID string, tableID string) error {
	return r.kv.Set(ctx, sessionKey(sessionID, keyTableID), []byte(tableID))
}
