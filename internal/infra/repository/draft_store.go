package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"tableorder/internal/domain/model"
	repo "tableorder/internal/repository"
)

// 支払い前の下書き（currentOrder）
type DraftStore struct {
	kv repo.Storage
}

func NewDraftStore(kv repo.Storage) *DraftStore {
	return &DraftStore{kv: kv}
}

func (r *DraftStore) Load(ctx context.Context, sessionID string) (model.OrderDraft, error) {
	b, err := r.kv.Get(ctx, sessionKey(sessionID, keyCurrentOrder))
	if err != nil {
		return model.OrderDraft{}, err
	}

	var d model.OrderDraft
	if err := json.Unmarshal(b, &d); err != nil {
		return model.OrderDraft{}, fmt.Errorf("unmarshal current order: %w", err)
	}
	return d, nil
}

func (r *DraftStore) Save(ctx context.Context, sessionID string, draft model.OrderDraft) error {
	b, err := json.Marshal(draft)
	if err != nil {
		return fmt.Errorf("marshal current order: %w", err)
	}
	return r.kv.Set(ctx, sessionKey(sessionID, keyCurrentOrder), b)
}

func (r *DraftStore) Remove(ctx context.Context, sessionID string) error {
	return r.kv.Remove(ctx, sessionKey(sessionID, keyCurrentOrder))
}
