package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"tableorder/internal/domain/model"
	repo "tableorder/internal/repository"
)

// OrderLog は orders キーに支払い済み注文の配列を保存する。
// 追記は「読み込み→追加→全体を書き戻し」。プロセス内は mu で直列化するが、
// 同じストアを共有する別プロセスとは競合しうる。
type OrderLog struct {
	kv repo.Storage
	mu sync.Mutex
}

func NewOrderLog(kv repo.Storage) *OrderLog {
	return &OrderLog{kv: kv}
}

func (r *OrderLog) Append(ctx context.Context, order model.PaidOrder) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	orders, err := r.load(ctx)
	if err != nil {
		return err
	}
	orders = append(orders, order)
	return r.store(ctx, orders)
}

// FindByID は線形探索
func (r *OrderLog) FindByID(ctx context.Context, orderID string) (model.PaidOrder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	orders, err := r.load(ctx)
	if err != nil {
		return model.PaidOrder{}, err
	}
	for _, o := range orders {
		if o.ID == orderID {
			return o, nil
		}
	}
	return model.PaidOrder{}, repo.ErrNotFound
}

func (r *OrderLog) List(ctx context.Context) ([]model.PaidOrder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.load(ctx)
}

func (r *OrderLog) UpdateStatus(ctx context.Context, orderID string, status model.OrderStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	orders, err := r.load(ctx)
	if err != nil {
		return err
	}
	for i := range orders {
		if orders[i].ID == orderID {
			orders[i].Status = status
			return r.store(ctx, orders)
		}
	}
	return repo.ErrNotFound
}

func (r *OrderLog) load(ctx context.Context) ([]model.PaidOrder, error) {
	b, err := r.kv.Get(ctx, keyOrders)
	if errors.Is(err, repo.ErrNotFound) {
		return []model.PaidOrder{}, nil
	}
	if err != nil {
		return nil, err
	}

	var orders []model.PaidOrder
	if err := json.Unmarshal(b, &orders); err != nil {
		return nil, fmt.Errorf("unmarshal orders: %w", err)
	}
	return orders, nil
}

func (r *OrderLog) store(ctx context.Context, orders []model.PaidOrder) error {
	b, err := json.Marshal(orders)
	if err != nil {
		return fmt.Errorf("marshal orders: %w", err)
	}
	return r.kv.Set(ctx, keyOrders, b)
}
