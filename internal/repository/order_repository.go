package repository

import (
	"context"

	"tableorder/internal/domain/model"
)

// 支払い前の下書き（キー currentOrder）。新しい下書きは前のものを上書きする。
type DraftRepository interface {
	// 無ければ ErrNotFound
	Load(ctx context.Context, sessionID string) (model.OrderDraft, error)
	Save(ctx context.Context, sessionID string, draft model.OrderDraft) error
	Remove(ctx context.Context, sessionID string) error
}

// 支払い済み注文の追記専用コレクション（キー orders）
type OrderStore interface {
	Append(ctx context.Context, order model.PaidOrder) error
	// 無ければ ErrNotFound
	FindByID(ctx context.Context, orderID string) (model.PaidOrder, error)
	List(ctx context.Context) ([]model.PaidOrder, error)
	// キッチン側（外部）からのステータス更新
	UpdateStatus(ctx context.Context, orderID string, status model.OrderStatus) error
}
