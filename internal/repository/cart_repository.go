package repository

import (
	"context"

	"tableorder/internal/domain/model"
)

// セッションごとのカートとテーブルID（キー cart / tableId）
type CartRepository interface {
	// 保存が無ければ空のカート
	Load(ctx context.Context, sessionID string) (model.Cart, error)
	Save(ctx context.Context, sessionID string, cart model.Cart) error
	Clear(ctx context.Context, sessionID string) error

	// 保存が無ければ ""
	LoadTableID(ctx context.Context, sessionID string) (string, error)
	SaveTableID(ctx context.Context, sessionID string, tableID string) error
}
