package repository

import (
	"context"

	"tableorder/internal/domain/model"
)

// メニューカタログ（読み取り専用）
type MenuRepository interface {
	// 登録順で返す
	List(ctx context.Context) ([]model.MenuItem, error)
	FindByID(ctx context.Context, id string) (model.MenuItem, error)
	// カテゴリ（初出順）
	Categories() []string
}
