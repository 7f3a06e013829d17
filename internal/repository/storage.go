package repository

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("not found")

// Storage はキー単位の get/set/remove だけを約束するKVストア。
// 同じキーへの read-modify-write にロックは無い（最後の書き込みが勝つ）。
type Storage interface {
	// 無いキーは ErrNotFound
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	// 無いキーを消してもエラーにしない
	Remove(ctx context.Context, key string) error
}
