package storage

import (
	"context"
	"errors"
	"time"

	"tableorder/internal/domain/model"
	repo "tableorder/internal/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormStorage は storage_entries テーブルをKVとして使う。
type GormStorage struct {
	db  *gorm.DB
	ttl TTLFunc
	now func() time.Time
}

// DI
func NewGormStorage(db *gorm.DB, ttl TTLFunc) *GormStorage {
	if ttl == nil {
		ttl = noTTL
	}
	return &GormStorage{db: db, ttl: ttl, now: time.Now}
}

// Migrate は storage_entries を作る。
func (s *GormStorage) Migrate() error {
	return s.db.AutoMigrate(&model.StorageEntry{})
}

func (s *GormStorage) Get(ctx context.Context, key string) ([]byte, error) {
	var e model.StorageEntry
	err := s.db.WithContext(ctx).
		Where("key = ?", key).
		Where("expires_at IS NULL OR expires_at > ?", s.now()).
		First(&e).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, repo.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return e.Value, nil
}

// 同じキーは上書き
func (s *GormStorage) Set(ctx context.Context, key string, value []byte) error {
	now := s.now()
	e := model.StorageEntry{
		Key:       key,
		Value:     value,
		UpdatedAt: now,
	}
	if ttl := s.ttl(key); ttl > 0 {
		exp := now.Add(ttl)
		e.ExpiresAt = &exp
	}

	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "expires_at", "updated_at"}),
		}).
		Create(&e).Error
}

func (s *GormStorage) Remove(ctx context.Context, key string) error {
	return s.db.WithContext(ctx).
		Where("key = ?", key).
		Delete(&model.StorageEntry{}).Error
}
