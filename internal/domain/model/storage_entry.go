package model

import "time"

// KVストアの1エントリ（postgres ドライバ用）
type StorageEntry struct {
	Key       string     `gorm:"type:varchar(255);primaryKey" json:"key"`
	Value     []byte     `gorm:"type:bytea;not null" json:"value"`
	ExpiresAt *time.Time `gorm:"index" json:"expires_at"`
	UpdatedAt time.Time  `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

func (StorageEntry) TableName() string {
	return "storage_entries"
}
