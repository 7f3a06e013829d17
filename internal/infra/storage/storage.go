// Package storage は repository.Storage の実装（memory / bbolt / redis / postgres）。
package storage

import (
	"strings"
	"time"
)

// セッション単位のキーはこの接頭辞で始まる（例: session:<id>:cart）
const SessionPrefix = "session:"

// TTLFunc はキーごとの有効期限を返す。0 は無期限。
type TTLFunc func(key string) time.Duration

// SessionTTL はセッションキーにだけ ttl を付ける。orders などの共有キーは無期限。
func SessionTTL(ttl time.Duration) TTLFunc {
	return func(key string) time.Duration {
		if strings.HasPrefix(key, SessionPrefix) {
			return ttl
		}
		return 0
	}
}

func noTTL(string) time.Duration { return 0 }
