package storage

import (
	"context"
	"sync"
	"time"

	repo "tableorder/internal/repository"
)

// MemoryStorage はプロセス内のマップ。テストと STORAGE_DRIVER=memory 用。
// 期限切れのキーは読んだときに消す。
type MemoryStorage struct {
	mu      sync.Mutex
	data    map[string][]byte
	expires map[string]time.Time
	ttl     TTLFunc
	now     func() time.Time
}

func NewMemory() *MemoryStorage {
	return NewMemoryWithTTL(nil)
}

// NewMemoryWithTTL は ttl が返す期限をキーに付ける。
func NewMemoryWithTTL(ttl TTLFunc) *MemoryStorage {
	if ttl == nil {
		ttl = noTTL
	}
	return &MemoryStorage{
		data:    map[string][]byte{},
		expires: map[string]time.Time{},
		ttl:     ttl,
		now:     time.Now,
	}
}

func (s *MemoryStorage) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	v, ok := s.data[key]
	if !ok {
		return nil, repo.ErrNotFound
	}
	if exp, ok := s.expires[key]; ok && !s.now().Before(exp) {
		delete(s.data, key)
		delete(s.expires, key)
		return nil, repo.ErrNotFound
	}
	return append([]byte(nil), v...), nil
}

func (s *MemoryStorage) Set(ctx context.Context, key string, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data[key] = append([]byte(nil), value...)
	if ttl := s.ttl(key); ttl > 0 {
		s.expires[key] = s.now().Add(ttl)
	} else {
		delete(s.expires, key)
	}
	return nil
}

func (s *MemoryStorage) Remove(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.data, key)
	delete(s.expires, key)
	return nil
}
