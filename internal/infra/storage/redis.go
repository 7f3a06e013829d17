package storage

import (
	"context"
	"errors"

	repo "tableorder/internal/repository"

	"github.com/redis/go-redis/v9"
)

// RedisStorage はセッションキーに TTL を付けて redis に保存する。
type RedisStorage struct {
	client *redis.Client
	ttl    TTLFunc
}

func NewRedis(addr string, ttl TTLFunc) *RedisStorage {
	if ttl == nil {
		ttl = noTTL
	}
	return &RedisStorage{
		client: redis.NewClient(&redis.Options{Addr: addr}),
		ttl:    ttl,
	}
}

func (s *RedisStorage) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *RedisStorage) Close() error {
	return s.client.Close()
}

func (s *RedisStorage) Get(ctx context.Context, key string) ([]byte, error) {
	v, err := s.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, repo.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return v, nil
}

func (s *RedisStorage) Set(ctx context.Context, key string, value []byte) error {
	return s.client.Set(ctx, key, value, s.ttl(key)).Err()
}

func (s *RedisStorage) Remove(ctx context.Context, key string) error {
	return s.client.Del(ctx, key).Err()
}
