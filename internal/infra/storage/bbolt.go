package storage

import (
	"context"
	"encoding/binary"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	repo "tableorder/internal/repository"

	"go.etcd.io/bbolt"
)

const (
	kvBucket = "kv"
	// キー -> 期限（UnixNano, big endian）
	expiresBucket = "kv_expires"
)

// BoltStorage はローカルファイル（BoltDB）に保存する。
type BoltStorage struct {
	db  *bbolt.DB
	ttl TTLFunc
	now func() time.Time
}

// OpenBolt はファイルを開き、バケットを作る。ttl が nil なら期限なし。
func OpenBolt(path string, ttl TTLFunc) (*BoltStorage, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}

	db, err := bbolt.Open(filepath.Clean(path), 0o600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open storage db: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists([]byte(kvBucket)); err != nil {
			return fmt.Errorf("create kv bucket: %w", err)
		}
		if _, err := tx.CreateBucketIfNotExists([]byte(expiresBucket)); err != nil {
			return fmt.Errorf("create expires bucket: %w", err)
		}
		return nil
	})
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	if ttl == nil {
		ttl = noTTL
	}
	return &BoltStorage{db: db, ttl: ttl, now: time.Now}, nil
}

func (s *BoltStorage) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *BoltStorage) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var out []byte
	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(kvBucket))
		if bucket == nil {
			return fmt.Errorf("kv bucket is missing")
		}
		v := bucket.Get([]byte(key))
		if v == nil {
			return repo.ErrNotFound
		}
		if s.expired(tx, key) {
			return repo.ErrNotFound
		}
		// トランザクション外では使えないのでコピーする
		out = append([]byte(nil), v...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *BoltStorage) Set(ctx context.Context, key string, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(kvBucket))
		if bucket == nil {
			return fmt.Errorf("kv bucket is missing")
		}
		if err := bucket.Put([]byte(key), value); err != nil {
			return err
		}

		exp := tx.Bucket([]byte(expiresBucket))
		if exp == nil {
			return fmt.Errorf("expires bucket is missing")
		}
		ttl := s.ttl(key)
		if ttl <= 0 {
			return exp.Delete([]byte(key))
		}
		buf := make([]byte, 8)
		binary.BigEndian.PutUint64(buf, uint64(s.now().Add(ttl).UnixNano()))
		return exp.Put([]byte(key), buf)
	})
}

func (s *BoltStorage) Remove(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(kvBucket))
		if bucket == nil {
			return fmt.Errorf("kv bucket is missing")
		}
		if err := bucket.Delete([]byte(key)); err != nil {
			return err
		}
		if exp := tx.Bucket([]byte(expiresBucket)); exp != nil {
			return exp.Delete([]byte(key))
		}
		return nil
	})
}

// 期限切れのキーは無いものとして扱う（消すのは次の Set / Remove）
func (s *BoltStorage) expired(tx *bbolt.Tx, key string) bool {
	exp := tx.Bucket([]byte(expiresBucket))
	if exp == nil {
		return false
	}
	v := exp.Get([]byte(key))
	if len(v) != 8 {
		return false
	}
	at := time.Unix(0, int64(binary.BigEndian.Uint64(v)))
	return !s.now().Before(at)
}
