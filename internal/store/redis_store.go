package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"wtime/internal/domain"
)

// RedisOptions configures RedisByteStore.
type RedisOptions struct {
	Addr     string
	Password string
	DB       int
	// Prefix is prepended to every key.
	Prefix string
}

// RedisByteStore keeps blobs as plain Redis string values.
type RedisByteStore struct {
	rdb    *goredis.Client
	prefix string
}

// NewRedisByteStore connects to Redis and verifies the connection with PING.
func NewRedisByteStore(ctx context.Context, opts RedisOptions) (*RedisByteStore, error) {
	if opts.Addr == "" {
		return nil, errors.New("redis addr required")
	}
	rdb := goredis.NewClient(&goredis.Options{
		Addr:        opts.Addr,
		Password:    opts.Password,
		DB:          opts.DB,
		DialTimeout: 5 * time.Second,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return &RedisByteStore{rdb: rdb, prefix: opts.Prefix}, nil
}

// Close releases the client's connections.
func (s *RedisByteStore) Close() error { return s.rdb.Close() }

func (s *RedisByteStore) Get(ctx context.Context, key domain.StorageKey) ([]byte, bool, error) {
	b, err := s.rdb.Get(ctx, s.key(key)).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return b, true, nil
}

func (s *RedisByteStore) Set(ctx context.Context, key domain.StorageKey, value []byte) error {
	return s.rdb.Set(ctx, s.key(key), value, 0).Err()
}

func (s *RedisByteStore) Delete(ctx context.Context, key domain.StorageKey) error {
	return s.rdb.Del(ctx, s.key(key)).Err()
}

func (s *RedisByteStore) key(k domain.StorageKey) string { return s.prefix + k.String() }

// Compile-time assertion that RedisByteStore implements domain.ByteStore.
var _ domain.ByteStore = (*RedisByteStore)(nil)
