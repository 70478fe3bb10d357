package blobstore

import (
	"context"
	"fmt"

	"github.com/go-redis/redis/v8"
)

type RedisStore struct {
	rdb *redis.Client
}

func NewRedisStore(redisURL string) (*RedisStore, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	rdb := redis.NewClient(opt)

	// Test connection
	ctx := context.Background()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisStore{rdb: rdb}, nil
}

func (s *RedisStore) Load(name string) ([]byte, error) {
	ctx := context.Background()
	val, err := s.rdb.Get(ctx, "snapshot:"+name).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load snapshot %s: %w", name, err)
	}
	return val, nil
}

func (s *RedisStore) Save(name string, data []byte) error {
	ctx := context.Background()
	if err := s.rdb.Set(ctx, "snapshot:"+name, data, 0).Err(); err != nil {
		return fmt.Errorf("failed to save snapshot %s: %w", name, err)
	}
	return nil
}

func (s *RedisStore) Close() error {
	return s.rdb.Close()
}

// Redis returns the underlying client for components that share the
// connection, such as the outreach connection-state cache.
func (s *RedisStore) Redis() *redis.Client {
	return s.rdb
}
