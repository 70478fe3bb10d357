// Package cache holds the Redis-backed outreach connection-state cache.
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"crm_manager/internal/services"
)

const connStateKey = "outreach:connection"

// RedisStateCache keeps the connection state in Redis so it survives
// restarts and expires back to Unknown via the key TTL.
type RedisStateCache struct {
	rdb *redis.Client
}

func NewRedisStateCache(rdb *redis.Client) *RedisStateCache {
	return &RedisStateCache{rdb: rdb}
}

func (c *RedisStateCache) Get() services.ConnState {
	ctx := context.Background()
	val, err := c.rdb.Get(ctx, connStateKey).Result()
	if err != nil {
		return services.StateUnknown
	}
	switch services.ConnState(val) {
	case services.StateConnected:
		return services.StateConnected
	case services.StateDisconnected:
		return services.StateDisconnected
	default:
		return services.StateUnknown
	}
}

func (c *RedisStateCache) Set(state services.ConnState, ttl time.Duration) error {
	ctx := context.Background()
	if err := c.rdb.Set(ctx, connStateKey, string(state), ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache connection state: %w", err)
	}
	return nil
}
