package authz

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// Cache holds the expanded permission set per user. It is an optimization
// only: a nil cache means every check hits the store. Any role or permission
// mutation must call Invalidate so stale grants never survive.
type Cache interface {
	Get(ctx context.Context, userID uint) ([]string, bool, error)
	Set(ctx context.Context, userID uint, perms []string) error
	Invalidate(ctx context.Context) error
}

const (
	cacheGenKey = "authz:gen"
	cacheTTL    = 5 * time.Minute
)

// RedisCache keys entries by a generation counter. Invalidation bumps the
// counter, orphaning every existing entry at once; TTL cleans them up.
type RedisCache struct {
	rdb *redis.Client
}

func NewRedisCache(rdb *redis.Client) *RedisCache {
	return &RedisCache{rdb: rdb}
}

func (c *RedisCache) key(ctx context.Context, userID uint) (string, error) {
	gen, err := c.rdb.Get(ctx, cacheGenKey).Result()
	if err == redis.Nil {
		gen = "0"
	} else if err != nil {
		return "", err
	}
	return fmt.Sprintf("authz:perms:%s:%d", gen, userID), nil
}

func (c *RedisCache) Get(ctx context.Context, userID uint) ([]string, bool, error) {
	key, err := c.key(ctx, userID)
	if err != nil {
		return nil, false, err
	}

	raw, err := c.rdb.Get(ctx, key).Result()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var perms []string
	if err := json.Unmarshal([]byte(raw), &perms); err != nil {
		return nil, false, err
	}
	return perms, true, nil
}

func (c *RedisCache) Set(ctx context.Context, userID uint, perms []string) error {
	key, err := c.key(ctx, userID)
	if err != nil {
		return err
	}

	raw, err := json.Marshal(perms)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, key, raw, cacheTTL).Err()
}

func (c *RedisCache) Invalidate(ctx context.Context) error {
	return c.rdb.Incr(ctx, cacheGenKey).Err()
}

var _ Cache = (*RedisCache)(nil)
