package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/jhoicas/product-pricing-api/internal/application/ports"
)

var _ ports.ReferenceCache = (*ReferenceCache)(nil)

// ReferenceCache cache-aside de listas de referencia serializadas en JSON.
type ReferenceCache struct {
	rdb goredis.UniversalClient
	ttl time.Duration
}

func NewReferenceCache(rdb goredis.UniversalClient, ttl time.Duration) *ReferenceCache {
	return &ReferenceCache{rdb: rdb, ttl: ttl}
}

func (c *ReferenceCache) GetJSON(ctx context.Context, key string, dst any) (bool, error) {
	raw, err := c.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, goredis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("cache get %s: %w", key, err)
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return false, fmt.Errorf("cache decode %s: %w", key, err)
	}
	return true, nil
}

func (c *ReferenceCache) SetJSON(ctx context.Context, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("cache encode %s: %w", key, err)
	}
	return c.rdb.Set(ctx, key, raw, c.ttl).Err()
}

func (c *ReferenceCache) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return c.rdb.Del(ctx, keys...).Err()
}
