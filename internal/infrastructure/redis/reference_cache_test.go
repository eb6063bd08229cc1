package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	infraredis "github.com/jhoicas/product-pricing-api/internal/infrastructure/redis"
)

type cachedCategory struct {
	ID   string `json:"id"`
	Code string `json:"code"`
}

func TestReferenceCache_SetGetDelete(t *testing.T) {
	mr, rdb := newRedis(t)
	cache := infraredis.NewReferenceCache(rdb, time.Minute)
	ctx := context.Background()

	var out []cachedCategory
	hit, err := cache.GetJSON(ctx, "categories:s1", &out)
	require.NoError(t, err)
	assert.False(t, hit)

	in := []cachedCategory{{ID: "c1", Code: "aseo"}}
	require.NoError(t, cache.SetJSON(ctx, "categories:s1", in))
	assert.Equal(t, time.Minute, mr.TTL("categories:s1"))

	hit, err = cache.GetJSON(ctx, "categories:s1", &out)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, in, out)

	require.NoError(t, cache.Delete(ctx, "categories:s1"))
	require.NoError(t, cache.Delete(ctx))
	hit, err = cache.GetJSON(ctx, "categories:s1", &out)
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestReferenceCache_ValorCorrupto(t *testing.T) {
	mr, rdb := newRedis(t)
	require.NoError(t, mr.Set("categories:s1", "{no-json"))

	var out []cachedCategory
	_, err := infraredis.NewReferenceCache(rdb, time.Minute).GetJSON(context.Background(), "categories:s1", &out)
	assert.Error(t, err)
}

func TestNewClient(t *testing.T) {
	mr, _ := newRedis(t)
	rdb, err := infraredis.NewClient(context.Background(), "redis://"+mr.Addr())
	require.NoError(t, err)
	defer rdb.Close()

	_, err = infraredis.NewClient(context.Background(), "::no-es-url")
	assert.Error(t, err)
}
