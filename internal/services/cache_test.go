package services

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()

	s := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: s.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return s, client
}

func TestNewCacheService_ClampsTTL(t *testing.T) {
	_, client := newTestRedis(t)

	assert.Equal(t, DefaultCacheTTL, NewCacheService(client, 0).TTL())
	assert.Equal(t, MinCacheTTL, NewCacheService(client, time.Second).TTL())
	assert.Equal(t, MaxCacheTTL, NewCacheService(client, 24*time.Hour).TTL())
	assert.Equal(t, 10*time.Minute, NewCacheService(client, 10*time.Minute).TTL())
}

func TestCacheService_SetGetDelete(t *testing.T) {
	s, client := newTestRedis(t)
	cache := NewCacheService(client, time.Minute)
	ctx := context.Background()
	key := CacheKey("stats", "owner-1")

	var got map[string]int
	found, err := cache.Get(ctx, key, "UTC", &got)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, cache.Set(ctx, key, "UTC", map[string]int{"happy": 2}))
	require.NoError(t, cache.Set(ctx, key, "Europe/Berlin", map[string]int{"sad": 1}))
	assert.Equal(t, time.Minute, s.TTL(CacheKeyPrefix+key))

	found, err = cache.Get(ctx, key, "UTC", &got)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, map[string]int{"happy": 2}, got)

	require.NoError(t, cache.Delete(ctx, key))
	found, err = cache.Get(ctx, key, "Europe/Berlin", &got)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestCacheService_Expires(t *testing.T) {
	s, client := newTestRedis(t)
	cache := NewCacheService(client, time.Minute)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "k", "f", 1))
	s.FastForward(2 * time.Minute)

	var v int
	found, err := cache.Get(ctx, "k", "f", &v)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestCacheService_RedisDown(t *testing.T) {
	s, client := newTestRedis(t)
	cache := NewCacheService(client, time.Minute)
	s.Close()

	var v int
	_, err := cache.Get(context.Background(), "k", "f", &v)
	assert.Error(t, err)
}
