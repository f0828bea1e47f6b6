package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// CacheKeyPrefix is the Redis key prefix for cached data
	CacheKeyPrefix = "cache:"
	// DefaultCacheTTL applies when no TTL is configured
	DefaultCacheTTL = 5 * time.Minute
	// MinCacheTTL is 30 seconds
	MinCacheTTL = 30 * time.Second
	// MaxCacheTTL is 1 hour
	MaxCacheTTL = time.Hour
)

// CacheService stores JSON values in Redis hashes: one hash per resource,
// one field per variant, so a whole resource can be dropped with a single DEL.
type CacheService struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCacheService returns a cache with ttl clamped to [MinCacheTTL, MaxCacheTTL].
func NewCacheService(client *redis.Client, ttl time.Duration) *CacheService {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	if ttl < MinCacheTTL {
		ttl = MinCacheTTL
	}
	if ttl > MaxCacheTTL {
		ttl = MaxCacheTTL
	}
	return &CacheService{client: client, ttl: ttl}
}

// TTL returns the effective expiry of cached values.
func (c *CacheService) TTL() time.Duration {
	return c.ttl
}

// Get loads field of key into dest. A miss returns (false, nil).
func (c *CacheService) Get(ctx context.Context, key, field string, dest any) (bool, error) {
	val, err := c.client.HGet(ctx, CacheKeyPrefix+key, field).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal([]byte(val), dest); err != nil {
		return false, err
	}
	return true, nil
}

// Set stores value under field of key and refreshes the key's expiry.
func (c *CacheService) Set(ctx context.Context, key, field string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	cacheKey := CacheKeyPrefix + key
	pipe := c.client.TxPipeline()
	pipe.HSet(ctx, cacheKey, field, data)
	pipe.Expire(ctx, cacheKey, c.ttl)
	_, err = pipe.Exec(ctx)
	return err
}

// Delete removes every field cached under key.
func (c *CacheService) Delete(ctx context.Context, key string) error {
	return c.client.Del(ctx, CacheKeyPrefix+key).Err()
}

// CacheKey generates a cache key for a specific resource
func CacheKey(resource string, identifier string) string {
	return fmt.Sprintf("%s:%s", resource, identifier)
}
