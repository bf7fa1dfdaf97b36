package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Keys for the public read cache. Admin mutations invalidate the key for
// the collection they touch.
const (
	KeyGallery  = "portfolio:gallery"
	KeyServices = "portfolio:services"
	KeySocials  = "portfolio:socials"
	KeyContent  = "portfolio:content"
)

// DefaultTTL bounds staleness if an invalidation is ever missed.
const DefaultTTL = 5 * time.Minute

// Cache is a JSON read cache over Redis for the public catalog endpoints.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

// New creates a cache with the given TTL. A zero TTL falls back to DefaultTTL.
func New(client *redis.Client, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Cache{
		client: client,
		ttl:    ttl,
	}
}

// Get unmarshals the cached value for key into dest. It reports whether the
// key was present.
func (c *Cache) Get(ctx context.Context, key string, dest any) (bool, error) {
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return false, nil
		}
		return false, fmt.Errorf("redis get %s: %w", key, err)
	}

	if err := json.Unmarshal(data, dest); err != nil {
		return false, fmt.Errorf("unmarshal cached %s: %w", key, err)
	}

	return true, nil
}

// Set stores value under key with the configured TTL.
func (c *Cache) Set(ctx context.Context, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", key, err)
	}

	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}

	return nil
}

// Invalidate removes the given keys.
func (c *Cache) Invalidate(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}

	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("redis del %v: %w", keys, err)
	}

	return nil
}
