// Package cache provides the Redis-backed listing cache.
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/lorrc/owner-dashboard/internal/config"
	"github.com/lorrc/owner-dashboard/internal/core/ports"
)

// listingKey holds the rendered dashboard listing body.
const listingKey = "dashboard:listing"

// ListingCache caches the rendered listing view in Redis. A mutation
// invalidates the key; the next dashboard request re-renders and refills it.
type ListingCache struct {
	client *redis.Client
	ttl    time.Duration
}

var _ ports.ListingCache = (*ListingCache)(nil)

// New creates a Redis-backed listing cache and verifies connectivity.
func New(ctx context.Context, cfg config.CacheConfig) (*ListingCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:            cfg.RedisAddr,
		DB:              cfg.RedisDB,
		PoolSize:        10,
		MinIdleConns:    2,
		PoolTimeout:     4 * time.Second,
		ConnMaxIdleTime: 5 * time.Minute,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to ping Redis: %w", err)
	}

	return &ListingCache{client: client, ttl: cfg.TTL}, nil
}

// Get retrieves the cached listing body. The second return value reports
// whether the key was present.
func (c *ListingCache) Get(ctx context.Context) (string, bool, error) {
	rendered, err := c.client.Get(ctx, listingKey).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("redis get failed: %w", err)
	}
	return rendered, true, nil
}

// Set stores the rendered listing body with the configured TTL.
func (c *ListingCache) Set(ctx context.Context, rendered string) error {
	if err := c.client.Set(ctx, listingKey, rendered, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

// Invalidate drops the cached listing body.
func (c *ListingCache) Invalidate(ctx context.Context) error {
	if err := c.client.Del(ctx, listingKey).Err(); err != nil {
		return fmt.Errorf("redis del failed: %w", err)
	}
	return nil
}

// Ping checks Redis connectivity.
func (c *ListingCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Close closes the Redis client.
func (c *ListingCache) Close() error {
	return c.client.Close()
}
