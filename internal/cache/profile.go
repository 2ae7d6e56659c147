// Package cache provides the key-value store used for offline-friendly
// profile reads. Profiles are cached with a short TTL; the database remains
// the source of truth.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/returnhelper/returnsvc/internal/domain/model"
)

// ProfileCache caches the last-known user profile and subscription.
type ProfileCache interface {
	Get(ctx context.Context, userID string) (*model.Profile, error)
	Set(ctx context.Context, profile *model.Profile) error
	Invalidate(ctx context.Context, userID string) error
}

const profileTTL = 5 * time.Minute

// RedisProfileCache stores profiles as JSON blobs in Redis.
type RedisProfileCache struct {
	client *redis.Client
}

// NewRedisProfileCache connects to Redis at the given address.
func NewRedisProfileCache(addr string) *RedisProfileCache {
	return &RedisProfileCache{client: redis.NewClient(&redis.Options{Addr: addr})}
}

func profileKey(userID string) string {
	return "profile:" + userID
}

// Get returns the cached profile, or nil on a cache miss.
func (c *RedisProfileCache) Get(ctx context.Context, userID string) (*model.Profile, error) {
	data, err := c.client.Get(ctx, profileKey(userID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("cache get: %w", err)
	}

	var profile model.Profile
	if err := json.Unmarshal(data, &profile); err != nil {
		return nil, fmt.Errorf("cache decode: %w", err)
	}
	return &profile, nil
}

// Set stores the profile with the cache TTL.
func (c *RedisProfileCache) Set(ctx context.Context, profile *model.Profile) error {
	data, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("cache encode: %w", err)
	}
	if err := c.client.Set(ctx, profileKey(profile.User.ID), data, profileTTL).Err(); err != nil {
		return fmt.Errorf("cache set: %w", err)
	}
	return nil
}

// Invalidate drops the cached profile, e.g. after a subscription change.
func (c *RedisProfileCache) Invalidate(ctx context.Context, userID string) error {
	if err := c.client.Del(ctx, profileKey(userID)).Err(); err != nil {
		return fmt.Errorf("cache invalidate: %w", err)
	}
	return nil
}

// Close releases the underlying Redis connection.
func (c *RedisProfileCache) Close() error {
	return c.client.Close()
}

// NoopProfileCache is used when no Redis address is configured.
type NoopProfileCache struct{}

func (NoopProfileCache) Get(context.Context, string) (*model.Profile, error) { return nil, nil }
func (NoopProfileCache) Set(context.Context, *model.Profile) error           { return nil }
func (NoopProfileCache) Invalidate(context.Context, string) error            { return nil }
