package main

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache stores JSON-serializable values under string keys with a TTL.
type Cache interface {
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
	Get(ctx context.Context, key string, dest any) error
	Flush(ctx context.Context) error
}

// RedisCache is a Cache backed by a Redis instance. Values are marshaled to
// JSON on the way in and unmarshaled on the way out.
type RedisCache struct {
	client *redis.Client
}

func NewRedisCache(client *redis.Client) *RedisCache {
	return &RedisCache{client: client}
}

func (c *RedisCache) Set(ctx context.Context, key string, value any, expiration time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("couldn't marshal value for key %s: %w", key, err)
	}
	if err := c.client.Set(ctx, key, data, expiration).Err(); err != nil {
		return fmt.Errorf("couldn't set key %s: %w", key, err)
	}
	return nil
}

// Get retrieves a value into dest. A missing key surfaces as redis.Nil so
// callers can distinguish a miss from a failure.
func (c *RedisCache) Get(ctx context.Context, key string, dest any) error {
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return fmt.Errorf("couldn't unmarshal value for key %s: %w", key, err)
	}
	return nil
}

func (c *RedisCache) Flush(ctx context.Context) error {
	if err := c.client.FlushDB(ctx).Err(); err != nil {
		return fmt.Errorf("couldn't flush cache: %w", err)
	}
	return nil
}
