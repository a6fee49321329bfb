package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisConfig configures a Redis-backed cache.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	// Prefix is prepended to every key, so several tools can share a database.
	Prefix string
	// Backoff governs reconnect attempts; zero uses DefaultBackoff.
	Backoff Backoff
}

// RedisCache stores entries in Redis, for the preview server and for sharing
// measurements between machines.
type RedisCache struct {
	client *redis.Client
	prefix string
}

// ParseRedisURL reads a redis:// or rediss:// URL such as
// "redis://:secret@localhost:6379/2" into a config.
func ParseRedisURL(rawURL string) (RedisConfig, error) {
	opts, err := redis.ParseURL(rawURL)
	if err != nil {
		return RedisConfig{}, err
	}
	return RedisConfig{Addr: opts.Addr, Password: opts.Password, DB: opts.DB}, nil
}

// NewRedisCache connects to Redis and verifies the connection. Transient
// connection failures are retried with backoff.
func NewRedisCache(ctx context.Context, cfg RedisConfig) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	err := cfg.Backoff.Retry(ctx, func() error {
		if err := client.Ping(ctx).Err(); err != nil {
			return Transient(errors.Join(ErrUnavailable, err))
		}
		return nil
	})
	if err != nil {
		_ = client.Close()
		return nil, err
	}
	return &RedisCache{client: client, prefix: cfg.Prefix}, nil
}

// NewRedisCacheFromClient wraps an existing client without pinging it.
func NewRedisCacheFromClient(client *redis.Client, prefix string) *RedisCache {
	return &RedisCache{client: client, prefix: prefix}
}

// Get retrieves a value from Redis.
func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, err := c.client.Get(ctx, c.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return data, true, nil
}

// Set stores a value in Redis. Expiration is handled by Redis itself.
func (c *RedisCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	return c.client.Set(ctx, c.prefix+key, data, ttl).Err()
}

// Delete removes a value from Redis.
func (c *RedisCache) Delete(ctx context.Context, key string) error {
	return c.client.Del(ctx, c.prefix+key).Err()
}

// Close closes the client.
func (c *RedisCache) Close() error {
	return c.client.Close()
}

// Ensure RedisCache implements Cache.
var _ Cache = (*RedisCache)(nil)
