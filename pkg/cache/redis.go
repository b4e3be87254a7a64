package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Errors returned by NewRedisCache.
var (
	ErrUnavailable   = errors.New("cache backend unavailable")
	ErrInvalidConfig = errors.New("invalid cache configuration")
)

// RedisConfig configures a Redis-backed cache. Key namespacing is the
// Keyer's job (see ScopedKeyer).
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	// DialTimeout bounds connection setup. Zero uses the go-redis default.
	DialTimeout time.Duration
}

// RedisCache shares engine results between server instances. Expiration is
// delegated to Redis.
type RedisCache struct {
	client *redis.Client
}

// connectBackoff governs the PING attempts of NewRedisCache.
var connectBackoff = backoff{attempts: 3, delay: 200 * time.Millisecond}

// NewRedisCache connects and checks the connection with PING, retrying with
// exponential backoff while the server is unreachable.
func NewRedisCache(ctx context.Context, cfg RedisConfig) (*RedisCache, error) {
	if cfg.Addr == "" {
		return nil, fmt.Errorf("%w: redis address is required", ErrInvalidConfig)
	}
	client := redis.NewClient(&redis.Options{
		Addr:        cfg.Addr,
		Password:    cfg.Password,
		DB:          cfg.DB,
		DialTimeout: cfg.DialTimeout,
	})

	err := connectBackoff.retry(ctx, func() error {
		return client.Ping(ctx).Err()
	})
	if err != nil {
		_ = client.Close()
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%w: %s: %v", ErrUnavailable, cfg.Addr, err)
	}
	return NewRedisCacheFromClient(client), nil
}

// NewRedisCacheFromClient wraps an existing client without checking it.
func NewRedisCacheFromClient(client *redis.Client) *RedisCache {
	return &RedisCache{client: client}
}

func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, err := c.client.Get(ctx, key).Bytes()
	switch {
	case errors.Is(err, redis.Nil):
		return nil, false, nil
	case err != nil:
		return nil, false, err
	}
	return data, true, nil
}

// Set stores data. ttl <= 0 keeps the key until Redis evicts it.
func (c *RedisCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	return c.client.Set(ctx, key, data, max(ttl, 0)).Err()
}

func (c *RedisCache) Delete(ctx context.Context, key string) error {
	return c.client.Del(ctx, key).Err()
}

// Close closes the client.
func (c *RedisCache) Close() error {
	return c.client.Close()
}

// backoff retries an operation a bounded number of times, doubling the wait
// after each failure.
type backoff struct {
	attempts int
	delay    time.Duration
}

// retry returns nil on the first success, ctx.Err() if ctx ends while
// waiting, and otherwise the last error.
func (b backoff) retry(ctx context.Context, fn func() error) error {
	delay := b.delay
	var err error
	for i := range b.attempts {
		if err = fn(); err == nil {
			return nil
		}
		if i == b.attempts-1 {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
			delay *= 2
		}
	}
	return err
}
