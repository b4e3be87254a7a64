// Package cache provides byte-oriented caching for layout engine results.
//
// Engine calls are the only expensive step of a layout run, and a given
// normalized graph always produces the same engine output, so the result of
// one call can be replayed for an identical request. The cache is best
// effort: a failing backend degrades to a miss, never to a layout error.
//
// # Backends
//
//   - [FileCache]: JSON files under a directory, for the CLI
//   - [RedisCache]: shared cache for multi-instance servers
//   - [NullCache]: caching disabled
//
// # Keys
//
// Keys are built by a [Keyer] from content hashes, so two requests share an
// entry exactly when their serialized graphs are identical. [ScopedKeyer]
// prefixes keys for tenant isolation.
package cache

import (
	"context"
	"time"
)

// Cache stores opaque byte values with an optional time-to-live.
type Cache interface {
	// Get returns the value for key and whether it was found.
	// Expired entries are reported as misses.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl <= 0 means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Default time-to-live values.
const (
	// TTLLayout bounds how long an engine result is replayed.
	TTLLayout = 7 * 24 * time.Hour
)

// NullCache stores nothing and always misses. It backs --no-cache and the
// "none" backend.
type NullCache struct{}

// NewNullCache returns a disabled cache.
func NewNullCache() *NullCache { return &NullCache{} }

// Get always misses.
func (*NullCache) Get(context.Context, string) ([]byte, bool, error) { return nil, false, nil }
func (*NullCache) Set(context.Context, string, []byte, time.Duration) error { return nil }
func (*NullCache) Delete(context.Context, string) error { return nil }
func (*NullCache) Close() error { return nil }

var (
	_ Cache = (*NullCache)(nil)
	_ Cache = (*FileCache)(nil)
	_ Cache = (*RedisCache)(nil)
)
