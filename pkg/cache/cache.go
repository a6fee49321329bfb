package cache

import (
	"context"
	"time"
)

// Cache stores opaque byte values by key. Implementations must be safe for
// concurrent use.
type Cache interface {
	// Get returns the value and true on a hit, or nil and false on a miss.
	// Expired entries are misses.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A zero ttl means the entry never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the cache.
	Close() error
}

// Entry lifetimes.
const (
	// TTLMetrics covers image measurements. Keys include the file's
	// content hash, so entries only go stale when nobody reads them.
	TTLMetrics = 30 * 24 * time.Hour

	// TTLArtifact covers rendered slides.
	TTLArtifact = 7 * 24 * time.Hour
)

// NullCache misses on every read and drops every write. It stands in for a
// real backend when caching is disabled.
type NullCache struct{}

// NewNullCache returns a cache that stores nothing.
func NewNullCache() Cache { return NullCache{} }

func (NullCache) Get(context.Context, string) ([]byte, bool, error)        { return nil, false, nil }
func (NullCache) Set(context.Context, string, []byte, time.Duration) error { return nil }
func (NullCache) Delete(context.Context, string) error                     { return nil }
func (NullCache) Close() error                                             { return nil }
