package cache

import (
	"context"
	"time"

	"github.com/vmihailenco/msgpack/v5"
)

// GetValue reads a msgpack-encoded value. A value that no longer decodes
// (for example after a struct change) is deleted and reported as a miss.
func GetValue[T any](ctx context.Context, c Cache, key string) (T, bool, error) {
	var v T
	data, hit, err := c.Get(ctx, key)
	if err != nil || !hit {
		return v, false, err
	}
	if err := msgpack.Unmarshal(data, &v); err != nil {
		_ = c.Delete(ctx, key)
		var zero T
		return zero, false, nil
	}
	return v, true, nil
}

// SetValue stores v msgpack-encoded.
func SetValue[T any](ctx context.Context, c Cache, key string, v T, ttl time.Duration) error {
	data, err := msgpack.Marshal(v)
	if err != nil {
		return err
	}
	return c.Set(ctx, key, data, ttl)
}
