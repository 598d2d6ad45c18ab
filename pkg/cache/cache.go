package cache

import (
	"context"
	"errors"
	"time"
)

var (
	ErrCacheMiss = errors.New("cache: key not found")
)

// Service defines cache operations. Values are stored as JSON so every
// backend round-trips the same way.
type Service interface {
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Get(ctx context.Context, key string, dest interface{}) error
	Delete(ctx context.Context, keys ...string) error
	Exists(ctx context.Context, keys ...string) (bool, error)
	Close() error
}

// GetOrFill looks up key and on a miss calls fill, caches the result
// with the given TTL, and returns it. Fetch errors pass through; cache
// write failures do not fail the read path.
func GetOrFill[T any](ctx context.Context, c Service, key string, ttl time.Duration, fill func(context.Context) (T, error)) (T, error) {
	var cached T
	if err := c.Get(ctx, key, &cached); err == nil {
		return cached, nil
	}

	fresh, err := fill(ctx)
	if err != nil {
		return fresh, err
	}

	_ = c.Set(ctx, key, fresh, ttl)
	return fresh, nil
}
