// Package cache declares the key-value cache port.
package cache

import (
	"context"
	"time"
)

// Cache is a string key-value store. Get returns "" and no error on a miss.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)

	Set(ctx context.Context, key string, value string, ttl time.Duration) error

	Delete(ctx context.Context, keys ...string) error

	Close() error
}
