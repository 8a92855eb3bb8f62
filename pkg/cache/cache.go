// Package cache provides byte-level caching for fetched definition
// libraries and rendered graph artifacts.
//
// Three backends implement the same interface:
//   - FileCache: per-user cache directory, used by the CLI
//   - RedisCache: shared cache for the serve deployment
//   - NullCache: disables caching (--no-cache, tests)
//
// Keys are opaque strings; use the helpers in keys.go to build
// collision-free keys from library URLs and document content hashes.
package cache

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned by backends that distinguish a missing key
// from a read failure. Get also reports misses via its ok result.
var ErrNotFound = errors.New("not found")

// Cache is the interface shared by all cache backends.
//
// Get returns (nil, false, nil) on a miss; errors are reserved for
// backend failures. A TTL of 0 in Set means the entry never expires.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}
