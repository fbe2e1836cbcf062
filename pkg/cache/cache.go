// Package cache stores rendered bspgen artifacts.
//
// Generation is deterministic for a fixed seed, so identical requests can be
// answered from a previous render. Three backends implement [Cache]:
//
//   - [FileCache] keeps entries under a local directory (the CLI default).
//   - [RedisCache] shares entries between server instances.
//   - [NullCache] stores nothing, for --no-cache and tests.
//
// Keys are built with [Key], which hashes every part of a request so that
// any option change yields a different entry.
package cache

import (
	"context"
	"time"
)

// DefaultTTL is how long rendered artifacts stay cached.
const DefaultTTL = 7 * 24 * time.Hour

// Cache is a byte store with per-entry expiry.
// Get reports a miss with ok == false and a nil error.
type Cache interface {
	Get(ctx context.Context, key string) (data []byte, ok bool, err error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}
