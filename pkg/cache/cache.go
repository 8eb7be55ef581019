// Package cache provides result caching for the flexline solver surfaces.
//
// The distributor itself is cheap, but the CLI and the solve service call it
// per layout pass with frequently repeated inputs, so solved allocations are
// memoized behind a small [Cache] interface. Three backends are provided:
//
//   - [FileCache]: JSON entries under a local directory (CLI default)
//   - [RedisCache]: shared backend for the solve service
//   - [NullCache]: no-op, for tests and --no-cache
//
// Keys are derived from the canonical profile JSON plus the solve options,
// via [Keyer]; see [DefaultKeyer.SolveKey].
package cache

import (
	"context"
	"errors"
	"time"
)

// ErrCacheMiss is returned by helpers that treat a miss as an error.
// The Cache interface itself signals misses through its bool return.
var ErrCacheMiss = errors.New("cache miss")

// Cache is a byte-oriented cache with per-entry TTLs.
// A zero TTL stores the entry without expiration.
type Cache interface {
	// Get retrieves a value. The bool reports whether the key was present
	// and unexpired; an error is only returned for backend failures.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with the given TTL (zero = no expiration).
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}
