// Package cache provides the byte caches used by the build pipeline.
//
// Three implementations share the [Cache] interface:
//   - [FileCache]: entries as JSON files under a directory, for the CLI
//   - [RedisCache]: entries in Redis, for shared build machines
//   - [NullCache]: stores nothing, used when caching is disabled
//
// Keys are produced by a [Keyer] so that every stage hashes its inputs the
// same way. [ScopedKeyer] prefixes keys to give separate sites their own
// namespace in a shared store.
package cache

import (
	"context"
	"time"
)

// TTLs per pipeline stage.
const (
	// TTLSource bounds how long bodies loaded from a remote store are reused.
	TTLSource = 10 * time.Minute
	// TTLLayout and TTLArtifact are long because their keys already hash
	// every input.
	TTLLayout   = 7 * 24 * time.Hour
	TTLArtifact = 7 * 24 * time.Hour
)

// Cache stores opaque byte values under string keys.
//
// Get reports a miss with hit == false and a nil error. Implementations
// treat undecodable or expired entries as misses. A ttl of zero means the
// entry does not expire.
type Cache interface {
	Get(ctx context.Context, key string) (data []byte, hit bool, err error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}
