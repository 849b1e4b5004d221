package cache

import (
	"context"
	"time"
)

// NullCache stands in for a real backend when caching is off. Every lookup
// misses and every write is dropped, so each pipeline stage recomputes.
type NullCache struct {
	// Reason records why caching is off, e.g. "--no-cache".
	Reason string
}

// NewNullCache returns a cache that stores nothing.
func NewNullCache() Cache {
	return &NullCache{Reason: "disabled"}
}

// NewDisabledCache returns a NullCache that remembers why caching is off.
func NewDisabledCache(reason string) Cache {
	return &NullCache{Reason: reason}
}

func (*NullCache) Get(context.Context, string) ([]byte, bool, error)        { return nil, false, nil }
func (*NullCache) Set(context.Context, string, []byte, time.Duration) error { return nil }
func (*NullCache) Delete(context.Context, string) error                     { return nil }
func (*NullCache) Close() error                                             { return nil }

// String reports the cache as "none (<reason>)".
func (c *NullCache) String() string { return "none (" + c.Reason + ")" }

var _ Cache = (*NullCache)(nil)
