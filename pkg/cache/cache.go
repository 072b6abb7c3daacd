// Package cache stores byte payloads under string keys.
//
// Two stores are provided: [FileCache] keeps entries as JSON files under a
// directory (one subdirectory per hash prefix) and [NullCache] disables
// caching. Keys are built by a [Keyer] so every caller hashes the same
// inputs the same way:
//
//	c, _ := cache.NewFileCache(dir)
//	k := cache.NewScopedKeyer(cache.NewDefaultKeyer(), "run:"+runID+":")
//	key := k.ReplyKey(cache.ReplyKeyOpts{Provider: "openai", Model: m, Occupation: "nurse", Index: 3})
//	if data, hit, _ := c.Get(ctx, key); hit {
//	    // reuse the stored reply
//	}
package cache

import (
	"context"
	"time"
)

// Cache is a key-value store with optional expiry.
type Cache interface {
	// Get returns the stored data and whether the key was present.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data. A zero ttl never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases resources held by the cache.
	Close() error
}

// NullCache misses on every Get and drops every Set. It backs --no-cache
// and runners created without a cache.
type NullCache struct{}

func NewNullCache() Cache { return NullCache{} }

func (NullCache) Get(context.Context, string) ([]byte, bool, error)        { return nil, false, nil }
func (NullCache) Set(context.Context, string, []byte, time.Duration) error { return nil }
func (NullCache) Delete(context.Context, string) error                    { return nil }
func (NullCache) Close() error                                            { return nil }

var _ Cache = NullCache{}
