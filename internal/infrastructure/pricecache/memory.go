// Package pricecache provides the batch price cache behind the price
// resolver. The in-process implementation wraps patrickmn/go-cache; the
// batch interface keeps the resolver a single round trip away from any
// future networked store.
package pricecache

import (
	"context"
	"time"

	cache "github.com/patrickmn/go-cache"
)

const janitorInterval = 5 * time.Minute

// Memory is a TTL cache safe for concurrent readers and writers. Entries
// expire by time only; nothing ever invalidates them explicitly.
type Memory struct {
	c *cache.Cache
}

// NewMemory builds an empty cache. Per-entry TTLs are supplied on write, so
// the default expiration is irrelevant here.
func NewMemory() *Memory {
	return &Memory{c: cache.New(cache.NoExpiration, janitorInterval)}
}

// MGet returns the unexpired entries for the given keys in one call.
func (m *Memory) MGet(_ context.Context, keys []string) (map[string]string, error) {
	out := make(map[string]string, len(keys))
	for _, key := range keys {
		if v, ok := m.c.Get(key); ok {
			if s, ok := v.(string); ok {
				out[key] = s
			}
		}
	}
	return out, nil
}

// MSet writes all entries with the given TTL in one call.
func (m *Memory) MSet(_ context.Context, entries map[string]string, ttl time.Duration) error {
	for key, value := range entries {
		m.c.Set(key, value, ttl)
	}
	return nil
}
