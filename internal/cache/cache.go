// Package cache provides a TTL cache for derived values (streaks, aggregated
// stats), layered on the persistence layer's cache namespace.
//
// Entries are {value, timestamp} pairs. Expiration is lazy: a read past the
// TTL is treated as a miss and the stale entry is evicted on the spot; there
// is no background sweep. Invalidation is explicit — any mutation of the
// underlying completion set or logs must invalidate the caches derived from
// it.
package cache

import (
	"encoding/json"
	"fmt"
	"time"
)

// TTL policy by consumer.
const (
	StreakTTL = time.Hour
	StatsTTL  = 5 * time.Minute
)

// Backend is the slice of the persistence layer the cache needs.
// *store.Store satisfies it.
type Backend interface {
	Get(ns, key string) ([]byte, error)
	Set(ns, key string, value []byte) error
	Remove(ns, key string) error
}

// Namespace all cache entries live under in the backend.
const Namespace = "cache"

type entry struct {
	Value     json.RawMessage `json:"value"`
	Timestamp int64           `json:"timestamp"` // unix milliseconds
}

type Cache struct {
	backend Backend
	now     func() time.Time
}

func New(backend Backend) *Cache {
	return &Cache{backend: backend, now: time.Now}
}

// WithClock returns a copy of the cache using the given clock. Test hook.
func (c *Cache) WithClock(now func() time.Time) *Cache {
	return &Cache{backend: c.backend, now: now}
}

// Get returns the cached value for key if it is younger than ttl. A stale
// entry counts as a miss and is purged. All cache errors degrade to a miss —
// the cache never blocks the primary data path.
func Get[T any](c *Cache, key string, ttl time.Duration) (T, bool) {
	var zero T

	raw, err := c.backend.Get(Namespace, key)
	if err != nil || raw == nil {
		return zero, false
	}

	var e entry
	if err := json.Unmarshal(raw, &e); err != nil {
		return zero, false
	}

	age := c.now().UnixMilli() - e.Timestamp
	if age > ttl.Milliseconds() {
		c.backend.Remove(Namespace, key)
		return zero, false
	}

	var v T
	if err := json.Unmarshal(e.Value, &v); err != nil {
		return zero, false
	}
	return v, true
}

// Set stores value under key with the current timestamp, overwriting any
// previous entry.
func Set[T any](c *Cache, key string, value T) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal cache value %q: %w", key, err)
	}
	e := entry{Value: raw, Timestamp: c.now().UnixMilli()}
	payload, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("marshal cache entry %q: %w", key, err)
	}
	return c.backend.Set(Namespace, key, payload)
}

// Invalidate drops the entry for key, if any.
func (c *Cache) Invalidate(key string) error {
	return c.backend.Remove(Namespace, key)
}

// StreakKey is the cache key for a habit's current streak.
func StreakKey(habitID string) string {
	return "streak_" + habitID
}

// StatsKey is the cache key for aggregated stats over a day window.
func StatsKey(days int) string {
	return fmt.Sprintf("stats_%d", days)
}
