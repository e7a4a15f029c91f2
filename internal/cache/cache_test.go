package cache

import (
	"testing"
	"time"

	"github.com/sadopc/mastery/internal/store"
)

func newTestCache(t *testing.T) (*Cache, *store.Store) {
	t.Helper()
	s, err := store.NewMemory()
	if err != nil {
		t.Fatalf("new memory store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return New(s), s
}

func TestRoundTrip(t *testing.T) {
	c, _ := newTestCache(t)

	if err := Set(c, "streak_reading", 7); err != nil {
		t.Fatal(err)
	}
	got, ok := Get[int](c, "streak_reading", StreakTTL)
	if !ok || got != 7 {
		t.Fatalf("got %d, ok=%v", got, ok)
	}
}

func TestMissOnAbsent(t *testing.T) {
	c, _ := newTestCache(t)

	if _, ok := Get[int](c, "nope", StreakTTL); ok {
		t.Fatal("expected miss")
	}
}

func TestExpiryPurgesEntry(t *testing.T) {
	c, s := newTestCache(t)

	base := time.Now()
	clock := base
	c = c.WithClock(func() time.Time { return clock })

	if err := Set(c, "stats_30", map[string]int{"days": 30}); err != nil {
		t.Fatal(err)
	}

	// Just inside the TTL: hit.
	clock = base.Add(StatsTTL - time.Second)
	if _, ok := Get[map[string]int](c, "stats_30", StatsTTL); !ok {
		t.Fatal("expected hit inside ttl")
	}

	// Past the TTL: miss, and the stale entry is evicted from the backend.
	clock = base.Add(StatsTTL + time.Second)
	if _, ok := Get[map[string]int](c, "stats_30", StatsTTL); ok {
		t.Fatal("expected miss past ttl")
	}
	raw, _ := s.Get(Namespace, "stats_30")
	if raw != nil {
		t.Fatal("stale entry not purged")
	}
}

func TestOverwriteRefreshesTimestamp(t *testing.T) {
	c, _ := newTestCache(t)

	base := time.Now()
	clock := base
	c = c.WithClock(func() time.Time { return clock })

	Set(c, "streak_reading", 3)

	// Rewrite near expiry; the new timestamp keeps it alive.
	clock = base.Add(StreakTTL - time.Minute)
	Set(c, "streak_reading", 4)

	clock = base.Add(StreakTTL + time.Minute)
	got, ok := Get[int](c, "streak_reading", StreakTTL)
	if !ok || got != 4 {
		t.Fatalf("got %d, ok=%v", got, ok)
	}
}

func TestInvalidate(t *testing.T) {
	c, _ := newTestCache(t)

	Set(c, "streak_reading", 5)
	if err := c.Invalidate("streak_reading"); err != nil {
		t.Fatal(err)
	}
	if _, ok := Get[int](c, "streak_reading", StreakTTL); ok {
		t.Fatal("expected miss after invalidate")
	}

	// Invalidating an absent key is a no-op.
	if err := c.Invalidate("streak_reading"); err != nil {
		t.Fatal(err)
	}
}

func TestCorruptEntryIsMiss(t *testing.T) {
	c, s := newTestCache(t)

	s.Set(Namespace, "bad", []byte("{corrupt"))
	if _, ok := Get[int](c, "bad", StreakTTL); ok {
		t.Fatal("expected miss on corrupt entry")
	}
}

func TestKeyHelpers(t *testing.T) {
	if StreakKey("reading") != "streak_reading" {
		t.Fatal(StreakKey("reading"))
	}
	if StatsKey(30) != "stats_30" {
		t.Fatal(StatsKey(30))
	}
}
