package dedup

import (
	"fmt"
	"testing"
	"time"
)

func TestSeenAfterMark(t *testing.T) {
	s := New(time.Hour, 10)
	if s.Seen("AAPL:2025-06-15") {
		t.Fatalf("fresh store must not know the key")
	}
	s.Mark("AAPL:2025-06-15")
	if !s.Seen("AAPL:2025-06-15") {
		t.Fatalf("marked key must be seen")
	}
}

func TestExpiryWithInjectedClock(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }
	s := New(time.Hour, 10, WithClock(clock))

	s.Mark("TSLA:bucket")
	now = now.Add(59 * time.Minute)
	if !s.Seen("TSLA:bucket") {
		t.Fatalf("still within TTL")
	}
	now = now.Add(2 * time.Minute)
	if s.Seen("TSLA:bucket") {
		t.Fatalf("key must expire after TTL")
	}
}

func TestBoundedSweepPrefersExpired(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }
	s := New(time.Hour, 3, WithClock(clock))

	s.Mark("old-1")
	s.Mark("old-2")
	now = now.Add(2 * time.Hour)
	s.Mark("fresh-1")

	// cap reached: expired old-1/old-2 go, fresh-1 stays
	s.Mark("fresh-2")
	if s.Seen("old-1") || s.Seen("old-2") {
		t.Fatalf("expired keys must have been swept")
	}
	if !s.Seen("fresh-1") || !s.Seen("fresh-2") {
		t.Fatalf("fresh keys must survive the sweep")
	}
}

func TestBoundedEvictsOldestWhenNothingExpired(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }
	s := New(time.Hour, 3, WithClock(clock))

	for i := 0; i < 3; i++ {
		s.Mark(fmt.Sprintf("key-%d", i))
		now = now.Add(time.Minute)
	}

	s.Mark("key-3")
	if s.Seen("key-0") {
		t.Fatalf("oldest key must be evicted at capacity")
	}
	if s.Len() > 3 {
		t.Fatalf("store exceeded its cap: %d", s.Len())
	}
}
