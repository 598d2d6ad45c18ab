package dedup

import (
	"sync"
	"time"
)

// Store remembers alert keys for a TTL so the same signal is not
// re-announced within its window. Bounded: when the map exceeds
// maxEntries a full sweep drops expired keys first, then the oldest.
type Store struct {
	mu         sync.Mutex
	entries    map[string]time.Time
	ttl        time.Duration
	maxEntries int
	now        func() time.Time
}

// Option configures Store.
type Option func(*Store)

// WithClock injects a clock for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// New creates a dedup store with the given TTL and entry cap.
func New(ttl time.Duration, maxEntries int, opts ...Option) *Store {
	if maxEntries <= 0 {
		maxEntries = 1000
	}
	s := &Store{
		entries:    make(map[string]time.Time),
		ttl:        ttl,
		maxEntries: maxEntries,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Seen reports whether key was marked within the TTL.
func (s *Store) Seen(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	at, ok := s.entries[key]
	if !ok {
		return false
	}
	if s.now().Sub(at) > s.ttl {
		delete(s.entries, key)
		return false
	}
	return true
}

// Mark records key at the current time.
func (s *Store) Mark(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.entries) >= s.maxEntries {
		s.sweep()
	}
	s.entries[key] = s.now()
}

// sweep removes expired entries; if nothing expired, the oldest entry
// goes so the map never grows unbounded. Caller holds the lock.
func (s *Store) sweep() {
	now := s.now()
	removed := false
	for key, at := range s.entries {
		if now.Sub(at) > s.ttl {
			delete(s.entries, key)
			removed = true
		}
	}
	if removed {
		return
	}

	var oldestKey string
	var oldestAt time.Time
	for key, at := range s.entries {
		if oldestKey == "" || at.Before(oldestAt) {
			oldestKey = key
			oldestAt = at
		}
	}
	if oldestKey != "" {
		delete(s.entries, oldestKey)
	}
}

// Len returns the current entry count.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}
