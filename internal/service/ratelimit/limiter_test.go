package ratelimit

import (
	"context"
	"testing"
	"time"
)

func TestAllowDrainsBucket(t *testing.T) {
	l := New()
	for i := 0; i < 3; i++ {
		if !l.Allow("api", 3, 0.0001) {
			t.Fatalf("token %d should be available", i)
		}
	}
	if l.Allow("api", 3, 0.0001) {
		t.Fatalf("bucket must be empty after capacity consumed")
	}
}

func TestKeysAreIndependent(t *testing.T) {
	l := New()
	if !l.Allow("a", 1, 0.0001) {
		t.Fatalf("first token for key a")
	}
	if l.Allow("a", 1, 0.0001) {
		t.Fatalf("key a exhausted")
	}
	if !l.Allow("b", 1, 0.0001) {
		t.Fatalf("key b has its own bucket")
	}
}

func TestRefillOverTime(t *testing.T) {
	l := New()
	now := time.Now()
	l.mu.Lock()
	l.m["api"] = &bucket{tokens: 0, capacity: 5, refillRate: 10, last: now.Add(-time.Second)}
	l.mu.Unlock()

	// a second at 10 tokens/sec refills well past one token
	if !l.Allow("api", 5, 10) {
		t.Fatalf("bucket should have refilled")
	}
}

func TestWaitHonorsContext(t *testing.T) {
	l := New()
	if !l.Allow("api", 1, 0.0001) {
		t.Fatalf("seed token")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 80*time.Millisecond)
	defer cancel()

	if err := l.Wait(ctx, "api", 1, 0.0001); err == nil {
		t.Fatalf("wait on drained bucket must fail when ctx expires")
	}
}
