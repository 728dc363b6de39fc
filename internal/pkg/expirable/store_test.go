package expirable

import (
	"testing"
	"time"
)

type fakeClock struct {
	t time.Time
}

func (f *fakeClock) Now() time.Time { return f.t }

func (f *fakeClock) Advance(d time.Duration) { f.t = f.t.Add(d) }

func newTestStore() (*Store, *fakeClock) {
	clk := &fakeClock{t: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
	return New(clk.Now), clk
}

func TestSetGetExpiry(t *testing.T) {
	s, clk := newTestStore()

	s.Set("k", "v", time.Minute)
	if v, ok := s.Get("k"); !ok || v != "v" {
		t.Fatalf("expected live entry, got %v %v", v, ok)
	}

	clk.Advance(time.Minute)
	if _, ok := s.Get("k"); ok {
		t.Fatal("expected entry to expire at its deadline")
	}
}

func TestIncrDecr(t *testing.T) {
	s, _ := newTestStore()

	if n := s.Incr("room:1", time.Minute); n != 1 {
		t.Fatalf("expected 1, got %d", n)
	}
	if n := s.Incr("room:1", time.Minute); n != 2 {
		t.Fatalf("expected 2, got %d", n)
	}

	s.Decr("room:1")
	if n := s.Count("room:1"); n != 1 {
		t.Fatalf("expected 1 after decr, got %d", n)
	}

	s.Decr("room:1")
	if n := s.Count("room:1"); n != 0 {
		t.Fatalf("expected 0 after final decr, got %d", n)
	}
	if s.Len() != 0 {
		t.Fatalf("expected empty store, got %d entries", s.Len())
	}
}

func TestCounterExpires(t *testing.T) {
	s, clk := newTestStore()

	s.Incr("room:7", time.Minute)
	clk.Advance(2 * time.Minute)

	if n := s.Count("room:7"); n != 0 {
		t.Fatalf("expected expired counter to read 0, got %d", n)
	}
	// a fresh Incr after expiry starts over
	if n := s.Incr("room:7", time.Minute); n != 1 {
		t.Fatalf("expected counter restart at 1, got %d", n)
	}
}

func TestSweep(t *testing.T) {
	s, clk := newTestStore()

	s.Set("a", 1, time.Minute)
	s.Set("b", 2, time.Hour)
	clk.Advance(30 * time.Minute)

	if removed := s.Sweep(); removed != 1 {
		t.Fatalf("expected 1 swept entry, got %d", removed)
	}
	if _, ok := s.Get("b"); !ok {
		t.Fatal("expected long-lived entry to survive the sweep")
	}
}
