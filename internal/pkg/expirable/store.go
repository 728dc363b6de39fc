// Package expirable is a small in-memory key-value store where every
// entry carries its own TTL. The clock is injected so expiry is
// testable without sleeping.
package expirable

import (
	"sync"
	"time"
)

type entry struct {
	value     any
	count     int64
	expiresAt time.Time
}

type Store struct {
	mu      sync.Mutex
	now     func() time.Time
	entries map[string]*entry
}

func New(now func() time.Time) *Store {
	if now == nil {
		now = time.Now
	}
	return &Store{
		now:     now,
		entries: make(map[string]*entry),
	}
}

func (s *Store) Set(key string, value any, ttl time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = &entry{value: value, expiresAt: s.now().Add(ttl)}
}

func (s *Store) Get(key string) (any, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[key]
	if !ok {
		return nil, false
	}
	if !e.expiresAt.After(s.now()) {
		delete(s.entries, key)
		return nil, false
	}
	return e.value, true
}

func (s *Store) Delete(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, key)
}

// Incr bumps a counter under key and returns the new value. The TTL
// of the whole counter is refreshed on every bump; counters back the
// short-lived booking holds taken between an availability check and
// the insert.
func (s *Store) Incr(key string, ttl time.Duration) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[key]
	if !ok || !e.expiresAt.After(s.now()) {
		e = &entry{}
		s.entries[key] = e
	}
	e.count++
	e.expiresAt = s.now().Add(ttl)
	return e.count
}

// Decr releases one unit of a counter, dropping the entry at zero.
func (s *Store) Decr(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[key]
	if !ok {
		return
	}
	e.count--
	if e.count <= 0 {
		delete(s.entries, key)
	}
}

// Count returns the live counter value for key, zero if expired.
func (s *Store) Count(key string) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[key]
	if !ok || !e.expiresAt.After(s.now()) {
		return 0
	}
	return e.count
}

// Sweep drops every expired entry and returns how many were removed.
func (s *Store) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	removed := 0
	for k, e := range s.entries {
		if !e.expiresAt.After(now) {
			delete(s.entries, k)
			removed++
		}
	}
	return removed
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}
