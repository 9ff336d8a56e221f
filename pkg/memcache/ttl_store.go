package mem

import (
	"sync"
	"time"
)

// Store is a concurrency-safe in-memory map whose entries expire.
type Store[V any] interface {
	Set(key string, value V, ttl time.Duration)

	// Get returns the value for key if present and not expired.
	Get(key string) (V, bool)

	// Purge drops expired entries and returns how many were removed.
	Purge() int

	Len() int
}

type entry[V any] struct {
	value     V
	expiresAt time.Time
}

var _ Store[[]byte] = (*TTLStore[[]byte])(nil)

type TTLStore[V any] struct {
	mu   sync.RWMutex
	data map[string]entry[V]
	now  func() time.Time
	// maxEntries triggers a purge on Set when exceeded; 0 disables it.
	maxEntries int
}

func NewTTLStore[V any](maxEntries int) *TTLStore[V] {
	return &TTLStore[V]{
		data:       make(map[string]entry[V]),
		now:        time.Now,
		maxEntries: maxEntries,
	}
}

func (s *TTLStore[V]) Set(key string, value V, ttl time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = entry[V]{
		value:     value,
		expiresAt: s.now().Add(ttl),
	}
	if s.maxEntries > 0 && len(s.data) > s.maxEntries {
		s.purgeLocked()
	}
}

func (s *TTLStore[V]) Get(key string) (V, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.data[key]
	if !ok || s.now().After(e.expiresAt) {
		var zero V
		return zero, false
	}
	return e.value, true
}

func (s *TTLStore[V]) Purge() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.purgeLocked()
}

func (s *TTLStore[V]) purgeLocked() int {
	now := s.now()
	removed := 0
	for k, e := range s.data {
		if now.After(e.expiresAt) {
			delete(s.data, k)
			removed++
		}
	}
	return removed
}

func (s *TTLStore[V]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}
