// Package cache keeps short-lived process state in memory.
package cache

import (
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// Store holds typed values that expire after idleTTL without access.
// Every hit pushes the expiry forward.
type Store[V any] struct {
	cache   *gocache.Cache
	idleTTL time.Duration
	mu      sync.Mutex
}

// NewStore creates a Store; expired entries are swept every idleTTL
func NewStore[V any](idleTTL time.Duration) *Store[V] {
	if idleTTL <= 0 {
		idleTTL = 10 * time.Minute
	}
	return &Store[V]{
		cache:   gocache.New(idleTTL, idleTTL),
		idleTTL: idleTTL,
	}
}

// Get returns the value for key and refreshes its expiry
func (s *Store[V]) Get(key string) (V, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.touch(key)
}

// GetOrCreate returns the value for key, creating it with create if absent
func (s *Store[V]) GetOrCreate(key string, create func() V) V {
	s.mu.Lock()
	defer s.mu.Unlock()

	if v, ok := s.touch(key); ok {
		return v
	}
	v := create()
	s.cache.Set(key, v, s.idleTTL)
	return v
}

// Set replaces the value for key
func (s *Store[V]) Set(key string, v V) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache.Set(key, v, s.idleTTL)
}

// Len returns the number of entries, including expired ones not yet swept
func (s *Store[V]) Len() int {
	return s.cache.ItemCount()
}

func (s *Store[V]) touch(key string) (V, bool) {
	var zero V
	val, found := s.cache.Get(key)
	if !found {
		return zero, false
	}
	v, ok := val.(V)
	if !ok {
		return zero, false
	}
	s.cache.Set(key, v, s.idleTTL)
	return v, true
}
