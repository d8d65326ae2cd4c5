package cache

import (
	"sort"
	"sync"
	"time"
)

// Store is a thread-safe in-memory map whose entries expire after a period
// without access. Editor sessions live here.
type Store[V any] struct {
	mu      sync.Mutex
	items   map[string]*entry[V]
	ttl     time.Duration
	now     func() time.Time
	onEvict func(key string, value V)

	stopCleanup chan struct{}
	stopOnce    sync.Once
}

type entry[V any] struct {
	value      V
	expiration time.Time
}

// Option configures a Store
type Option[V any] func(*Store[V])

// WithEvictHook registers fn to run after an entry expires or is deleted.
// fn runs without the store lock held.
func WithEvictHook[V any](fn func(key string, value V)) Option[V] {
	return func(s *Store[V]) {
		s.onEvict = fn
	}
}

// WithClock replaces time.Now, for tests
func WithClock[V any](now func() time.Time) Option[V] {
	return func(s *Store[V]) {
		s.now = now
	}
}

// NewStore creates a store with a sliding ttl. A positive cleanupInterval
// starts a background sweep; call Stop to end it.
func NewStore[V any](ttl, cleanupInterval time.Duration, opts ...Option[V]) *Store[V] {
	s := &Store[V]{
		items:       make(map[string]*entry[V]),
		ttl:         ttl,
		now:         time.Now,
		stopCleanup: make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}

	if cleanupInterval > 0 {
		go s.startCleanup(cleanupInterval)
	}
	return s
}

// Get returns a live entry and extends its lifetime
func (s *Store[V]) Get(key string) (V, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.items[key]
	if !ok || s.expired(e) {
		var zero V
		return zero, false
	}
	e.expiration = s.now().Add(s.ttl)
	return e.value, true
}

// Peek returns a live entry without touching its lifetime
func (s *Store[V]) Peek(key string) (V, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.items[key]
	if !ok || s.expired(e) {
		var zero V
		return zero, false
	}
	return e.value, true
}

// Set stores value under key, replacing any previous entry
func (s *Store[V]) Set(key string, value V) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items[key] = &entry[V]{
		value:      value,
		expiration: s.now().Add(s.ttl),
	}
}

// Delete removes key and reports whether it was present
func (s *Store[V]) Delete(key string) bool {
	s.mu.Lock()
	e, ok := s.items[key]
	if ok {
		delete(s.items, key)
	}
	s.mu.Unlock()

	if ok && s.onEvict != nil {
		s.onEvict(key, e.value)
	}
	return ok
}

// Len returns the number of stored entries, expired ones not yet swept included
func (s *Store[V]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// Keys returns the keys of live entries, sorted
func (s *Store[V]) Keys() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	keys := make([]string, 0, len(s.items))
	for key, e := range s.items {
		if !s.expired(e) {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	return keys
}

// Sweep drops expired entries and returns how many were dropped
func (s *Store[V]) Sweep() int {
	s.mu.Lock()
	evicted := make(map[string]V)
	for key, e := range s.items {
		if s.expired(e) {
			evicted[key] = e.value
			delete(s.items, key)
		}
	}
	s.mu.Unlock()

	if s.onEvict != nil {
		for key, value := range evicted {
			s.onEvict(key, value)
		}
	}
	return len(evicted)
}

// Stop ends the background sweep. Safe to call more than once.
func (s *Store[V]) Stop() {
	s.stopOnce.Do(func() {
		close(s.stopCleanup)
	})
}

func (s *Store[V]) expired(e *entry[V]) bool {
	return s.now().After(e.expiration)
}

func (s *Store[V]) startCleanup(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.Sweep()
		case <-s.stopCleanup:
			return
		}
	}
}
