package dataset

import (
	"sync"
	"time"
)

// Store exposes dataset caching for HTTP handlers.
type Store interface {
	Put(ds *Dataset)
	Get(id string) (*Dataset, bool)
	Delete(id string)
	Len() int
}

type entry struct {
	ds       *Dataset
	deadline time.Time
}

// MemoryStore implements Store with a mutex-guarded map, a sliding per-entry
// TTL and a capacity bound. When full, inserting evicts the entry closest to
// expiry.
type MemoryStore struct {
	mu       sync.RWMutex
	entries  map[string]entry
	ttl      time.Duration
	capacity int
	done     chan struct{}
	once     sync.Once
}

// NewMemoryStore returns a MemoryStore and starts its expiry janitor.
func NewMemoryStore(ttl time.Duration, capacity int) *MemoryStore {
	s := &MemoryStore{
		entries:  make(map[string]entry),
		ttl:      ttl,
		capacity: capacity,
		done:     make(chan struct{}),
	}
	go s.janitor()
	return s
}

// Put caches a dataset under its identifier, evicting if at capacity.
func (s *MemoryStore) Put(ds *Dataset) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.entries[ds.ID]; !exists && len(s.entries) >= s.capacity {
		s.evictOldestLocked()
	}
	s.entries[ds.ID] = entry{ds: ds, deadline: time.Now().Add(s.ttl)}
}

// Get returns the dataset for an identifier and refreshes its deadline.
func (s *MemoryStore) Get(id string) (*Dataset, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[id]
	if !ok {
		return nil, false
	}
	if time.Now().After(e.deadline) {
		delete(s.entries, id)
		return nil, false
	}

	e.deadline = time.Now().Add(s.ttl)
	s.entries[id] = e
	return e.ds, true
}

// Delete removes an entry if present.
func (s *MemoryStore) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, id)
}

// Len reports the number of cached datasets, expired entries included
// until the janitor collects them.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Close stops the janitor goroutine.
func (s *MemoryStore) Close() {
	s.once.Do(func() { close(s.done) })
}

func (s *MemoryStore) evictOldestLocked() {
	var oldestID string
	var oldest time.Time
	for id, e := range s.entries {
		if oldestID == "" || e.deadline.Before(oldest) {
			oldestID = id
			oldest = e.deadline
		}
	}
	if oldestID != "" {
		delete(s.entries, oldestID)
	}
}

func (s *MemoryStore) janitor() {
	interval := s.ttl / 4
	if interval < time.Second {
		interval = time.Second
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.done:
			return
		case now := <-ticker.C:
			s.mu.Lock()
			for id, e := range s.entries {
				if now.After(e.deadline) {
					delete(s.entries, id)
				}
			}
			s.mu.Unlock()
		}
	}
}
