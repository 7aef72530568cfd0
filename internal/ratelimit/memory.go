package ratelimit

import (
	"sync"
	"time"
)

// MemoryStore is the single-process Store implementation. The mutex keeps
// per-identifier read-modify-write cycles atomic across handler goroutines.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]Entry
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]Entry)}
}

func (s *MemoryStore) Get(identifier string) (Entry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.entries[identifier]
	return entry, ok
}

func (s *MemoryStore) Set(identifier string, entry Entry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[identifier] = entry
}

func (s *MemoryStore) Sweep(cutoff time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for key, entry := range s.entries {
		if entry.WindowStart.Before(cutoff) {
			delete(s.entries, key)
			removed++
		}
	}
	return removed
}

func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}
