package store

import (
	"context"
	"sync"
)

// MemoryStore is a map-backed Store for tests and local experiments.
type MemoryStore struct {
	mu      sync.Mutex
	data    map[string]string
	failing bool
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string]string)}
}

// SetFailing makes every subsequent operation return ErrStoreUnavailable.
// Tests use it to exercise the 500 path.
func (s *MemoryStore) SetFailing(failing bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failing = failing
}

// Get returns the value at key, ok=false on a missing key.
func (s *MemoryStore) Get(ctx context.Context, key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failing {
		return "", false, ErrStoreUnavailable
	}
	value, ok := s.data[key]
	return value, ok, nil
}

// Set writes value at key.
func (s *MemoryStore) Set(ctx context.Context, key string, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failing {
		return ErrStoreUnavailable
	}
	s.data[key] = value
	return nil
}

// Close is a no-op.
func (s *MemoryStore) Close() error {
	return nil
}
