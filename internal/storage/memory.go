package storage

import (
	"context"
	"sync"
)

// MemoryStore keeps deliverables in a map, for tests
type MemoryStore struct {
	mu    sync.Mutex
	blobs map[string][]byte
}

// NewMemoryStore creates an empty in-memory blob store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{blobs: make(map[string][]byte)}
}

// Put stores data under name and returns a mem:// URL
func (s *MemoryStore) Put(ctx context.Context, name string, data []byte, contentType string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cp := append([]byte(nil), data...)
	s.blobs[name] = cp
	return "mem://" + name, nil
}

// Get retrieves a stored blob by name
func (s *MemoryStore) Get(name string) ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, ok := s.blobs[name]
	if !ok {
		return nil, false
	}
	return append([]byte(nil), data...), true
}
