package store

import (
	"context"
	"slices"
	"sync"

	"wtime/internal/domain"
)

// MemoryByteStore is an in-process ByteStore.
type MemoryByteStore struct {
	mu   sync.RWMutex
	data map[domain.StorageKey][]byte
}

// NewMemoryByteStore returns an empty MemoryByteStore.
func NewMemoryByteStore() *MemoryByteStore {
	return &MemoryByteStore{data: make(map[domain.StorageKey][]byte)}
}

func (s *MemoryByteStore) Get(_ context.Context, key domain.StorageKey) ([]byte, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, ok := s.data[key]
	return slices.Clone(b), ok, nil
}

func (s *MemoryByteStore) Set(_ context.Context, key domain.StorageKey, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = slices.Clone(value)
	return nil
}

func (s *MemoryByteStore) Delete(_ context.Context, key domain.StorageKey) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
	return nil
}

// Compile-time assertion that MemoryByteStore implements domain.ByteStore.
var _ domain.ByteStore = (*MemoryByteStore)(nil)
