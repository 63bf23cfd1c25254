package storage

import (
	"bytes"
	"context"
	"sync"
)

var _ Store = (*MemoryStore)(nil)

type bucket struct {
	order []string
	data  map[string][]byte
}

// MemoryStore implementación en memoria, usada en pruebas y con STORE_DRIVER=memory.
type MemoryStore struct {
	mu      sync.RWMutex
	buckets map[string]*bucket
}

// NewMemoryStore construye un almacén vacío.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{buckets: make(map[string]*bucket)}
}

func (s *MemoryStore) bucket(entityType string) *bucket {
	b, ok := s.buckets[entityType]
	if !ok {
		b = &bucket{data: make(map[string][]byte)}
		s.buckets[entityType] = b
	}
	return b
}

func (s *MemoryStore) Get(_ context.Context, entityType, id string) ([]byte, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, ok := s.buckets[entityType]
	if !ok {
		return nil, false, nil
	}
	v, ok := b.data[id]
	if !ok {
		return nil, false, nil
	}
	return bytes.Clone(v), true, nil
}

func (s *MemoryStore) GetAll(_ context.Context, entityType string) ([][]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, ok := s.buckets[entityType]
	if !ok {
		return nil, nil
	}
	out := make([][]byte, 0, len(b.order))
	for _, id := range b.order {
		out = append(out, bytes.Clone(b.data[id]))
	}
	return out, nil
}

func (s *MemoryStore) Put(_ context.Context, entityType, id string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.putLocked(s.bucket(entityType), id, data)
	return nil
}

func (s *MemoryStore) putLocked(b *bucket, id string, data []byte) {
	if _, exists := b.data[id]; !exists {
		b.order = append(b.order, id)
	}
	b.data[id] = bytes.Clone(data)
}

func (s *MemoryStore) Delete(_ context.Context, entityType, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.buckets[entityType]
	if !ok {
		return false, nil
	}
	if _, exists := b.data[id]; !exists {
		return false, nil
	}
	delete(b.data, id)
	for i, k := range b.order {
		if k == id {
			b.order = append(b.order[:i], b.order[i+1:]...)
			break
		}
	}
	return true, nil
}

func (s *MemoryStore) CompareAndSwap(_ context.Context, entityType, id string, old, new []byte) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b := s.bucket(entityType)
	current, exists := b.data[id]
	if old == nil {
		if exists {
			return false, nil
		}
	} else if !exists || !bytes.Equal(current, old) {
		return false, nil
	}
	s.putLocked(b, id, new)
	return true, nil
}

func (s *MemoryStore) Close() error { return nil }
