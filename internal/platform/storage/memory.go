package storage

import (
	"context"
	"slices"
	"sync"
)

// MemoryBucket keeps objects in process memory. Used by tests and local runs.
type MemoryBucket struct {
	mu      sync.RWMutex
	objects map[string][]byte
	// FailPut, when set, is returned by every Put.
	FailPut error
}

// NewMemoryBucket returns an empty bucket.
func NewMemoryBucket() *MemoryBucket {
	return &MemoryBucket{objects: make(map[string][]byte)}
}

func (m *MemoryBucket) Put(_ context.Context, key string, data []byte, _ string) error {
	if m.FailPut != nil {
		return m.FailPut
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[key] = slices.Clone(data)
	return nil
}

func (m *MemoryBucket) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	data, ok := m.objects[key]
	if !ok {
		return nil, ErrNotFound
	}
	return slices.Clone(data), nil
}

func (m *MemoryBucket) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.objects, key)
	return nil
}

// Len returns the number of stored objects.
func (m *MemoryBucket) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.objects)
}

var _ Bucket = (*MemoryBucket)(nil)
