package document

import (
	"context"
	"sync"
)

// MemoryStore implements Store in process memory for unit tests.
type MemoryStore struct {
	mu    sync.RWMutex
	docs  map[string]*Document
	order []string
	// FailInsert, when set, is returned by every Insert.
	FailInsert error
}

// NewMemoryStore creates an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{docs: make(map[string]*Document)}
}

func (m *MemoryStore) Insert(ctx context.Context, doc *Document) error {
	if m.FailInsert != nil {
		return m.FailInsert
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	d := *doc
	m.docs[d.ID] = &d
	m.order = append(m.order, d.ID)
	return nil
}

func (m *MemoryStore) Get(ctx context.Context, id string) (*Document, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	d, ok := m.docs[id]
	if !ok {
		return nil, ErrNotFound
	}
	out := *d
	return &out, nil
}

func (m *MemoryStore) List(ctx context.Context, filter ListFilter) ([]Document, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]Document, 0, len(m.order))
	for _, id := range m.order {
		if d := m.docs[id]; filter.matches(d) {
			out = append(out, *d)
		}
	}
	return out, nil
}

func (m *MemoryStore) Delete(ctx context.Context, id string) (*Document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.docs[id]
	if !ok {
		return nil, ErrNotFound
	}
	delete(m.docs, id)
	for i, oid := range m.order {
		if oid == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return d, nil
}

// References reports whether any document belongs to the given client or
// intake. Handy as a mock's Referenced hook.
func (m *MemoryStore) References(clientID, intakeID string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, d := range m.docs {
		if (clientID != "" && d.ClientID == clientID) || (intakeID != "" && d.IntakeID == intakeID) {
			return true
		}
	}
	return false
}

// Compile-time interface check
var _ Store = (*MemoryStore)(nil)
