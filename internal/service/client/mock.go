package client

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MockClientService implements Service for unit tests.
type MockClientService struct {
	mu      sync.RWMutex
	clients map[string]*Client
	order   []string
	// Referenced, when set, reports whether other records still point at a
	// client. Delete fails with ErrHasDependents when it returns true.
	Referenced func(clientID string) bool
}

// NewMockClientService creates a new mock service.
func NewMockClientService() *MockClientService {
	return &MockClientService{
		clients: make(map[string]*Client),
	}
}

func (m *MockClientService) Create(ctx context.Context, params CreateParams) (*Client, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	email := normalizeEmail(params.Email)
	if m.emailTaken(email, "") {
		return nil, ErrAlreadyExists
	}

	now := time.Now().UTC()
	c := &Client{
		ID:        uuid.NewString(),
		Name:      strings.TrimSpace(params.Name),
		Email:     email,
		Phone:     strings.TrimSpace(params.Phone),
		Company:   strings.TrimSpace(params.Company),
		CreatedAt: now,
		UpdatedAt: now,
	}
	m.clients[c.ID] = c
	m.order = append(m.order, c.ID)
	out := *c
	return &out, nil
}

func (m *MockClientService) Get(ctx context.Context, id string) (*Client, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	c, exists := m.clients[id]
	if !exists {
		return nil, ErrNotFound
	}
	out := *c
	return &out, nil
}

func (m *MockClientService) List(ctx context.Context) ([]Client, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]Client, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, *m.clients[id])
	}
	return out, nil
}

func (m *MockClientService) Update(ctx context.Context, id string, params UpdateParams) (*Client, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	c, exists := m.clients[id]
	if !exists {
		return nil, ErrNotFound
	}
	if params.Email != nil && m.emailTaken(normalizeEmail(*params.Email), id) {
		return nil, ErrAlreadyExists
	}

	apply(c, params)
	c.UpdatedAt = time.Now().UTC()
	out := *c
	return &out, nil
}

func (m *MockClientService) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.clients[id]; !exists {
		return ErrNotFound
	}
	if m.Referenced != nil && m.Referenced(id) {
		return ErrHasDependents
	}
	delete(m.clients, id)
	for i, oid := range m.order {
		if oid == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return nil
}

// Clear removes all clients (useful for test cleanup).
func (m *MockClientService) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.clients = make(map[string]*Client)
	m.order = nil
}

func (m *MockClientService) emailTaken(email, exceptID string) bool {
	for id, c := range m.clients {
		if id != exceptID && c.Email == email {
			return true
		}
	}
	return false
}

// Compile-time interface check
var _ Service = (*MockClientService)(nil)
