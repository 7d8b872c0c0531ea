package intake

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/teefour-ai/teefour-api/internal/service/client"
)

// ClientLookup resolves client IDs.
type ClientLookup interface {
	Get(ctx context.Context, id string) (*client.Client, error)
}

// MockIntakeService implements Service for unit tests.
type MockIntakeService struct {
	mu      sync.RWMutex
	clients ClientLookup
	intakes map[string]*Intake
	order   []string
	// Referenced, when set, reports whether documents still point at an
	// intake. Delete fails with ErrHasDependents when it returns true.
	Referenced func(intakeID string) bool
}

// NewMockIntakeService creates a new mock service. A nil clients lookup
// accepts every client ID.
func NewMockIntakeService(clients ClientLookup) *MockIntakeService {
	return &MockIntakeService{
		clients: clients,
		intakes: make(map[string]*Intake),
	}
}

func (m *MockIntakeService) Create(ctx context.Context, params CreateParams) (*Intake, error) {
	params, err := normalizeCreate(params)
	if err != nil {
		return nil, err
	}
	if m.clients != nil {
		if _, err := m.clients.Get(ctx, params.ClientID); err != nil {
			return nil, ErrClientNotFound
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now().UTC()
	in := &Intake{
		ID:        uuid.NewString(),
		ClientID:  params.ClientID,
		TaxYear:   params.TaxYear,
		Status:    params.Status,
		Notes:     params.Notes,
		CreatedAt: now,
		UpdatedAt: now,
	}
	m.intakes[in.ID] = in
	m.order = append(m.order, in.ID)
	out := *in
	return &out, nil
}

func (m *MockIntakeService) Get(ctx context.Context, id string) (*Intake, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	in, exists := m.intakes[id]
	if !exists {
		return nil, ErrNotFound
	}
	out := *in
	return &out, nil
}

func (m *MockIntakeService) List(ctx context.Context, filter ListFilter) ([]Intake, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]Intake, 0, len(m.order))
	for _, id := range m.order {
		if in := m.intakes[id]; filter.matches(in) {
			out = append(out, *in)
		}
	}
	return out, nil
}

func (m *MockIntakeService) Update(ctx context.Context, id string, params UpdateParams) (*Intake, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	in, exists := m.intakes[id]
	if !exists {
		return nil, ErrNotFound
	}
	updated := *in
	if err := apply(&updated, params); err != nil {
		return nil, err
	}
	updated.UpdatedAt = time.Now().UTC()
	*in = updated
	return &updated, nil
}

func (m *MockIntakeService) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.intakes[id]; !exists {
		return ErrNotFound
	}
	if m.Referenced != nil && m.Referenced(id) {
		return ErrHasDependents
	}
	delete(m.intakes, id)
	for i, oid := range m.order {
		if oid == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return nil
}

// HasClient reports whether any intake belongs to clientID. Handy as a
// client mock's Referenced hook.
func (m *MockIntakeService) HasClient(clientID string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, in := range m.intakes {
		if in.ClientID == clientID {
			return true
		}
	}
	return false
}

// Compile-time interface check
var _ Service = (*MockIntakeService)(nil)
