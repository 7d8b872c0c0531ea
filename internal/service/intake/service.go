package intake

import (
	"context"
	"errors"
	"strings"
	"time"
)

// Service errors
var (
	ErrNotFound       = errors.New("intake not found")
	ErrClientNotFound = errors.New("client not found")
	ErrHasDependents  = errors.New("intake is still referenced by documents")
	ErrInvalidStatus  = errors.New("invalid intake status")
)

// Status is the lifecycle state of an intake.
type Status string

const (
	StatusOpen       Status = "open"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
)

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	switch s {
	case StatusOpen, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}

// Intake collects the material for one client's tax year.
type Intake struct {
	ID        string
	ClientID  string
	TaxYear   int
	Status    Status
	Notes     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CreateParams for creating an intake. An empty Status means StatusOpen.
type CreateParams struct {
	ClientID string
	TaxYear  int
	Status   Status
	Notes    string
}

// UpdateParams for updating an intake. Nil fields are left unchanged.
type UpdateParams struct {
	Status *Status
	Notes  *string
}

// Empty reports whether no field is set.
func (p UpdateParams) Empty() bool {
	return p.Status == nil && p.Notes == nil
}

// ListFilter narrows List. Zero fields match everything.
type ListFilter struct {
	ClientID string
	Status   Status
}

func (f ListFilter) matches(in *Intake) bool {
	if f.ClientID != "" && in.ClientID != f.ClientID {
		return false
	}
	if f.Status != "" && in.Status != f.Status {
		return false
	}
	return true
}

// Service defines intake operations. List returns intakes ordered by
// creation time, oldest first.
type Service interface {
	Create(ctx context.Context, params CreateParams) (*Intake, error)
	Get(ctx context.Context, id string) (*Intake, error)
	List(ctx context.Context, filter ListFilter) ([]Intake, error)
	Update(ctx context.Context, id string, params UpdateParams) (*Intake, error)
	Delete(ctx context.Context, id string) error
}

func normalizeCreate(params CreateParams) (CreateParams, error) {
	if params.Status == "" {
		params.Status = StatusOpen
	}
	if !params.Status.Valid() {
		return params, ErrInvalidStatus
	}
	params.Notes = strings.TrimSpace(params.Notes)
	return params, nil
}

func apply(in *Intake, params UpdateParams) error {
	if params.Status != nil {
		if !params.Status.Valid() {
			return ErrInvalidStatus
		}
		in.Status = *params.Status
	}
	if params.Notes != nil {
		in.Notes = strings.TrimSpace(*params.Notes)
	}
	return nil
}

// categorizeError converts errors to audit-safe categories.
func categorizeError(err error) string {
	switch {
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrClientNotFound):
		return "client_not_found"
	case errors.Is(err, ErrHasDependents):
		return "has_dependents"
	case errors.Is(err, ErrInvalidStatus):
		return "invalid_status"
	default:
		return "internal_error"
	}
}
