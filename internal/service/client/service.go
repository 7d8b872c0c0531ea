package client

import (
	"context"
	"errors"
	"strings"
	"time"
)

// Service errors
var (
	ErrNotFound      = errors.New("client not found")
	ErrAlreadyExists = errors.New("client with this email already exists")
	ErrHasDependents = errors.New("client is still referenced by intakes or documents")
)

// Client is an accounting customer.
type Client struct {
	ID        string
	Name      string
	Email     string
	Phone     string
	Company   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CreateParams for creating a client.
type CreateParams struct {
	Name    string
	Email   string
	Phone   string
	Company string
}

// UpdateParams for updating a client. Nil fields are left unchanged.
type UpdateParams struct {
	Name    *string
	Email   *string
	Phone   *string
	Company *string
}

// Empty reports whether no field is set.
func (p UpdateParams) Empty() bool {
	return p.Name == nil && p.Email == nil && p.Phone == nil && p.Company == nil
}

// Service defines client operations.
//
// Implementations must normalize input data:
//   - Email: lowercase and trim whitespace
//   - Name, Phone, Company: trim whitespace
//
// List returns clients ordered by creation time, oldest first.
type Service interface {
	Create(ctx context.Context, params CreateParams) (*Client, error)
	Get(ctx context.Context, id string) (*Client, error)
	List(ctx context.Context) ([]Client, error)
	Update(ctx context.Context, id string, params UpdateParams) (*Client, error)
	Delete(ctx context.Context, id string) error
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func apply(c *Client, params UpdateParams) {
	if params.Name != nil {
		c.Name = strings.TrimSpace(*params.Name)
	}
	if params.Email != nil {
		c.Email = normalizeEmail(*params.Email)
	}
	if params.Phone != nil {
		c.Phone = strings.TrimSpace(*params.Phone)
	}
	if params.Company != nil {
		c.Company = strings.TrimSpace(*params.Company)
	}
}

// categorizeError converts errors to audit-safe categories.
func categorizeError(err error) string {
	switch {
	case errors.Is(err, ErrAlreadyExists):
		return "already_exists"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrHasDependents):
		return "has_dependents"
	default:
		return "internal_error"
	}
}
