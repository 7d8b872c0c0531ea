package document

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Service errors
var (
	ErrNotFound        = errors.New("document not found")
	ErrClientNotFound  = errors.New("client not found")
	ErrIntakeNotFound  = errors.New("intake not found for this client")
	ErrEmpty           = errors.New("document is empty")
	ErrTooLarge        = errors.New("document exceeds the maximum size")
	ErrUnsupportedType = errors.New("unsupported document type")
)

// DefaultMaxBytes caps uploads when no limit is configured.
const DefaultMaxBytes int64 = 10 << 20

// Document is the metadata of one uploaded file. The bytes live in the
// object store under BlobKey(ClientID, ID).
type Document struct {
	ID          string
	ClientID    string
	IntakeID    string
	Filename    string
	ContentType string
	Size        int64
	SHA256      string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// UploadParams for storing a document. IntakeID and Filename are optional.
type UploadParams struct {
	ClientID string
	IntakeID string
	Filename string
	Data     []byte
}

// ListFilter narrows List. Zero fields match everything.
type ListFilter struct {
	ClientID string
	IntakeID string
}

func (f ListFilter) matches(d *Document) bool {
	if f.ClientID != "" && d.ClientID != f.ClientID {
		return false
	}
	if f.IntakeID != "" && d.IntakeID != f.IntakeID {
		return false
	}
	return true
}

// Service defines document operations. List returns documents ordered by
// creation time, oldest first.
type Service interface {
	Upload(ctx context.Context, params UploadParams) (*Document, error)
	Get(ctx context.Context, id string) (*Document, error)
	List(ctx context.Context, filter ListFilter) ([]Document, error)
	// Content returns the metadata together with the stored bytes.
	Content(ctx context.Context, id string) (*Document, []byte, error)
	Delete(ctx context.Context, id string) error
}

// Store persists document metadata.
type Store interface {
	Insert(ctx context.Context, doc *Document) error
	Get(ctx context.Context, id string) (*Document, error)
	List(ctx context.Context, filter ListFilter) ([]Document, error)
	// Delete removes the metadata and returns what was removed.
	Delete(ctx context.Context, id string) (*Document, error)
}

// BlobKey is the object store key of a document's bytes.
func BlobKey(clientID, id string) string {
	return fmt.Sprintf("documents/%s/%s", clientID, id)
}

// categorizeError converts errors to audit-safe categories.
func categorizeError(err error) string {
	switch {
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrClientNotFound):
		return "client_not_found"
	case errors.Is(err, ErrIntakeNotFound):
		return "intake_not_found"
	case errors.Is(err, ErrEmpty):
		return "empty"
	case errors.Is(err, ErrTooLarge):
		return "too_large"
	case errors.Is(err, ErrUnsupportedType):
		return "unsupported_type"
	default:
		return "internal_error"
	}
}
