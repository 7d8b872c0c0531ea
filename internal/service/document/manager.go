package document

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	applog "github.com/teefour-ai/teefour-api/internal/platform/logging"
	"github.com/teefour-ai/teefour-api/internal/platform/metrics"
	"github.com/teefour-ai/teefour-api/internal/platform/storage"
	"github.com/teefour-ai/teefour-api/internal/service/client"
	"github.com/teefour-ai/teefour-api/internal/service/intake"
)

const resourceType = "document"

// ClientLookup resolves client IDs.
type ClientLookup interface {
	Get(ctx context.Context, id string) (*client.Client, error)
}

// IntakeLookup resolves intake IDs.
type IntakeLookup interface {
	Get(ctx context.Context, id string) (*intake.Intake, error)
}

// Options tune a Manager.
type Options struct {
	// MaxBytes caps the upload size; zero means DefaultMaxBytes.
	MaxBytes int64
	// Metrics is optional.
	Metrics *metrics.Metrics
}

// Manager implements Service on a metadata Store and an object store bucket.
type Manager struct {
	store    Store
	bucket   storage.Bucket
	clients  ClientLookup
	intakes  IntakeLookup
	maxBytes int64
	metrics  *metrics.Metrics
}

// NewManager wires a document service.
func NewManager(store Store, bucket storage.Bucket, clients ClientLookup, intakes IntakeLookup, opts Options) *Manager {
	if opts.MaxBytes <= 0 {
		opts.MaxBytes = DefaultMaxBytes
	}
	return &Manager{
		store:    store,
		bucket:   bucket,
		clients:  clients,
		intakes:  intakes,
		maxBytes: opts.MaxBytes,
		metrics:  opts.Metrics,
	}
}

// MaxBytes returns the configured upload limit.
func (m *Manager) MaxBytes() int64 {
	return m.maxBytes
}

// Upload validates and sniffs the bytes, writes them to the bucket and only
// then records the metadata. If the metadata write fails the blob is removed.
func (m *Manager) Upload(ctx context.Context, params UploadParams) (*Document, error) {
	doc, err := m.upload(ctx, params)
	if err != nil {
		contentType := "unknown"
		if len(params.Data) > 0 {
			contentType, _, _ = detectType(params.Data)
		}
		m.metrics.RecordUpload(contentType, metrics.UploadFailure, int64(len(params.Data)))
		applog.LogAuditEvent(ctx, "create", resourceType, "", applog.AuditFailure,
			map[string]any{"error": categorizeError(err), "clientId": params.ClientID})
		return nil, err
	}

	m.metrics.RecordUpload(doc.ContentType, metrics.UploadSuccess, doc.Size)
	applog.LogAuditEvent(ctx, "create", resourceType, doc.ID, applog.AuditSuccess,
		map[string]any{"clientId": doc.ClientID, "size": doc.Size, "contentType": doc.ContentType})
	return doc, nil
}

func (m *Manager) upload(ctx context.Context, params UploadParams) (*Document, error) {
	size := int64(len(params.Data))
	if size == 0 {
		return nil, ErrEmpty
	}
	if size > m.maxBytes {
		return nil, ErrTooLarge
	}

	if _, err := m.clients.Get(ctx, params.ClientID); err != nil {
		if errors.Is(err, client.ErrNotFound) {
			return nil, ErrClientNotFound
		}
		return nil, err
	}
	if params.IntakeID != "" {
		in, err := m.intakes.Get(ctx, params.IntakeID)
		if err != nil {
			if errors.Is(err, intake.ErrNotFound) {
				return nil, ErrIntakeNotFound
			}
			return nil, err
		}
		if in.ClientID != params.ClientID {
			return nil, ErrIntakeNotFound
		}
	}

	contentType, ext, ok := detectType(params.Data)
	if !ok {
		return nil, ErrUnsupportedType
	}

	sum := sha256.Sum256(params.Data)
	now := time.Now().UTC()
	doc := &Document{
		ID:          uuid.NewString(),
		ClientID:    params.ClientID,
		IntakeID:    params.IntakeID,
		ContentType: contentType,
		Size:        size,
		SHA256:      hex.EncodeToString(sum[:]),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	doc.Filename = cleanFilename(params.Filename, doc.ID, ext)

	key := BlobKey(doc.ClientID, doc.ID)
	if err := m.bucket.Put(ctx, key, params.Data, contentType); err != nil {
		return nil, err
	}

	if err := m.store.Insert(ctx, doc); err != nil {
		if derr := m.bucket.Delete(ctx, key); derr != nil {
			applog.LogError(ctx, "failed to remove orphaned document blob", derr, zap.String("key", key))
		}
		return nil, err
	}
	return doc, nil
}

func (m *Manager) Get(ctx context.Context, id string) (*Document, error) {
	return m.store.Get(ctx, id)
}

func (m *Manager) List(ctx context.Context, filter ListFilter) ([]Document, error) {
	return m.store.List(ctx, filter)
}

func (m *Manager) Content(ctx context.Context, id string) (*Document, []byte, error) {
	doc, err := m.store.Get(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	data, err := m.bucket.Get(ctx, BlobKey(doc.ClientID, doc.ID))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			applog.LogWarn(ctx, "document blob missing", zap.String("documentId", doc.ID))
			return nil, nil, ErrNotFound
		}
		return nil, nil, err
	}
	return doc, data, nil
}

// Delete removes the metadata first, then the blob. A failed blob removal
// leaves an orphan that is logged but not reported to the caller.
func (m *Manager) Delete(ctx context.Context, id string) error {
	doc, err := m.store.Delete(ctx, id)
	if err != nil {
		applog.LogAuditEvent(ctx, "delete", resourceType, id, applog.AuditFailure,
			map[string]any{"error": categorizeError(err)})
		return err
	}

	key := BlobKey(doc.ClientID, doc.ID)
	if err := m.bucket.Delete(ctx, key); err != nil {
		applog.LogError(ctx, "failed to remove document blob", err, zap.String("key", key))
	}

	applog.LogAuditEvent(ctx, "delete", resourceType, id, applog.AuditSuccess, nil)
	return nil
}

// Compile-time interface check
var _ Service = (*Manager)(nil)
