package document

import (
	"context"
	"errors"
	"testing"

	"github.com/teefour-ai/teefour-api/internal/platform/storage"
	"github.com/teefour-ai/teefour-api/internal/service/client"
	"github.com/teefour-ai/teefour-api/internal/service/intake"
)

type fixture struct {
	manager *Manager
	store   *MemoryStore
	bucket  *storage.MemoryBucket
	clients *client.MockClientService
	intakes *intake.MockIntakeService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	clients := client.NewMockClientService()
	intakes := intake.NewMockIntakeService(clients)
	store := NewMemoryStore()
	bucket := storage.NewMemoryBucket()
	return &fixture{
		manager: NewManager(store, bucket, clients, intakes, Options{MaxBytes: 1024}),
		store:   store,
		bucket:  bucket,
		clients: clients,
		intakes: intakes,
	}
}

func (f *fixture) client(t *testing.T, email string) *client.Client {
	t.Helper()
	c, err := f.clients.Create(context.Background(), client.CreateParams{Name: "Test", Email: email})
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}
	return c
}

func TestUploadStoresBlobAndMetadata(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	c := f.client(t, "a@example.com")

	doc, err := f.manager.Upload(ctx, UploadParams{ClientID: c.ID, Filename: "2024/receipt.pdf", Data: samplePDF})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.ContentType != "application/pdf" {
		t.Errorf("expected application/pdf, got %s", doc.ContentType)
	}
	if doc.Filename != "receipt.pdf" {
		t.Errorf("expected cleaned filename, got %q", doc.Filename)
	}
	if doc.Size != int64(len(samplePDF)) {
		t.Errorf("expected size %d, got %d", len(samplePDF), doc.Size)
	}
	if len(doc.SHA256) != 64 {
		t.Errorf("expected hex sha256, got %q", doc.SHA256)
	}

	stored, err := f.bucket.Get(ctx, BlobKey(c.ID, doc.ID))
	if err != nil {
		t.Fatalf("expected blob to be stored: %v", err)
	}
	if string(stored) != string(samplePDF) {
		t.Error("stored blob differs from upload")
	}

	meta, data, err := f.manager.Content(ctx, doc.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if meta.ID != doc.ID || string(data) != string(samplePDF) {
		t.Error("content does not match upload")
	}
}

func TestUploadDefaultFilename(t *testing.T) {
	f := newFixture(t)
	c := f.client(t, "a@example.com")

	doc, err := f.manager.Upload(context.Background(), UploadParams{ClientID: c.ID, Data: samplePNG})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.Filename != doc.ID+".png" {
		t.Errorf("expected generated filename, got %q", doc.Filename)
	}
}

func TestUploadWithIntake(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	c := f.client(t, "a@example.com")
	other := f.client(t, "b@example.com")

	in, err := f.intakes.Create(ctx, intake.CreateParams{ClientID: c.ID, TaxYear: 2025})
	if err != nil {
		t.Fatalf("failed to create intake: %v", err)
	}

	doc, err := f.manager.Upload(ctx, UploadParams{ClientID: c.ID, IntakeID: in.ID, Data: sampleText})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.IntakeID != in.ID {
		t.Errorf("expected intake %s, got %s", in.ID, doc.IntakeID)
	}

	_, err = f.manager.Upload(ctx, UploadParams{ClientID: other.ID, IntakeID: in.ID, Data: sampleText})
	if !errors.Is(err, ErrIntakeNotFound) {
		t.Fatalf("expected ErrIntakeNotFound for foreign intake, got %v", err)
	}

	list, err := f.manager.List(ctx, ListFilter{IntakeID: in.ID})
	if err != nil || len(list) != 1 {
		t.Fatalf("expected one document for intake, got %d (%v)", len(list), err)
	}
}

func TestUploadRejections(t *testing.T) {
	f := newFixture(t)
	c := f.client(t, "a@example.com")

	tests := []struct {
		name   string
		params UploadParams
		want   error
	}{
		{name: "empty", params: UploadParams{ClientID: c.ID}, want: ErrEmpty},
		{name: "too large", params: UploadParams{ClientID: c.ID, Data: make([]byte, 1025)}, want: ErrTooLarge},
		{name: "unknown client", params: UploadParams{ClientID: "missing", Data: samplePDF}, want: ErrClientNotFound},
		{name: "unknown intake", params: UploadParams{ClientID: c.ID, IntakeID: "missing", Data: samplePDF}, want: ErrIntakeNotFound},
		{name: "unsupported type", params: UploadParams{ClientID: c.ID, Data: sampleGzip}, want: ErrUnsupportedType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.manager.Upload(context.Background(), tt.params)
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
		})
	}
	if f.bucket.Len() != 0 {
		t.Fatalf("rejected uploads must not store blobs, found %d", f.bucket.Len())
	}
}

func TestUploadRemovesBlobWhenMetadataFails(t *testing.T) {
	f := newFixture(t)
	c := f.client(t, "a@example.com")
	f.store.FailInsert = errors.New("connection reset")

	_, err := f.manager.Upload(context.Background(), UploadParams{ClientID: c.ID, Data: samplePDF})
	if err == nil {
		t.Fatal("expected error")
	}
	if f.bucket.Len() != 0 {
		t.Fatalf("expected orphaned blob to be removed, found %d", f.bucket.Len())
	}
}

func TestUploadWithDisabledStorage(t *testing.T) {
	f := newFixture(t)
	c := f.client(t, "a@example.com")
	disabled, err := storage.NewS3Bucket(context.Background(), storage.S3Config{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	m := NewManager(f.store, disabled, f.clients, f.intakes, Options{})

	_, err = m.Upload(context.Background(), UploadParams{ClientID: c.ID, Data: samplePDF})
	if !errors.Is(err, storage.ErrDisabled) {
		t.Fatalf("expected storage.ErrDisabled, got %v", err)
	}
	if m.MaxBytes() != DefaultMaxBytes {
		t.Errorf("expected default limit, got %d", m.MaxBytes())
	}
	if list, _ := f.store.List(context.Background(), ListFilter{}); len(list) != 0 {
		t.Fatal("expected no metadata when the blob upload fails")
	}
}

func TestDeleteRemovesMetadataAndBlob(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	c := f.client(t, "a@example.com")

	doc, err := f.manager.Upload(ctx, UploadParams{ClientID: c.ID, Data: samplePDF})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !f.store.References(c.ID, "") {
		t.Fatal("expected store to reference client")
	}

	if err := f.manager.Delete(ctx, doc.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := f.manager.Get(ctx, doc.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if f.bucket.Len() != 0 {
		t.Fatal("expected blob to be removed")
	}
	if err := f.manager.Delete(ctx, doc.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second delete, got %v", err)
	}
}

func TestContentMissingBlob(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	c := f.client(t, "a@example.com")

	doc, _ := f.manager.Upload(ctx, UploadParams{ClientID: c.ID, Data: samplePDF})
	_ = f.bucket.Delete(ctx, BlobKey(c.ID, doc.ID))

	if _, _, err := f.manager.Content(ctx, doc.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestBlobKey(t *testing.T) {
	if got := BlobKey("c1", "d1"); got != "documents/c1/d1" {
		t.Fatalf("unexpected key %s", got)
	}
}
