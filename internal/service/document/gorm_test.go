package document

import (
	"context"
	"errors"
	"testing"

	"github.com/teefour-ai/teefour-api/internal/platform/database"
	"github.com/teefour-ai/teefour-api/internal/platform/storage"
	"github.com/teefour-ai/teefour-api/internal/service/client"
	"github.com/teefour-ai/teefour-api/internal/service/intake"
	"github.com/teefour-ai/teefour-api/internal/testutil"
)

func TestGormDocumentLifecycle(t *testing.T) {
	db := testutil.OpenDatabase(t)
	ctx := context.Background()

	initializer := database.NewInitializer(db, &client.Record{}, &intake.Record{}, &Record{})
	if err := initializer.EnsureSchema(ctx); err != nil {
		t.Fatalf("failed to prepare schema: %v", err)
	}
	tables := []string{Record{}.TableName(), intake.Record{}.TableName(), client.Record{}.TableName()}
	testutil.TruncateTables(t, db, tables...)
	t.Cleanup(func() { testutil.TruncateTables(t, db, tables...) })

	clients := client.NewGormStore(db)
	intakes := intake.NewGormStore(db)
	bucket := storage.NewMemoryBucket()
	m := NewManager(NewGormStore(db), bucket, clients, intakes, Options{})

	c, err := clients.Create(ctx, client.CreateParams{Name: "Ada", Email: "ada@example.com"})
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}
	in, err := intakes.Create(ctx, intake.CreateParams{ClientID: c.ID, TaxYear: 2025})
	if err != nil {
		t.Fatalf("failed to create intake: %v", err)
	}

	doc, err := m.Upload(ctx, UploadParams{ClientID: c.ID, IntakeID: in.ID, Filename: "w2.pdf", Data: samplePDF})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := intakes.Delete(ctx, in.ID); !errors.Is(err, intake.ErrHasDependents) {
		t.Fatalf("expected intake delete to be restricted, got %v", err)
	}

	got, err := m.Get(ctx, doc.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.IntakeID != in.ID || got.SHA256 != doc.SHA256 {
		t.Errorf("expected %+v, got %+v", doc, got)
	}

	list, err := m.List(ctx, ListFilter{ClientID: c.ID})
	if err != nil || len(list) != 1 {
		t.Fatalf("expected one document, got %d (%v)", len(list), err)
	}

	if err := m.Delete(ctx, doc.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if bucket.Len() != 0 {
		t.Fatal("expected blob to be removed")
	}
	if err := intakes.Delete(ctx, in.ID); err != nil {
		t.Fatalf("expected intake delete to succeed, got %v", err)
	}
}
