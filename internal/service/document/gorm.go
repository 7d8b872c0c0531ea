package document

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/teefour-ai/teefour-api/internal/service/client"
	"github.com/teefour-ai/teefour-api/internal/service/intake"
)

// Record is the documents table row. Clients and intakes cannot be deleted
// while a document references them.
type Record struct {
	ID          string         `gorm:"type:uuid;primaryKey"`
	ClientID    string         `gorm:"type:uuid;not null;index"`
	Client      client.Record  `gorm:"foreignKey:ClientID;constraint:OnDelete:RESTRICT"`
	IntakeID    *string        `gorm:"type:uuid;index"`
	Intake      *intake.Record `gorm:"foreignKey:IntakeID;constraint:OnDelete:RESTRICT"`
	Filename    string         `gorm:"size:255;not null"`
	ContentType string         `gorm:"size:255;not null"`
	Size        int64          `gorm:"not null"`
	SHA256      string         `gorm:"column:sha256;size:64;not null"`
	CreatedAt   time.Time      `gorm:"not null;index"`
	UpdatedAt   time.Time      `gorm:"not null"`
}

func (Record) TableName() string { return "documents" }

func newRecord(d *Document) Record {
	rec := Record{
		ID:          d.ID,
		ClientID:    d.ClientID,
		Filename:    d.Filename,
		ContentType: d.ContentType,
		Size:        d.Size,
		SHA256:      d.SHA256,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
	if d.IntakeID != "" {
		rec.IntakeID = &d.IntakeID
	}
	return rec
}

func (r Record) toDocument() Document {
	d := Document{
		ID:          r.ID,
		ClientID:    r.ClientID,
		Filename:    r.Filename,
		ContentType: r.ContentType,
		Size:        r.Size,
		SHA256:      r.SHA256,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
	if r.IntakeID != nil {
		d.IntakeID = *r.IntakeID
	}
	return d
}

// GormStore implements Store on a relational database.
type GormStore struct {
	db *gorm.DB
}

// NewGormStore creates a new gorm-backed store.
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) Insert(ctx context.Context, doc *Document) error {
	rec := newRecord(doc)
	err := s.db.WithContext(ctx).Omit(clause.Associations).Create(&rec).Error
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		if doc.IntakeID != "" {
			return ErrIntakeNotFound
		}
		return ErrClientNotFound
	}
	return err
}

func (s *GormStore) Get(ctx context.Context, id string) (*Document, error) {
	if !validID(id) {
		return nil, ErrNotFound
	}
	var rec Record
	if err := s.db.WithContext(ctx).First(&rec, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	d := rec.toDocument()
	return &d, nil
}

func (s *GormStore) List(ctx context.Context, filter ListFilter) ([]Document, error) {
	q := s.db.WithContext(ctx).Order("created_at, id")
	if filter.ClientID != "" {
		if !validID(filter.ClientID) {
			return []Document{}, nil
		}
		q = q.Where("client_id = ?", filter.ClientID)
	}
	if filter.IntakeID != "" {
		if !validID(filter.IntakeID) {
			return []Document{}, nil
		}
		q = q.Where("intake_id = ?", filter.IntakeID)
	}

	var recs []Record
	if err := q.Find(&recs).Error; err != nil {
		return nil, err
	}
	out := make([]Document, len(recs))
	for i, rec := range recs {
		out[i] = rec.toDocument()
	}
	return out, nil
}

func (s *GormStore) Delete(ctx context.Context, id string) (*Document, error) {
	if !validID(id) {
		return nil, ErrNotFound
	}

	var rec Record
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&rec, "id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&Record{}, "id = ?", id).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	d := rec.toDocument()
	return &d, nil
}

func validID(id string) bool {
	return uuid.Validate(id) == nil
}

// Compile-time interface check
var _ Store = (*GormStore)(nil)
