package client

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	applog "github.com/teefour-ai/teefour-api/internal/platform/logging"
)

const resourceType = "client"

// Record is the clients table row.
type Record struct {
	ID        string    `gorm:"type:uuid;primaryKey"`
	Name      string    `gorm:"size:200;not null"`
	Email     string    `gorm:"size:320;not null;uniqueIndex"`
	Phone     string    `gorm:"size:32;not null;default:''"`
	Company   string    `gorm:"size:200;not null;default:''"`
	CreatedAt time.Time `gorm:"not null;index"`
	UpdatedAt time.Time `gorm:"not null"`
}

func (Record) TableName() string { return "clients" }

func (r Record) toClient() Client {
	return Client{
		ID:        r.ID,
		Name:      r.Name,
		Email:     r.Email,
		Phone:     r.Phone,
		Company:   r.Company,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

// GormStore implements Service on a relational database.
type GormStore struct {
	db *gorm.DB
}

// NewGormStore creates a new gorm-backed store.
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) Create(ctx context.Context, params CreateParams) (*Client, error) {
	now := time.Now().UTC()
	rec := Record{
		ID:        uuid.NewString(),
		Name:      strings.TrimSpace(params.Name),
		Email:     normalizeEmail(params.Email),
		Phone:     strings.TrimSpace(params.Phone),
		Company:   strings.TrimSpace(params.Company),
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.db.WithContext(ctx).Create(&rec).Error; err != nil {
		err = translate(err)
		applog.LogAuditEvent(ctx, "create", resourceType, rec.ID, applog.AuditFailure,
			map[string]any{"error": categorizeError(err)})
		return nil, err
	}

	applog.LogAuditEvent(ctx, "create", resourceType, rec.ID, applog.AuditSuccess, nil)
	c := rec.toClient()
	return &c, nil
}

func (s *GormStore) Get(ctx context.Context, id string) (*Client, error) {
	if !validID(id) {
		return nil, ErrNotFound
	}
	var rec Record
	if err := s.db.WithContext(ctx).First(&rec, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	c := rec.toClient()
	return &c, nil
}

func (s *GormStore) List(ctx context.Context) ([]Client, error) {
	var recs []Record
	if err := s.db.WithContext(ctx).Order("created_at, id").Find(&recs).Error; err != nil {
		return nil, err
	}
	out := make([]Client, len(recs))
	for i, rec := range recs {
		out[i] = rec.toClient()
	}
	return out, nil
}

// Update applies params inside a transaction holding a row lock.
func (s *GormStore) Update(ctx context.Context, id string, params UpdateParams) (*Client, error) {
	c, err := s.update(ctx, id, params)
	if err != nil {
		applog.LogAuditEvent(ctx, "update", resourceType, id, applog.AuditFailure,
			map[string]any{"error": categorizeError(err)})
		return nil, err
	}

	applog.LogAuditEvent(ctx, "update", resourceType, id, applog.AuditSuccess, nil)
	return c, nil
}

func (s *GormStore) update(ctx context.Context, id string, params UpdateParams) (*Client, error) {
	if !validID(id) {
		return nil, ErrNotFound
	}

	var result Client
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var rec Record
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&rec, "id = ?", id).Error; err != nil {
			return err
		}

		c := rec.toClient()
		apply(&c, params)
		c.UpdatedAt = time.Now().UTC()

		err := tx.Model(&rec).Updates(map[string]any{
			"name":       c.Name,
			"email":      c.Email,
			"phone":      c.Phone,
			"company":    c.Company,
			"updated_at": c.UpdatedAt,
		}).Error
		if err != nil {
			return err
		}
		result = c
		return nil
	})
	if err != nil {
		return nil, translate(err)
	}
	return &result, nil
}

// Delete removes a client. Intakes and documents restrict the delete.
func (s *GormStore) Delete(ctx context.Context, id string) error {
	err := ErrNotFound
	if validID(id) {
		res := s.db.WithContext(ctx).Delete(&Record{}, "id = ?", id)
		err = translate(res.Error)
		if err == nil && res.RowsAffected == 0 {
			err = ErrNotFound
		}
	}
	if err != nil {
		applog.LogAuditEvent(ctx, "delete", resourceType, id, applog.AuditFailure,
			map[string]any{"error": categorizeError(err)})
		return err
	}

	applog.LogAuditEvent(ctx, "delete", resourceType, id, applog.AuditSuccess, nil)
	return nil
}

// validID keeps malformed IDs away from the uuid column.
func validID(id string) bool {
	return uuid.Validate(id) == nil
}

func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrAlreadyExists
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return ErrHasDependents
	default:
		return err
	}
}

// Compile-time interface check
var _ Service = (*GormStore)(nil)
