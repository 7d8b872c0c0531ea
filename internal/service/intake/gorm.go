package intake

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	applog "github.com/teefour-ai/teefour-api/internal/platform/logging"
	"github.com/teefour-ai/teefour-api/internal/service/client"
)

const resourceType = "intake"

// Record is the intakes table row. Clients cannot be deleted while an
// intake references them.
type Record struct {
	ID        string        `gorm:"type:uuid;primaryKey"`
	ClientID  string        `gorm:"type:uuid;not null;index"`
	Client    client.Record `gorm:"foreignKey:ClientID;constraint:OnDelete:RESTRICT"`
	TaxYear   int           `gorm:"not null"`
	Status    string        `gorm:"size:16;not null;index"`
	Notes     string        `gorm:"size:2000;not null;default:''"`
	CreatedAt time.Time     `gorm:"not null;index"`
	UpdatedAt time.Time     `gorm:"not null"`
}

func (Record) TableName() string { return "intakes" }

func (r Record) toIntake() Intake {
	return Intake{
		ID:        r.ID,
		ClientID:  r.ClientID,
		TaxYear:   r.TaxYear,
		Status:    Status(r.Status),
		Notes:     r.Notes,
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

func (s *GormStore) Create(ctx context.Context, params CreateParams) (*Intake, error) {
	in, err := s.create(ctx, params)
	if err != nil {
		applog.LogAuditEvent(ctx, "create", resourceType, "", applog.AuditFailure,
			map[string]any{"error": categorizeError(err), "clientId": params.ClientID})
		return nil, err
	}
	applog.LogAuditEvent(ctx, "create", resourceType, in.ID, applog.AuditSuccess,
		map[string]any{"clientId": in.ClientID})
	return in, nil
}

func (s *GormStore) create(ctx context.Context, params CreateParams) (*Intake, error) {
	params, err := normalizeCreate(params)
	if err != nil {
		return nil, err
	}
	if !validID(params.ClientID) {
		return nil, ErrClientNotFound
	}

	now := time.Now().UTC()
	rec := Record{
		ID:        uuid.NewString(),
		ClientID:  params.ClientID,
		TaxYear:   params.TaxYear,
		Status:    string(params.Status),
		Notes:     params.Notes,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.db.WithContext(ctx).Omit(clause.Associations).Create(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			return nil, ErrClientNotFound
		}
		return nil, err
	}
	in := rec.toIntake()
	return &in, nil
}

func (s *GormStore) Get(ctx context.Context, id string) (*Intake, error) {
	if !validID(id) {
		return nil, ErrNotFound
	}
	var rec Record
	if err := s.db.WithContext(ctx).First(&rec, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	in := rec.toIntake()
	return &in, nil
}

func (s *GormStore) List(ctx context.Context, filter ListFilter) ([]Intake, error) {
	q := s.db.WithContext(ctx).Order("created_at, id")
	if filter.ClientID != "" {
		if !validID(filter.ClientID) {
			return []Intake{}, nil
		}
		q = q.Where("client_id = ?", filter.ClientID)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", string(filter.Status))
	}

	var recs []Record
	if err := q.Find(&recs).Error; err != nil {
		return nil, err
	}
	out := make([]Intake, len(recs))
	for i, rec := range recs {
		out[i] = rec.toIntake()
	}
	return out, nil
}

// Update applies params inside a transaction holding a row lock.
func (s *GormStore) Update(ctx context.Context, id string, params UpdateParams) (*Intake, error) {
	in, err := s.update(ctx, id, params)
	if err != nil {
		applog.LogAuditEvent(ctx, "update", resourceType, id, applog.AuditFailure,
			map[string]any{"error": categorizeError(err)})
		return nil, err
	}
	applog.LogAuditEvent(ctx, "update", resourceType, id, applog.AuditSuccess, nil)
	return in, nil
}

func (s *GormStore) update(ctx context.Context, id string, params UpdateParams) (*Intake, error) {
	if !validID(id) {
		return nil, ErrNotFound
	}

	var result Intake
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var rec Record
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&rec, "id = ?", id).Error; err != nil {
			return err
		}

		in := rec.toIntake()
		if err := apply(&in, params); err != nil {
			return err
		}
		in.UpdatedAt = time.Now().UTC()

		err := tx.Model(&rec).Omit(clause.Associations).Updates(map[string]any{
			"status":     string(in.Status),
			"notes":      in.Notes,
			"updated_at": in.UpdatedAt,
		}).Error
		if err != nil {
			return err
		}
		result = in
		return nil
	})
	if err != nil {
		return nil, translate(err)
	}
	return &result, nil
}

// Delete removes an intake. Documents restrict the delete.
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

func validID(id string) bool {
	return uuid.Validate(id) == nil
}

func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return ErrHasDependents
	default:
		return err
	}
}

// Compile-time interface check
var _ Service = (*GormStore)(nil)
