package database

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	applog "github.com/teefour-ai/teefour-api/internal/platform/logging"
)

// Initializer creates the tables for a fixed set of gorm models.
type Initializer struct {
	db     *gorm.DB
	models []any
}

// NewInitializer registers models in dependency order: referenced tables first.
func NewInitializer(db *gorm.DB, models ...any) *Initializer {
	return &Initializer{db: db, models: models}
}

// EnsureSchema creates missing tables, columns and indexes. Existing tables
// are left as they are, so a second run is a no-op.
func (i *Initializer) EnsureSchema(ctx context.Context) error {
	if len(i.models) == 0 {
		return nil
	}
	if err := i.db.WithContext(ctx).AutoMigrate(i.models...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	applog.LogInfo(ctx, "database schema ready", zap.Int("models", len(i.models)))
	return nil
}
