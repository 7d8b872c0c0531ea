// Package database opens the Postgres connection pool and prepares the schema.
package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	_ "github.com/lib/pq"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	applog "github.com/teefour-ai/teefour-api/internal/platform/logging"
)

// Config controls gorm/PostgreSQL connectivity.
type Config struct {
	DSN             string
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
	// ConnectAttempts bounds the initial ping loop. Values below 1 mean one try.
	ConnectAttempts int
	ConnectBackoff  time.Duration
	LogLevel        gormlogger.LogLevel
}

// Connect ensures the target database exists, opens a gorm handle and waits
// until the server answers a ping.
func Connect(ctx context.Context, cfg Config) (*gorm.DB, error) {
	if strings.TrimSpace(cfg.DSN) == "" {
		return nil, errors.New("database DSN is empty")
	}

	attempts := max(cfg.ConnectAttempts, 1)
	err := RetryContext(ctx, attempts, cfg.ConnectBackoff, func() error {
		return ensureDatabaseExists(ctx, cfg.DSN)
	})
	if err != nil {
		return nil, fmt.Errorf("ensure database: %w", err)
	}

	if cfg.LogLevel == 0 {
		cfg.LogLevel = gormlogger.Warn
	}

	db, err := gorm.Open(postgres.Open(cfg.DSN), &gorm.Config{
		TranslateError: true,
		Logger:         newGormLogger(cfg.LogLevel),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("retrieve sql db: %w", err)
	}
	if cfg.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}

	err = RetryContext(ctx, attempts, cfg.ConnectBackoff, func() error {
		return sqlDB.PingContext(ctx)
	})
	if err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	applog.LogInfo(ctx, "database connected", zap.String("database", databaseName(cfg.DSN)))
	return db, nil
}

// Close releases the pool behind db.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Pinger adapts a gorm handle to a health check.
type Pinger struct {
	DB *gorm.DB
}

func (p Pinger) Ping(ctx context.Context) error {
	sqlDB, err := p.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func newGormLogger(level gormlogger.LogLevel) gormlogger.Interface {
	return gormlogger.New(
		zap.NewStdLog(applog.Logger().Named("gorm")),
		gormlogger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  level,
			IgnoreRecordNotFoundError: true,
		},
	)
}

func ensureDatabaseExists(ctx context.Context, dsn string) error {
	adminDSN, dbName, ok := adminDSN(dsn)
	if !ok {
		return nil
	}

	sqlDB, err := sql.Open("postgres", adminDSN)
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	var exists bool
	err = sqlDB.QueryRowContext(ctx,
		"SELECT EXISTS (SELECT 1 FROM pg_database WHERE datname = $1)", dbName).Scan(&exists)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return err
	}
	if exists {
		return nil
	}

	applog.LogInfo(ctx, "creating database", zap.String("database", dbName))
	_, err = sqlDB.ExecContext(ctx, "CREATE DATABASE "+quoteIdentifier(dbName))
	return err
}

// adminDSN rewrites a URL-form DSN to point at the maintenance database.
// Key/value DSNs and DSNs that already target "postgres" are left alone.
func adminDSN(dsn string) (admin, dbName string, ok bool) {
	u, err := url.Parse(dsn)
	if err != nil || (u.Scheme != "postgres" && u.Scheme != "postgresql") {
		return "", "", false
	}
	dbName = strings.TrimPrefix(u.Path, "/")
	if dbName == "" || dbName == "postgres" {
		return "", "", false
	}
	adminURL := *u
	adminURL.Path = "/postgres"
	return adminURL.String(), dbName, true
}

func databaseName(dsn string) string {
	u, err := url.Parse(dsn)
	if err != nil {
		return ""
	}
	return strings.TrimPrefix(u.Path, "/")
}

func quoteIdentifier(ident string) string {
	return `"` + strings.ReplaceAll(ident, `"`, `""`) + `"`
}
