// Package config loads process configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
	"go.uber.org/zap/zapcore"

	"github.com/teefour-ai/teefour-api/internal/platform/database"
	"github.com/teefour-ai/teefour-api/internal/platform/storage"
)

// Config holds the environment driven configuration for the API server.
type Config struct {
	// Service
	ServiceName     string        `env:"SERVICE_NAME" envDefault:"teefour-api"`
	Environment     string        `env:"ENVIRONMENT" envDefault:"development"`
	Port            int           `env:"PORT" envDefault:"8080"`
	LogLevel        string        `env:"LOG_LEVEL" envDefault:"info"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
	MetricsEnabled  bool          `env:"METRICS_ENABLED" envDefault:"true"`

	// Database
	DatabaseURL       string        `env:"DATABASE_URL"`
	DBMaxIdleConns    int           `env:"DB_MAX_IDLE_CONNS" envDefault:"5"`
	DBMaxOpenConns    int           `env:"DB_MAX_OPEN_CONNS" envDefault:"15"`
	DBConnMaxLifetime time.Duration `env:"DB_CONN_MAX_LIFETIME" envDefault:"30m"`
	DBConnectAttempts int           `env:"DB_CONNECT_ATTEMPTS" envDefault:"5"`
	DBConnectBackoff  time.Duration `env:"DB_CONNECT_BACKOFF" envDefault:"2s"`

	// Object storage; uploads are disabled when S3_BUCKET is empty.
	S3Bucket          string `env:"S3_BUCKET"`
	S3Region          string `env:"S3_REGION" envDefault:"us-east-1"`
	S3Endpoint        string `env:"S3_ENDPOINT"`
	S3AccessKeyID     string `env:"S3_ACCESS_KEY_ID"`
	S3SecretAccessKey string `env:"S3_SECRET_ACCESS_KEY"`
	S3UsePathStyle    bool   `env:"S3_USE_PATH_STYLE" envDefault:"false"`

	// Documents
	DocumentMaxBytes int64 `env:"DOCUMENT_MAX_BYTES" envDefault:"10485760"`
}

// Load parses environment variables into Config and validates the result.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env config: %w", err)
	}

	cfg.DatabaseURL = strings.TrimSpace(cfg.DatabaseURL)
	cfg.LogLevel = strings.ToLower(strings.TrimSpace(cfg.LogLevel))
	cfg.S3Bucket = strings.TrimSpace(cfg.S3Bucket)
	cfg.S3Endpoint = strings.TrimSpace(cfg.S3Endpoint)
	cfg.S3AccessKeyID = strings.TrimSpace(cfg.S3AccessKeyID)
	cfg.S3SecretAccessKey = strings.TrimSpace(cfg.S3SecretAccessKey)

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	var errs []error
	if c.DatabaseURL == "" {
		errs = append(errs, errors.New("DATABASE_URL is required"))
	}
	if _, err := zapcore.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, fmt.Errorf("LOG_LEVEL %q is not a valid level", c.LogLevel))
	}
	if c.Port <= 0 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("PORT %d is out of range", c.Port))
	}
	if c.DocumentMaxBytes <= 0 {
		errs = append(errs, fmt.Errorf("DOCUMENT_MAX_BYTES must be positive, got %d", c.DocumentMaxBytes))
	}
	return errors.Join(errs...)
}

// Addr returns the HTTP listen address.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// Database returns the connection settings for database.Connect.
func (c *Config) Database() database.Config {
	return database.Config{
		DSN:             c.DatabaseURL,
		MaxIdleConns:    c.DBMaxIdleConns,
		MaxOpenConns:    c.DBMaxOpenConns,
		ConnMaxLifetime: c.DBConnMaxLifetime,
		ConnectAttempts: c.DBConnectAttempts,
		ConnectBackoff:  c.DBConnectBackoff,
	}
}

// S3 returns the object storage settings.
func (c *Config) S3() storage.S3Config {
	return storage.S3Config{
		Bucket:          c.S3Bucket,
		Region:          c.S3Region,
		Endpoint:        c.S3Endpoint,
		AccessKeyID:     c.S3AccessKeyID,
		SecretAccessKey: c.S3SecretAccessKey,
		UsePathStyle:    c.S3UsePathStyle,
	}
}
