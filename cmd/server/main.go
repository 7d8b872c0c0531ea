package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"github.com/teefour-ai/teefour-api/internal/app"
	"github.com/teefour-ai/teefour-api/internal/config"
	"github.com/teefour-ai/teefour-api/internal/http/health"
	"github.com/teefour-ai/teefour-api/internal/http/routes"
	"github.com/teefour-ai/teefour-api/internal/http/v1/clients"
	"github.com/teefour-ai/teefour-api/internal/http/v1/documents"
	"github.com/teefour-ai/teefour-api/internal/http/v1/intakes"
	"github.com/teefour-ai/teefour-api/internal/platform/database"
	applog "github.com/teefour-ai/teefour-api/internal/platform/logging"
	"github.com/teefour-ai/teefour-api/internal/platform/metrics"
	"github.com/teefour-ai/teefour-api/internal/platform/storage"
	"github.com/teefour-ai/teefour-api/internal/service/client"
	"github.com/teefour-ai/teefour-api/internal/service/document"
	"github.com/teefour-ai/teefour-api/internal/service/intake"
)

// Version can be overridden at build time: -ldflags "-X main.Version=1.2.3"
var Version = "dev"

// uploadHeadroom is added to the document limit for the request-wide body cap.
const uploadHeadroom = 1 << 20

func main() {
	defer func() {
		if err := applog.Sync(); err != nil {
			applog.LogError(context.Background(), "logger sync error", err)
		}
	}()
	if err := applog.Err(); err != nil {
		applog.LogError(context.Background(), "logger init error", err)
	}

	if err := loadEnvFiles(".env"); err != nil {
		applog.LogWarn(context.Background(), "env file not loaded", zap.Error(err))
	}

	cfg, err := config.Load()
	if err != nil {
		applog.LogFatal(context.Background(), "invalid configuration", err)
	}
	if err := applog.SetLevel(cfg.LogLevel); err != nil {
		applog.LogWarn(context.Background(), "invalid log level", zap.String("level", cfg.LogLevel), zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		applog.LogError(context.Background(), "server stopped with error", err)
		os.Exit(1)
	}
	applog.LogInfo(context.Background(), "server exited")
}

func run(ctx context.Context, cfg *config.Config) error {
	db, err := database.Connect(ctx, cfg.Database())
	if err != nil {
		return err
	}
	defer func() {
		if err := database.Close(db); err != nil {
			applog.LogError(context.Background(), "database close error", err)
		}
	}()

	bucket, err := storage.NewS3Bucket(ctx, cfg.S3())
	if err != nil {
		return err
	}

	var m *metrics.Metrics
	if cfg.MetricsEnabled {
		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		m = metrics.New(reg)
	}

	clientSvc := client.NewGormStore(db)
	intakeSvc := intake.NewGormStore(db)
	documentSvc := document.NewManager(document.NewGormStore(db), bucket, clientSvc, intakeSvc, document.Options{
		MaxBytes: cfg.DocumentMaxBytes,
		Metrics:  m,
	})

	application, err := app.Initialize(ctx, app.Options{
		Version: Version,
		Schema:  database.NewInitializer(db, &client.Record{}, &intake.Record{}, &document.Record{}),
		Groups: []routes.Group{
			clients.NewGroup(clientSvc),
			intakes.NewGroup(intakeSvc),
			documents.NewGroup(documentSvc, cfg.DocumentMaxBytes),
		},
		Metrics:         m,
		HealthChecks:    []health.Checker{database.Pinger{DB: db}, bucket},
		MaxRequestBytes: cfg.DocumentMaxBytes + uploadHeadroom,
	})
	if err != nil {
		return err
	}

	srv := newServer(cfg.Addr(), application.Handler())
	return serve(ctx, srv, cfg.ShutdownTimeout)
}

// loadEnvFiles overlays variables from the given files. Missing files are skipped.
func loadEnvFiles(paths ...string) error {
	var present []string
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			present = append(present, p)
		}
	}
	if len(present) == 0 {
		return nil
	}
	return godotenv.Overload(present...)
}

func newServer(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadTimeout:       30 * time.Second,
		ReadHeaderTimeout: 2 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    64 << 10, // 64 KB
	}
}

// serve runs srv until ctx is cancelled, then shuts it down within timeout.
func serve(ctx context.Context, srv *http.Server, timeout time.Duration) error {
	listenErr := make(chan error, 1)
	go func() {
		applog.LogInfo(context.Background(), "server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			listenErr <- err
		}
	}()

	select {
	case err := <-listenErr:
		applog.LogError(context.Background(), "listen failed", err, zap.String("addr", srv.Addr))
		return err
	case <-ctx.Done():
		applog.LogInfo(context.Background(), "shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		applog.LogError(shutdownCtx, "server shutdown error", err)
		return err
	}
	return nil
}
