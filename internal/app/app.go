// Package app assembles the HTTP application: schema first, then routes.
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	_ "github.com/danielgtaylor/huma/v2/formats/cbor"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/teefour-ai/teefour-api/internal/http/health"
	"github.com/teefour-ai/teefour-api/internal/http/root"
	"github.com/teefour-ai/teefour-api/internal/http/routes"
	applog "github.com/teefour-ai/teefour-api/internal/platform/logging"
	"github.com/teefour-ai/teefour-api/internal/platform/metrics"
	appmiddleware "github.com/teefour-ai/teefour-api/internal/platform/middleware"
	"github.com/teefour-ai/teefour-api/internal/platform/respond"
)

// API metadata shown in the OpenAPI document and the docs page.
const (
	Title       = "TeeFour AI: Accounting Automation"
	Description = "Developed by Nathan Au"
	DocsPath    = "/docs"
)

// Startup stages reported in StartupError.
const (
	StageSchema = "schema"
	StageRoutes = "routes"
)

// defaultMaxRequestBytes bounds request bodies when Options leaves it unset.
const defaultMaxRequestBytes = 1 << 20

// ErrStartup matches every error returned by Initialize.
var ErrStartup = errors.New("startup failed")

// StartupError reports which stage of Initialize failed.
type StartupError struct {
	Stage string
	Err   error
}

func (e *StartupError) Error() string {
	return fmt.Sprintf("startup failed during %s: %v", e.Stage, e.Err)
}

func (e *StartupError) Unwrap() error { return e.Err }

func (e *StartupError) Is(target error) bool { return target == ErrStartup }

// SchemaInitializer prepares the persistent store. It must be idempotent.
type SchemaInitializer interface {
	EnsureSchema(ctx context.Context) error
}

// Options configure Initialize. Schema is required.
type Options struct {
	Version string
	Schema  SchemaInitializer
	Groups  []routes.Group
	// Metrics, when set, instruments requests and serves /metrics.
	Metrics      *metrics.Metrics
	HealthChecks []health.Checker
	// MaxRequestBytes caps every request body. Defaults to 1 MiB.
	MaxRequestBytes int64
}

// App is an initialized application. Its existence implies the schema step
// completed successfully.
type App struct {
	router chi.Router
	api    huma.API
}

// Initialize runs the schema initializer to completion and only then builds
// the router. On failure no App is returned, so nothing can serve requests.
func Initialize(ctx context.Context, opts Options) (*App, error) {
	if opts.Schema == nil {
		return nil, &StartupError{Stage: StageSchema, Err: errors.New("no schema initializer configured")}
	}
	if err := opts.Schema.EnsureSchema(ctx); err != nil {
		return nil, &StartupError{Stage: StageSchema, Err: err}
	}
	applog.LogInfo(ctx, "schema initialized")

	if opts.Version == "" {
		opts.Version = "dev"
	}
	if opts.MaxRequestBytes <= 0 {
		opts.MaxRequestBytes = defaultMaxRequestBytes
	}

	router := chi.NewRouter()
	router.NotFound(respond.NotFoundHandler())
	router.MethodNotAllowed(respond.MethodNotAllowedHandler())

	router.Use(
		appmiddleware.Security(DocsPath),
		appmiddleware.Vary(),
		appmiddleware.CORS(),
		appmiddleware.RequestID(),
		// RealIP trusts X-Forwarded-For; only deploy behind a trusted proxy.
		chimiddleware.RealIP,
		chimiddleware.RequestSize(opts.MaxRequestBytes),
		applog.RequestLogger(),
		applog.AccessLogger(),
	)
	if opts.Metrics != nil {
		router.Use(opts.Metrics.Middleware())
	}
	router.Use(respond.Recoverer())

	api := humachi.New(router, newConfig(opts.Version))
	addCBORContentTypes(api)

	router.Get("/health", health.NewHandler(opts.HealthChecks...))
	if opts.Metrics != nil {
		router.Handle("/metrics", opts.Metrics.Handler())
	}
	root.Register(api, DocsPath)

	if err := routes.Mount(api, opts.Groups...); err != nil {
		return nil, &StartupError{Stage: StageRoutes, Err: err}
	}

	prefixes := make([]string, len(opts.Groups))
	for i, g := range opts.Groups {
		prefixes[i] = g.Prefix()
	}
	applog.LogInfo(ctx, "routes mounted", zap.Strings("prefixes", prefixes))

	return &App{router: router, api: api}, nil
}

// Handler returns the HTTP handler serving every route.
func (a *App) Handler() http.Handler { return a.router }

// API returns the huma API, mainly for inspecting the OpenAPI document.
func (a *App) API() huma.API { return a.api }

func newConfig(version string) huma.Config {
	cfg := huma.DefaultConfig(Title, version)
	cfg.Info.Description = Description
	cfg.DocsPath = DocsPath
	// Response bodies carry no $schema link.
	cfg.CreateHooks = nil
	return cfg
}

// addCBORContentTypes advertises CBOR next to JSON in the OpenAPI document.
func addCBORContentTypes(api huma.API) {
	api.OpenAPI().OnAddOperation = append(api.OpenAPI().OnAddOperation,
		func(_ *huma.OpenAPI, op *huma.Operation) {
			if op.RequestBody != nil && op.RequestBody.Content != nil {
				if jsonContent, ok := op.RequestBody.Content["application/json"]; ok {
					op.RequestBody.Content["application/cbor"] = jsonContent
				}
			}
			for _, resp := range op.Responses {
				if resp.Content == nil {
					continue
				}
				if jsonContent, ok := resp.Content["application/json"]; ok {
					resp.Content["application/cbor"] = jsonContent
				}
			}
		},
	)
}
