package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

type pingFunc func(ctx context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }

func TestHealthHandler(t *testing.T) {
	tests := []struct {
		name       string
		checks     []Checker
		wantCode   int
		wantStatus string
	}{
		{name: "no checks", wantCode: http.StatusOK, wantStatus: "healthy"},
		{
			name:       "passing check",
			checks:     []Checker{pingFunc(func(context.Context) error { return nil })},
			wantCode:   http.StatusOK,
			wantStatus: "healthy",
		},
		{
			name: "failing check",
			checks: []Checker{
				pingFunc(func(context.Context) error { return nil }),
				pingFunc(func(context.Context) error { return errors.New("connection refused") }),
			},
			wantCode:   http.StatusServiceUnavailable,
			wantStatus: "unhealthy",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/health", nil)
			resp := httptest.NewRecorder()
			NewHandler(tt.checks...)(resp, req)

			if resp.Code != tt.wantCode {
				t.Fatalf("expected %d, got %d", tt.wantCode, resp.Code)
			}
			if ct := resp.Header().Get("Content-Type"); ct != "application/json" {
				t.Errorf("expected Content-Type application/json, got %s", ct)
			}

			var h Response
			if err := json.Unmarshal(resp.Body.Bytes(), &h); err != nil {
				t.Fatalf("failed to decode response: %v", err)
			}
			if h.Status != tt.wantStatus {
				t.Fatalf("expected status %q, got %q", tt.wantStatus, h.Status)
			}
		})
	}
}

func TestHealthCheckHasDeadline(t *testing.T) {
	var hadDeadline bool
	check := pingFunc(func(ctx context.Context) error {
		_, hadDeadline = ctx.Deadline()
		return nil
	})
	NewHandler(check)(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health", nil))
	if !hadDeadline {
		t.Fatal("expected checks to run with a deadline")
	}
}
