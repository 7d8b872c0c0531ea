package health

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	applog "github.com/teefour-ai/teefour-api/internal/platform/logging"
)

const checkTimeout = 2 * time.Second

// Response is the payload for the health endpoint.
type Response struct {
	Status string `json:"status"`
}

// Checker is a dependency the service cannot work without.
type Checker interface {
	Ping(ctx context.Context) error
}

// NewHandler returns a plain HTTP handler that reports healthy while every
// checker answers, and 503 otherwise.
func NewHandler(checks ...Checker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status, body := http.StatusOK, Response{Status: "healthy"}

		for _, c := range checks {
			ctx, cancel := context.WithTimeout(r.Context(), checkTimeout)
			err := c.Ping(ctx)
			cancel()
			if err != nil {
				applog.LogError(r.Context(), "health check failed", err)
				status, body = http.StatusServiceUnavailable, Response{Status: "unhealthy"}
				break
			}
		}

		// Plain net/http outside huma, so health still answers if API setup is broken.
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Cache-Control", "no-store")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(body)
	}
}
