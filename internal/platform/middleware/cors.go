package middleware

import (
	"net/http"

	"github.com/go-chi/cors"
)

// CORS applies permissive API defaults. Link is exposed for pagination and
// Content-Disposition for document downloads.
func CORS() func(http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodHead,
			http.MethodPost,
			http.MethodPut,
			http.MethodPatch,
			http.MethodDelete,
			http.MethodOptions,
		},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-Id"},
		ExposedHeaders: []string{"Link", "Location", "Content-Disposition", "X-Request-Id"},
		MaxAge:         300,
	})
}
