package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestCORSPreflight(t *testing.T) {
	req := httptest.NewRequest(http.MethodOptions, "/clients", nil)
	req.Header.Set("Origin", "https://app.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	resp := httptest.NewRecorder()

	CORS()(okHandler).ServeHTTP(resp, req)

	if got := resp.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Fatalf("expected wildcard origin, got %q", got)
	}
	if got := resp.Header().Get("Access-Control-Allow-Methods"); !strings.Contains(got, http.MethodPost) {
		t.Fatalf("expected POST to be allowed, got %q", got)
	}
}

func TestCORSExposesHeaders(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/documents", nil)
	req.Header.Set("Origin", "https://app.example.com")
	resp := httptest.NewRecorder()

	CORS()(okHandler).ServeHTTP(resp, req)

	exposed := resp.Header().Get("Access-Control-Expose-Headers")
	for _, h := range []string{"Link", "Content-Disposition"} {
		if !strings.Contains(exposed, h) {
			t.Errorf("expected %s to be exposed, got %q", h, exposed)
		}
	}
}

func TestVaryAddsAccept(t *testing.T) {
	resp := httptest.NewRecorder()
	Vary()(okHandler).ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/", nil))

	if got := resp.Header().Values("Vary"); len(got) != 1 || got[0] != "Accept" {
		t.Fatalf("expected Vary: Accept, got %v", got)
	}
}
