package respond

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/fxamacker/cbor/v2"
	"github.com/go-chi/chi/v5"
)

func decodeProblem(t *testing.T, resp *httptest.ResponseRecorder) huma.ErrorModel {
	t.Helper()
	var problem huma.ErrorModel
	var err error
	switch ct := resp.Header().Get("Content-Type"); ct {
	case contentTypeProblemJSON:
		err = json.Unmarshal(resp.Body.Bytes(), &problem)
	case contentTypeProblemCBOR:
		err = cbor.Unmarshal(resp.Body.Bytes(), &problem)
	default:
		t.Fatalf("unexpected content type %q", ct)
	}
	if err != nil {
		t.Fatalf("decode problem: %v", err)
	}
	return problem
}

func TestNotFoundHandlerReturnsProblemDetails(t *testing.T) {
	router := chi.NewRouter()
	router.NotFound(NotFoundHandler())

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/missing", nil))

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.Code)
	}
	problem := decodeProblem(t, resp)
	if problem.Status != http.StatusNotFound || problem.Title != "Not Found" || problem.Detail != msgNotFound {
		t.Fatalf("unexpected problem: %+v", problem)
	}
}

func TestMethodNotAllowedHandlerListsAllowedMethods(t *testing.T) {
	router := chi.NewRouter()
	router.MethodNotAllowed(MethodNotAllowedHandler())
	router.Get("/", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodPost, "/", nil))

	if resp.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", resp.Code)
	}
	if allow := resp.Header().Get("Allow"); !strings.Contains(allow, http.MethodGet) {
		t.Fatalf("expected Allow to list GET, got %q", allow)
	}
	problem := decodeProblem(t, resp)
	if !strings.Contains(problem.Detail, http.MethodPost) {
		t.Fatalf("expected detail to mention POST, got %q", problem.Detail)
	}
}

func TestRecovererReturnsProblemDetails(t *testing.T) {
	router := chi.NewRouter()
	router.Use(Recoverer())
	router.Get("/panic", func(http.ResponseWriter, *http.Request) { panic("boom") })

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/panic", nil))

	if resp.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", resp.Code)
	}
	problem := decodeProblem(t, resp)
	if problem.Detail != msgInternalServerError {
		t.Fatalf("unexpected detail: %q", problem.Detail)
	}
}

func TestRecovererSkipsWriteWhenHeaderAlreadyWritten(t *testing.T) {
	router := chi.NewRouter()
	router.Use(Recoverer())
	router.Get("/late", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusAccepted)
		panic("late boom")
	})

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/late", nil))

	if resp.Code != http.StatusAccepted {
		t.Fatalf("expected original 202 to stand, got %d", resp.Code)
	}
	if resp.Body.Len() != 0 {
		t.Fatalf("expected no problem body, got %q", resp.Body.String())
	}
}

func TestRecovererRePanicsOnErrAbortHandler(t *testing.T) {
	handler := Recoverer()(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic(http.ErrAbortHandler)
	}))

	defer func() {
		if rec := recover(); rec != http.ErrAbortHandler { //nolint:errorlint // identity check
			t.Fatalf("expected ErrAbortHandler to propagate, got %v", rec)
		}
	}()
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
}

func TestNotFoundHandlerReturnsCBORWhenAccepted(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/missing", nil)
	req.Header.Set("Accept", "application/cbor")
	resp := httptest.NewRecorder()

	NotFoundHandler().ServeHTTP(resp, req)

	if ct := resp.Header().Get("Content-Type"); ct != contentTypeProblemCBOR {
		t.Fatalf("expected %s, got %q", contentTypeProblemCBOR, ct)
	}
	if problem := decodeProblem(t, resp); problem.Status != http.StatusNotFound {
		t.Fatalf("unexpected status in body: %d", problem.Status)
	}
}

func TestWantsCBOR(t *testing.T) {
	tests := []struct {
		accept string
		want   bool
	}{
		{"", false},
		{"*/*", false},
		{"application/json", false},
		{"text/html", false},
		{"application/cbor", true},
		{"application/cbor;q=1.0", true},
		{"application/json, application/cbor", false},
		{"application/json;q=0.9, application/cbor;q=1.0", true},
		{"application/problem+cbor", true},
	}
	for _, tt := range tests {
		if got := wantsCBOR(tt.accept); got != tt.want {
			t.Errorf("Accept %q: expected %v, got %v", tt.accept, tt.want, got)
		}
	}
}
