package intakes

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	humachi "github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"

	applog "github.com/teefour-ai/teefour-api/internal/platform/logging"
	appmiddleware "github.com/teefour-ai/teefour-api/internal/platform/middleware"
	"github.com/teefour-ai/teefour-api/internal/platform/respond"
	clientsvc "github.com/teefour-ai/teefour-api/internal/service/client"
	intakesvc "github.com/teefour-ai/teefour-api/internal/service/intake"
)

type fixture struct {
	router  chi.Router
	clients *clientsvc.MockClientService
	intakes *intakesvc.MockIntakeService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	clients := clientsvc.NewMockClientService()
	intakes := intakesvc.NewMockIntakeService(clients)

	router := chi.NewRouter()
	router.Use(appmiddleware.RequestID(), applog.RequestLogger(), respond.Recoverer())
	api := humachi.New(router, huma.DefaultConfig("IntakesTest", "test"))
	NewGroup(intakes).Register(api)

	return &fixture{router: router, clients: clients, intakes: intakes}
}

func (f *fixture) client(t *testing.T, email string) string {
	t.Helper()
	c, err := f.clients.Create(context.Background(), clientsvc.CreateParams{Name: "Test", Email: email})
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}
	return c.ID
}

func (f *fixture) do(t *testing.T, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func decodeIntake(t *testing.T, rec *httptest.ResponseRecorder) Intake {
	t.Helper()
	var in Intake
	if err := json.Unmarshal(rec.Body.Bytes(), &in); err != nil {
		t.Fatalf("failed to decode intake: %v (%s)", err, rec.Body.String())
	}
	return in
}

func TestCreateIntakeSuccess(t *testing.T) {
	f := newFixture(t)
	clientID := f.client(t, "a@example.com")

	rec := f.do(t, http.MethodPost, "/intakes", `{"clientId":"`+clientID+`","taxYear":2025}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	in := decodeIntake(t, rec)
	if in.Status != "open" || in.TaxYear != 2025 || in.ClientID != clientID {
		t.Errorf("unexpected intake: %+v", in)
	}
	if loc := rec.Header().Get("Location"); loc != "/intakes/"+in.ID {
		t.Errorf("unexpected Location %s", loc)
	}
}

func TestCreateIntakeValidation(t *testing.T) {
	f := newFixture(t)
	clientID := f.client(t, "a@example.com")

	tests := []struct {
		name string
		body string
	}{
		{name: "unknown client", body: `{"clientId":"missing","taxYear":2025}`},
		{name: "year too early", body: `{"clientId":"` + clientID + `","taxYear":1999}`},
		{name: "year too late", body: `{"clientId":"` + clientID + `","taxYear":2101}`},
		{name: "bad status", body: `{"clientId":"` + clientID + `","taxYear":2025,"status":"archived"}`},
		{name: "missing year", body: `{"clientId":"` + clientID + `"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := f.do(t, http.MethodPost, "/intakes", tt.body)
			if rec.Code != http.StatusUnprocessableEntity {
				t.Fatalf("expected 422, got %d: %s", rec.Code, rec.Body.String())
			}
		})
	}
}

func TestListIntakesFiltersAndLinks(t *testing.T) {
	f := newFixture(t)
	a := f.client(t, "a@example.com")
	b := f.client(t, "b@example.com")
	for _, body := range []string{
		`{"clientId":"` + a + `","taxYear":2023}`,
		`{"clientId":"` + a + `","taxYear":2024}`,
		`{"clientId":"` + a + `","taxYear":2025,"status":"completed"}`,
		`{"clientId":"` + b + `","taxYear":2025}`,
	} {
		if rec := f.do(t, http.MethodPost, "/intakes", body); rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
	}

	rec := f.do(t, http.MethodGet, "/intakes?clientId="+a+"&status=open&limit=1", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var page IntakesListData
	if err := json.Unmarshal(rec.Body.Bytes(), &page); err != nil {
		t.Fatalf("failed to decode: %v", err)
	}
	if page.Total != 2 || len(page.Items) != 1 || page.Items[0].TaxYear != 2023 {
		t.Fatalf("unexpected page: %+v", page)
	}
	link := rec.Header().Get("Link")
	if !strings.Contains(link, "clientId="+a) || !strings.Contains(link, "status=open") {
		t.Errorf("expected filters in Link header, got %s", link)
	}

	rec = f.do(t, http.MethodGet, "/intakes?status=bogus", "")
	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("expected 422 for unknown status filter, got %d", rec.Code)
	}
}

func TestUpdateIntake(t *testing.T) {
	f := newFixture(t)
	clientID := f.client(t, "a@example.com")
	in := decodeIntake(t, f.do(t, http.MethodPost, "/intakes", `{"clientId":"`+clientID+`","taxYear":2025}`))

	rec := f.do(t, http.MethodPatch, "/intakes/"+in.ID, `{"status":"in_progress","notes":"W-2 received"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if got := decodeIntake(t, rec); got.Status != "in_progress" || got.Notes != "W-2 received" {
		t.Errorf("unexpected update result: %+v", got)
	}

	if rec := f.do(t, http.MethodPatch, "/intakes/"+in.ID, `{}`); rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("expected 422 for empty update, got %d", rec.Code)
	}
	if rec := f.do(t, http.MethodPatch, "/intakes/missing", `{"notes":"x"}`); rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
}

func TestGetAndDeleteIntake(t *testing.T) {
	f := newFixture(t)
	clientID := f.client(t, "a@example.com")
	in := decodeIntake(t, f.do(t, http.MethodPost, "/intakes", `{"clientId":"`+clientID+`","taxYear":2025}`))

	if rec := f.do(t, http.MethodGet, "/intakes/"+in.ID, ""); rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	f.intakes.Referenced = func(string) bool { return true }
	if rec := f.do(t, http.MethodDelete, "/intakes/"+in.ID, ""); rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
	f.intakes.Referenced = nil

	if rec := f.do(t, http.MethodDelete, "/intakes/"+in.ID, ""); rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if rec := f.do(t, http.MethodGet, "/intakes/"+in.ID, ""); rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}
