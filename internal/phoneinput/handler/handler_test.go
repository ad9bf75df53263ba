package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"flagphone_backend/internal/countries"
	apphttp "flagphone_backend/internal/http"
	"flagphone_backend/internal/http/router"
	"flagphone_backend/internal/phoneinput"
	"flagphone_backend/internal/phoneinput/service"
	"flagphone_backend/internal/phoneinput/session"
	"flagphone_backend/internal/phoneinput/transport"
	"flagphone_backend/platform/logger"
	"flagphone_backend/platform/phone"
	"flagphone_backend/platform/validator"

	"github.com/gin-gonic/gin"
)

type routerConfig struct{}

func (routerConfig) GetHTTPAddr() string      { return ":0" }
func (routerConfig) GetCORSAllowAll() bool    { return false }
func (routerConfig) GetCORSOrigins() []string { return []string{"http://localhost:4200"} }
func (routerConfig) GetCORSAllowCreds() bool  { return false }
func (routerConfig) GetRateLimitRPS() float64 { return 1000 }
func (routerConfig) GetRateLimitBurst() int   { return 1000 }

func newEngine(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	plan := phone.NewPlan("US")
	dir := countries.NewDirectory([]countries.Country{
		{Code: "DE", Name: "Germany", DialCode: "+49"},
		{Code: "FR", Name: "France", DialCode: "+33"},
		{Code: "GB", Name: "United Kingdom", DialCode: "+44"},
		{Code: "US", Name: "United States", DialCode: "+1"},
	})
	log := logger.Discard()
	val := validator.New()

	return router.New(&apphttp.App{
		Config: routerConfig{},
		Logger: log,
		Modules: []apphttp.Module{
			countries.NewModule(dir, nil, val, log),
			phoneinput.NewModule(dir, plan, session.NewMemoryStore(time.Minute), nil, val, log, service.Options{DefaultRegion: "FR"}),
		},
	})
}

func do(t *testing.T, engine *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
	return out
}

func TestSessionFlow(t *testing.T) {
	engine := newEngine(t)

	rec := do(t, engine, http.MethodPost, "/api/v1/phone-inputs", nil)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	created := decode[transport.SessionResponse](t, rec)
	if created.State.Country == nil || created.State.Country.Code != "FR" {
		t.Fatalf("unexpected created state %+v", created.State)
	}
	base := "/api/v1/phone-inputs/" + created.ID

	rec = do(t, engine, http.MethodPost, base+"/edit", transport.EditRequest{Text: "0612345678"})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	edited := decode[transport.SessionResponse](t, rec)
	if edited.State.DisplayText != "06 12 34 56 78" || !edited.State.IsValid {
		t.Fatalf("unexpected edit state %+v", edited.State)
	}

	rec = do(t, engine, http.MethodGet, base+"/e164", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if num := decode[transport.NumberResponse](t, rec); num.E164 != "+33612345678" {
		t.Fatalf("unexpected number %+v", num)
	}

	rec = do(t, engine, http.MethodGet, base+"/qr?size=200", nil)
	if rec.Code != http.StatusOK || rec.Header().Get("Content-Type") != "image/png" {
		t.Fatalf("expected png, got %d %q", rec.Code, rec.Header().Get("Content-Type"))
	}

	rec = do(t, engine, http.MethodPost, base+"/country", transport.SetCountryRequest{Code: "ZZ"})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if resp := decode[transport.SessionResponse](t, rec); resp.Applied || resp.State.Country.Code != "FR" {
		t.Fatalf("unknown country must be ignored: %+v", resp)
	}

	rec = do(t, engine, http.MethodDelete, base, nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	rec = do(t, engine, http.MethodGet, base, nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 after delete, got %d", rec.Code)
	}
}

func TestSetNumberRoute(t *testing.T) {
	engine := newEngine(t)

	created := decode[transport.SessionResponse](t, do(t, engine, http.MethodPost, "/api/v1/phone-inputs", transport.CreateSessionRequest{Region: "US"}))

	rec := do(t, engine, http.MethodPost, "/api/v1/phone-inputs/"+created.ID+"/number", transport.SetNumberRequest{Number: "+33612345678"})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	resp := decode[transport.SessionResponse](t, rec)
	if resp.State.Country.Code != "FR" || resp.State.DisplayText != "06 12 34 56 78" {
		t.Fatalf("unexpected state %+v", resp.State)
	}
	if len(resp.Events) == 0 || resp.Events[0].Kind != "country_selected" {
		t.Fatalf("expected country event first, got %+v", resp.Events)
	}
}

func TestRequestValidation(t *testing.T) {
	engine := newEngine(t)

	cases := []struct {
		name string
		path string
		body interface{}
		want int
	}{
		{"bad session id", "/api/v1/phone-inputs/not-a-uuid/edit", transport.EditRequest{Text: "1"}, http.StatusBadRequest},
		{"unknown session", "/api/v1/phone-inputs/6f1c7a4e-2b1d-4a5e-9a57-3f2d1c0b9e88/edit", transport.EditRequest{Text: "1"}, http.StatusNotFound},
		{"bad region", "/api/v1/numbers/format", transport.FormatRequest{Text: "1", Region: "FRA"}, http.StatusBadRequest},
		{"bad create region", "/api/v1/phone-inputs", transport.CreateSessionRequest{Region: "1"}, http.StatusBadRequest},
		{"bad mode", "/api/v1/phone-inputs", transport.CreateSessionRequest{Countries: &transport.SelectionRequest{Mode: "some"}}, http.StatusBadRequest},
	}

	for _, tc := range cases {
		if rec := do(t, engine, http.MethodPost, tc.path, tc.body); rec.Code != tc.want {
			t.Fatalf("%s: expected %d, got %d: %s", tc.name, tc.want, rec.Code, rec.Body.String())
		}
	}
}

func TestStatelessRoutes(t *testing.T) {
	engine := newEngine(t)

	rec := do(t, engine, http.MethodPost, "/api/v1/numbers/format", transport.FormatRequest{Text: "0612", Region: "FR"})
	if got := decode[transport.FormatResponse](t, rec); got.DisplayText != "06 12" {
		t.Fatalf("unexpected format %+v", got)
	}

	rec = do(t, engine, http.MethodPost, "/api/v1/numbers/validate", transport.ValidateRequest{Text: "+44 7400 123456", Region: "FR"})
	got := decode[transport.ValidateResponse](t, rec)
	if !got.Valid || got.Region != "GB" || got.E164 != "+447400123456" {
		t.Fatalf("unexpected validation %+v", got)
	}
}

func TestCountriesRoute(t *testing.T) {
	engine := newEngine(t)

	rec := do(t, engine, http.MethodGet, "/api/v1/countries?q=united&current=US", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	list := decode[countries.ListResponse](t, rec)
	if list.Total != 2 || list.Items[0].Code != "GB" || !list.Items[1].Selected {
		t.Fatalf("unexpected list %+v", list)
	}

	rec = do(t, engine, http.MethodGet, "/api/v1/countries?mode=excluding&codes=FR", nil)
	if list := decode[countries.ListResponse](t, rec); list.Total != 3 {
		t.Fatalf("expected 3 countries, got %+v", list)
	}

	rec = do(t, engine, http.MethodGet, "/api/v1/countries/ZZ", nil)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 for unknown country, got %d", rec.Code)
	}
}
