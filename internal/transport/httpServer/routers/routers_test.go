package routers

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"eventsMap/internal/config"
	"eventsMap/internal/models/domain"
	"eventsMap/internal/repositories"
	"eventsMap/internal/transport/httpServer/handlers"
	"eventsMap/internal/upload"

	"github.com/go-chi/chi/v5"
)

type emptyRepository struct{}

func (emptyRepository) CreateEvent(context.Context, domain.Event) (int64, error) { return 1, nil }

func (emptyRepository) FindEventByID(context.Context, int64) (domain.Event, error) {
	return domain.Event{}, domain.ErrNotFound
}

func (emptyRepository) ListEvents(context.Context) ([]domain.Event, error) { return nil, nil }

type noGeocoder struct{}

func (noGeocoder) Geocode(context.Context, string) (*domain.GeocodeResult, error) {
	return nil, &domain.LookupError{Service: "geocoding", Err: domain.ErrLookupDisabled}
}

type noAddresses struct{}

func (noAddresses) LookupCEP(context.Context, string) (domain.PostalAddress, error) {
	return domain.PostalAddress{}, &domain.LookupError{Service: "viacep", Err: domain.ErrLookupNotFound}
}

func newTestMux(t *testing.T) (*chi.Mux, string) {
	t.Helper()

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	dir := t.TempDir()
	store := upload.New(config.UploadConfig{Dir: dir, PublicPrefix: "/uploads", MaxImageBytes: 1 << 20})

	eventHandler := handlers.NewEventHandler(log, emptyRepository{}, store, noGeocoder{})
	lookupHandler := handlers.NewLookupHandler(log, noAddresses{}, noGeocoder{})
	router := NewRouter(log, eventHandler, lookupHandler, Uploads{Dir: dir, Prefix: "/uploads"}, 1024)

	mux := chi.NewRouter()
	router.Mount(mux)
	return mux, dir
}

func TestRoutes(t *testing.T) {
	mux, dir := newTestMux(t)
	if err := os.WriteFile(filepath.Join(dir, "1-abc.png"), []byte("png-bytes"), 0644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		method     string
		path       string
		wantStatus int
		wantBody   string
	}{
		{method: http.MethodGet, path: "/ping", wantStatus: http.StatusOK, wantBody: "."},
		{method: http.MethodGet, path: "/events", wantStatus: http.StatusOK, wantBody: "[]"},
		{method: http.MethodGet, path: "/events/7", wantStatus: http.StatusNotFound, wantBody: "event not found"},
		{method: http.MethodGet, path: "/events/x", wantStatus: http.StatusBadRequest, wantBody: "invalid id"},
		{method: http.MethodGet, path: "/lookup/cep/30140110", wantStatus: http.StatusNotFound},
		{method: http.MethodGet, path: "/lookup/geocode?address=x", wantStatus: http.StatusServiceUnavailable},
		{method: http.MethodGet, path: "/uploads/1-abc.png", wantStatus: http.StatusOK, wantBody: "png-bytes"},
		{method: http.MethodGet, path: "/uploads/missing.png", wantStatus: http.StatusNotFound},
		{method: http.MethodGet, path: "/uploads/", wantStatus: http.StatusNotFound},
		{method: http.MethodGet, path: "/metrics", wantStatus: http.StatusOK},
		{method: http.MethodDelete, path: "/events/1", wantStatus: http.StatusMethodNotAllowed},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.path, nil))

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d (body %s)", rec.Code, tt.wantStatus, rec.Body.String())
			}
			if !strings.Contains(rec.Body.String(), tt.wantBody) {
				t.Errorf("body = %q, want it to contain %q", rec.Body.String(), tt.wantBody)
			}
		})
	}
}

func TestCreateEventBodyLimit(t *testing.T) {
	mux, _ := newTestMux(t)

	body := `{"name":"` + strings.Repeat("a", 4096) + `"}`
	req := httptest.NewRequest(http.MethodPost, "/events", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusRequestEntityTooLarge {
		t.Errorf("status = %d, want 413 for oversized body", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "request body too large") {
		t.Errorf("body = %s", rec.Body.String())
	}
}

func TestCORSPreflight(t *testing.T) {
	mux, _ := newTestMux(t)

	req := httptest.NewRequest(http.MethodOptions, "/events", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got == "" {
		t.Errorf("missing Access-Control-Allow-Origin, headers = %v", rec.Header())
	}
}

func TestEventRoundTripWithSQLite(t *testing.T) {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	ctx := context.Background()

	repo, err := repositories.Open(ctx, log, config.DBConfig{
		Driver: "sqlite",
		Path:   filepath.Join(t.TempDir(), "events.sqlite"),
	})
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { repo.Shutdown(ctx) })

	dir := t.TempDir()
	store := upload.New(config.UploadConfig{Dir: dir, PublicPrefix: "/uploads", MaxImageBytes: 1 << 20})
	router := NewRouter(log,
		handlers.NewEventHandler(log, repo, store, noGeocoder{}),
		handlers.NewLookupHandler(log, noAddresses{}, noGeocoder{}),
		Uploads{Dir: dir, Prefix: "/uploads"},
		1<<20,
	)
	mux := chi.NewRouter()
	router.Mount(mux)

	body := `{"name":"Show","description":"Live music",
		"initialDate":"2026-01-01T20:00:00.000Z","finalDate":"2026-01-01T23:00:00.000Z",
		"address":{"cep":"30140-110","endereco":"Praça da Liberdade","numero":"100","bairro":"Funcionários","cidade":"Belo Horizonte"},
		"location":{"lat":-19.93,"lng":-43.93}}`
	req := httptest.NewRequest(http.MethodPost, "/events", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("create status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if got := strings.TrimSpace(rec.Body.String()); got != `{"id":1}` {
		t.Fatalf("create body = %s, want {\"id\":1}", got)
	}

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/events/1", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("get status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var got map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	want := map[string]any{
		"id":           float64(1),
		"name":         "Show",
		"description":  "Live music",
		"initial_date": "2026-01-01T20:00:00.000Z",
		"final_date":   "2026-01-01T23:00:00.000Z",
		"cep":          "30140-110",
		"endereco":     "Praça da Liberdade",
		"numero":       "100",
		"bairro":       "Funcionários",
		"cidade":       "Belo Horizonte",
		"image_url":    nil,
		"lat":          -19.93,
		"lng":          -43.93,
	}
	if len(got) != len(want) {
		t.Errorf("got %d fields, want %d: %v", len(got), len(want), got)
	}
	for k, v := range want {
		if got[k] != v {
			t.Errorf("%s = %v, want %v", k, got[k], v)
		}
	}

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/events", nil))
	var list []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &list); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(list) != 1 || list[0]["id"] != float64(1) {
		t.Errorf("list = %v", list)
	}
}
