package geocoder

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"eventsMap/internal/config"
	"eventsMap/internal/models/domain"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestClient(t *testing.T, apiKey string, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return NewClient(discardLogger(), config.GeocodingConfig{
		BaseURL: srv.URL + "/maps/api/geocode/json",
		APIKey:  apiKey,
		Timeout: 2 * time.Second,
	})
}

func TestGeocode(t *testing.T) {
	c := newTestClient(t, "test-key", func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("key"); got != "test-key" {
			t.Errorf("key = %q, want test-key", got)
		}
		if got := r.URL.Query().Get("address"); got != "Praça da Liberdade, 100, Belo Horizonte" {
			t.Errorf("address = %q", got)
		}
		io.WriteString(w, `{
			"status": "OK",
			"results": [
				{"formatted_address": "Praça da Liberdade, 100", "geometry": {"location": {"lat": -19.9321, "lng": -43.9386}}},
				{"formatted_address": "other", "geometry": {"location": {"lat": 1, "lng": 2}}}
			]
		}`)
	})

	result, err := c.Geocode(context.Background(), "Praça da Liberdade, 100, Belo Horizonte")
	if err != nil {
		t.Fatalf("Geocode() failed: %v", err)
	}
	if result == nil {
		t.Fatal("Geocode() returned nil result")
	}
	if result.Location.Lat != -19.9321 || result.Location.Lng != -43.9386 {
		t.Errorf("Location = %+v, want first result", result.Location)
	}
}

func TestGeocodeNoMatch(t *testing.T) {
	for _, body := range []string{`{"status": "ZERO_RESULTS", "results": []}`, `{"status": "OK", "results": []}`} {
		c := newTestClient(t, "k", func(w http.ResponseWriter, r *http.Request) {
			io.WriteString(w, body)
		})

		result, err := c.Geocode(context.Background(), "nowhere")
		if err != nil {
			t.Fatalf("Geocode() error = %v for %s", err, body)
		}
		if result != nil {
			t.Errorf("Geocode() = %+v, want nil for %s", result, body)
		}
	}
}

func TestGeocodeErrors(t *testing.T) {
	tests := []struct {
		name    string
		apiKey  string
		address string
		handler http.HandlerFunc
		wantIs  error
	}{
		{
			name:    "No api key",
			apiKey:  "",
			address: "Belo Horizonte",
			wantIs:  domain.ErrLookupDisabled,
		},
		{
			name:    "Empty address",
			apiKey:  "k",
			address: "   ",
			wantIs:  domain.ErrLookupMalformed,
		},
		{
			name:    "Denied",
			apiKey:  "k",
			address: "Belo Horizonte",
			handler: func(w http.ResponseWriter, r *http.Request) {
				io.WriteString(w, `{"status": "REQUEST_DENIED", "error_message": "bad key"}`)
			},
		},
		{
			name:    "Http error",
			apiKey:  "k",
			address: "Belo Horizonte",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			},
		},
		{
			name:    "Malformed json",
			apiKey:  "k",
			address: "Belo Horizonte",
			handler: func(w http.ResponseWriter, r *http.Request) {
				io.WriteString(w, `{"status":`)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := tt.handler
			if handler == nil {
				handler = func(w http.ResponseWriter, r *http.Request) {
					t.Error("upstream must not be called")
				}
			}
			c := newTestClient(t, tt.apiKey, handler)

			result, err := c.Geocode(context.Background(), tt.address)
			if result != nil {
				t.Errorf("result = %+v, want nil", result)
			}
			var lErr *domain.LookupError
			if !errors.As(err, &lErr) {
				t.Fatalf("Geocode() error = %v, want *domain.LookupError", err)
			}
			if tt.wantIs != nil && !errors.Is(err, tt.wantIs) {
				t.Errorf("error = %v, want errors.Is %v", err, tt.wantIs)
			}
		})
	}
}

func TestRedact(t *testing.T) {
	err := redact(errors.New(`Get "https://x/json?key=abc123": dial tcp`), "abc123")
	if strings.Contains(err.Error(), "abc123") {
		t.Errorf("secret leaked: %v", err)
	}
}
