package seed

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"eventsMap/internal/models/domain"
)

func TestLoadDefault(t *testing.T) {
	events, err := Load("")
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if len(events) != 5 {
		t.Fatalf("Load() returned %d events, want 5", len(events))
	}

	first := events[0]
	if first.Name != "Festival da Praça Central" {
		t.Errorf("first name = %q", first.Name)
	}
	if first.Address.Number != "100" || first.Address.CEP != "30140-110" {
		t.Errorf("first address = %+v", first.Address)
	}
	if first.Location == nil || first.Location.Lat != -19.9321 {
		t.Errorf("first location = %+v", first.Location)
	}
	for _, e := range events {
		if e.FinalDate.Before(e.InitialDate) {
			t.Errorf("%s: final date before initial date", e.Name)
		}
	}
}

func TestLoadFileRejectsInvalidEvent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.yaml")
	content := `events:
  - name: Broken
    description: ends before it starts
    initial_date: "2026-01-01T20:00:00.000Z"
    final_date: "2026-01-01T19:00:00.000Z"
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := Load(path)
	var vErr *domain.ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("Load() error = %v, want *domain.ValidationError", err)
	}
}

func TestLoadFileWithImage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.yaml")
	content := `events:
  - name: With image
    description: desc
    image_url: /uploads/seed-event-1.png
    initial_date: "2026-01-01T20:00:00.000Z"
    final_date: "2026-01-01T21:00:00.000Z"
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	events, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if len(events) != 1 || events[0].ImageURL != "/uploads/seed-event-1.png" || events[0].Location != nil {
		t.Errorf("Load() = %+v", events)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}
