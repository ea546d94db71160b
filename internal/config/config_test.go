package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	content := `env: dev
httpServer:
  address: 0.0.0.0
  port: "9090"
db:
  driver: sqlite
  path: /tmp/events.sqlite
lookup:
  geocoding:
    apiKey: from-file
    timeout: 2s
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Env != "dev" {
		t.Errorf("Env = %q, want dev", cfg.Env)
	}
	if cfg.HttpServer.Port != "9090" {
		t.Errorf("Port = %q, want 9090", cfg.HttpServer.Port)
	}
	if cfg.DBConfig.DSN() != "/tmp/events.sqlite" {
		t.Errorf("DSN() = %q, want sqlite path", cfg.DBConfig.DSN())
	}
	if cfg.LookupConfig.Geocoding.Timeout != 2*time.Second {
		t.Errorf("geocoding timeout = %v, want 2s", cfg.LookupConfig.Geocoding.Timeout)
	}
	if cfg.LookupConfig.ViaCEP.BaseURL != "https://viacep.com.br/ws" {
		t.Errorf("viacep base url default not applied: %q", cfg.LookupConfig.ViaCEP.BaseURL)
	}
	if cfg.UploadConfig.PublicPrefix != "/uploads" {
		t.Errorf("PublicPrefix = %q, want /uploads", cfg.UploadConfig.PublicPrefix)
	}
	if cfg.Path() != path {
		t.Errorf("Path() = %q, want %q", cfg.Path(), path)
	}
}

func TestLoadEnvOnly(t *testing.T) {
	t.Setenv("GOOGLE_MAPS_API_KEY", "secret-key")
	t.Setenv("DB_DRIVER", "postgres")
	t.Setenv("DB_HOST", "db")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.LookupConfig.Geocoding.APIKey != "secret-key" {
		t.Errorf("APIKey = %q, want secret-key", cfg.LookupConfig.Geocoding.APIKey)
	}
	want := "host=db port=5432 user=user password=password dbname=postgres sslmode=disable"
	if cfg.DBConfig.DSN() != want {
		t.Errorf("DSN() = %q, want %q", cfg.DBConfig.DSN(), want)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing config file")
	}
}
