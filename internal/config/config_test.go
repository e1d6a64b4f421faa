package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Storage.DatabaseFile != "places.db" {
		t.Errorf("Unexpected database file: %s", cfg.Storage.DatabaseFile)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("Unexpected log level: %s", cfg.Logging.Level)
	}
}

func TestLoadParsesYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
storage:
  data_dir: /tmp/pk
  database_file: custom.db
auth:
  base_url: https://auth.example.com
  timeout: 5s
logging:
  level: debug
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.DatabasePath() != "/tmp/pk/custom.db" {
		t.Errorf("Unexpected database path: %s", cfg.DatabasePath())
	}
	if cfg.Auth.BaseURL != "https://auth.example.com" {
		t.Errorf("Unexpected auth URL: %s", cfg.Auth.BaseURL)
	}
	if cfg.AuthTimeout() != 5*time.Second {
		t.Errorf("Unexpected timeout: %v", cfg.AuthTimeout())
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("PLACEKEEPER_DATA_DIR", "/data/pk")
	t.Setenv("PLACEKEEPER_AUTH_URL", "https://override.example.com")

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Storage.DataDir != "/data/pk" {
		t.Errorf("Expected env override for data dir, got %s", cfg.Storage.DataDir)
	}
	if cfg.Auth.BaseURL != "https://override.example.com" {
		t.Errorf("Expected env override for auth URL, got %s", cfg.Auth.BaseURL)
	}
}

func TestAuthTimeoutFallback(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Auth.Timeout = "not-a-duration"
	if cfg.AuthTimeout() != 30*time.Second {
		t.Errorf("Expected 30s fallback, got %v", cfg.AuthTimeout())
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := DefaultConfig()
	cfg.Logging.Level = "warn"

	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.Logging.Level != "warn" {
		t.Errorf("Expected 'warn', got %s", loaded.Logging.Level)
	}
}
