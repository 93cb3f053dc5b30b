package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadFullConfig(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 9090
ayna:
  baseURLs:
    - http://127.0.0.1:8010/ayna
    - https://map.ayna.az
  timeoutMS: 5000
  listCacheTTLSeconds: 300
  detailsCacheTTLSeconds: 90
  detailsBatchSize: 20
analytics:
  csvURL: https://example.com/checkins.csv
refresh:
  routeIntervalMS: 60000
language: az
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("port = %d, want 9090", cfg.Server.Port)
	}
	if len(cfg.Ayna.BaseURLs) != 2 {
		t.Errorf("baseURLs = %v, want 2 entries", cfg.Ayna.BaseURLs)
	}
	if cfg.Ayna.DetailsCacheTTLSeconds != 90 {
		t.Errorf("detailsCacheTTLSeconds = %d, want 90", cfg.Ayna.DetailsCacheTTLSeconds)
	}
	if cfg.Language != "az" {
		t.Errorf("language = %q, want az", cfg.Language)
	}
}

func TestLoadDefaultsPort(t *testing.T) {
	path := writeConfig(t, "analytics:\n  csvURL: https://example.com/c.csv\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != defaultPort {
		t.Errorf("port = %d, want %d", cfg.Server.Port, defaultPort)
	}
}

func TestLoadRejectsBadLanguage(t *testing.T) {
	path := writeConfig(t, "server:\n  port: 8080\nlanguage: de\n")

	if _, err := Load(path); err == nil {
		t.Fatal("expected validation error for unsupported language")
	}
}

func TestLoadRejectsBadURL(t *testing.T) {
	path := writeConfig(t, "server:\n  port: 8080\nayna:\n  baseURLs: [\"not a url\"]\n")

	if _, err := Load(path); err == nil {
		t.Fatal("expected validation error for malformed base URL")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Server.Port != defaultPort {
		t.Errorf("port = %d, want %d", cfg.Server.Port, defaultPort)
	}
	if cfg.Language != "en" {
		t.Errorf("language = %q, want en", cfg.Language)
	}
}
