package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_DefaultsWithoutEnvFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != 8011 || cfg.Transport != "http" || cfg.CatalogPath != "" {
		t.Fatalf("unexpected defaults %+v", cfg)
	}
}

func TestLoad_EnvFileAndEnvironment(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	data := "DIET_PLANNER_PORT=9090\nDIET_PLANNER_DB_PATH=/tmp/plans.db\nDIET_PLANNER_LOG_MODE=prod\n"
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	// Process environment wins over the file.
	t.Setenv("DIET_PLANNER_LOG_MODE", "dev")
	t.Cleanup(func() {
		os.Unsetenv("DIET_PLANNER_PORT")
		os.Unsetenv("DIET_PLANNER_DB_PATH")
	})

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != 9090 || cfg.DBPath != "/tmp/plans.db" {
		t.Fatalf("env file not applied: %+v", cfg)
	}
	if cfg.LogMode != "dev" {
		t.Fatalf("expected process env to win, got %q", cfg.LogMode)
	}
	if cfg.Addr() != "0.0.0.0:9090" {
		t.Fatalf("unexpected addr %q", cfg.Addr())
	}
}

func TestLoad_InvalidPort(t *testing.T) {
	t.Setenv("DIET_PLANNER_PORT", "eighty")
	if _, err := Load(filepath.Join(t.TempDir(), "missing.env")); err == nil {
		t.Fatalf("expected error for non-numeric port")
	}
}

func TestValidate(t *testing.T) {
	cfg := Defaults()
	cfg.Transport = "grpc"
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected error for unsupported transport")
	}
	cfg = Defaults()
	cfg.Port = 70000
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected error for port out of range")
	}
}

func TestValidate_Stdio(t *testing.T) {
	cfg := Defaults()
	cfg.Transport = "stdio"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("stdio should be accepted: %v", err)
	}
}
