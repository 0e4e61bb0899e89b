package settings

import (
	"os"
	"path/filepath"
	"testing"

	"circular_platform/pkg/core/kpi"
)

func TestLoadFile_Missing(t *testing.T) {
	cfg, err := LoadFile(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("missing file should fall back to defaults: %v", err)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("expected port 8080, got %d", cfg.Server.Port)
	}
	if cfg.Targets != kpi.DefaultTargets() {
		t.Errorf("expected default targets, got %+v", cfg.Targets)
	}
}

func TestLoadFile_Overlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.yaml")
	data := []byte("organization: Eastside Makers\nserver:\n  port: 9090\ntargets:\n  recovery: 0.85\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	if cfg.Organization != "Eastside Makers" {
		t.Errorf("organization: got %q", cfg.Organization)
	}
	if cfg.Addr() != ":9090" {
		t.Errorf("addr: got %q", cfg.Addr())
	}
	if cfg.Targets.Recovery != 0.85 {
		t.Errorf("recovery target: got %v", cfg.Targets.Recovery)
	}
	if cfg.Targets.Yield != 0.92 {
		t.Errorf("unset targets keep defaults, got yield %v", cfg.Targets.Yield)
	}
	if cfg.Server.LogLevel != "info" {
		t.Errorf("unset log level keeps default, got %q", cfg.Server.LogLevel)
	}
}

func TestLoadFile_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.yaml")
	if err := os.WriteFile(path, []byte("server: [unclosed"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFile(path); err == nil {
		t.Error("expected parse error")
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("APP_CONFIG", filepath.Join(t.TempDir(), "absent.yaml"))
	t.Setenv("PORT", "7000")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Server.Port != 7000 || cfg.Server.LogLevel != "debug" {
		t.Errorf("env overrides not applied: %+v", cfg.Server)
	}

	t.Setenv("PORT", "eighty")
	if _, err := Load(); err == nil {
		t.Error("expected error for non-numeric PORT")
	}
}
