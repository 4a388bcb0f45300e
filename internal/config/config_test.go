package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Source != "en" || cfg.Target != "ja" || cfg.Endpoint != "" {
		t.Errorf("unexpected defaults %+v", cfg)
	}
	if cfg.Service != ServiceWeb {
		t.Errorf("expected %q, got %q", ServiceWeb, cfg.Service)
	}
	if cfg.Timeout != 30*time.Second {
		t.Errorf("expected 30s timeout, got %v", cfg.Timeout)
	}
}

func TestLoad_DefaultFile(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	path := filepath.Join(dir, "denops_translate", "config.yaml")
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	data := "source: de\ntarget: en\nendpoint: https://api-free.deepl.com/v2/translate\ntimeout: 5s\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Source != "de" || cfg.Target != "en" {
		t.Errorf("expected de->en, got %s->%s", cfg.Source, cfg.Target)
	}
	if cfg.Endpoint != "https://api-free.deepl.com/v2/translate" {
		t.Errorf("unexpected endpoint %q", cfg.Endpoint)
	}
	if cfg.Timeout != 5*time.Second {
		t.Errorf("expected 5s, got %v", cfg.Timeout)
	}
}

func TestLoad_Env(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("TRANSLATE_TARGET", "fr")
	t.Setenv("TRANSLATE_SERVICE", "mymemory")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Target != "fr" {
		t.Errorf("expected target from env, got %q", cfg.Target)
	}
	if cfg.Service != ServiceMyMemory {
		t.Errorf("expected service from env, got %q", cfg.Service)
	}
}

func TestLoad_ExplicitMissing(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing explicit config")
	}
}

func TestLoad_UnknownService(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("service: babelfish\n"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); err == nil {
		t.Error("expected error for unknown service")
	}
}

func TestConfig_AuthKeyPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/xdg")

	cfg := &Config{}
	got, err := cfg.AuthKeyPath()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != filepath.Join("/xdg", "denops_translate", "deepl_authkey") {
		t.Errorf("unexpected default path %q", got)
	}

	cfg.AuthKeyFile = "/run/secrets/deepl"
	if got, _ := cfg.AuthKeyPath(); got != "/run/secrets/deepl" {
		t.Errorf("expected configured path, got %q", got)
	}
}
