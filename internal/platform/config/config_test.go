package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"kex/internal/platform/config"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.API.URL != "http://localhost:5000" {
		t.Fatalf("unexpected api url %q", cfg.API.URL)
	}
	if cfg.API.Retries != 1 {
		t.Fatalf("expected one transport retry, got %d", cfg.API.Retries)
	}
	if cfg.Explorer.ExitDelay != 300*time.Millisecond || cfg.Explorer.Debounce != 200*time.Millisecond || cfg.Explorer.EnterHold != 300*time.Millisecond {
		t.Fatalf("unexpected explorer timings %+v", cfg.Explorer)
	}
	if cfg.Cache.TTL != 24*time.Hour {
		t.Fatalf("unexpected cache ttl %s", cfg.Cache.TTL)
	}
	if filepath.Base(cfg.DataDir) != ".kex" {
		t.Fatalf("unexpected data dir %q", cfg.DataDir)
	}
	if cfg.NotesPath() != filepath.Join(cfg.DataDir, "notes") {
		t.Fatalf("unexpected notes path %q", cfg.NotesPath())
	}
}

func TestLoadFileAndEnvOverrides(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	path := filepath.Join(dir, "kex.yaml")
	body := "api:\n  url: http://example.test\n  retries: 3\nexplorer:\n  debounce: 50ms\ndata_dir: " + dir + "\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("KEX_API_RETRIES", "0")

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.API.URL != "http://example.test" {
		t.Fatalf("expected file url, got %q", cfg.API.URL)
	}
	if cfg.API.Retries != 0 {
		t.Fatalf("expected env override to win, got %d", cfg.API.Retries)
	}
	if cfg.Explorer.Debounce != 50*time.Millisecond {
		t.Fatalf("expected debounce from file, got %s", cfg.Explorer.Debounce)
	}
	if cfg.DBPath() != filepath.Join(dir, "kex.db") {
		t.Fatalf("unexpected db path %q", cfg.DBPath())
	}
}

func TestLoadMissingExplicitFileFails(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	if _, err := config.Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatalf("expected error for missing explicit config file")
	}
}
