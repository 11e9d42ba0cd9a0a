package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSanitizeRedactsSecrets(t *testing.T) {
	t.Parallel()
	out := sanitizeKVs([]interface{}{"user", "ada", "Password", "hunter2", "dangling"})
	if len(out) != 5 {
		t.Fatalf("expected 5 values, got %d", len(out))
	}
	if out[1] != "ada" {
		t.Fatalf("expected user untouched, got %v", out[1])
	}
	if out[3] != "[REDACTED]" {
		t.Fatalf("expected password redacted, got %v", out[3])
	}
	if out[4] != "dangling" {
		t.Fatalf("expected trailing key kept, got %v", out[4])
	}
}

func TestNewWritesToFile(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "logs", "kex.log")
	log, err := New("prod", path)
	if err != nil {
		t.Fatalf("new logger: %v", err)
	}
	log.Info("hello", "topic", "Go")
	log.Sync()
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(b), `"topic":"Go"`) {
		t.Fatalf("expected structured field in log, got %s", b)
	}
}
