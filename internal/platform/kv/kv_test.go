package kv

import (
	"sort"
	"testing"
)

func TestStoreRoundTrip(t *testing.T) {
	t.Parallel()
	s := Open(t.TempDir())

	if _, ok, err := s.Get("prefs-theme"); err != nil || ok {
		t.Fatalf("expected miss, ok=%v err=%v", ok, err)
	}
	if err := s.Put("prefs-theme", []byte("dark")); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := s.Put("prefs-level", []byte("advanced")); err != nil {
		t.Fatalf("put: %v", err)
	}
	val, ok, err := s.Get("prefs-theme")
	if err != nil || !ok || string(val) != "dark" {
		t.Fatalf("unexpected value %q ok=%v err=%v", val, ok, err)
	}

	keys := s.Keys("prefs")
	sort.Strings(keys)
	if len(keys) != 2 || keys[0] != "prefs-level" || keys[1] != "prefs-theme" {
		t.Fatalf("unexpected keys %v", keys)
	}

	if err := s.Delete("prefs-theme"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := s.Delete("prefs-theme"); err != nil {
		t.Fatalf("deleting a missing key must be a no-op: %v", err)
	}
	if _, ok, _ := s.Get("prefs-theme"); ok {
		t.Fatalf("expected miss after delete")
	}
}
