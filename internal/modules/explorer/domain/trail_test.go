package domain_test

import (
	"reflect"
	"testing"

	"kex/internal/modules/explorer/domain"
)

func TestTrailPushPrunesAbandonedBranch(t *testing.T) {
	t.Parallel()
	tr := domain.NewTrail()
	for _, topic := range []string{"A", "B", "C"} {
		tr.Push(topic)
	}
	if !tr.MoveTo(0) {
		t.Fatalf("expected move to 0")
	}
	tr.Push("D")
	if got := tr.Entries(); !reflect.DeepEqual(got, []string{"A", "D"}) {
		t.Fatalf("expected [A D], got %v", got)
	}
	if tr.Cursor() != 1 {
		t.Fatalf("expected cursor 1, got %d", tr.Cursor())
	}
}

func TestTrailPushDoesNotAliasEntries(t *testing.T) {
	t.Parallel()
	tr := domain.NewTrail()
	tr.Push("A")
	tr.Push("B")
	snapshot := tr.Entries()
	tr.MoveTo(0)
	tr.Push("C")
	if !reflect.DeepEqual(snapshot, []string{"A", "B"}) {
		t.Fatalf("earlier snapshot was mutated: %v", snapshot)
	}
}

func TestTrailSeedOnlyWhenEmpty(t *testing.T) {
	t.Parallel()
	tr := domain.NewTrail()
	if tr.Cursor() != -1 || tr.Len() != 0 {
		t.Fatalf("expected empty trail with cursor -1")
	}
	if !tr.Seed("Go") {
		t.Fatalf("expected seed on empty trail")
	}
	if tr.Seed("Rust") {
		t.Fatalf("seed must not overwrite a non-empty trail")
	}
	if active, ok := tr.Active(); !ok || active != "Go" || tr.Cursor() != 0 {
		t.Fatalf("expected active Go at 0, got %q/%d", active, tr.Cursor())
	}
	tr.Clear()
	if tr.Cursor() != -1 || tr.Len() != 0 {
		t.Fatalf("expected cleared trail")
	}
}

func TestTrailMoveToOutOfRange(t *testing.T) {
	t.Parallel()
	tr := domain.NewTrail()
	tr.Push("A")
	for _, idx := range []int{-1, 1, 5} {
		if tr.MoveTo(idx) {
			t.Fatalf("move to %d should be rejected", idx)
		}
	}
	if tr.Cursor() != 0 {
		t.Fatalf("cursor moved on rejected index: %d", tr.Cursor())
	}
	if _, ok := tr.At(3); ok {
		t.Fatalf("expected At out of range to fail")
	}
}
