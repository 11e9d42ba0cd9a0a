package domain_test

import (
	"testing"

	"kex/internal/modules/explorer/domain"
)

func TestGateRejectsAnyKindWhileHeld(t *testing.T) {
	t.Parallel()
	var g domain.NavigationGate
	if !g.TryAcquire(domain.NavSearch) {
		t.Fatalf("expected first acquire to succeed")
	}
	for _, kind := range []domain.NavKind{domain.NavSearch, domain.NavExplore, domain.NavBreadcrumb} {
		if g.TryAcquire(kind) {
			t.Fatalf("%s acquired while search in flight", kind)
		}
	}
	if kind, held := g.Held(); !held || kind != domain.NavSearch {
		t.Fatalf("expected search held, got %s/%v", kind, held)
	}
	g.Release(domain.NavExplore)
	if _, held := g.Held(); !held {
		t.Fatalf("release by a non-owner must not clear the gate")
	}
	g.Release(domain.NavSearch)
	if !g.TryAcquire(domain.NavExplore) {
		t.Fatalf("expected acquire after release")
	}
	g.Reset()
	if _, held := g.Held(); held {
		t.Fatalf("expected reset gate")
	}
}
