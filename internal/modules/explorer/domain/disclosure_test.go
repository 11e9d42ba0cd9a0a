package domain_test

import (
	"testing"

	"kex/internal/modules/explorer/domain"
)

func TestDisclosureToggle(t *testing.T) {
	t.Parallel()
	d := domain.Disclosure{}
	if !d.Toggle("Qubit") {
		t.Fatalf("first toggle of an unseen topic must expand it")
	}
	if d.Toggle("Qubit") {
		t.Fatalf("second toggle must collapse it")
	}
	if d.Expanded("Qubit") {
		t.Fatalf("expected collapsed")
	}
	d.Toggle("Entanglement")
	d.Clear()
	if d.Expanded("Entanglement") || len(d) != 0 {
		t.Fatalf("expected cleared map")
	}
}

func TestDisclosureOpenIsSorted(t *testing.T) {
	t.Parallel()
	d := domain.Disclosure{}
	d.Toggle("Qubit")
	d.Toggle("Entanglement")
	d.Toggle("Decoherence")
	d.Toggle("Decoherence")
	got := d.Open()
	if len(got) != 2 || got[0] != "Entanglement" || got[1] != "Qubit" {
		t.Fatalf("unexpected open topics %v", got)
	}
}
