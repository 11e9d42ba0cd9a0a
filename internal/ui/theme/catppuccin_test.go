package theme

import "testing"

func TestApplySwitchesFlavour(t *testing.T) {
	Apply(false)
	if Dark() || Base != Latte.Base || Text != Latte.Text {
		t.Fatalf("expected latte colors, got base=%s text=%s", Base, Text)
	}
	Apply(true)
	if !Dark() || Base != Mocha.Base {
		t.Fatalf("expected mocha colors, got base=%s", Base)
	}
}
