package markdown

import (
	"strings"
	"testing"
)

func TestParseWithoutFrontmatter(t *testing.T) {
	t.Parallel()
	doc, err := Parse("# Title\n\nbody\n")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(doc.Meta) != 0 || doc.Body != "# Title\n\nbody\n" {
		t.Fatalf("unexpected document %+v", doc)
	}
}

func TestParseRejectsUnterminatedFrontmatter(t *testing.T) {
	t.Parallel()
	if _, err := Parse("---\ntopic: Go\n# body"); err == nil {
		t.Fatalf("expected error for missing closing fence")
	}
}

func TestRoundTripKeepsUserText(t *testing.T) {
	t.Parallel()
	doc, err := Parse("---\ntopic: Go\nrating: 5\n---\n\n# Go\n\nmy notes\n")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if doc.Meta["rating"] != 5 {
		t.Fatalf("expected rating preserved, got %#v", doc.Meta["rating"])
	}
	doc.Merge(map[string]any{"level": "basic"})
	doc.SetBlock("<!-- a -->", "<!-- /a -->", "1. C")

	out, err := doc.Render()
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	for _, want := range []string{"rating: 5", "level: basic", "my notes", "<!-- a -->\n1. C\n<!-- /a -->"} {
		if !strings.Contains(out, want) {
			t.Fatalf("rendered note missing %q:\n%s", want, out)
		}
	}

	again, err := Parse(out)
	if err != nil {
		t.Fatalf("reparse: %v", err)
	}
	again.SetBlock("<!-- a -->", "<!-- /a -->", "1. Rust")
	if strings.Contains(again.Body, "1. C\n") || strings.Count(again.Body, "<!-- a -->") != 1 {
		t.Fatalf("expected block replaced in place:\n%s", again.Body)
	}
}
