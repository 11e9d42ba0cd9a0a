package slug

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestMake(t *testing.T) {
	t.Parallel()
	cases := map[string]string{
		"Go (programming language)": "go-programming-language",
		"  localhost:5000 ":         "localhost-5000",
		"Théorie des ensembles":     "théorie-des-ensembles",
		"???":                       "untitled",
		"":                          "untitled",
	}
	for in, want := range cases {
		if got := Make(in); got != want {
			t.Errorf("Make(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestMakeCapsLengthOnRuneBoundary(t *testing.T) {
	t.Parallel()
	got := Make(strings.Repeat("é", 100))
	if len(got) > maxLen || !utf8.ValidString(got) {
		t.Fatalf("unexpected slug %q (%d bytes)", got, len(got))
	}
}
