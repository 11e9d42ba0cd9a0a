package slug

import (
	"strings"
	"unicode"
)

const maxLen = 80

// Make turns a topic or host into a file-safe name. Letters and digits of
// any script are kept lowercased; every other run collapses to a dash.
func Make(input string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(strings.TrimSpace(input)) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if dash && b.Len() > 0 {
				b.WriteByte('-')
			}
			dash = false
			b.WriteRune(r)
			continue
		}
		dash = true
	}
	s := b.String()
	if len(s) > maxLen {
		s = strings.TrimRight(truncate(s, maxLen), "-")
	}
	if s == "" {
		return "untitled"
	}
	return s
}

// truncate cuts s to at most n bytes without splitting a rune.
func truncate(s string, n int) string {
	cut := 0
	for i := range s {
		if i > n {
			break
		}
		cut = i
	}
	return s[:cut]
}
