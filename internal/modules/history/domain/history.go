package domain

import (
	"sort"
	"strings"
	"time"

	"github.com/agnivade/levenshtein"
)

type Entry struct {
	Topic    string
	Count    int
	LastUsed time.Time
}

const (
	maxSuggestDistance = 2
	minFuzzyInput      = 3
)

// Suggest ranks past searches for the typed input. Substring matches come
// first, most recent first, followed by entries whose prefix is within a
// small edit distance of the input. Fuzzy matching needs at least three
// characters of input.
func Suggest(entries []Entry, input string, limit int) []Entry {
	needle := strings.ToLower(strings.TrimSpace(input))
	if needle == "" || limit <= 0 {
		return nil
	}
	sorted := append([]Entry(nil), entries...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].LastUsed.After(sorted[j].LastUsed) })

	var exact []Entry
	type near struct {
		entry Entry
		dist  int
	}
	var fuzzy []near
	for _, e := range sorted {
		topic := strings.ToLower(e.Topic)
		if strings.Contains(topic, needle) {
			exact = append(exact, e)
			continue
		}
		if len([]rune(needle)) < minFuzzyInput {
			continue
		}
		if d := levenshtein.ComputeDistance(needle, runePrefix(topic, len([]rune(needle)))); d <= maxSuggestDistance {
			fuzzy = append(fuzzy, near{entry: e, dist: d})
		}
	}
	sort.SliceStable(fuzzy, func(i, j int) bool { return fuzzy[i].dist < fuzzy[j].dist })

	out := make([]Entry, 0, limit)
	for _, e := range exact {
		if len(out) == limit {
			return out
		}
		out = append(out, e)
	}
	for _, n := range fuzzy {
		if len(out) == limit {
			return out
		}
		out = append(out, n.entry)
	}
	return out
}

func runePrefix(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
