package domain

import (
	"fmt"
	"strings"
	"time"
)

// Markers delimiting the generated parts of an exported note. Text outside
// them belongs to the user and survives re-export.
const (
	ManagedSummaryStart = "<!-- kex:summary:start -->"
	ManagedSummaryEnd   = "<!-- kex:summary:end -->"
	ManagedLinksStart   = "<!-- kex:links:start -->"
	ManagedLinksEnd     = "<!-- kex:links:end -->"
)

// Note is a learning path rendered for export to a markdown file.
type Note struct {
	Path       LearningPath
	Level      Level
	ExportedAt time.Time
}

// LinksBlock renders the ordered link list.
func (n Note) LinksBlock() string {
	if len(n.Path.Links) == 0 {
		return "_No related topics._"
	}
	lines := make([]string, len(n.Path.Links))
	for i, link := range n.Path.Links {
		lines[i] = fmt.Sprintf("%d. %s", i+1, link)
	}
	return strings.Join(lines, "\n")
}

func (n Note) SummaryBlock() string {
	if strings.TrimSpace(n.Path.Summary) == "" {
		return NoSummary
	}
	return strings.TrimSpace(n.Path.Summary)
}
