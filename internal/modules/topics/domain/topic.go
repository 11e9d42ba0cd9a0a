package domain

import (
	"fmt"
	"strings"
)

type Level string

const (
	LevelBasic        Level = "basic"
	LevelIntermediate Level = "intermediate"
	LevelAdvanced     Level = "advanced"
)

var Levels = []Level{LevelBasic, LevelIntermediate, LevelAdvanced}

func ParseLevel(raw string) (Level, error) {
	switch lvl := Level(strings.ToLower(strings.TrimSpace(raw))); lvl {
	case LevelBasic, LevelIntermediate, LevelAdvanced:
		return lvl, nil
	}
	return "", fmt.Errorf("invalid level %q: want basic, intermediate or advanced", raw)
}

// LinkLimit is how many related topics a learning path carries per level.
func (l Level) LinkLimit() int {
	switch l {
	case LevelIntermediate:
		return 8
	case LevelAdvanced:
		return 10
	}
	return 6
}

const NoSummary = "No summary available."

type LearningPath struct {
	Topic   string   `json:"topic"`
	Summary string   `json:"summary"`
	Links   []string `json:"links"`
}

// Normalize fills the fields a backend leaves out. Only absent (empty)
// values are replaced; a blank summary is passed through as sent.
func Normalize(requested string, raw LearningPath) LearningPath {
	out := raw
	if out.Topic == "" {
		out.Topic = requested
	}
	if out.Summary == "" {
		out.Summary = NoSummary
	}
	if out.Links == nil {
		out.Links = []string{}
	}
	return out
}

// SummaryMissing reports a summary that exists but says there is nothing to
// show. It is informational, not a failure.
func SummaryMissing(summary string) bool {
	return strings.Contains(strings.ToLower(summary), "not available")
}

// TransportError is a failed exchange with the topic backend.
type TransportError struct {
	Status  int
	Message string
}

func (e *TransportError) Error() string {
	if e.Status == 0 {
		return e.Message
	}
	return fmt.Sprintf("%s (status %d)", e.Message, e.Status)
}

// Retryable reports failures worth one more attempt: network errors and
// server-side faults.
func (e *TransportError) Retryable() bool {
	return e.Status == 0 || e.Status >= 500
}
