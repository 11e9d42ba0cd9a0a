package app

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	accountdto "kex/internal/modules/account/dto"
	"kex/internal/modules/explorer/domain"
	explorerin "kex/internal/modules/explorer/port/in"
	explorerout "kex/internal/modules/explorer/port/out"
	"kex/internal/modules/explorer/service"
	historydto "kex/internal/modules/history/dto"
	prefsdto "kex/internal/modules/prefs/dto"
	topicsdto "kex/internal/modules/topics/dto"
	apperrors "kex/internal/platform/errors"
	"kex/internal/platform/logger"
	"kex/internal/ui/components"
)

type stubTopics struct{ cleared bool }

func (s *stubTopics) LearningPath(_ context.Context, topic, level string) (topicsdto.LearningPathOutput, error) {
	return topicsdto.LearningPathOutput{Topic: topic, Level: level, Summary: "s", Links: []string{"x"}}, nil
}
func (s *stubTopics) Summary(_ context.Context, topic, level string) (topicsdto.SummaryOutput, error) {
	return topicsdto.SummaryOutput{Topic: topic, Level: level, Summary: "s"}, nil
}
func (s *stubTopics) ExportNote(_ context.Context, topic, _ string) (topicsdto.NoteOutput, error) {
	return topicsdto.NoteOutput{Topic: topic, Path: "/tmp/" + topic + ".md"}, nil
}
func (s *stubTopics) ClearCache(context.Context) error {
	s.cleared = true
	return nil
}

type stubHistory struct{}

func (stubHistory) Record(context.Context, string) error { return nil }
func (stubHistory) Suggest(context.Context, string, int) ([]historydto.Entry, error) {
	return nil, nil
}
func (stubHistory) Clear(context.Context) error { return nil }

type stubAccount struct{}

func (stubAccount) Login(_ context.Context, username, _ string) (accountdto.UserOutput, error) {
	return accountdto.UserOutput{Username: username}, nil
}
func (stubAccount) Logout(context.Context) error { return nil }
func (stubAccount) Me(context.Context) (accountdto.UserOutput, error) {
	return accountdto.UserOutput{}, apperrors.ErrUnauthorized
}
func (stubAccount) ListUsers(context.Context) ([]accountdto.UserOutput, error) {
	return nil, apperrors.ErrUnauthorized
}

type stubPrefs struct{ p prefsdto.Preferences }

func (s *stubPrefs) SetDarkMode(_ context.Context, dark bool) (prefsdto.Preferences, error) {
	s.p.DarkMode = dark
	return s.p, nil
}
func (s *stubPrefs) SetLevel(_ context.Context, level string) (prefsdto.Preferences, error) {
	s.p.Level = level
	return s.p, nil
}

func newTestModel(topics *stubTopics) Model {
	factory := func(s explorerout.Scheduler, f explorerout.Fetcher) explorerin.Explorer {
		return service.NewController(s, f, domain.Timings{}, "basic", logger.Nop())
	}
	initial := prefsdto.Preferences{DarkMode: true, Level: "basic"}
	m := NewModel(factory, topics, stubHistory{}, stubAccount{}, &stubPrefs{p: initial}, initial)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return next.(Model)
}

// submit runs a palette command and feeds back the message of the command
// it returns.
func submit(t *testing.T, m Model, input string) Model {
	t.Helper()
	next, cmd := m.Update(components.PaletteSubmitMsg{Input: input})
	m = next.(Model)
	if cmd == nil {
		return m
	}
	next, _ = m.Update(cmd())
	return next.(Model)
}

func TestPaletteLevelUpdatesExplorer(t *testing.T) {
	m := submit(t, newTestModel(&stubTopics{}), "level:set advanced")
	if got := m.explorerView.Snapshot().Level; got != "advanced" {
		t.Fatalf("expected explorer level advanced, got %q", got)
	}
	if !strings.Contains(m.status, "advanced") {
		t.Fatalf("unexpected status %q", m.status)
	}
}

func TestPaletteThemeAndCache(t *testing.T) {
	m := newTestModel(&stubTopics{})
	m = submit(t, m, "theme:toggle")
	if m.darkMode {
		t.Fatalf("expected light theme after toggle")
	}
	topics := &stubTopics{}
	m = submit(t, newTestModel(topics), "cache:clear")
	if !topics.cleared || m.status != "cache cleared" {
		t.Fatalf("expected cache to be cleared, status %q", m.status)
	}
}

func TestLoginSubmit(t *testing.T) {
	m := newTestModel(&stubTopics{})
	next, cmd := m.Update(components.LoginSubmitMsg{Username: "ada", Password: "pw"})
	m = next.(Model)
	next, _ = m.Update(cmd())
	m = next.(Model)
	if m.user != "ada" || !strings.Contains(m.View(), "ada") {
		t.Fatalf("expected logged in user in status bar, got %q", m.user)
	}
}

func TestUnknownPaletteCommand(t *testing.T) {
	m := submit(t, newTestModel(&stubTopics{}), "nope")
	if m.status != "unknown command: nope" {
		t.Fatalf("unexpected status %q", m.status)
	}
}

func TestNoteExportNeedsCurrentTopic(t *testing.T) {
	m := submit(t, newTestModel(&stubTopics{}), "note:export")
	if m.status != "nothing to export" {
		t.Fatalf("unexpected status %q", m.status)
	}
}

func TestNoteExportedStatus(t *testing.T) {
	m := newTestModel(&stubTopics{})
	next, _ := m.Update(noteExportedMsg{out: topicsdto.NoteOutput{Topic: "Go", Path: "/n/go.md", Links: 3}})
	m = next.(Model)
	if m.status != "exported Go (3 links) to /n/go.md" {
		t.Fatalf("unexpected status %q", m.status)
	}
}
