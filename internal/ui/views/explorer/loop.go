package explorer

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"kex/internal/modules/explorer/domain"
	explorerout "kex/internal/modules/explorer/port/out"
)

// ─── messages ────────────────────────────────────────────────────────────────

// These messages must reach the explorer view even while another tab is
// active, otherwise a navigation never completes.

type AlarmMsg struct{ Alarm domain.Alarm }

type PathLoadedMsg struct{ Result domain.PathResult }

type SummaryLoadedMsg struct{ Result domain.SummaryResult }

// ─── loop bridge ─────────────────────────────────────────────────────────────

// loop turns the controller's timer and fetch requests into tea commands.
// The controller runs inside Update; whatever it asked for is drained into
// the command returned from that Update.
type loop struct {
	topics  TopicPort
	pending []tea.Cmd
}

var (
	_ explorerout.Scheduler = (*loop)(nil)
	_ explorerout.Fetcher   = (*loop)(nil)
)

func (l *loop) Schedule(after time.Duration, alarm domain.Alarm) {
	l.pending = append(l.pending, tea.Tick(after, func(time.Time) tea.Msg {
		return AlarmMsg{Alarm: alarm}
	}))
}

func (l *loop) FetchPath(req domain.PathRequest) {
	topics := l.topics
	l.pending = append(l.pending, func() tea.Msg {
		out, err := topics.LearningPath(context.Background(), req.Topic, req.Level)
		res := domain.PathResult{Seq: req.Seq, Err: err}
		if err == nil {
			res.Path = domain.LearningPath{Topic: out.Topic, Summary: out.Summary, Links: out.Links}
		}
		return PathLoadedMsg{Result: res}
	})
}

func (l *loop) FetchSummary(req domain.SummaryRequest) {
	topics := l.topics
	l.pending = append(l.pending, func() tea.Msg {
		out, err := topics.Summary(context.Background(), req.Topic, req.Level)
		return SummaryLoadedMsg{Result: domain.SummaryResult{
			Topic:   req.Topic,
			Level:   req.Level,
			Summary: out.Summary,
			Missing: out.Missing,
			Err:     err,
		}}
	})
}

func (l *loop) drain() tea.Cmd {
	if len(l.pending) == 0 {
		return nil
	}
	cmds := l.pending
	l.pending = nil
	return tea.Batch(cmds...)
}
