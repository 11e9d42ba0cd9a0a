package explorer

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"kex/internal/modules/explorer/dto"
	explorerin "kex/internal/modules/explorer/port/in"
	explorerout "kex/internal/modules/explorer/port/out"
	historydto "kex/internal/modules/history/dto"
	topicsdto "kex/internal/modules/topics/dto"
	"kex/internal/ui/theme"
)

// ─── ports ───────────────────────────────────────────────────────────────────

type TopicPort interface {
	LearningPath(ctx context.Context, topic, level string) (topicsdto.LearningPathOutput, error)
	Summary(ctx context.Context, topic, level string) (topicsdto.SummaryOutput, error)
}

type HistoryPort interface {
	Record(ctx context.Context, topic string) error
	Suggest(ctx context.Context, input string, limit int) ([]historydto.Entry, error)
}

// ControllerFactory builds the navigation core on top of the view's loop.
type ControllerFactory func(explorerout.Scheduler, explorerout.Fetcher) explorerin.Explorer

type SuggestionsMsg struct {
	Input   string
	Entries []historydto.Entry
	Err     error
}

// RecordedMsg reports a search saved to history.
type RecordedMsg struct {
	Topic string
	Err   error
}

const maxSuggestions = 5

// ─── model ───────────────────────────────────────────────────────────────────

type Model struct {
	ctl     explorerin.Explorer
	loop    *loop
	history HistoryPort

	input       textinput.Model
	spinner     spinner.Model
	suggestions []historydto.Entry
	sugIdx      int
	selected    int
	recordNext  bool
	width       int
	height      int
}

func New(factory ControllerFactory, topics TopicPort, history HistoryPort) Model {
	l := &loop{topics: topics}

	ti := textinput.New()
	ti.Placeholder = "search a topic…"
	ti.CharLimit = 200
	ti.Prompt = "› "
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Green)

	return Model{
		ctl:     factory(l, l),
		loop:    l,
		history: history,
		input:   ti,
		spinner: sp,
		sugIdx:  -1,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick)
}

// Typing reports whether the search box has focus, in which case global
// key bindings must yield.
func (m Model) Typing() bool { return m.input.Focused() }

func (m Model) Snapshot() dto.Snapshot { return m.ctl.Snapshot() }

// Search starts a search for topic as if it had been typed.
func (m *Model) Search(topic string) tea.Cmd {
	if m.ctl.Search(topic) {
		m.recordNext = true
		m.selected = 0
		m.input.SetValue(topic)
		m.input.Blur()
		m.suggestions = nil
	}
	return m.loop.drain()
}

func (m *Model) SetLevel(level string) tea.Cmd {
	m.ctl.SetLevel(level)
	return m.loop.drain()
}

func (m *Model) Reset() tea.Cmd {
	m.ctl.Reset()
	m.selected = 0
	m.recordNext = false
	m.input.SetValue("")
	m.suggestions = nil
	return tea.Batch(m.loop.drain(), m.input.Focus())
}

// ─── update ──────────────────────────────────────────────────────────────────

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.Width = max(m.width-8, 10)

	case AlarmMsg:
		m.ctl.Fire(msg.Alarm)

	case PathLoadedMsg:
		m.ctl.ResolvePath(msg.Result)
		snap := m.ctl.Snapshot()
		m.selected = clamp(m.selected, len(snap.Entries))
		if m.recordNext && !snap.Loading {
			m.recordNext = false
			if snap.Err == nil && snap.Current != "" {
				cmds = append(cmds, m.recordCmd(snap.Current))
			}
		}

	case SummaryLoadedMsg:
		m.ctl.ResolveSummary(msg.Result)

	case SuggestionsMsg:
		if msg.Err == nil && msg.Input == m.input.Value() {
			m.suggestions = msg.Entries
			m.sugIdx = -1
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)

	case tea.KeyMsg:
		var cmd tea.Cmd
		if m.input.Focused() {
			m, cmd = m.updateInput(msg)
		} else {
			m, cmd = m.updateCards(msg)
		}
		cmds = append(cmds, cmd)

	default:
		if m.input.Focused() {
			var cmd tea.Cmd
			m.input, cmd = m.input.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	cmds = append(cmds, m.loop.drain())
	return m, tea.Batch(cmds...)
}

func (m Model) updateInput(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		text := m.input.Value()
		if m.sugIdx >= 0 && m.sugIdx < len(m.suggestions) {
			text = m.suggestions[m.sugIdx].Topic
		}
		cmd := m.Search(text)
		return m, cmd
	case "esc":
		m.input.Blur()
		m.suggestions = nil
		return m, nil
	case "down":
		if m.sugIdx < len(m.suggestions)-1 {
			m.sugIdx++
		}
		return m, nil
	case "up":
		if m.sugIdx >= 0 {
			m.sugIdx--
		}
		return m, nil
	}
	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if after := m.input.Value(); after != before {
		m.sugIdx = -1
		if strings.TrimSpace(after) == "" {
			m.suggestions = nil
		} else {
			cmd = tea.Batch(cmd, m.suggestCmd(after))
		}
	}
	return m, cmd
}

func (m Model) updateCards(msg tea.KeyMsg) (Model, tea.Cmd) {
	snap := m.ctl.Snapshot()
	switch key := msg.String(); key {
	case "/":
		return m, m.input.Focus()
	case "up", "k":
		if m.selected > 0 {
			m.selected--
		}
	case "down", "j":
		if m.selected < len(snap.Entries)-1 {
			m.selected++
		}
	case "enter":
		if entry, ok := m.selectedEntry(snap); ok && !entry.Main {
			if m.ctl.Explore(entry.Topic) {
				m.selected = 0
			}
		}
	case " ":
		if entry, ok := m.selectedEntry(snap); ok {
			m.ctl.ToggleSummary(entry.Topic)
		}
	case "left", "h":
		m.jump(snap.Cursor - 1)
	case "right", "l":
		m.jump(snap.Cursor + 1)
	case "1", "2", "3", "4", "5", "6", "7", "8", "9":
		n, _ := strconv.Atoi(key)
		m.jump(n - 1)
	}
	return m, nil
}

func (m *Model) jump(index int) {
	if m.ctl.JumpToBreadcrumb(index) {
		m.selected = 0
	}
}

func (m Model) selectedEntry(snap dto.Snapshot) (dto.Entry, bool) {
	if m.selected < 0 || m.selected >= len(snap.Entries) {
		return dto.Entry{}, false
	}
	return snap.Entries[m.selected], true
}

// ─── view ────────────────────────────────────────────────────────────────────

func (m Model) View() string {
	snap := m.ctl.Snapshot()

	var top strings.Builder
	top.WriteString(m.input.View() + "\n")
	if m.input.Focused() {
		for i, s := range m.suggestions {
			line := "  " + s.Topic
			if i == m.sugIdx {
				top.WriteString(theme.Hot.Render("▸ "+s.Topic) + "\n")
				continue
			}
			top.WriteString(theme.Muted.Render(line) + "\n")
		}
	}
	top.WriteString(m.renderTrail(snap) + "\n")
	header := top.String()

	bodyH := m.height - lipgloss.Height(header) - 1
	if bodyH < 3 {
		bodyH = 3
	}

	var body string
	switch {
	case snap.Loading:
		body = lipgloss.Place(m.width, bodyH, lipgloss.Center, lipgloss.Center,
			m.spinner.View()+" Loading learning path for "+snap.Pending+"…")
	case snap.Err != nil:
		body = theme.Error.Render("Error: " + snap.Err.Error())
	case len(snap.Entries) == 0:
		body = lipgloss.Place(m.width, bodyH, lipgloss.Center, lipgloss.Center,
			theme.Muted.Render("Search for a topic to begin exploring"))
	default:
		body = m.renderCards(snap, bodyH)
	}

	return header + "\n" + body
}

func (m Model) renderTrail(snap dto.Snapshot) string {
	level := theme.Muted.Render("level: " + snap.Level)
	if len(snap.Trail) == 0 {
		return theme.Muted.Render("no trail yet") + "  " + level
	}
	parts := make([]string, len(snap.Trail))
	for i, topic := range snap.Trail {
		label := fmt.Sprintf("%d %s", i+1, topic)
		if i == snap.Cursor {
			parts[i] = theme.Hot.Render(label)
		} else {
			parts[i] = theme.Muted.Render(label)
		}
	}
	return strings.Join(parts, theme.Muted.Render(" › ")) + "  " + level
}

func (m Model) renderCards(snap dto.Snapshot, height int) string {
	// Cards slide one step in the travel direction while a transition runs.
	indent := 2 + 2*snap.Offset
	cardW := max(m.width-indent-4, 20)

	blocks := make([]string, len(snap.Entries))
	for i, e := range snap.Entries {
		style := theme.Pane
		if i == m.selected {
			style = theme.PaneActive
		}
		if snap.Phase == "exit" {
			style = style.Faint(true)
		}
		blocks[i] = lipgloss.NewStyle().MarginLeft(indent).Render(style.Width(cardW).Render(renderEntry(e, cardW-2)))
	}
	return windowBlocks(blocks, m.selected, height)
}

func renderEntry(e dto.Entry, width int) string {
	wrap := lipgloss.NewStyle().Width(width)
	if e.Main {
		return theme.Title.Render(e.Topic) + "\n" + wrap.Render(e.Summary)
	}
	marker := "+ "
	if e.Expanded {
		marker = "− "
	}
	head := theme.Hot.Render(marker + e.Topic)
	if !e.Expanded {
		return head
	}
	switch {
	case e.SummaryLoading:
		return head + "\n" + theme.Muted.Render("Loading summary…")
	case e.SummaryErr != nil:
		return head + "\n" + theme.Error.Render("Error: "+e.SummaryErr.Error())
	case e.SummaryMissing:
		return head + "\n" + theme.Muted.Italic(true).Render(wrap.Render(e.Summary))
	}
	return head + "\n" + wrap.Render(e.Summary)
}

// windowBlocks keeps the selected block on screen, preferring to show the
// blocks before it.
func windowBlocks(blocks []string, selected, height int) string {
	if len(blocks) == 0 {
		return ""
	}
	selected = clamp(selected, len(blocks))
	start := selected
	used := lipgloss.Height(blocks[selected])
	for start > 0 && used+lipgloss.Height(blocks[start-1]) <= height {
		start--
		used += lipgloss.Height(blocks[start])
	}
	end := selected + 1
	for end < len(blocks) && used+lipgloss.Height(blocks[end]) <= height {
		used += lipgloss.Height(blocks[end])
		end++
	}
	return lipgloss.JoinVertical(lipgloss.Left, blocks[start:end]...)
}

func clamp(i, n int) int {
	if n == 0 || i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}

// ─── async commands ──────────────────────────────────────────────────────────

func (m Model) suggestCmd(input string) tea.Cmd {
	if m.history == nil {
		return nil
	}
	history := m.history
	return func() tea.Msg {
		entries, err := history.Suggest(context.Background(), input, maxSuggestions)
		return SuggestionsMsg{Input: input, Entries: entries, Err: err}
	}
}

func (m Model) recordCmd(topic string) tea.Cmd {
	if m.history == nil {
		return nil
	}
	history := m.history
	return func() tea.Msg {
		return RecordedMsg{Topic: topic, Err: history.Record(context.Background(), topic)}
	}
}
