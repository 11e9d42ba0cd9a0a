package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	accountdto "kex/internal/modules/account/dto"
	historydto "kex/internal/modules/history/dto"
	prefsdto "kex/internal/modules/prefs/dto"
	topicsdto "kex/internal/modules/topics/dto"
	apperrors "kex/internal/platform/errors"
	"kex/internal/ui/components"
	"kex/internal/ui/theme"
	adminview "kex/internal/ui/views/admin"
	explorerview "kex/internal/ui/views/explorer"
)

// ─── ports ───────────────────────────────────────────────────────────────────
// Each port is the minimal interface that this orchestration layer requires.
// Sub-view ports are defined in their own packages and narrowed further.

type topicsPort interface {
	LearningPath(ctx context.Context, topic, level string) (topicsdto.LearningPathOutput, error)
	Summary(ctx context.Context, topic, level string) (topicsdto.SummaryOutput, error)
	ExportNote(ctx context.Context, topic, level string) (topicsdto.NoteOutput, error)
	ClearCache(ctx context.Context) error
}

type historyPort interface {
	Record(ctx context.Context, topic string) error
	Suggest(ctx context.Context, input string, limit int) ([]historydto.Entry, error)
	Clear(ctx context.Context) error
}

type accountPort interface {
	Login(ctx context.Context, username, password string) (accountdto.UserOutput, error)
	Logout(ctx context.Context) error
	Me(ctx context.Context) (accountdto.UserOutput, error)
	ListUsers(ctx context.Context) ([]accountdto.UserOutput, error)
}

type prefsPort interface {
	SetDarkMode(ctx context.Context, dark bool) (prefsdto.Preferences, error)
	SetLevel(ctx context.Context, level string) (prefsdto.Preferences, error)
}

// ─── tab index ───────────────────────────────────────────────────────────────

type tabID int

const (
	tabExplorer tabID = iota
	tabAdmin
	tabCount
)

var tabLabels = [tabCount]string{"Explorer", "Admin"}

// ─── async messages ──────────────────────────────────────────────────────────

type loggedInMsg struct {
	user accountdto.UserOutput
	err  error
}

type loggedOutMsg struct{ err error }

type whoamiMsg struct {
	user accountdto.UserOutput
	err  error
}

type prefsSavedMsg struct {
	prefs prefsdto.Preferences
	err   error
}

type clearedMsg struct {
	what string
	err  error
}

type noteExportedMsg struct {
	out topicsdto.NoteOutput
	err error
}

// ─── key bindings ────────────────────────────────────────────────────────────

type keyMap struct {
	Tab     key.Binding
	Help    key.Binding
	Palette key.Binding
	Quit    key.Binding
	Search  key.Binding
	Explore key.Binding
	Toggle  key.Binding
	Trail   key.Binding
	Reset   key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Tab:     key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next tab")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Palette: key.NewBinding(key.WithKeys(":"), key.WithHelp(":", "palette")),
		Quit:    key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
		Search:  key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		Explore: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "explore topic")),
		Toggle:  key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "toggle summary")),
		Trail:   key.NewBinding(key.WithKeys("left", "right"), key.WithHelp("←/→ 1-9", "breadcrumb")),
		Reset:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reset / refresh")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Tab, k.Help, k.Palette, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Search, k.Explore, k.Toggle},
		{k.Trail, k.Reset},
		{k.Tab, k.Help, k.Palette, k.Quit},
	}
}

// ─── model ───────────────────────────────────────────────────────────────────

// Model is the root Bubble Tea model. It owns tab routing, the help overlay,
// the command palette and the login form. Navigation state lives in the
// explorer view; everything else is delegated to ports.
type Model struct {
	topics  topicsPort
	history historyPort
	account accountPort
	prefs   prefsPort

	explorerView explorerview.Model
	adminView    adminview.Model

	activeTab tabID
	keys      keyMap
	help      help.Model
	showHelp  bool
	palette   components.Palette
	login     components.LoginForm
	darkMode  bool
	user      string
	status    string
	width     int
	height    int
}

func NewModel(
	factory explorerview.ControllerFactory,
	topics topicsPort,
	history historyPort,
	account accountPort,
	prefs prefsPort,
	initial prefsdto.Preferences,
) Model {
	theme.Apply(initial.DarkMode)
	var users adminview.UsersPort
	if account != nil {
		users = account
	}
	return Model{
		topics:       topics,
		history:      history,
		account:      account,
		prefs:        prefs,
		explorerView: explorerview.New(factory, topics, history),
		adminView:    adminview.New(users),
		activeTab:    tabExplorer,
		keys:         defaultKeys(),
		help:         help.New(),
		palette:      components.NewPalette(),
		login:        components.NewLoginForm(),
		darkMode:     initial.DarkMode,
		status:       "ready",
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.explorerView.Init(),
		m.adminView.Init(),
		m.whoamiCmd(),
	)
}

// ─── update ──────────────────────────────────────────────────────────────────

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	// The explorer's timers and fetch results must land even while another
	// tab is shown.
	switch msg.(type) {
	case explorerview.AlarmMsg, explorerview.PathLoadedMsg, explorerview.SummaryLoadedMsg,
		explorerview.SuggestionsMsg, spinner.TickMsg:
		var cmd tea.Cmd
		m.explorerView, cmd = m.explorerView.Update(msg)
		return m, cmd
	case explorerview.RecordedMsg:
		if err := msg.(explorerview.RecordedMsg).Err; err != nil {
			m.status = "history: " + err.Error()
		}
		return m, nil
	case adminview.UsersLoadedMsg:
		var cmd tea.Cmd
		m.adminView, cmd = m.adminView.Update(msg)
		return m, cmd
	}

	// Overlays intercept all input while open.
	if m.palette.Visible() {
		var cmd tea.Cmd
		m.palette, cmd = m.palette.Update(msg)
		return m, cmd
	}
	if m.login.Visible() {
		var cmd tea.Cmd
		m.login, cmd = m.login.Update(msg)
		return m, cmd
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.palette.SetWidth(min(m.width-4, 80))
		m.login.SetWidth(min(m.width-4, 56))
		m.help.Width = m.width
		m.propagateSize()

	case loggedInMsg:
		if msg.err != nil {
			m.status = "login failed: " + msg.err.Error()
			return m, nil
		}
		m.user = msg.user.Username
		m.status = "logged in as " + msg.user.Username
		return m, m.adminView.Refresh()

	case loggedOutMsg:
		if msg.err != nil && !errors.Is(msg.err, apperrors.ErrUnauthorized) {
			m.status = "logout failed: " + msg.err.Error()
			return m, nil
		}
		m.user = ""
		m.status = "logged out"
		return m, m.adminView.Refresh()

	case whoamiMsg:
		if msg.err == nil {
			m.user = msg.user.Username
		} else {
			m.user = ""
		}

	case prefsSavedMsg:
		if msg.err != nil {
			m.status = "preferences: " + msg.err.Error()
			return m, nil
		}
		if msg.prefs.DarkMode != m.darkMode {
			m.darkMode = msg.prefs.DarkMode
			theme.Apply(m.darkMode)
		}
		m.status = fmt.Sprintf("level %s, %s theme", msg.prefs.Level, themeName(m.darkMode))
		return m, m.explorerView.SetLevel(msg.prefs.Level)

	case clearedMsg:
		if msg.err != nil {
			m.status = msg.what + ": " + msg.err.Error()
		} else {
			m.status = msg.what + " cleared"
		}

	case noteExportedMsg:
		if msg.err != nil {
			m.status = "export: " + msg.err.Error()
		} else {
			m.status = fmt.Sprintf("exported %s (%d links) to %s", msg.out.Topic, msg.out.Links, msg.out.Path)
		}

	case components.PaletteSubmitMsg:
		return m.executePalette(msg.Input)

	case components.PaletteCancelMsg:
		m.status = "ready"

	case components.LoginSubmitMsg:
		m.status = "logging in…"
		return m, m.loginCmd(msg.Username, msg.Password)

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.showHelp {
			if msg.String() == "?" || msg.String() == "esc" {
				m.showHelp = false
			}
			return m, nil
		}

		// Yield to the search box while the user is typing.
		if m.activeTab == tabExplorer && m.explorerView.Typing() {
			break
		}

		switch msg.String() {
		case "q":
			return m, tea.Quit
		case "tab":
			m.activeTab = (m.activeTab + 1) % tabCount
			return m, nil
		case "shift+tab":
			m.activeTab = (m.activeTab + tabCount - 1) % tabCount
			return m, nil
		case "?":
			m.showHelp = !m.showHelp
			return m, nil
		case ":":
			return m, m.palette.Open()
		case "r":
			if m.activeTab == tabExplorer {
				m.status = "explorer reset"
				return m, m.explorerView.Reset()
			}
		}
	}

	// Propagate the message to the active tab's sub-view.
	var tabCmd tea.Cmd
	switch m.activeTab {
	case tabExplorer:
		m.explorerView, tabCmd = m.explorerView.Update(msg)
	case tabAdmin:
		m.adminView, tabCmd = m.adminView.Update(msg)
	}
	cmds = append(cmds, tabCmd)

	return m, tea.Batch(cmds...)
}

// ─── view ────────────────────────────────────────────────────────────────────

func (m Model) View() string {
	tabBar := m.renderTabBar()
	statusBar := m.renderStatusBar()
	contentH := m.height - lipgloss.Height(tabBar) - lipgloss.Height(statusBar)
	if contentH < 1 {
		contentH = 1
	}

	var content string
	switch {
	case m.showHelp:
		content = lipgloss.NewStyle().Width(m.width).Height(contentH).
			Render(m.help.View(m.keys))
	case m.palette.Visible():
		content = lipgloss.Place(m.width, contentH,
			lipgloss.Center, lipgloss.Center, m.palette.View())
	case m.login.Visible():
		content = lipgloss.Place(m.width, contentH,
			lipgloss.Center, lipgloss.Center, m.login.View())
	default:
		content = lipgloss.NewStyle().Height(contentH).Render(m.activeView())
	}

	return lipgloss.JoinVertical(lipgloss.Left, tabBar, content, statusBar)
}

func (m Model) activeView() string {
	switch m.activeTab {
	case tabExplorer:
		return m.explorerView.View()
	case tabAdmin:
		return m.adminView.View()
	}
	return ""
}

func (m Model) renderTabBar() string {
	parts := make([]string, tabCount)
	for i := tabID(0); i < tabCount; i++ {
		label := tabLabels[i]
		if i == m.activeTab {
			parts[i] = theme.Hot.Render(" " + label + " ")
		} else {
			parts[i] = theme.Muted.Render(" " + label + " ")
		}
	}
	sep := theme.Muted.Render(" │ ")
	bar := "kex  " + strings.Join(parts, sep)
	return lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar) + "\n"
}

func (m Model) renderStatusBar() string {
	left := m.status
	if m.user != "" {
		left = theme.Hot.Render("● "+m.user) + "  " + left
	}
	right := theme.Muted.Render("?:help  tab:switch  :::palette  q:quit")
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	bar := left + strings.Repeat(" ", gap) + right
	return "\n" + lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar)
}

// ─── palette execution ───────────────────────────────────────────────────────

func (m Model) executePalette(input string) (tea.Model, tea.Cmd) {
	if strings.TrimSpace(input) == "" {
		return m, nil
	}
	parts := strings.Fields(input)

	switch parts[0] {
	case "search":
		topic := strings.TrimSpace(strings.TrimPrefix(input, parts[0]))
		if topic == "" {
			m.status = "usage: search <topic>"
			return m, nil
		}
		m.activeTab = tabExplorer
		return m, m.explorerView.Search(topic)

	case "level:set":
		if len(parts) < 2 {
			m.status = "usage: level:set <basic|intermediate|advanced>"
			return m, nil
		}
		return m, m.setLevelCmd(parts[1])

	case "theme:toggle":
		return m, m.setDarkModeCmd(!m.darkMode)

	case "explorer:reset":
		m.activeTab = tabExplorer
		m.status = "explorer reset"
		return m, m.explorerView.Reset()

	case "history:clear":
		return m, m.clearCmd("history", func(ctx context.Context) error { return m.history.Clear(ctx) })

	case "cache:clear":
		return m, m.clearCmd("cache", func(ctx context.Context) error { return m.topics.ClearCache(ctx) })

	case "note:export":
		snap := m.explorerView.Snapshot()
		if snap.Current == "" {
			m.status = "nothing to export"
			return m, nil
		}
		return m, m.exportNoteCmd(snap.Current, snap.Level)

	case "account:login":
		return m, m.login.Open()

	case "account:logout":
		return m, m.logoutCmd()

	case "account:whoami":
		if m.user == "" {
			m.status = "not logged in"
		} else {
			m.status = "logged in as " + m.user
		}
		return m, nil

	case "admin:refresh":
		m.activeTab = tabAdmin
		return m, m.adminView.Refresh()

	default:
		m.status = "unknown command: " + parts[0]
	}
	return m, nil
}

// ─── helpers ─────────────────────────────────────────────────────────────────

func (m *Model) propagateSize() {
	sz := tea.WindowSizeMsg{Width: m.width, Height: m.height - 3}
	m.explorerView, _ = m.explorerView.Update(sz)
	m.adminView, _ = m.adminView.Update(sz)
}

func themeName(dark bool) string {
	if dark {
		return "dark"
	}
	return "light"
}

// ─── async commands ──────────────────────────────────────────────────────────

func (m Model) loginCmd(username, password string) tea.Cmd {
	return func() tea.Msg {
		if m.account == nil {
			return loggedInMsg{err: fmt.Errorf("account adapter not configured")}
		}
		user, err := m.account.Login(context.Background(), username, password)
		return loggedInMsg{user: user, err: err}
	}
}

func (m Model) logoutCmd() tea.Cmd {
	return func() tea.Msg {
		if m.account == nil {
			return loggedOutMsg{}
		}
		return loggedOutMsg{err: m.account.Logout(context.Background())}
	}
}

func (m Model) whoamiCmd() tea.Cmd {
	return func() tea.Msg {
		if m.account == nil {
			return whoamiMsg{err: apperrors.ErrUnauthorized}
		}
		user, err := m.account.Me(context.Background())
		return whoamiMsg{user: user, err: err}
	}
}

func (m Model) setLevelCmd(level string) tea.Cmd {
	return func() tea.Msg {
		p, err := m.prefs.SetLevel(context.Background(), level)
		return prefsSavedMsg{prefs: p, err: err}
	}
}

func (m Model) setDarkModeCmd(dark bool) tea.Cmd {
	return func() tea.Msg {
		p, err := m.prefs.SetDarkMode(context.Background(), dark)
		return prefsSavedMsg{prefs: p, err: err}
	}
}

func (m Model) clearCmd(what string, clear func(context.Context) error) tea.Cmd {
	return func() tea.Msg {
		return clearedMsg{what: what, err: clear(context.Background())}
	}
}

func (m Model) exportNoteCmd(topic, level string) tea.Cmd {
	return func() tea.Msg {
		out, err := m.topics.ExportNote(context.Background(), topic, level)
		return noteExportedMsg{out: out, err: err}
	}
}
