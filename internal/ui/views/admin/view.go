package admin

import (
	"context"
	"errors"
	"strconv"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	accountdto "kex/internal/modules/account/dto"
	apperrors "kex/internal/platform/errors"
	"kex/internal/ui/theme"
)

type UsersPort interface {
	ListUsers(ctx context.Context) ([]accountdto.UserOutput, error)
}

type UsersLoadedMsg struct {
	Users []accountdto.UserOutput
	Err   error
}

type Model struct {
	port    UsersPort
	table   table.Model
	err     error
	loading bool
	width   int
	height  int
}

func New(port UsersPort) Model {
	t := table.New(
		table.WithColumns(columns(80)),
		table.WithFocused(true),
	)
	styles := table.DefaultStyles()
	styles.Header = styles.Header.Foreground(theme.Sapphire).Bold(true)
	styles.Selected = styles.Selected.Foreground(theme.Peach).Bold(true)
	t.SetStyles(styles)
	return Model{port: port, table: t, loading: true}
}

func columns(width int) []table.Column {
	rest := max(width-6-8-4, 20)
	return []table.Column{
		{Title: "ID", Width: 6},
		{Title: "Username", Width: rest * 2 / 5},
		{Title: "Email", Width: rest * 3 / 5},
		{Title: "Admin", Width: 8},
	}
}

func (m Model) Init() tea.Cmd { return m.Refresh() }

func (m Model) Refresh() tea.Cmd {
	if m.port == nil {
		return nil
	}
	port := m.port
	return func() tea.Msg {
		users, err := port.ListUsers(context.Background())
		return UsersLoadedMsg{Users: users, Err: err}
	}
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table.SetColumns(columns(m.width))
		m.table.SetWidth(m.width)
		m.table.SetHeight(max(m.height-4, 3))

	case UsersLoadedMsg:
		m.loading = false
		m.err = msg.Err
		if msg.Err != nil {
			m.table.SetRows(nil)
			return m, nil
		}
		rows := make([]table.Row, 0, len(msg.Users))
		for _, u := range msg.Users {
			admin := ""
			if u.IsAdmin {
				admin = "yes"
			}
			rows = append(rows, table.Row{strconv.Itoa(u.ID), u.Username, u.Email, admin})
		}
		m.table.SetRows(rows)
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "r" {
			m.loading = true
			return m, m.Refresh()
		}
	}
	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	header := theme.Title.Render("Users") + "  " + theme.Muted.Render("r: refresh")
	switch {
	case m.loading:
		return header + "\n\n" + theme.Muted.Render("Loading users…")
	case errors.Is(m.err, apperrors.ErrUnauthorized):
		return header + "\n\n" + theme.Muted.Render("Log in with :account:login to manage users.")
	case errors.Is(m.err, apperrors.ErrForbidden):
		return header + "\n\n" + theme.Error.Render("Admin access required.")
	case m.err != nil:
		return header + "\n\n" + theme.Error.Render("Error: "+m.err.Error())
	}
	return header + "\n\n" + lipgloss.NewStyle().Render(m.table.View())
}
