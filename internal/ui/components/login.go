package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"kex/internal/ui/theme"
)

// LoginSubmitMsg carries the credentials typed into the login form.
type LoginSubmitMsg struct {
	Username string
	Password string
}

// LoginForm is a two-field overlay for signing in.
type LoginForm struct {
	username textinput.Model
	password textinput.Model
	focus    int
	visible  bool
	width    int
}

func NewLoginForm() LoginForm {
	u := textinput.New()
	u.Placeholder = "username"
	u.CharLimit = 64
	p := textinput.New()
	p.Placeholder = "password"
	p.EchoMode = textinput.EchoPassword
	p.EchoCharacter = '•'
	p.CharLimit = 128
	return LoginForm{username: u, password: p}
}

func (f LoginForm) Visible() bool { return f.visible }

func (f *LoginForm) SetWidth(w int) { f.width = w }

func (f *LoginForm) Open() tea.Cmd {
	f.visible = true
	f.focus = 0
	f.username.SetValue("")
	f.password.SetValue("")
	f.password.Blur()
	return f.username.Focus()
}

func (f *LoginForm) close() {
	f.visible = false
	f.username.Blur()
	f.password.Blur()
}

func (f LoginForm) Update(msg tea.Msg) (LoginForm, tea.Cmd) {
	if !f.visible {
		return f, nil
	}
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "esc":
			f.close()
			return f, func() tea.Msg { return PaletteCancelMsg{} }
		case "tab", "shift+tab", "up", "down":
			return f, f.switchFocus()
		case "enter":
			if f.focus == 0 {
				return f, f.switchFocus()
			}
			submit := LoginSubmitMsg{Username: strings.TrimSpace(f.username.Value()), Password: f.password.Value()}
			f.close()
			return f, func() tea.Msg { return submit }
		}
	}
	var cmd tea.Cmd
	if f.focus == 0 {
		f.username, cmd = f.username.Update(msg)
	} else {
		f.password, cmd = f.password.Update(msg)
	}
	return f, cmd
}

func (f *LoginForm) switchFocus() tea.Cmd {
	f.focus = 1 - f.focus
	if f.focus == 0 {
		f.password.Blur()
		return f.username.Focus()
	}
	f.username.Blur()
	return f.password.Focus()
}

func (f LoginForm) View() string {
	if !f.visible {
		return ""
	}
	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Log in") + "\n\n")
	sb.WriteString(f.username.View() + "\n")
	sb.WriteString(f.password.View() + "\n\n")
	sb.WriteString(theme.Muted.Render("tab: switch field  enter: submit  esc: cancel"))

	w := f.width
	if w < 20 {
		w = 48
	}
	return overlayStyle().Width(w - 2).Render(sb.String())
}

func overlayStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(theme.Peach).
		Background(theme.Mantle).
		Foreground(theme.Text).
		Padding(0, 1)
}
