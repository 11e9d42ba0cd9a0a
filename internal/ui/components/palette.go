package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"kex/internal/ui/theme"
)

// PaletteSubmitMsg is emitted when the user confirms a command.
type PaletteSubmitMsg struct{ Input string }

// PaletteCancelMsg is emitted when the user presses esc.
type PaletteCancelMsg struct{}

type command struct {
	name string
	args string
	desc string
}

func (c command) hint() string {
	if c.args == "" {
		return c.name
	}
	return c.name + " " + c.args
}

// commands must stay in sync with executePalette in ui/app.
var commands = []command{
	{"search", "<topic>", "start a new trail"},
	{"level:set", "<basic|intermediate|advanced>", "change explanation level"},
	{"theme:toggle", "", "switch dark/light"},
	{"explorer:reset", "", "clear the trail"},
	{"history:clear", "", "forget past searches"},
	{"cache:clear", "", "drop cached responses"},
	{"note:export", "", "write the current path to a note"},
	{"account:login", "", "open the login form"},
	{"account:logout", "", "end the session"},
	{"account:whoami", "", "show the current user"},
	{"admin:refresh", "", "reload the user list"},
}

const recallSize = 20

// Palette is a command-palette overlay backed by bubbles/textinput. Tab
// completes the command name; up/down recall earlier submissions.
type Palette struct {
	input   textinput.Model
	visible bool
	width   int
	recall  []string
	pos     int
}

func NewPalette() Palette {
	ti := textinput.New()
	ti.Placeholder = "type a command…"
	ti.CharLimit = 256
	return Palette{input: ti}
}

func (p Palette) Visible() bool { return p.visible }

// Open shows the palette with an empty input and returns the focus command.
func (p *Palette) Open() tea.Cmd {
	p.visible = true
	p.pos = len(p.recall)
	p.input.SetValue("")
	return p.input.Focus()
}

func (p *Palette) SetWidth(w int) { p.width = w }

func (p Palette) Update(msg tea.Msg) (Palette, tea.Cmd) {
	if !p.visible {
		return p, nil
	}
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "esc":
			p.close()
			return p, func() tea.Msg { return PaletteCancelMsg{} }
		case "enter":
			val := strings.TrimSpace(p.input.Value())
			p.close()
			if val != "" {
				p.remember(val)
			}
			return p, func() tea.Msg { return PaletteSubmitMsg{Input: val} }
		case "tab":
			p.complete()
			return p, nil
		case "up":
			p.step(-1)
			return p, nil
		case "down":
			p.step(1)
			return p, nil
		}
	}
	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	return p, cmd
}

// Matching returns up to limit commands whose name starts with the input.
// Input that already carries arguments matches nothing.
func (p Palette) Matching(limit int) []string {
	typed := strings.ToLower(p.input.Value())
	var out []string
	for _, c := range commands {
		if !strings.HasPrefix(c.name, typed) {
			continue
		}
		out = append(out, c.hint())
		if len(out) == limit {
			break
		}
	}
	return out
}

func (p *Palette) close() {
	p.visible = false
	p.input.Blur()
}

func (p *Palette) remember(val string) {
	if n := len(p.recall); n > 0 && p.recall[n-1] == val {
		return
	}
	p.recall = append(p.recall, val)
	if len(p.recall) > recallSize {
		p.recall = p.recall[len(p.recall)-recallSize:]
	}
}

func (p *Palette) step(delta int) {
	next := p.pos + delta
	if next < 0 || next > len(p.recall) {
		return
	}
	p.pos = next
	if next == len(p.recall) {
		p.input.SetValue("")
		return
	}
	p.input.SetValue(p.recall[next])
	p.input.CursorEnd()
}

// complete extends the input to the longest name prefix shared by all
// matches, plus a trailing space once a single command with arguments is left.
func (p *Palette) complete() {
	typed := strings.ToLower(p.input.Value())
	var names []command
	for _, c := range commands {
		if strings.HasPrefix(c.name, typed) {
			names = append(names, c)
		}
	}
	if len(names) == 0 {
		return
	}
	common := names[0].name
	for _, c := range names[1:] {
		for !strings.HasPrefix(c.name, common) {
			common = common[:len(common)-1]
		}
	}
	if len(names) == 1 && names[0].args != "" {
		common += " "
	}
	p.input.SetValue(common)
	p.input.CursorEnd()
}

func (p Palette) View() string {
	if !p.visible {
		return ""
	}
	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Command Palette") + "\n")
	sb.WriteString(": " + p.input.View() + "\n")
	typed := strings.ToLower(p.input.Value())
	shown := 0
	for _, c := range commands {
		if shown == 5 {
			break
		}
		if !strings.HasPrefix(c.name, typed) {
			continue
		}
		if shown == 0 {
			sb.WriteString("\n")
		}
		shown++
		sb.WriteString(theme.Muted.Render("  "+c.hint()) + "  " + theme.Muted.Faint(true).Render(c.desc) + "\n")
	}

	w := p.width
	if w < 20 {
		w = 64
	}
	return overlayStyle().Width(w - 2).Render(sb.String())
}
