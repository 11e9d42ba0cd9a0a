package components

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestPaletteSubmit(t *testing.T) {
	t.Parallel()
	p := NewPalette()
	_ = p.Open()
	p, _ = p.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("level:set advanced")})
	if got := p.Matching(5); len(got) != 0 {
		t.Fatalf("expected no hint to match a full command with args, got %v", got)
	}
	p, cmd := p.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if p.Visible() {
		t.Fatalf("palette must close on enter")
	}
	msg, ok := cmd().(PaletteSubmitMsg)
	if !ok || msg.Input != "level:set advanced" {
		t.Fatalf("unexpected submit %#v", msg)
	}
}

func TestPaletteHintsByPrefix(t *testing.T) {
	t.Parallel()
	p := NewPalette()
	_ = p.Open()
	p, _ = p.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("account:")})
	if got := p.Matching(5); len(got) != 3 {
		t.Fatalf("expected 3 account hints, got %v", got)
	}
}

func TestPaletteTabCompletes(t *testing.T) {
	t.Parallel()
	p := NewPalette()
	_ = p.Open()
	p, _ = p.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("acc")})
	p, _ = p.Update(tea.KeyMsg{Type: tea.KeyTab})
	if got := p.input.Value(); got != "account:" {
		t.Fatalf("expected common prefix, got %q", got)
	}
	p.input.SetValue("sea")
	p, _ = p.Update(tea.KeyMsg{Type: tea.KeyTab})
	if got := p.input.Value(); got != "search " {
		t.Fatalf("expected completion with argument space, got %q", got)
	}
}

func TestPaletteRecall(t *testing.T) {
	t.Parallel()
	p := NewPalette()
	for _, in := range []string{"theme:toggle", "search go", "search go"} {
		_ = p.Open()
		p.input.SetValue(in)
		p, _ = p.Update(tea.KeyMsg{Type: tea.KeyEnter})
	}
	if len(p.recall) != 2 {
		t.Fatalf("expected repeated command stored once, got %v", p.recall)
	}
	_ = p.Open()
	p, _ = p.Update(tea.KeyMsg{Type: tea.KeyUp})
	p, _ = p.Update(tea.KeyMsg{Type: tea.KeyUp})
	if got := p.input.Value(); got != "theme:toggle" {
		t.Fatalf("expected oldest command, got %q", got)
	}
	p, _ = p.Update(tea.KeyMsg{Type: tea.KeyDown})
	p, _ = p.Update(tea.KeyMsg{Type: tea.KeyDown})
	if got := p.input.Value(); got != "" {
		t.Fatalf("expected empty input past the newest entry, got %q", got)
	}
}

func TestLoginFormSubmit(t *testing.T) {
	t.Parallel()
	f := NewLoginForm()
	_ = f.Open()
	f, _ = f.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("ada")})
	f, _ = f.Update(tea.KeyMsg{Type: tea.KeyEnter})
	f, _ = f.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("secret")})
	f, cmd := f.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if f.Visible() {
		t.Fatalf("form must close after submit")
	}
	msg, ok := cmd().(LoginSubmitMsg)
	if !ok || msg.Username != "ada" || msg.Password != "secret" {
		t.Fatalf("unexpected submit %#v", msg)
	}
}
