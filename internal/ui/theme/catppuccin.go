package theme

import "github.com/charmbracelet/lipgloss"

// Palette is one Catppuccin flavour.
type Palette struct {
	Base, Mantle, Surface0, Surface1      lipgloss.Color
	Text, Subtext0                        lipgloss.Color
	Lavender, Sapphire, Green, Peach, Red lipgloss.Color
}

var Mocha = Palette{
	Base:     "#1e1e2e",
	Mantle:   "#181825",
	Surface0: "#313244",
	Surface1: "#45475a",
	Text:     "#cdd6f4",
	Subtext0: "#a6adc8",
	Lavender: "#b4befe",
	Sapphire: "#74c7ec",
	Green:    "#a6e3a1",
	Peach:    "#fab387",
	Red:      "#f38ba8",
}

var Latte = Palette{
	Base:     "#eff1f5",
	Mantle:   "#e6e9ef",
	Surface0: "#ccd0da",
	Surface1: "#bcc0cc",
	Text:     "#4c4f69",
	Subtext0: "#6c6f85",
	Lavender: "#7287fd",
	Sapphire: "#209fb5",
	Green:    "#40a02b",
	Peach:    "#fe640b",
	Red:      "#d20f39",
}

var (
	Base     lipgloss.Color
	Mantle   lipgloss.Color
	Surface0 lipgloss.Color
	Surface1 lipgloss.Color
	Text     lipgloss.Color
	Subtext0 lipgloss.Color
	Lavender lipgloss.Color
	Sapphire lipgloss.Color
	Green    lipgloss.Color
	Peach    lipgloss.Color
	Red      lipgloss.Color

	Pane       lipgloss.Style
	PaneActive lipgloss.Style
	Title      lipgloss.Style
	Muted      lipgloss.Style
	Hot        lipgloss.Style
	Error      lipgloss.Style

	dark = true
)

func init() { use(Mocha) }

// Apply switches every shared color and style to the dark or light flavour.
// Styles built from these values must be rebuilt afterwards.
func Apply(darkMode bool) {
	dark = darkMode
	if darkMode {
		use(Mocha)
		return
	}
	use(Latte)
}

func Dark() bool { return dark }

func use(p Palette) {
	Base, Mantle, Surface0, Surface1 = p.Base, p.Mantle, p.Surface0, p.Surface1
	Text, Subtext0 = p.Text, p.Subtext0
	Lavender, Sapphire, Green, Peach, Red = p.Lavender, p.Sapphire, p.Green, p.Peach, p.Red

	Pane = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Surface1).
		Background(Mantle).
		Foreground(Text).
		Padding(0, 1)
	PaneActive = Pane.BorderForeground(Lavender)

	Title = lipgloss.NewStyle().Foreground(Sapphire).Bold(true)
	Muted = lipgloss.NewStyle().Foreground(Subtext0)
	Hot = lipgloss.NewStyle().Foreground(Peach).Bold(true)
	Error = lipgloss.NewStyle().Foreground(Red)
}
