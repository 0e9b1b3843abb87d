package tui

import "github.com/charmbracelet/lipgloss"

// palette holds the semantic colors for one editor theme.
type palette struct {
	Text    lipgloss.Color
	Muted   lipgloss.Color
	Border  lipgloss.Color
	Accent  lipgloss.Color
	Focus   lipgloss.Color
	Success lipgloss.Color
	Error   lipgloss.Color
	Surface lipgloss.Color
	Mantle  lipgloss.Color
}

// Catppuccin Mocha and Latte, https://catppuccin.com/palette
var palettes = map[string]palette{
	"dark": {
		Text:    "#cdd6f4",
		Muted:   "#a6adc8",
		Border:  "#585b70",
		Accent:  "#f5c2e7",
		Focus:   "#b4befe",
		Success: "#a6e3a1",
		Error:   "#f38ba8",
		Surface: "#313244",
		Mantle:  "#181825",
	},
	"light": {
		Text:    "#4c4f69",
		Muted:   "#6c6f85",
		Border:  "#acb0be",
		Accent:  "#ea76cb",
		Focus:   "#7287fd",
		Success: "#40a02b",
		Error:   "#d20f39",
		Surface: "#ccd0da",
		Mantle:  "#e6e9ef",
	},
}

type styles struct {
	title  lipgloss.Style
	header lipgloss.Style
	box    lipgloss.Style
	active lipgloss.Style
	dim    lipgloss.Style
	err    lipgloss.Style
	ok     lipgloss.Style
	cursor lipgloss.Style
	footer lipgloss.Style
}

// stylesFor builds the styles for theme. Unknown themes fall back to dark.
func stylesFor(theme string) styles {
	p, ok := palettes[theme]
	if !ok {
		p = palettes["dark"]
	}
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.Border).
		Foreground(p.Text).
		Padding(0, 1)
	return styles{
		title:  lipgloss.NewStyle().Foreground(p.Accent).Bold(true).Underline(true),
		header: lipgloss.NewStyle().Background(p.Mantle).Foreground(p.Text).Bold(true).Padding(0, 1),
		box:    box,
		active: box.BorderForeground(p.Focus),
		dim:    lipgloss.NewStyle().Foreground(p.Muted),
		err:    lipgloss.NewStyle().Foreground(p.Error),
		ok:     lipgloss.NewStyle().Foreground(p.Success),
		cursor: lipgloss.NewStyle().Background(p.Surface).Foreground(p.Accent).Bold(true),
		footer: lipgloss.NewStyle().Foreground(p.Text),
	}
}
