package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/aretw0/notely/pkg/app"
)

type palette struct {
	fg, bg, primary, accent, muted, danger, border lipgloss.Color
}

var palettes = map[app.Theme]palette{
	app.ThemeLight: {
		fg: "#1f2328", bg: "#ffffff", primary: "#1976d2", accent: "#ff9800",
		muted: "#767676", danger: "#c62828", border: "#d0d7de",
	},
	app.ThemeDark: {
		fg: "#e6edf3", bg: "#0d1117", primary: "#64b5f6", accent: "#ffb74d",
		muted: "#8b949e", danger: "#ef5350", border: "#30363d",
	},
}

// Styles is the set of lipgloss styles for one theme.
type Styles struct {
	App      lipgloss.Style
	Header   lipgloss.Style
	Brand    lipgloss.Style
	Nav      lipgloss.Style
	Sidebar  lipgloss.Style
	Heading  lipgloss.Style
	Item     lipgloss.Style
	Selected lipgloss.Style
	Snippet  lipgloss.Style
	Main     lipgloss.Style
	Meta     lipgloss.Style
	Muted    lipgloss.Style
	Error    lipgloss.Style
	Modal    lipgloss.Style
	Button   lipgloss.Style
	Help     lipgloss.Style
}

// NewStyles builds the styles for theme. Unknown themes fall back to light.
func NewStyles(theme app.Theme) Styles {
	p, ok := palettes[theme]
	if !ok {
		p = palettes[app.ThemeLight]
	}
	return Styles{
		App:      lipgloss.NewStyle().Foreground(p.fg).Background(p.bg),
		Header:   lipgloss.NewStyle().BorderStyle(lipgloss.NormalBorder()).BorderBottom(true).BorderForeground(p.border).Padding(0, 1),
		Brand:    lipgloss.NewStyle().Bold(true).Foreground(p.primary),
		Nav:      lipgloss.NewStyle().Foreground(p.muted).PaddingLeft(2),
		Sidebar:  lipgloss.NewStyle().Width(34).BorderStyle(lipgloss.NormalBorder()).BorderRight(true).BorderForeground(p.border).Padding(0, 1),
		Heading:  lipgloss.NewStyle().Bold(true).Foreground(p.primary).MarginBottom(1),
		Item:     lipgloss.NewStyle().PaddingLeft(1),
		Selected: lipgloss.NewStyle().PaddingLeft(1).Bold(true).Foreground(p.accent).BorderStyle(lipgloss.ThickBorder()).BorderLeft(true).BorderForeground(p.accent),
		Snippet:  lipgloss.NewStyle().Foreground(p.muted).PaddingLeft(1),
		Main:     lipgloss.NewStyle().Padding(1, 2),
		Meta:     lipgloss.NewStyle().Foreground(p.muted).Italic(true),
		Muted:    lipgloss.NewStyle().Foreground(p.muted),
		Error:    lipgloss.NewStyle().Foreground(p.danger).Bold(true),
		Modal:    lipgloss.NewStyle().BorderStyle(lipgloss.RoundedBorder()).BorderForeground(p.primary).Padding(1, 2).Width(60),
		Button:   lipgloss.NewStyle().Foreground(p.bg).Background(p.primary).Padding(0, 1),
		Help:     lipgloss.NewStyle().Foreground(p.muted).MarginTop(1),
	}
}
