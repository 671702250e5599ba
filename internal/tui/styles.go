// Package tui provides the terminal user interface for almanac.
package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/javiermolinar/almanac/internal/tui/theme"
)

// Styles holds all lipgloss styles for the TUI, derived from a theme.
type Styles struct {
	// Theme colors as lipgloss colors
	colorBg          lipgloss.Color
	colorBgHighlight lipgloss.Color
	colorBgSelection lipgloss.Color
	colorFg          lipgloss.Color
	colorFgMuted     lipgloss.Color
	colorAccent      lipgloss.Color

	// Header line
	HeaderStyle lipgloss.Style

	// Label row, alternating per column
	LabelStyles [2]lipgloss.Style
	TodayStyle  lipgloss.Style

	// Title gutter
	GutterStyle         lipgloss.Style
	GutterSelectedStyle lipgloss.Style

	// Empty timeline cells
	RowStyle         lipgloss.Style
	RowSelectedStyle lipgloss.Style

	// Item bars, indexed by row shade
	BarStyles         [2]lipgloss.Style
	BarSelectedStyles [2]lipgloss.Style
	HandleStyles      [2]lipgloss.Style
	BarDragStyle      lipgloss.Style
	HandleDragStyle   lipgloss.Style

	// Drag preview
	TooltipStyle lipgloss.Style

	// Footer
	StatusStyle lipgloss.Style
	ErrorStyle  lipgloss.Style
	HelpStyle   lipgloss.Style
	PromptStyle lipgloss.Style

	// Placeholder shown when the year has no items
	EmptyStyle lipgloss.Style
}

// NewStyles creates a new Styles instance from a theme.
func NewStyles(t *theme.Theme) *Styles {
	s := &Styles{}
	palette := theme.NewPalette(t)

	s.colorBg = palette.Bg
	s.colorBgHighlight = palette.BgHighlight
	s.colorBgSelection = palette.BgSelection
	s.colorFg = palette.Fg
	s.colorFgMuted = palette.FgMuted
	s.colorAccent = palette.Accent

	s.HeaderStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(s.colorAccent).
		Background(s.colorBg)

	for i := range s.LabelStyles {
		s.LabelStyles[i] = lipgloss.NewStyle().
			Foreground(s.colorFg).
			Background(palette.BandBg[i])
	}
	s.TodayStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(palette.Today).
		Background(s.colorBgHighlight)

	s.GutterStyle = lipgloss.NewStyle().
		Foreground(s.colorFgMuted).
		Background(s.colorBg)
	s.GutterSelectedStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(s.colorAccent).
		Background(s.colorBgSelection)

	s.RowStyle = lipgloss.NewStyle().Background(s.colorBg)
	s.RowSelectedStyle = lipgloss.NewStyle().Background(s.colorBgHighlight)

	for i := range s.BarStyles {
		s.BarStyles[i] = lipgloss.NewStyle().
			Foreground(palette.TextOnBar[i]).
			Background(palette.BarBg[i])
		s.BarSelectedStyles[i] = s.BarStyles[i].
			Background(palette.BarSelectedBg[i]).
			Bold(true)
		s.HandleStyles[i] = lipgloss.NewStyle().
			Foreground(palette.Handle).
			Background(palette.BarBg[i])
	}
	s.BarDragStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(palette.TextOnDrag).
		Background(palette.DragBg)
	s.HandleDragStyle = lipgloss.NewStyle().
		Foreground(palette.Drag).
		Background(palette.DragBg)

	s.TooltipStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(palette.TextOnAccent).
		Background(s.colorAccent)

	s.StatusStyle = lipgloss.NewStyle().
		Foreground(s.colorFg).
		Background(s.colorBg).
		Padding(0, 1)
	s.ErrorStyle = s.StatusStyle.
		Foreground(palette.Today)
	s.HelpStyle = lipgloss.NewStyle().
		Foreground(s.colorFgMuted).
		Background(s.colorBg).
		Padding(0, 1)
	s.PromptStyle = lipgloss.NewStyle().
		Foreground(s.colorFg).
		Background(s.colorBgHighlight)

	s.EmptyStyle = lipgloss.NewStyle().
		Italic(true).
		Foreground(s.colorFgMuted).
		Background(s.colorBg)

	return s
}

// BarStyle picks the bar style for a row shade.
func (s *Styles) BarStyle(shade int, selected bool) lipgloss.Style {
	shade = shade & 1
	if selected {
		return s.BarSelectedStyles[shade]
	}
	return s.BarStyles[shade]
}
