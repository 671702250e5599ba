package view

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// RenderHeader lays out left and right aligned text across width cells.
// The right side is dropped first when space runs out.
func RenderHeader(width int, left, right string, style lipgloss.Style) string {
	if width <= 0 {
		return ""
	}
	gap := width - ansi.StringWidth(left) - ansi.StringWidth(right)
	if gap < 1 {
		return style.Render(FitCells(left, width))
	}
	return style.Render(left + strings.Repeat(" ", gap) + right)
}
