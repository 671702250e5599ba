package view

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Span is a run of cells on a timeline row, in screen columns.
type Span struct {
	Start int // first cell, may be off screen to the left
	End   int // exclusive
	Text  string
	Style lipgloss.Style
}

// RenderRow draws spans over a blank row of width cells. Later spans paint
// over earlier ones and cells outside [0, width) are dropped. Span text is
// laid out from the span's own start, so a span scrolled partly off screen
// shows the tail of its text.
func RenderRow(width int, blank lipgloss.Style, spans []Span) string {
	if width <= 0 {
		return ""
	}

	owner := make([]int, width)
	for i := range owner {
		owner[i] = -1
	}
	for si, s := range spans {
		for c := max(s.Start, 0); c < min(s.End, width); c++ {
			owner[c] = si
		}
	}

	var b strings.Builder
	for c := 0; c < width; {
		o := owner[c]
		e := c + 1
		for e < width && owner[e] == o {
			e++
		}
		if o < 0 {
			b.WriteString(blank.Render(strings.Repeat(" ", e-c)))
		} else {
			s := spans[o]
			b.WriteString(s.Style.Render(spanText(s, c, e)))
		}
		c = e
	}
	return b.String()
}

// spanText returns the part of the span's padded text that falls in
// screen cells [from, to).
func spanText(s Span, from, to int) string {
	full := FitCells(s.Text, s.End-s.Start)
	return ansi.Cut(full, from-s.Start, to-s.Start)
}

// SpliceAt paints overlay on top of base with its top-left corner at
// (x, y), clipped to the base's width and height.
func SpliceAt(base, overlay string, x, y, width, height int) string {
	if overlay == "" || width <= 0 || height <= 0 {
		return base
	}
	if x < 0 {
		x = 0
	}
	if y < 0 {
		y = 0
	}

	baseLines := strings.Split(Fill(base, width, height, lipgloss.Color("")), "\n")
	for i, line := range strings.Split(overlay, "\n") {
		row := y + i
		if row >= len(baseLines) {
			break
		}
		lineW := lipgloss.Width(line)
		if x+lineW > width {
			x = max(0, width-lineW)
		}
		if lineW > width {
			line = ansi.Cut(line, 0, width)
			lineW = width
		}
		baseLine := baseLines[row]
		left := ansi.Cut(baseLine, 0, x)
		right := ansi.Cut(baseLine, x+lineW, width)
		baseLines[row] = left + line + ansi.ResetStyle + right
	}
	return strings.Join(baseLines, "\n")
}
