package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/x/ansi"

	"github.com/javiermolinar/almanac/internal/drag"
	"github.com/javiermolinar/almanac/internal/projection"
	"github.com/javiermolinar/almanac/internal/tui/view"
)

// Bar glyphs.
const (
	glyphHandleStart = "▌"
	glyphHandleEnd   = "▐"
	glyphClipStart   = "◀"
	glyphClipEnd     = "▶"
	glyphToday       = "▼"
)

// View renders the UI.
func (m Model) View() string {
	lc := m.layoutCache

	base := ""
	if lc.Width > 0 && lc.Height > 0 {
		base = m.renderBase()
	}

	var details string
	if it, ok := m.Selected(); ok && m.overlay.Active() {
		details = itemDetails(it)
	}

	frame := view.Frame{
		Width:  lc.Width,
		Height: lc.Height,
		Body:   base,
		Layers: []view.Layer{{Renderer: m.overlay, Content: details}},
	}

	if tip := m.drag.Tooltip(); tip.Visible {
		frame.Layers = append(frame.Layers, view.Layer{
			Renderer: tooltipOverlay{
				x: int(math.Round(tip.Position.X)) - m.scrollX + lc.GutterW,
				y: int(math.Round(tip.Position.Y)),
			},
			Content: m.styles.TooltipStyle.Render(" " + tip.Text + " "),
		})
	}
	return view.Compose(frame)
}

func (m Model) renderBase() string {
	lc := m.layoutCache
	layout := m.engine.Layout(m.store.Items())

	lines := make([]string, 0, lc.Height)
	lines = append(lines, m.renderHeader(len(layout)))
	lines = append(lines, m.renderLabelRow())
	lines = append(lines, m.renderRows(layout)...)
	lines = append(lines, m.renderFooter())

	return view.Fill(strings.Join(lines, "\n"), lc.Width, lc.Height, m.styles.colorBg)
}

func (m Model) renderHeader(count int) string {
	left := fmt.Sprintf(" almanac  %d  %s", m.engine.Year(), m.engine.Mode())

	var right string
	switch {
	case m.loading:
		right = "loading… "
	case count == 1:
		right = "1 item "
	default:
		right = fmt.Sprintf("%d items ", count)
	}
	if it, ok := m.Selected(); ok {
		right = it.String() + "  " + right
	}
	return view.RenderHeader(m.layoutCache.Width, left, right, m.styles.HeaderStyle)
}

// renderLabelRow draws the month, week or day columns with a marker on
// today.
func (m Model) renderLabelRow() string {
	lc := m.layoutCache
	labels := m.engine.Labels()

	spans := make([]view.Span, 0, len(labels)+1)
	for i, l := range labels {
		x := float64(l.Day) * m.engine.UnitWidth()
		if l.Day >= 0 {
			x = m.engine.DayPosition(l.Day)
		}
		start := int(math.Round(x)) - m.scrollX
		end := int(math.Round(x+l.Width)) - m.scrollX
		if end <= 0 || start >= lc.TimelineW {
			continue
		}
		spans = append(spans, view.Span{
			Start: start,
			End:   end,
			Text:  " " + l.Text,
			Style: m.styles.LabelStyles[i%2],
		})
	}

	if day := m.todayOffset(); day >= 0 {
		x := int(math.Round(m.engine.DayPosition(day))) - m.scrollX
		spans = append(spans, view.Span{Start: x, End: x + 1, Text: glyphToday, Style: m.styles.TodayStyle})
	}

	gutter := m.styles.GutterStyle.Render(view.FitCells(" Title", lc.GutterW))
	return gutter + view.RenderRow(lc.TimelineW, m.styles.RowStyle, spans)
}

// renderRows draws the visible item rows, padded with blank rows.
func (m Model) renderRows(layout []projection.ComputedItem) []string {
	lc := m.layoutCache
	rows := make([]string, 0, lc.RowsH)

	session, dragging := m.drag.Session()

	if len(layout) == 0 && lc.RowsH > 0 {
		msg := fmt.Sprintf("No items in %d. Press a to add one.", m.engine.Year())
		if m.loading {
			msg = "Loading…"
		}
		empty := m.styles.EmptyStyle.Render(view.FitCells("  "+msg, lc.Width))
		rows = append(rows, empty)
	}

	for i := m.scrollY; i < len(layout) && len(rows) < lc.RowsH; i++ {
		var s *drag.Session
		if dragging && session.Index == i {
			s = &session
		}
		rows = append(rows, m.renderItemRow(layout[i], s))
	}

	blank := m.styles.RowStyle.Render(strings.Repeat(" ", lc.Width))
	for len(rows) < lc.RowsH {
		rows = append(rows, blank)
	}
	return rows
}

// renderItemRow draws the gutter title and the bar of one item. s is the
// active drag session when this row is being dragged.
func (m Model) renderItemRow(ci projection.ComputedItem, s *drag.Session) string {
	lc := m.layoutCache
	selected := ci.Item.ID != "" && ci.Item.ID == m.selectedID
	shade := ci.Style.Shade

	left, width := ci.Left, ci.Width
	barStyle := m.styles.BarStyle(shade, selected)
	handleStyle := m.styles.HandleStyles[shade&1]
	title := ci.Item.Title
	if s != nil {
		left, width = s.Current.Left, s.Current.Width
		barStyle = m.styles.BarDragStyle
		handleStyle = m.styles.HandleDragStyle
		title = s.Preview.Title
	}

	start, end := barCells(left, width)
	sx, ex := start-m.scrollX, end-m.scrollX

	spans := []view.Span{{Start: sx, End: ex, Text: " " + title, Style: barStyle}}
	if end-start >= handleCells {
		startGlyph, endGlyph := glyphHandleStart, glyphHandleEnd
		if ci.Style.ClippedStart {
			startGlyph = glyphClipStart
		}
		if ci.Style.ClippedEnd {
			endGlyph = glyphClipEnd
		}
		spans = append(spans,
			view.Span{Start: sx, End: sx + 1, Text: startGlyph, Style: handleStyle},
			view.Span{Start: ex - 1, End: ex, Text: endGlyph, Style: handleStyle},
		)
	}

	gutterStyle, rowStyle := m.styles.GutterStyle, m.styles.RowStyle
	if selected {
		gutterStyle, rowStyle = m.styles.GutterSelectedStyle, m.styles.RowSelectedStyle
	}

	gutter := gutterStyle.Render(view.FitCells(" "+ci.Item.Title, lc.GutterW))
	return gutter + view.RenderRow(lc.TimelineW, rowStyle, spans)
}

func (m Model) renderFooter() string {
	lc := m.layoutCache

	var status string
	switch {
	case m.mode == ModePrompt:
		status = ansi.Truncate(m.prompt.View(), lc.Width, "…")
	case m.mode == ModeConfirm && m.confirm == confirmInit:
		status = m.styles.ErrorStyle.Render(ansi.Truncate(m.initQuestion(), max(0, lc.Width-2), "…"))
	case strings.HasPrefix(m.statusMsg, "Error"):
		status = m.styles.ErrorStyle.Render(ansi.Truncate(m.statusMsg, max(0, lc.Width-2), "…"))
	case m.statusMsg != "":
		status = m.styles.StatusStyle.Render(ansi.Truncate(m.statusMsg, max(0, lc.Width-2), "…"))
	case m.mode == ModeDrag:
		if s, ok := m.drag.Session(); ok {
			status = m.styles.StatusStyle.Render(ansi.Truncate(s.Preview.String(), max(0, lc.Width-2), "…"))
		}
	}

	help := m.styles.HelpStyle.Render(ansi.Truncate(m.helpText(), max(0, lc.Width-2), "…"))

	return view.RenderFooter(view.FooterViewState{
		InnerW:     lc.Width,
		StatusLine: status,
		HelpLine:   help,
		Bg:         m.styles.colorBg,
	})
}

func (m Model) initQuestion() string {
	var missing []string
	if m.initState.ConfigMissing {
		missing = append(missing, m.initState.ConfigPath)
	}
	if m.initState.DBMissing {
		missing = append(missing, m.initState.DBPath)
	}
	return fmt.Sprintf("Create %s? (y/n)", strings.Join(missing, " and "))
}

func (m Model) helpText() string {
	switch m.mode {
	case ModePrompt:
		return "enter add · tab next field · esc cancel"
	case ModeConfirm:
		return "y confirm · n cancel"
	case ModeDrag:
		return "release to commit · esc cancel"
	}
	if m.overlay.Active() {
		return "esc close"
	}
	return "drag bars · ←/→ scroll · ↑/↓ select · [/] year · m/w/d view · t today · a add · x delete · y copy · q quit"
}
