package ui

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/javiermolinar/almanac/internal/dateutil"
	"github.com/javiermolinar/almanac/internal/item"
	"github.com/javiermolinar/almanac/internal/projection"
)

// Timeline glyphs.
const (
	glyphBar       = "█"
	glyphClipStart = "◀"
	glyphClipEnd   = "▶"
	glyphToday     = "▼"
)

// FormatDays formats a day count.
func FormatDays(n int) string {
	if n == 1 {
		return "1 day"
	}
	return fmt.Sprintf("%d days", n)
}

// shortID returns the leading part of an ID, enough to tell items apart
// in a listing.
func shortID(id string) string {
	if len(id) <= 8 {
		return id
	}
	return id[:8]
}

// fitCells truncates s to width display cells and pads it to exactly
// width.
func fitCells(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) > width {
		s = runewidth.Truncate(s, width, "…")
	}
	return runewidth.FillRight(s, width)
}

// PrintItemRow prints one item as "id  start → end  span  title".
func PrintItemRow(w io.Writer, it item.Item) {
	fmt.Fprintf(w, "  %s  %s → %s  %s  %s\n",
		formatMuted(fitCells(shortID(it.ID), 8)),
		it.StartDate.Format(dateutil.DateLayout),
		it.EndDate.Format(dateutil.DateLayout),
		fitCells(FormatDays(it.DurationDays()), 9),
		it.Title,
	)
}

// TimelineOpts configures a text rendering of the timeline.
type TimelineOpts struct {
	GutterW int // title column width
	Offset  int // timeline cells hidden on the left
	Today   int // day offset to mark, or -1
}

// viewport is the visible cell range of a rendered timeline.
type viewport struct {
	offset int
	width  int
}

// cells clips [start, end) timeline cells to the viewport and returns
// screen columns.
func (v viewport) cells(start, end int) (int, int, bool) {
	start -= v.offset
	end -= v.offset
	if end <= 0 || start >= v.width {
		return 0, 0, false
	}
	return max(start, 0), min(end, v.width), true
}

func roundCells(left, width float64) (int, int) {
	start := int(math.Round(left))
	end := int(math.Round(left + width))
	if end < start+1 {
		end = start + 1
	}
	return start, end
}

// RenderTimeline writes the label row and one bar per item for the engine's
// year. The engine's container width is the visible timeline width.
func RenderTimeline(w io.Writer, e *projection.Engine, items []item.Item, opts TimelineOpts) {
	vp := viewport{offset: opts.Offset, width: int(e.ContainerWidth())}

	fmt.Fprintln(w, fitCells("", opts.GutterW)+formatHeader(labelRow(e, vp)))
	if opts.Today >= 0 {
		fmt.Fprintln(w, fitCells("", opts.GutterW)+todayRow(e, vp, opts.Today))
	}

	for _, ci := range e.Layout(items) {
		fmt.Fprintln(w, fitCells(ci.Item.Title, opts.GutterW)+barRow(ci, vp))
	}
}

func labelRow(e *projection.Engine, vp viewport) string {
	line := make([]string, vp.width)
	for i := range line {
		line[i] = " "
	}

	for _, l := range e.Labels() {
		x := float64(l.Day) * e.UnitWidth()
		if l.Day >= 0 {
			x = e.DayPosition(l.Day)
		}
		start, end := roundCells(x, l.Width)
		if n := end - start - 1; n > 0 {
			for i, r := range []rune(runewidth.Truncate(l.Text, n, "")) {
				c := start + 1 + i - vp.offset
				if c >= 0 && c < vp.width {
					line[c] = string(r)
				}
			}
		}
		if c := start - vp.offset; c >= 0 && c < vp.width {
			line[c] = "│"
		}
	}
	return strings.Join(line, "")
}

func todayRow(e *projection.Engine, vp viewport, day int) string {
	col := int(math.Round(e.DayPosition(day))) - vp.offset
	if col < 0 || col >= vp.width {
		return ""
	}
	return strings.Repeat(" ", col) + formatAccent(glyphToday)
}

func barRow(ci projection.ComputedItem, vp viewport) string {
	start, end := roundCells(ci.Left, ci.Width)
	s, e, ok := vp.cells(start, end)
	if !ok {
		return ""
	}

	bar := make([]string, e-s)
	for i := range bar {
		bar[i] = glyphBar
	}
	if ci.Style.ClippedStart && s == start-vp.offset {
		bar[0] = glyphClipStart
	}
	if ci.Style.ClippedEnd && e == end-vp.offset {
		bar[len(bar)-1] = glyphClipEnd
	}
	return strings.Repeat(" ", s) + formatBar(strings.Join(bar, ""), ci.Style.Shade)
}

// PrintGeometry prints the computed position of every visible item.
func PrintGeometry(w io.Writer, e *projection.Engine, items []item.Item) {
	fmt.Fprintf(w, "%s\n", formatHeader(fmt.Sprintf("%-24s %5s %5s %10s %10s", "TITLE", "DAY", "DAYS", "LEFT", "WIDTH")))
	for _, ci := range e.Layout(items) {
		fmt.Fprintf(w, "%s %5d %5d %10s %10s\n",
			fitCells(ci.Item.Title, 24), ci.Start, ci.DurationDays, ci.Style.Left, ci.Style.Width)
	}
}
