package projection

import (
	"strconv"

	"github.com/javiermolinar/almanac/internal/dateutil"
	"github.com/javiermolinar/almanac/internal/item"
)

// Style carries the render hints for a computed item.
type Style struct {
	Left  string // e.g. "12.5px"
	Width string
	Shade int // alternates between adjacent rows

	// ClippedStart and ClippedEnd mark items that continue past the
	// visible year.
	ClippedStart bool
	ClippedEnd   bool
}

// ComputedItem is an item with geometry derived for the visible year.
// Start is clamped to the year; Item keeps the true dates.
type ComputedItem struct {
	Item         item.Item
	Start        int // day offset from Jan 1, >= 0
	DurationDays int // >= 1
	Left         float64
	Width        float64
	Style        Style
}

// End returns the inclusive last day offset.
func (c ComputedItem) End() int {
	return c.Start + c.DurationDays - 1
}

// Right returns the right pixel edge.
func (c ComputedItem) Right() float64 {
	return c.Left + c.Width
}

// Project derives the geometry of it for the visible year. Dates outside
// the year are clamped for display only. A range ending before it starts
// is shown as a single day at its start.
func (e *Engine) Project(it item.Item) ComputedItem {
	yearStart := e.yearStart
	yearEnd := dateutil.YearEnd(e.year)

	start := dateutil.Clamp(it.StartDate, yearStart, yearEnd)
	end := dateutil.Clamp(it.EndDate, yearStart, yearEnd)
	if end.Before(start) {
		end = start
	}

	startDay := clampInt(dateutil.DayOffset(yearStart, start), 0, e.daysInYear-1)
	duration := dateutil.DurationDays(start, end)
	if startDay+duration > e.daysInYear {
		duration = e.daysInYear - startDay
	}
	if duration < 1 {
		duration = 1
	}

	left := e.DayPosition(startDay)
	width := e.DayPosition(startDay+duration) - left

	return ComputedItem{
		Item:         it,
		Start:        startDay,
		DurationDays: duration,
		Left:         left,
		Width:        width,
		Style: Style{
			Left:         formatPx(left),
			Width:        formatPx(width),
			ClippedStart: it.StartDate.Before(yearStart),
			ClippedEnd:   it.EndDate.After(yearEnd),
		},
	}
}

// Layout filters items to the visible year and projects each one,
// preserving order.
func (e *Engine) Layout(items []item.Item) []ComputedItem {
	visible := item.FilterByYear(items, e.year)
	out := make([]ComputedItem, len(visible))
	for i, it := range visible {
		ci := e.Project(it)
		ci.Style.Shade = i % 2
		out[i] = ci
	}
	return out
}

func formatPx(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64) + "px"
}
