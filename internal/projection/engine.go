// Package projection maps calendar days of a visible year to horizontal
// pixel positions and back.
package projection

import (
	"math"
	"sort"
	"time"

	"github.com/javiermolinar/almanac/internal/dateutil"
)

// DefaultContainerWidth substitutes for a zero, negative or non-finite
// container width so unit widths stay finite.
const DefaultContainerWidth = 1200.0

// Days visible before horizontal scrolling is needed.
const (
	monthsVisibleDays = 12 * 30
	weeksVisibleDays  = 10 * 7
	daysVisibleDays   = 30
)

// Engine projects one year of days onto a timeline of a given width.
//
// Month mode is not linear: each month column takes a whole-pixel share
// of the container proportional to its day count (December absorbs the
// rounding residual), and days are interpolated inside their month. Those
// positions are cached per day offset until year, view mode or container
// width change.
type Engine struct {
	year       int
	mode       ViewMode
	width      float64
	yearStart  time.Time
	daysInYear int

	monthDays     [12]int
	monthFirstDay [12]int
	monthWidths   [12]float64
	monthStarts   [12]float64

	positions map[int]float64
}

// NewEngine creates an engine for year in the given mode and container width.
func NewEngine(year int, mode ViewMode, containerWidth float64) *Engine {
	e := &Engine{
		year:  year,
		mode:  mode,
		width: containerWidth,
	}
	e.rebuild()
	return e
}

// Year returns the visible year.
func (e *Engine) Year() int { return e.year }

// Mode returns the view mode.
func (e *Engine) Mode() ViewMode { return e.mode }

// ContainerWidth returns the width used for projection, after fallback.
func (e *Engine) ContainerWidth() float64 { return effectiveWidth(e.width) }

// YearStart returns Jan 1 of the visible year at local midnight.
func (e *Engine) YearStart() time.Time { return e.yearStart }

// DaysInYear returns the number of days in the visible year.
func (e *Engine) DaysInYear() int { return e.daysInYear }

// SetYear changes the visible year and clears the position cache.
func (e *Engine) SetYear(year int) {
	if year == e.year {
		return
	}
	e.year = year
	e.rebuild()
}

// SetViewMode changes the granularity and clears the position cache.
func (e *Engine) SetViewMode(mode ViewMode) {
	if mode == e.mode {
		return
	}
	e.mode = mode
	e.rebuild()
}

// SetContainerWidth changes the viewport width and clears the position cache.
func (e *Engine) SetContainerWidth(width float64) {
	if width == e.width {
		return
	}
	e.width = width
	e.rebuild()
}

// rebuild recomputes year tables and drops every cached position.
func (e *Engine) rebuild() {
	e.yearStart = dateutil.YearStart(e.year)
	e.daysInYear = dateutil.DaysInYear(e.year)
	e.monthDays = monthDayCounts(e.year)
	e.monthWidths = monthColumnWidths(e.monthDays, e.daysInYear, e.ContainerWidth())

	first, start := 0, 0.0
	for m := 0; m < 12; m++ {
		e.monthFirstDay[m] = first
		e.monthStarts[m] = start
		first += e.monthDays[m]
		start += e.monthWidths[m]
	}

	e.positions = make(map[int]float64)
}

// UnitWidth returns the pixel width of one day for the current mode.
// In month mode this is a nominal value: real month columns are
// proportional to their day counts.
func (e *Engine) UnitWidth() float64 {
	w := e.ContainerWidth()
	switch e.mode {
	case ViewWeeks:
		return w / weeksVisibleDays
	case ViewDays:
		return w / daysVisibleDays
	default:
		return w / monthsVisibleDays
	}
}

// TotalUnits returns the number of columns the mode displays for the year.
func (e *Engine) TotalUnits() int {
	switch e.mode {
	case ViewWeeks:
		return (e.daysInYear + 6) / 7
	case ViewDays:
		return e.daysInYear
	default:
		return 12
	}
}

// TimelineWidth returns the full scrollable width of the timeline.
func (e *Engine) TimelineWidth() float64 {
	w := e.ContainerWidth()
	if e.mode == ViewMonths {
		return w
	}
	return math.Max(w, e.UnitWidth()*float64(e.daysInYear))
}

// DayPosition returns the left pixel offset of day (0-based from Jan 1).
// Offsets are clamped to [0, daysInYear]; DayPosition(daysInYear) is the
// right edge of the year.
func (e *Engine) DayPosition(day int) float64 {
	day = clampInt(day, 0, e.daysInYear)
	if e.mode != ViewMonths {
		return float64(day) * e.UnitWidth()
	}

	if pos, ok := e.positions[day]; ok {
		return pos
	}
	pos := e.monthPosition(day)
	e.positions[day] = pos
	return pos
}

func (e *Engine) monthPosition(day int) float64 {
	if day >= e.daysInYear {
		return e.monthStarts[11] + e.monthWidths[11]
	}
	m := e.monthOf(day)
	within := float64(day - e.monthFirstDay[m])
	return e.monthStarts[m] + within/float64(e.monthDays[m])*e.monthWidths[m]
}

func (e *Engine) monthOf(day int) int {
	for m := 11; m > 0; m-- {
		if day >= e.monthFirstDay[m] {
			return m
		}
	}
	return 0
}

// DayAt converts a pixel offset into a day offset in [0, daysInYear].
//
// Week and day modes divide by the unit width and round. Month mode walks
// the month columns until it finds the one containing px, then
// interpolates the day inside that month from the residual offset.
func (e *Engine) DayAt(px float64) int {
	if !Finite(px) || px <= 0 {
		return 0
	}
	if e.mode != ViewMonths {
		return clampInt(int(math.Round(px/e.UnitWidth())), 0, e.daysInYear)
	}

	for m := 0; m < 12; m++ {
		end := e.monthStarts[m] + e.monthWidths[m]
		if px >= end && m < 11 {
			continue
		}
		if e.monthWidths[m] <= 0 {
			return e.monthFirstDay[m]
		}
		frac := (px - e.monthStarts[m]) / e.monthWidths[m]
		day := e.monthFirstDay[m] + int(math.Round(frac*float64(e.monthDays[m])))
		return clampInt(day, 0, e.daysInYear)
	}
	return e.daysInYear
}

// DayDelta converts a horizontal drag of deltaPx, measured from an edge
// at edgePx, into a whole-day delta through the inverse mapping.
func (e *Engine) DayDelta(edgePx, deltaPx float64) int {
	if !Finite(edgePx) || !Finite(deltaPx) {
		return 0
	}
	return e.DayAt(edgePx+deltaPx) - e.DayAt(edgePx)
}

// CachedPositions returns the number of cached month-mode positions.
func (e *Engine) CachedPositions() int {
	return len(e.positions)
}

// MonthWidths returns the pixel width of each month column.
func (e *Engine) MonthWidths() [12]float64 {
	return e.monthWidths
}

func monthDayCounts(year int) [12]int {
	var days [12]int
	for m := 0; m < 12; m++ {
		days[m] = dateutil.DaysInMonth(year, time.Month(m+1))
	}
	return days
}

// monthColumnWidths apportions width across the months by largest
// remainder: each month gets the floor or ceiling of its exact share and
// the row sums to width. Ties go to the earlier month. A fractional part of
// width stays with December.
func monthColumnWidths(days [12]int, daysInYear int, width float64) [12]float64 {
	var widths, rest [12]float64
	sum := 0.0
	for m := 0; m < 12; m++ {
		share := float64(days[m]) / float64(daysInYear) * width
		widths[m] = math.Floor(share)
		rest[m] = share - widths[m]
		sum += widths[m]
	}

	order := []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11}
	sort.SliceStable(order, func(i, j int) bool {
		return rest[order[i]] > rest[order[j]]
	})

	left := width - sum
	for _, m := range order {
		if left < 1 {
			break
		}
		widths[m]++
		left--
	}
	widths[11] += left
	return widths
}

func effectiveWidth(w float64) float64 {
	if !Finite(w) || w <= 0 {
		return DefaultContainerWidth
	}
	return w
}

// Finite reports whether v is neither NaN nor infinite.
func Finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
