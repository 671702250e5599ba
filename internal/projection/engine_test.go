package projection

import (
	"math"
	"testing"
	"time"

	"github.com/javiermolinar/almanac/internal/dateutil"
	"github.com/javiermolinar/almanac/internal/item"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

func TestUnitWidth(t *testing.T) {
	tests := []struct {
		mode ViewMode
		want float64
	}{
		{ViewMonths, 720.0 / 360},
		{ViewWeeks, 720.0 / 70},
		{ViewDays, 720.0 / 30},
	}
	for _, tt := range tests {
		t.Run(tt.mode.String(), func(t *testing.T) {
			e := NewEngine(2024, tt.mode, 720)
			if got := e.UnitWidth(); got != tt.want {
				t.Errorf("UnitWidth() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestZeroWidthFallsBack(t *testing.T) {
	for _, w := range []float64{0, -10, math.NaN(), math.Inf(1)} {
		e := NewEngine(2024, ViewDays, w)
		if got := e.UnitWidth(); got != DefaultContainerWidth/30 {
			t.Errorf("width %v: UnitWidth() = %v, want fallback", w, got)
		}
		if !Finite(e.TimelineWidth()) {
			t.Errorf("width %v: TimelineWidth not finite", w)
		}
	}
}

func TestTotalUnits(t *testing.T) {
	tests := []struct {
		year int
		mode ViewMode
		want int
	}{
		{2023, ViewMonths, 12},
		{2023, ViewWeeks, 53},
		{2024, ViewWeeks, 53},
		{2023, ViewDays, 365},
		{2024, ViewDays, 366},
	}
	for _, tt := range tests {
		e := NewEngine(tt.year, tt.mode, 900)
		if got := e.TotalUnits(); got != tt.want {
			t.Errorf("%d %s: TotalUnits() = %d, want %d", tt.year, tt.mode, got, tt.want)
		}
	}
}

func TestTimelineWidth(t *testing.T) {
	if got := NewEngine(2024, ViewMonths, 800).TimelineWidth(); got != 800 {
		t.Errorf("months: got %v, want 800", got)
	}
	if got := NewEngine(2024, ViewDays, 300).TimelineWidth(); got != 10*366 {
		t.Errorf("days: got %v, want %v", got, 10*366)
	}
	if got := NewEngine(2023, ViewWeeks, 700).TimelineWidth(); got != 10*365 {
		t.Errorf("weeks: got %v, want %v", got, 10*365)
	}
}

func TestRoundTrip(t *testing.T) {
	widths := []float64{120, 365, 800, 1000, 1337}
	for _, year := range []int{2023, 2024} {
		for _, mode := range Modes() {
			for _, w := range widths {
				e := NewEngine(year, mode, w)
				for d := 0; d < e.DaysInYear(); d++ {
					got := e.DayAt(e.DayPosition(d))
					if diff := got - d; diff < -1 || diff > 1 {
						t.Fatalf("%d %s w=%v: DayAt(DayPosition(%d)) = %d", year, mode, w, d, got)
					}
				}
			}
		}
	}
}

func TestRoundTripNarrowMonths(t *testing.T) {
	for _, year := range []int{2023, 2024, 2028} {
		for w := 12; w <= 300; w++ {
			e := NewEngine(year, ViewMonths, float64(w))

			sum := 0.0
			for m, mw := range e.MonthWidths() {
				if mw <= 0 {
					t.Fatalf("%d w=%d: month %d width = %v, want > 0", year, w, m+1, mw)
				}
				sum += mw
			}
			if sum != float64(w) {
				t.Fatalf("%d w=%d: month widths sum to %v", year, w, sum)
			}

			for d := 0; d < e.DaysInYear(); d++ {
				got := e.DayAt(e.DayPosition(d))
				if diff := got - d; diff < -1 || diff > 1 {
					t.Fatalf("%d w=%d: DayAt(DayPosition(%d)) = %d", year, w, d, got)
				}
			}
		}
	}
}

func TestMonthWidthsFollowShares(t *testing.T) {
	tests := []struct {
		year  int
		width float64
		want  [12]float64
	}{
		{2023, 22, [12]float64{2, 1, 2, 2, 2, 2, 2, 2, 2, 2, 1, 2}},
		{2024, 96, [12]float64{8, 8, 8, 8, 8, 8, 8, 8, 8, 8, 8, 8}},
		{2023, 120, [12]float64{10, 10, 10, 10, 10, 10, 10, 10, 10, 10, 10, 10}},
		{2024, 96.5, [12]float64{8, 8, 8, 8, 8, 8, 8, 8, 8, 8, 8, 8.5}},
	}

	for _, tt := range tests {
		got := NewEngine(tt.year, ViewMonths, tt.width).MonthWidths()
		if got != tt.want {
			t.Errorf("%d w=%v: MonthWidths() = %v, want %v", tt.year, tt.width, got, tt.want)
		}
	}
}

func TestDecemberItemVisibleWhenNarrow(t *testing.T) {
	e := NewEngine(2023, ViewMonths, 22)
	it := item.Item{ID: "dec", Title: "Dec", StartDate: day(2023, 12, 5), EndDate: dateutil.EndOfDay(day(2023, 12, 20))}

	ci := e.Project(it)
	if ci.Width <= 0 {
		t.Fatalf("width = %v, want > 0", ci.Width)
	}
	if got := e.DayAt(ci.Left); got < ci.Start-1 || got > ci.Start+1 {
		t.Errorf("DayAt(left) = %d, want %d", got, ci.Start)
	}
}

func TestRoundTripExactAtMonthBoundaries(t *testing.T) {
	e := NewEngine(2023, ViewMonths, 1000)
	for _, l := range e.Labels() {
		if got := e.DayAt(e.DayPosition(l.Day)); got != l.Day {
			t.Errorf("month %s: DayAt(boundary) = %d, want %d", l.Text, got, l.Day)
		}
	}
}

func TestMonthPositionsAreMonotonic(t *testing.T) {
	e := NewEngine(2024, ViewMonths, 640)
	prev := -1.0
	for d := 0; d <= e.DaysInYear(); d++ {
		pos := e.DayPosition(d)
		if pos < prev {
			t.Fatalf("DayPosition(%d) = %v < %v", d, pos, prev)
		}
		prev = pos
	}
	if prev != 640 {
		t.Errorf("end of year position = %v, want 640", prev)
	}
}

func TestMonthPositionsFollowColumns(t *testing.T) {
	e := NewEngine(2023, ViewMonths, 1000)
	widths := e.MonthWidths()
	start := 0.0
	first := 0
	for m := 0; m < 12; m++ {
		if got := e.DayPosition(first); got != start {
			t.Errorf("month %d starts at %v, want %v", m+1, got, start)
		}
		start += widths[m]
		first += dateutil.DaysInMonth(2023, time.Month(m+1))
	}
}

func TestPositionCacheInvalidation(t *testing.T) {
	e := NewEngine(2024, ViewMonths, 500)
	e.DayPosition(10)
	e.DayPosition(200)
	if got := e.CachedPositions(); got != 2 {
		t.Fatalf("CachedPositions() = %d, want 2", got)
	}

	e.SetContainerWidth(600)
	if got := e.CachedPositions(); got != 0 {
		t.Errorf("after width change: %d cached", got)
	}

	e.DayPosition(10)
	e.SetYear(2025)
	if got := e.CachedPositions(); got != 0 {
		t.Errorf("after year change: %d cached", got)
	}

	e.DayPosition(10)
	e.SetViewMode(ViewDays)
	if got := e.CachedPositions(); got != 0 {
		t.Errorf("after mode change: %d cached", got)
	}

	// Linear modes do not populate the cache.
	e.DayPosition(10)
	if got := e.CachedPositions(); got != 0 {
		t.Errorf("days mode cached %d positions", got)
	}
}

func TestDayDelta(t *testing.T) {
	e := NewEngine(2024, ViewDays, 300)
	unit := e.UnitWidth()

	tests := []struct {
		name  string
		edge  float64
		delta float64
		want  int
	}{
		{"two units right", 10 * unit, 2 * unit, 2},
		{"three units left", 10 * unit, -3 * unit, -3},
		{"under half a unit", 10 * unit, 0.4 * unit, 0},
		{"over half a unit", 10 * unit, 0.6 * unit, 1},
		{"clamped at year start", 2 * unit, -5 * unit, -2},
		{"non-finite", 10 * unit, math.NaN(), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := e.DayDelta(tt.edge, tt.delta); got != tt.want {
				t.Errorf("DayDelta() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestProject(t *testing.T) {
	e := NewEngine(2024, ViewDays, 300)
	unit := e.UnitWidth()

	it := item.Item{
		Title:     "Sprint",
		StartDate: dateutil.DateAtDayOffset(e.YearStart(), 10, false),
		EndDate:   dateutil.DateAtDayOffset(e.YearStart(), 20, true),
	}
	ci := e.Project(it)

	if ci.Start != 10 {
		t.Errorf("Start = %d, want 10", ci.Start)
	}
	if ci.DurationDays != 11 {
		t.Errorf("DurationDays = %d, want 11", ci.DurationDays)
	}
	if ci.End() != 20 {
		t.Errorf("End() = %d, want 20", ci.End())
	}
	if ci.Left != 10*unit {
		t.Errorf("Left = %v, want %v", ci.Left, 10*unit)
	}
	if ci.Width != 11*unit {
		t.Errorf("Width = %v, want %v", ci.Width, 11*unit)
	}
	if ci.Style.Left != "100px" || ci.Style.Width != "110px" {
		t.Errorf("Style = %+v", ci.Style)
	}
	if !ci.Item.StartDate.Equal(it.StartDate) {
		t.Error("projected item must keep its dates")
	}
}

func TestProjectClamps(t *testing.T) {
	e := NewEngine(2024, ViewWeeks, 700)

	t.Run("start before year", func(t *testing.T) {
		ci := e.Project(item.Item{Title: "x", StartDate: day(2023, 12, 28), EndDate: dateutil.EndOfDay(day(2024, 1, 3))})
		if ci.Start != 0 {
			t.Errorf("Start = %d, want 0", ci.Start)
		}
		if ci.DurationDays != 3 {
			t.Errorf("DurationDays = %d, want 3", ci.DurationDays)
		}
		if !ci.Style.ClippedStart || ci.Style.ClippedEnd {
			t.Errorf("clip flags = %+v", ci.Style)
		}
		if !ci.Item.StartDate.Equal(day(2023, 12, 28)) {
			t.Error("clamp must not change the item's dates")
		}
	})

	t.Run("end after year", func(t *testing.T) {
		ci := e.Project(item.Item{Title: "x", StartDate: day(2024, 12, 20), EndDate: day(2025, 2, 1)})
		if ci.End() != e.DaysInYear()-1 {
			t.Errorf("End() = %d, want %d", ci.End(), e.DaysInYear()-1)
		}
		if !ci.Style.ClippedEnd {
			t.Error("expected ClippedEnd")
		}
	})

	t.Run("same day", func(t *testing.T) {
		ci := e.Project(item.Item{Title: "x", StartDate: day(2024, 6, 1), EndDate: day(2024, 6, 1)})
		if ci.DurationDays != 1 {
			t.Errorf("DurationDays = %d, want 1", ci.DurationDays)
		}
	})

	t.Run("end before start shows one day", func(t *testing.T) {
		ci := e.Project(item.Item{Title: "x", StartDate: day(2024, 6, 10), EndDate: day(2024, 6, 1)})
		if ci.DurationDays != 1 {
			t.Errorf("DurationDays = %d, want 1", ci.DurationDays)
		}
		if ci.Start != dateutil.DayOffset(e.YearStart(), day(2024, 6, 10)) {
			t.Errorf("Start = %d", ci.Start)
		}
	})
}

func TestMinimumDurationAllModes(t *testing.T) {
	items := []item.Item{
		{Title: "a", StartDate: day(2024, 1, 1), EndDate: day(2024, 1, 1)},
		{Title: "b", StartDate: day(2024, 12, 31), EndDate: dateutil.EndOfDay(day(2024, 12, 31))},
		{Title: "c", StartDate: day(2024, 5, 5).Add(13 * time.Hour), EndDate: day(2024, 5, 5).Add(9 * time.Hour)},
	}
	for _, mode := range Modes() {
		e := NewEngine(2024, mode, 500)
		for _, ci := range e.Layout(items) {
			if ci.DurationDays < 1 {
				t.Errorf("%s %s: DurationDays = %d", mode, ci.Item.Title, ci.DurationDays)
			}
			if ci.Width <= 0 {
				t.Errorf("%s %s: Width = %v", mode, ci.Item.Title, ci.Width)
			}
		}
	}
}

func TestLayout(t *testing.T) {
	items := []item.Item{
		{ID: "1", Title: "a", StartDate: day(2024, 2, 1), EndDate: day(2024, 2, 10)},
		{ID: "2", Title: "old", StartDate: day(2022, 2, 1), EndDate: day(2022, 2, 10)},
		{ID: "3", Title: "b", StartDate: day(2024, 3, 1), EndDate: day(2024, 3, 10)},
		{ID: "4", Title: "c", StartDate: day(2023, 12, 28), EndDate: day(2024, 1, 3)},
	}

	e := NewEngine(2024, ViewMonths, 600)
	got := e.Layout(items)
	want := []string{"1", "3", "4"}
	if len(got) != len(want) {
		t.Fatalf("Layout() returned %d items, want %d", len(got), len(want))
	}
	for i, id := range want {
		if got[i].Item.ID != id {
			t.Errorf("item %d = %s, want %s", i, got[i].Item.ID, id)
		}
		if got[i].Style.Shade != i%2 {
			t.Errorf("item %d shade = %d", i, got[i].Style.Shade)
		}
	}
}

func TestParseViewMode(t *testing.T) {
	tests := []struct {
		in      string
		want    ViewMode
		wantErr bool
	}{
		{"months", ViewMonths, false},
		{"Week", ViewWeeks, false},
		{"d", ViewDays, false},
		{"years", ViewMonths, true},
	}
	for _, tt := range tests {
		got, err := ParseViewMode(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseViewMode(%q) error = %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseViewMode(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
	if ViewDays.Next() != ViewMonths {
		t.Error("Next() should wrap around")
	}
}
