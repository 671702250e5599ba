package drag

import (
	"errors"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/javiermolinar/almanac/internal/dateutil"
	"github.com/javiermolinar/almanac/internal/item"
	"github.com/javiermolinar/almanac/internal/projection"
)

// recorder collects hook notifications.
type recorder struct {
	updated  []item.Item
	selected []item.Item
	moved    []item.Item
	resized  []item.Item
}

func (r *recorder) hooks() Hooks {
	return Hooks{
		OnUpdate: func(it item.Item) { r.updated = append(r.updated, it) },
		OnSelect: func(it item.Item) { r.selected = append(r.selected, it) },
		OnMove:   func(it item.Item) { r.moved = append(r.moved, it) },
		OnResize: func(it item.Item) { r.resized = append(r.resized, it) },
	}
}

// collection is a minimal in-memory item store.
type collection struct {
	items []item.Item
}

func (c *collection) Items() []item.Item { return c.items }

// dayItem spans day offsets [start, end] of year.
func dayItem(id string, year, start, end int) item.Item {
	ys := dateutil.YearStart(year)
	return item.Item{
		ID:        id,
		Title:     "item " + id,
		StartDate: dateutil.DateAtDayOffset(ys, start, false),
		EndDate:   dateutil.DateAtDayOffset(ys, end, true),
	}
}

// newDaysController returns a controller over a 2024 day view with a
// 10px unit width.
func newDaysController(items ...item.Item) (*Controller, *collection, *recorder) {
	engine := projection.NewEngine(2024, projection.ViewDays, 300)
	coll := &collection{items: items}
	rec := &recorder{}
	return NewController(engine, coll, rec.hooks(), DefaultOptions()), coll, rec
}

func TestPressStartsSession(t *testing.T) {
	c, _, _ := newDaysController(dayItem("a", 2024, 10, 20))

	if c.Active() {
		t.Fatal("controller should start idle")
	}
	if err := c.Press(0, GestureMove, Point{X: 150, Y: 40}); err != nil {
		t.Fatalf("Press() error = %v", err)
	}
	if !c.Active() {
		t.Fatal("expected active session")
	}
	if !c.SelectionSuppressed() {
		t.Error("text selection should be suppressed during a gesture")
	}

	s, ok := c.Session()
	if !ok {
		t.Fatal("Session() returned no session")
	}
	if s.StartDay != 10 || s.EndDay != 20 {
		t.Errorf("days = %d..%d, want 10..20", s.StartDay, s.EndDay)
	}
	if s.Initial.Left != 100 || s.Initial.Width != 110 {
		t.Errorf("initial geometry = %+v", s.Initial)
	}

	tip := c.Tooltip()
	if !tip.Visible {
		t.Error("tooltip should be visible")
	}
	if tip.Text != "Jan 11, 2024 – Jan 21, 2024" {
		t.Errorf("tooltip = %q", tip.Text)
	}
	if tip.Position.Y != 40-DefaultOptions().TooltipOffset {
		t.Errorf("tooltip Y = %v", tip.Position.Y)
	}
}

func TestPressErrors(t *testing.T) {
	c, _, _ := newDaysController(dayItem("a", 2024, 10, 20))

	if err := c.Press(3, GestureMove, Point{}); !errors.Is(err, ErrNoItem) {
		t.Errorf("out of range: got %v, want ErrNoItem", err)
	}
	if err := c.Press(0, Gesture(9), Point{}); !errors.Is(err, ErrUnknownGesture) {
		t.Errorf("bad gesture: got %v, want ErrUnknownGesture", err)
	}
	if err := c.Press(0, GestureMove, Point{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := c.Press(0, GestureResizeEnd, Point{}); !errors.Is(err, ErrSessionActive) {
		t.Errorf("second press: got %v, want ErrSessionActive", err)
	}
}

func TestClickWithoutMovementSelects(t *testing.T) {
	original := dayItem("a", 2024, 10, 20)
	for _, g := range []Gesture{GestureMove, GestureResizeStart, GestureResizeEnd} {
		t.Run(g.String(), func(t *testing.T) {
			c, coll, rec := newDaysController(original)

			if err := c.Press(0, g, Point{X: 150}); err != nil {
				t.Fatal(err)
			}
			res := c.Release(Point{X: 150})

			if res.Kind != ResultSelected {
				t.Fatalf("Kind = %v, want selected", res.Kind)
			}
			if len(rec.updated) != 0 || len(rec.moved) != 0 || len(rec.resized) != 0 {
				t.Error("no mutation should be emitted for a click")
			}
			if len(rec.selected) != 1 {
				t.Fatalf("got %d selections, want 1", len(rec.selected))
			}
			sel := rec.selected[0]
			if sel != original {
				t.Errorf("selected item differs from input: %+v", sel)
			}
			if coll.items[0] != original {
				t.Error("collection must not be mutated")
			}
			if c.Active() || c.Tooltip().Visible || c.SelectionSuppressed() {
				t.Error("session state should be cleared")
			}
		})
	}
}

func TestSmallMovementIsIgnored(t *testing.T) {
	c, _, rec := newDaysController(dayItem("a", 2024, 10, 20))
	_ = c.Press(0, GestureMove, Point{X: 150})

	geom, changed := c.Move(Point{X: 152})
	if changed {
		t.Error("movement below the threshold should be ignored")
	}
	if geom.Left != 100 {
		t.Errorf("geometry moved: %+v", geom)
	}

	res := c.Release(Point{X: 151})
	if res.Kind != ResultSelected {
		t.Errorf("Kind = %v, want selected", res.Kind)
	}
	if len(rec.selected) != 1 {
		t.Error("expected a selection notification")
	}
}

func TestResizeEndSnapsToDays(t *testing.T) {
	c, _, rec := newDaysController(dayItem("a", 2024, 10, 20))
	unit := 10.0

	if err := c.Press(0, GestureResizeEnd, Point{X: 205}); err != nil {
		t.Fatal(err)
	}
	geom, changed := c.Move(Point{X: 205 + 2*unit})
	if !changed {
		t.Fatal("expected geometry update")
	}
	if geom.Left != 100 || geom.Width != 130 {
		t.Errorf("geometry = %+v, want left 100 width 130", geom)
	}
	if got := c.Tooltip().Text; got != "End: Jan 23, 2024" {
		t.Errorf("tooltip = %q", got)
	}

	res := c.Release(Point{X: 205 + 2*unit})
	if res.Kind != ResultResized {
		t.Fatalf("Kind = %v, want resized", res.Kind)
	}
	if res.DayDelta != 2 {
		t.Errorf("DayDelta = %d, want 2", res.DayDelta)
	}

	want := time.Date(2024, 1, 23, 23, 59, 59, int(999*time.Millisecond), time.Local)
	if !res.Item.EndDate.Equal(want) {
		t.Errorf("EndDate = %v, want %v", res.Item.EndDate, want)
	}
	if dateutil.DayOffset(dateutil.YearStart(2024), res.Item.EndDate) != 22 {
		t.Error("end should land on day offset 22")
	}
	if !res.Item.StartDate.Equal(dayItem("a", 2024, 10, 20).StartDate) {
		t.Error("start must not change on resize-end")
	}
	if len(rec.updated) != 1 || len(rec.resized) != 1 || len(rec.moved) != 0 {
		t.Errorf("hooks: updated=%d resized=%d moved=%d", len(rec.updated), len(rec.resized), len(rec.moved))
	}
}

func TestResizeEndRespectsMinimums(t *testing.T) {
	c, _, _ := newDaysController(dayItem("a", 2024, 10, 20))
	_ = c.Press(0, GestureResizeEnd, Point{X: 205})

	geom, _ := c.Move(Point{X: -500})
	if geom.Width != DefaultOptions().MinWidth {
		t.Errorf("width = %v, want min width", geom.Width)
	}

	res := c.Release(Point{X: -500})
	ys := dateutil.YearStart(2024)
	if got := dateutil.DayOffset(ys, res.Item.EndDate); got != 10 {
		t.Errorf("end day = %d, want 10 (one-day minimum)", got)
	}
	if res.Item.DurationDays() != 1 {
		t.Errorf("DurationDays = %d, want 1", res.Item.DurationDays())
	}
}

func TestResizeStart(t *testing.T) {
	c, _, rec := newDaysController(dayItem("a", 2024, 10, 20))
	original := dayItem("a", 2024, 10, 20)

	_ = c.Press(0, GestureResizeStart, Point{X: 101})
	geom, _ := c.Move(Point{X: 101 - 30})
	if geom.Left != 70 || geom.Width != 140 {
		t.Errorf("geometry = %+v, want left 70 width 140", geom)
	}
	if got := c.Tooltip().Text; got != "Start: Jan 8, 2024" {
		t.Errorf("tooltip = %q", got)
	}

	res := c.Release(Point{X: 101 - 30})
	if res.Kind != ResultResized {
		t.Fatalf("Kind = %v", res.Kind)
	}
	ys := dateutil.YearStart(2024)
	if got := dateutil.DayOffset(ys, res.Item.StartDate); got != 7 {
		t.Errorf("start day = %d, want 7", got)
	}
	if res.Item.StartDate.Hour() != 0 || res.Item.StartDate.Minute() != 0 {
		t.Errorf("start should be midnight, got %v", res.Item.StartDate)
	}
	if !res.Item.EndDate.Equal(original.EndDate) {
		t.Error("end must not change on resize-start")
	}
	if len(rec.resized) != 1 {
		t.Error("expected resize notification")
	}
}

func TestResizeStartCannotCrossEnd(t *testing.T) {
	c, _, _ := newDaysController(dayItem("a", 2024, 10, 20))
	_ = c.Press(0, GestureResizeStart, Point{X: 101})

	geom, _ := c.Move(Point{X: 1000})
	minW := DefaultOptions().MinWidth
	if geom.Width != minW {
		t.Errorf("width = %v, want %v", geom.Width, minW)
	}
	if geom.Right() != 210 {
		t.Errorf("right edge moved to %v", geom.Right())
	}

	res := c.Release(Point{X: 1000})
	if !res.Item.StartDate.Before(res.Item.EndDate) {
		t.Error("start must stay on or before end")
	}
	if res.Item.DurationDays() < 1 {
		t.Errorf("DurationDays = %d", res.Item.DurationDays())
	}
}

func TestMoveShiftsBothDates(t *testing.T) {
	c, _, rec := newDaysController(dayItem("a", 2024, 10, 20))
	_ = c.Press(0, GestureMove, Point{X: 150})

	geom, _ := c.Move(Point{X: 200})
	if geom.Left != 150 || geom.Width != 110 {
		t.Errorf("geometry = %+v", geom)
	}

	res := c.Release(Point{X: 200})
	if res.Kind != ResultMoved {
		t.Fatalf("Kind = %v, want moved", res.Kind)
	}
	ys := dateutil.YearStart(2024)
	if got := dateutil.DayOffset(ys, res.Item.StartDate); got != 15 {
		t.Errorf("start day = %d, want 15", got)
	}
	if got := dateutil.DayOffset(ys, res.Item.EndDate); got != 25 {
		t.Errorf("end day = %d, want 25", got)
	}
	if res.Item.EndDate.Hour() != 23 {
		t.Errorf("end should be end of day, got %v", res.Item.EndDate)
	}
	if len(rec.moved) != 1 || len(rec.resized) != 0 {
		t.Error("expected a move notification only")
	}
}

func TestMoveClampsAtTimelineStart(t *testing.T) {
	c, _, _ := newDaysController(dayItem("a", 2024, 10, 20))
	_ = c.Press(0, GestureMove, Point{X: 150})

	geom, _ := c.Move(Point{X: -400})
	if geom.Left != 0 {
		t.Errorf("Left = %v, want 0", geom.Left)
	}

	res := c.Release(Point{X: -400})
	ys := dateutil.YearStart(2024)
	if got := dateutil.DayOffset(ys, res.Item.StartDate); got != 0 {
		t.Errorf("start day = %d, want 0", got)
	}
}

func TestMoveKeepsUnclampedDates(t *testing.T) {
	// Dec 28 2023 – Jan 3 2024 shows clamped to Jan 1..3 of 2024.
	it := item.Item{
		ID:        "x",
		Title:     "holidays",
		StartDate: time.Date(2023, 12, 28, 0, 0, 0, 0, time.Local),
		EndDate:   time.Date(2024, 1, 3, 23, 59, 59, int(999*time.Millisecond), time.Local),
	}
	c, _, _ := newDaysController(it)

	if err := c.Press(0, GestureMove, Point{X: 10}); err != nil {
		t.Fatal(err)
	}
	res := c.Release(Point{X: 30})
	if res.Kind != ResultMoved {
		t.Fatalf("Kind = %v", res.Kind)
	}

	wantStart := time.Date(2023, 12, 30, 0, 0, 0, 0, time.Local)
	wantEnd := time.Date(2024, 1, 5, 23, 59, 59, int(999*time.Millisecond), time.Local)
	if !res.Item.StartDate.Equal(wantStart) {
		t.Errorf("StartDate = %v, want %v", res.Item.StartDate, wantStart)
	}
	if !res.Item.EndDate.Equal(wantEnd) {
		t.Errorf("EndDate = %v, want %v", res.Item.EndDate, wantEnd)
	}
}

func TestResizeEndKeepsUnclampedStart(t *testing.T) {
	it := item.Item{
		ID:        "x",
		Title:     "holidays",
		StartDate: time.Date(2023, 12, 28, 0, 0, 0, 0, time.Local),
		EndDate:   time.Date(2024, 1, 3, 23, 59, 59, int(999*time.Millisecond), time.Local),
	}
	c, _, _ := newDaysController(it)

	_ = c.Press(0, GestureResizeEnd, Point{X: 29})
	res := c.Release(Point{X: 49})
	if !res.Item.StartDate.Equal(it.StartDate) {
		t.Errorf("StartDate changed to %v", res.Item.StartDate)
	}
	if got := dateutil.DayOffset(dateutil.YearStart(2024), res.Item.EndDate); got != 4 {
		t.Errorf("end day = %d, want 4", got)
	}
}

func TestReleaseSnappingToSameDayKeepsDates(t *testing.T) {
	timed := item.Item{
		ID:        "t",
		Title:     "workshop",
		StartDate: time.Date(2024, 3, 10, 9, 30, 0, 0, time.Local),
		EndDate:   time.Date(2024, 3, 20, 17, 0, 0, 0, time.Local),
	}
	clipped := item.Item{
		ID:        "c",
		Title:     "holidays",
		StartDate: time.Date(2023, 12, 28, 0, 0, 0, 0, time.Local),
		EndDate:   time.Date(2024, 1, 3, 23, 59, 59, int(999*time.Millisecond), time.Local),
	}

	// Four pixels clears the 3px click threshold but stays inside a 10px day.
	tests := []struct {
		name    string
		it      item.Item
		gesture Gesture
		x       float64
		kind    ResultKind
	}{
		{"move timed", timed, GestureMove, 740, ResultMoved},
		{"resize start timed", timed, GestureResizeStart, 690, ResultResized},
		{"resize end timed", timed, GestureResizeEnd, 800, ResultResized},
		{"move clipped", clipped, GestureMove, 10, ResultMoved},
		{"resize start clipped", clipped, GestureResizeStart, 0, ResultResized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _, rec := newDaysController(tt.it)
			if err := c.Press(0, tt.gesture, Point{X: tt.x}); err != nil {
				t.Fatal(err)
			}
			res := c.Release(Point{X: tt.x + 4})

			if res.Kind != tt.kind {
				t.Fatalf("Kind = %v, want %v", res.Kind, tt.kind)
			}
			if res.DayDelta != 0 || res.Changed {
				t.Errorf("DayDelta = %d Changed = %t, want 0 false", res.DayDelta, res.Changed)
			}
			if !res.Item.StartDate.Equal(tt.it.StartDate) || !res.Item.EndDate.Equal(tt.it.EndDate) {
				t.Errorf("dates = %v..%v, want %v..%v", res.Item.StartDate, res.Item.EndDate, tt.it.StartDate, tt.it.EndDate)
			}
			if len(rec.updated) != 1 {
				t.Errorf("OnUpdate called %d times, want 1", len(rec.updated))
			}
		})
	}
}

func TestReleaseReportsChangedDates(t *testing.T) {
	c, _, _ := newDaysController(dayItem("a", 2024, 10, 20))

	_ = c.Press(0, GestureMove, Point{X: 150})
	res := c.Release(Point{X: 170})
	if res.DayDelta != 2 || !res.Changed {
		t.Errorf("DayDelta = %d Changed = %t, want 2 true", res.DayDelta, res.Changed)
	}
}

func TestReleaseMissingItemAborts(t *testing.T) {
	c, coll, rec := newDaysController(dayItem("a", 2024, 10, 20))
	_ = c.Press(0, GestureMove, Point{X: 150})
	c.Move(Point{X: 200})

	coll.items = nil
	res := c.Release(Point{X: 200})

	if res.Kind != ResultAborted {
		t.Errorf("Kind = %v, want aborted", res.Kind)
	}
	if len(rec.updated) != 0 || len(rec.moved) != 0 {
		t.Error("no notification expected on abort")
	}
	if c.Active() || c.Tooltip().Visible || c.SelectionSuppressed() {
		t.Error("session must be cleared after abort")
	}
}

func TestReleaseCommitsAgainstCurrentCollection(t *testing.T) {
	c, coll, _ := newDaysController(dayItem("a", 2024, 10, 20))
	_ = c.Press(0, GestureResizeEnd, Point{X: 205})

	// The collection renamed the item mid-gesture; the commit keeps it.
	renamed := coll.items[0]
	renamed.Title = "renamed"
	coll.items = []item.Item{renamed}

	res := c.Release(Point{X: 225})
	if res.Item.Title != "renamed" {
		t.Errorf("Title = %q, want renamed", res.Item.Title)
	}
}

func TestNonFiniteMoveKeepsGeometry(t *testing.T) {
	c, _, _ := newDaysController(dayItem("a", 2024, 10, 20))
	_ = c.Press(0, GestureMove, Point{X: 150})
	c.Move(Point{X: 180})

	geom, changed := c.Move(Point{X: math.NaN()})
	if changed {
		t.Error("non-finite move should not change geometry")
	}
	if geom.Left != 130 {
		t.Errorf("Left = %v, want 130", geom.Left)
	}

	res := c.Release(Point{X: math.Inf(1)})
	if res.Kind != ResultMoved || res.DayDelta != 3 {
		t.Errorf("release = %v delta %d, want moved by 3", res.Kind, res.DayDelta)
	}
}

func TestReleaseWithoutSession(t *testing.T) {
	c, _, rec := newDaysController(dayItem("a", 2024, 10, 20))
	if res := c.Release(Point{}); res.Kind != ResultNone {
		t.Errorf("Kind = %v, want none", res.Kind)
	}
	if _, changed := c.Move(Point{X: 10}); changed {
		t.Error("Move without session should be a no-op")
	}
	if len(rec.selected) != 0 {
		t.Error("unexpected notification")
	}
}

func TestResetClearsSession(t *testing.T) {
	c, _, _ := newDaysController(dayItem("a", 2024, 10, 20))
	_ = c.Press(0, GestureMove, Point{X: 150})
	c.Reset()

	if c.Active() || c.Tooltip().Visible {
		t.Error("Reset should clear the session")
	}
	if err := c.Press(0, GestureMove, Point{X: 150}); err != nil {
		t.Errorf("Press after Reset: %v", err)
	}
}

func TestMonthModeDragUsesInverseMapping(t *testing.T) {
	engine := projection.NewEngine(2023, projection.ViewMonths, 365)
	it := dayItem("m", 2023, 31, 40) // Feb 1 – Feb 10
	coll := &collection{items: []item.Item{it}}
	c := NewController(engine, coll, Hooks{}, DefaultOptions())

	ci := engine.Project(it)
	widths := engine.MonthWidths()

	// Drag the whole item right by exactly February's column width.
	if err := c.Press(0, GestureMove, Point{X: ci.Left + 1}); err != nil {
		t.Fatal(err)
	}
	res := c.Release(Point{X: ci.Left + 1 + widths[1]})

	got := dateutil.DayOffset(engine.YearStart(), res.Item.StartDate)
	if got != 59 { // Mar 1
		t.Errorf("start day = %d, want 59", got)
	}
	if !strings.HasPrefix(dateutil.FormatShort(res.Item.StartDate), "Mar 1,") {
		t.Errorf("StartDate = %v", res.Item.StartDate)
	}
}
