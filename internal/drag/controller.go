package drag

import (
	"errors"
	"math"

	"github.com/javiermolinar/almanac/internal/dateutil"
	"github.com/javiermolinar/almanac/internal/item"
	"github.com/javiermolinar/almanac/internal/projection"
)

// Controller errors.
var (
	ErrSessionActive  = errors.New("a drag session is already active")
	ErrNoItem         = errors.New("no item at index")
	ErrUnknownGesture = errors.New("unknown gesture")
)

// Options tune pointer handling.
type Options struct {
	// ClickThreshold is the displacement below which movement is ignored
	// and a release counts as a selection.
	ClickThreshold float64
	// MinWidth is the narrowest an item may be resized to on screen.
	MinWidth float64
	// TooltipOffset lifts the tooltip above the pointer.
	TooltipOffset float64
}

// DefaultOptions returns pixel defaults for a pointer-precision display.
func DefaultOptions() Options {
	return Options{
		ClickThreshold: 3,
		MinWidth:       4,
		TooltipOffset:  24,
	}
}

// Source gives read access to the owned item collection.
type Source interface {
	Items() []item.Item
}

// SourceFunc adapts a function to Source.
type SourceFunc func() []item.Item

// Items implements Source.
func (f SourceFunc) Items() []item.Item { return f() }

// Controller runs the Idle → Active → Idle gesture state machine.
// At most one Session is active at a time.
type Controller struct {
	engine *projection.Engine
	source Source
	hooks  Hooks
	opts   Options

	session           *Session
	tooltip           Tooltip
	suppressSelection bool
}

// NewController creates a controller reading geometry from engine and
// items from source.
func NewController(engine *projection.Engine, source Source, hooks Hooks, opts Options) *Controller {
	return &Controller{
		engine: engine,
		source: source,
		hooks:  hooks,
		opts:   opts,
	}
}

// Active reports whether a gesture is in progress.
func (c *Controller) Active() bool {
	return c.session != nil
}

// Session returns a copy of the active session.
func (c *Controller) Session() (Session, bool) {
	if c.session == nil {
		return Session{}, false
	}
	return *c.session, true
}

// Tooltip returns the current tooltip.
func (c *Controller) Tooltip() Tooltip {
	return c.tooltip
}

// SelectionSuppressed reports whether text selection should be disabled.
func (c *Controller) SelectionSuppressed() bool {
	return c.suppressSelection
}

// Options returns the controller options.
func (c *Controller) Options() Options {
	return c.opts
}

// Press starts a gesture on the item at index of the visible layout.
func (c *Controller) Press(index int, g Gesture, p Point) error {
	if c.session != nil {
		return ErrSessionActive
	}
	if g < GestureMove || g > GestureResizeEnd {
		return ErrUnknownGesture
	}

	layout := c.engine.Layout(c.source.Items())
	if index < 0 || index >= len(layout) {
		return ErrNoItem
	}
	ci := layout[index]
	geom := Geometry{Left: ci.Left, Width: ci.Width}

	c.session = &Session{
		Gesture:  g,
		Index:    index,
		Item:     ci.Item,
		InitialX: p.X,
		Initial:  geom,
		Current:  geom,
		StartDay: ci.Start,
		EndDay:   ci.End(),
		Preview:  ci.Item,
	}
	c.suppressSelection = true
	c.tooltip = Tooltip{
		Visible:  true,
		Text:     c.tooltipText(c.session.Preview),
		Position: c.tooltipAt(p),
	}
	return nil
}

// Move updates the provisional geometry for a pointer at p. The returned
// geometry follows the pointer in raw pixels; the snapped dates are in the
// session preview and tooltip. The bool is false when nothing changed.
func (c *Controller) Move(p Point) (Geometry, bool) {
	s := c.session
	if s == nil {
		return Geometry{}, false
	}

	deltaX := p.X - s.InitialX
	if !projection.Finite(deltaX) || math.Abs(deltaX) < c.opts.ClickThreshold {
		return s.Current, false
	}

	geom, dayDelta := c.resolve(s, deltaX)
	if !projection.Finite(geom.Left) || !projection.Finite(geom.Width) {
		return s.Current, false
	}

	s.Current = geom
	s.lastDelta = deltaX
	s.dayDelta = dayDelta
	s.Preview = c.apply(s, s.Item, dayDelta)

	c.tooltip = Tooltip{
		Visible:  true,
		Text:     c.tooltipText(s.Preview),
		Position: c.tooltipAt(p),
	}
	return geom, true
}

// Release ends the gesture. A release within the click threshold of the
// press point selects the item unchanged. Otherwise the snapped dates are
// applied to the collection's current copy of the item and the hooks are
// notified; Result.Changed is false when the gesture snapped back to the
// original dates. The session ends in every case; a missing item aborts
// the commit without error.
func (c *Controller) Release(p Point) Result {
	s := c.session
	if s == nil {
		return Result{Kind: ResultNone}
	}
	defer c.Reset()

	deltaX := p.X - s.InitialX
	if !projection.Finite(deltaX) {
		deltaX = s.lastDelta
	}

	if math.Abs(deltaX) < c.opts.ClickThreshold {
		c.hooks.selected(s.Item)
		return Result{Kind: ResultSelected, Gesture: s.Gesture, Item: s.Item}
	}

	_, dayDelta := c.resolve(s, deltaX)

	items := c.source.Items()
	idx := item.Find(items, s.Item)
	if idx < 0 {
		return Result{Kind: ResultAborted, Gesture: s.Gesture, Item: s.Item}
	}

	original := items[idx]
	updated := c.apply(s, original, dayDelta)
	c.hooks.update(updated)

	kind := ResultResized
	if s.Gesture == GestureMove {
		kind = ResultMoved
		c.hooks.moved(updated)
	} else {
		c.hooks.resized(updated)
	}

	return Result{
		Kind:     kind,
		Gesture:  s.Gesture,
		Item:     updated,
		DayDelta: dayDelta,
		Changed:  !updated.StartDate.Equal(original.StartDate) || !updated.EndDate.Equal(original.EndDate),
	}
}

// Reset discards any active session and clears the tooltip.
func (c *Controller) Reset() {
	c.session = nil
	c.tooltip = Tooltip{}
	c.suppressSelection = false
}

// resolve computes the on-screen geometry for a raw pointer delta and the
// day delta it snaps to.
func (c *Controller) resolve(s *Session, deltaX float64) (Geometry, int) {
	timeline := c.engine.TimelineWidth()
	initial := s.Initial

	switch s.Gesture {
	case GestureResizeStart:
		d := math.Min(deltaX, initial.Width-c.opts.MinWidth)
		if initial.Left+d < 0 {
			d = -initial.Left
		}
		geom := Geometry{Left: initial.Left + d, Width: initial.Width - d}
		return geom, c.engine.DayDelta(initial.Left, d)

	case GestureResizeEnd:
		width := math.Max(c.opts.MinWidth, initial.Width+deltaX)
		if initial.Left+width > timeline {
			width = math.Max(c.opts.MinWidth, timeline-initial.Left)
		}
		geom := Geometry{Left: initial.Left, Width: width}
		return geom, c.engine.DayDelta(initial.Right(), width-initial.Width)

	default:
		left := math.Max(0, initial.Left+deltaX)
		if limit := timeline - initial.Width; limit >= 0 && left > limit {
			left = limit
		}
		geom := Geometry{Left: left, Width: initial.Width}
		return geom, c.engine.DayDelta(initial.Left, left-initial.Left)
	}
}

// apply returns original with the gesture's dates replaced. Only the
// dragged axis changes on resize; a move shifts both ends of the true,
// unclamped range. A zero delta leaves the dates untouched, times of day
// and out-of-year dates included.
func (c *Controller) apply(s *Session, original item.Item, dayDelta int) item.Item {
	if dayDelta == 0 {
		return original
	}
	yearStart := c.engine.YearStart()
	last := c.engine.DaysInYear() - 1
	updated := original

	switch s.Gesture {
	case GestureResizeStart:
		day := clamp(s.StartDay+dayDelta, 0, s.EndDay)
		updated.StartDate = dateutil.DateAtDayOffset(yearStart, day, false)
	case GestureResizeEnd:
		day := clamp(s.EndDay+dayDelta, s.StartDay, last)
		updated.EndDate = dateutil.DateAtDayOffset(yearStart, day, true)
	default:
		updated.StartDate = dateutil.TruncateToDay(dateutil.ShiftDays(original.StartDate, dayDelta))
		updated.EndDate = dateutil.EndOfDay(dateutil.ShiftDays(original.EndDate, dayDelta))
	}
	return updated
}

func (c *Controller) tooltipText(preview item.Item) string {
	switch c.session.Gesture {
	case GestureResizeStart:
		return "Start: " + dateutil.FormatShort(preview.StartDate)
	case GestureResizeEnd:
		return "End: " + dateutil.FormatShort(preview.EndDate)
	default:
		return dateutil.FormatShort(preview.StartDate) + " – " + dateutil.FormatShort(preview.EndDate)
	}
}

func (c *Controller) tooltipAt(p Point) Point {
	return Point{X: p.X, Y: p.Y - c.opts.TooltipOffset}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
