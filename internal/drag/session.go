// Package drag turns pointer gestures on timeline items into date changes.
package drag

import (
	"fmt"

	"github.com/javiermolinar/almanac/internal/item"
)

// Gesture identifies what part of an item was pressed.
type Gesture int

const (
	GestureMove        Gesture = iota // body
	GestureResizeStart                // left handle
	GestureResizeEnd                  // right handle
)

// String returns the gesture name.
func (g Gesture) String() string {
	switch g {
	case GestureMove:
		return "move"
	case GestureResizeStart:
		return "resizeStart"
	case GestureResizeEnd:
		return "resizeEnd"
	default:
		return fmt.Sprintf("Gesture(%d)", int(g))
	}
}

// Point is a pointer position in timeline pixels.
type Point struct {
	X, Y float64
}

// Geometry is the horizontal extent of an item in pixels.
type Geometry struct {
	Left  float64
	Width float64
}

// Right returns the right edge.
func (g Geometry) Right() float64 {
	return g.Left + g.Width
}

// Tooltip is the live date preview shown while dragging.
type Tooltip struct {
	Visible  bool
	Text     string
	Position Point
}

// Session is the state of one in-progress gesture. It exists from
// pointer-down to pointer-up and is never reused.
type Session struct {
	Gesture  Gesture
	Index    int       // position in the visible layout
	Item     item.Item // the item as pressed, with its true dates
	InitialX float64
	Initial  Geometry
	Current  Geometry

	// Day offsets captured on entry, clamped to the visible year.
	StartDay int
	EndDay   int // inclusive

	// Preview is the snapped item the gesture would commit right now.
	Preview item.Item

	dayDelta  int
	lastDelta float64
}

// DayDelta returns the snapped day delta of the latest move.
func (s Session) DayDelta() int {
	return s.dayDelta
}

// ResultKind classifies how a gesture ended.
type ResultKind int

const (
	ResultNone     ResultKind = iota // no session was active
	ResultSelected                   // released without real displacement
	ResultMoved
	ResultResized
	ResultAborted // the original item was gone at commit time
)

// String returns the result kind name.
func (k ResultKind) String() string {
	switch k {
	case ResultNone:
		return "none"
	case ResultSelected:
		return "selected"
	case ResultMoved:
		return "moved"
	case ResultResized:
		return "resized"
	case ResultAborted:
		return "aborted"
	default:
		return fmt.Sprintf("ResultKind(%d)", int(k))
	}
}

// Result describes the end of a gesture.
type Result struct {
	Kind     ResultKind
	Gesture  Gesture
	Item     item.Item // the committed item, or the selected original
	DayDelta int
	Changed  bool // the committed dates differ from the original
}

// Hooks are notified when a gesture ends. Nil hooks are skipped.
type Hooks struct {
	OnUpdate func(item.Item) // replacement item for the collection
	OnSelect func(item.Item)
	OnMove   func(item.Item)
	OnResize func(item.Item)
}

func (h Hooks) update(it item.Item) {
	if h.OnUpdate != nil {
		h.OnUpdate(it)
	}
}

func (h Hooks) selected(it item.Item) {
	if h.OnSelect != nil {
		h.OnSelect(it)
	}
}

func (h Hooks) moved(it item.Item) {
	if h.OnMove != nil {
		h.OnMove(it)
	}
}

func (h Hooks) resized(it item.Item) {
	if h.OnResize != nil {
		h.OnResize(it)
	}
}
