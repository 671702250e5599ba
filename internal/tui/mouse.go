package tui

import (
	"fmt"
	"math"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/almanac/internal/drag"
	"github.com/javiermolinar/almanac/internal/projection"
	"github.com/javiermolinar/almanac/internal/tui/commands"
)

// handleCells is the narrowest bar that gets resize handles. Narrower
// bars can only be moved.
const handleCells = 3

// wheelRows is how far one wheel notch scrolls.
const wheelRows = 1

type hitKind int

const (
	hitNone   hitKind = iota
	hitGutter         // title column of an item row
	hitBar            // an item bar
	hitEmpty          // timeline cells of an item row outside its bar
)

// hit is the result of mapping a screen cell onto the timeline.
type hit struct {
	kind    hitKind
	index   int // layout index of the row
	gesture drag.Gesture
}

// barCells returns the screen cells [start, end) covered by a bar of the
// given geometry in timeline cells. Every bar covers at least one cell.
func barCells(left, width float64) (int, int) {
	start := int(math.Round(left))
	end := int(math.Round(left + width))
	if end < start+1 {
		end = start + 1
	}
	return start, end
}

// gestureAt picks the gesture for a press at cell px of a bar covering
// [start, end).
func gestureAt(px, start, end int) drag.Gesture {
	if end-start < handleCells {
		return drag.GestureMove
	}
	switch px {
	case start:
		return drag.GestureResizeStart
	case end - 1:
		return drag.GestureResizeEnd
	default:
		return drag.GestureMove
	}
}

// hitTest maps a screen cell to the item row and bar part under it.
func (m Model) hitTest(x, y int) hit {
	lc := m.layoutCache
	if y < lc.RowsY || y >= lc.RowsY+lc.RowsH || x < 0 || x >= lc.Width {
		return hit{kind: hitNone}
	}

	layout := m.engine.Layout(m.store.Items())
	idx := y - lc.RowsY + m.scrollY
	if idx < 0 || idx >= len(layout) {
		return hit{kind: hitNone}
	}

	if x < lc.GutterW {
		return hit{kind: hitGutter, index: idx}
	}

	ci := layout[idx]
	px := x - lc.GutterW + m.scrollX
	start, end := barCells(ci.Left, ci.Width)
	if px < start || px >= end {
		return hit{kind: hitEmpty, index: idx}
	}
	return hit{kind: hitBar, index: idx, gesture: gestureAt(px, start, end)}
}

// pointer converts a screen position to timeline coordinates.
func (m Model) pointer(msg tea.MouseMsg) drag.Point {
	return drag.Point{
		X: float64(msg.X - m.layoutCache.GutterW + m.scrollX),
		Y: float64(msg.Y),
	}
}

// handleMouseMsg handles pointer input.
func (m Model) handleMouseMsg(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	LogMouse(msg)

	if m.mode == ModePrompt || m.mode == ModeConfirm {
		return m, nil
	}

	switch msg.Action {
	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			if msg.Shift {
				m.scrollBy(-m.scrollStep(), 0)
			} else {
				m.scrollBy(0, -wheelRows)
			}
		case tea.MouseButtonWheelDown:
			if msg.Shift {
				m.scrollBy(m.scrollStep(), 0)
			} else {
				m.scrollBy(0, wheelRows)
			}
		case tea.MouseButtonWheelLeft:
			m.scrollBy(-m.scrollStep(), 0)
		case tea.MouseButtonWheelRight:
			m.scrollBy(m.scrollStep(), 0)
		case tea.MouseButtonLeft:
			return m.handlePress(msg)
		}
		return m, nil

	case tea.MouseActionMotion:
		if m.mode != ModeDrag {
			return m, nil
		}
		if _, changed := m.drag.Move(m.pointer(msg)); changed {
			if s, ok := m.drag.Session(); ok {
				LogDragMove(s)
			}
		}
		return m, nil

	case tea.MouseActionRelease:
		if m.mode != ModeDrag {
			return m, nil
		}
		return m.handleRelease(msg)
	}

	return m, nil
}

func (m Model) handlePress(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.mode == ModeDrag {
		// A press without a release in between; drop the stale gesture.
		m.drag.Reset()
		m.setMode(ModeNormal, "stale drag")
	}
	m.overlay.Hide()

	h := m.hitTest(msg.X, msg.Y)
	layout := m.engine.Layout(m.store.Items())

	switch h.kind {
	case hitGutter:
		m.selectedID = layout[h.index].Item.ID
		return m, nil
	case hitEmpty:
		m.selectedID = ""
		return m, nil
	case hitBar:
		if err := m.drag.Press(h.index, h.gesture, m.pointer(msg)); err != nil {
			LogError("drag press", err)
			return m, nil
		}
		if s, ok := m.drag.Session(); ok {
			LogDragStart(s)
		}
		m.setMode(ModeDrag, "press "+h.gesture.String())
		return m, nil
	}

	return m, nil
}

func (m Model) handleRelease(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	res := m.drag.Release(m.pointer(msg))
	LogDragEnd(res)
	m.setMode(ModeNormal, "release")

	switch res.Kind {
	case drag.ResultSelected:
		m.selectedID = res.Item.ID
		return m, nil
	case drag.ResultMoved, drag.ResultResized:
		m.selectedID = res.Item.ID
		if m.repo == nil || !res.Changed {
			return m, nil
		}
		return m, commands.SaveItem(m.repo, res.Item)
	case drag.ResultAborted:
		return m, statusCmd(fmt.Sprintf("%q no longer exists", res.Item.Title))
	}
	return m, nil
}

// scrollStep is the horizontal distance of one scroll step in cells: a
// week in day view, a month otherwise.
func (m Model) scrollStep() int {
	days := 30.0
	if m.engine.Mode() == projection.ViewDays {
		days = 7
	}
	return max(1, int(math.Round(m.engine.UnitWidth()*days)))
}

func (m *Model) scrollBy(dx, dy int) {
	m.scrollX += dx
	m.scrollY += dy
	m.clampScroll()
}
