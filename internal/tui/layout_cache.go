package tui

import (
	"math"

	"github.com/javiermolinar/almanac/internal/tui/view"
)

// Screen rows above the item rows.
const (
	headerRows = 1
	labelRows  = 1
)

// Gutter sizing. Narrow terminals give the whole width to the timeline.
const (
	gutterMinTerminalW = 40
	gutterMaxW         = 24
)

// LayoutCache stores layout dimensions derived from the window size.
type LayoutCache struct {
	Width  int
	Height int

	GutterW   int // item titles
	TimelineW int // visible timeline cells

	LabelY  int // label row
	RowsY   int // first item row
	RowsH   int // item rows that fit
	FooterY int
}

func (m Model) buildLayoutCache(width, height int) LayoutCache {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}

	gutterW := 0
	if width >= gutterMinTerminalW {
		gutterW = min(gutterMaxW, width/5)
	}

	rowsY := headerRows + labelRows
	rowsH := height - rowsY - view.FooterHeight
	if rowsH < 0 {
		rowsH = 0
	}

	return LayoutCache{
		Width:     width,
		Height:    height,
		GutterW:   gutterW,
		TimelineW: width - gutterW,
		LabelY:    headerRows,
		RowsY:     rowsY,
		RowsH:     rowsH,
		FooterY:   rowsY + rowsH,
	}
}

// applyLayout resizes the timeline to the visible cells and keeps the
// scroll offsets in range.
func (m *Model) applyLayout(width, height int) {
	m.width = width
	m.height = height
	m.layoutCache = m.buildLayoutCache(width, height)
	m.engine.SetContainerWidth(float64(m.layoutCache.TimelineW))
	m.clampScroll()
	LogLayout(m.layoutCache, m.engine.TimelineWidth())
}

// maxScrollX returns the widest horizontal scroll offset.
func (m Model) maxScrollX() int {
	total := int(math.Ceil(m.engine.TimelineWidth()))
	return max(0, total-m.layoutCache.TimelineW)
}

// maxScrollY returns the furthest vertical scroll offset.
func (m Model) maxScrollY() int {
	rows := len(m.engine.Layout(m.store.Items()))
	return max(0, rows-m.layoutCache.RowsH)
}

func (m *Model) clampScroll() {
	m.scrollX = clampInt(m.scrollX, 0, m.maxScrollX())
	m.scrollY = clampInt(m.scrollY, 0, m.maxScrollY())
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
