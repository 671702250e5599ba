package tui

import (
	"fmt"
	"math"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/almanac/internal/dateutil"
	"github.com/javiermolinar/almanac/internal/item"
	"github.com/javiermolinar/almanac/internal/projection"
	"github.com/javiermolinar/almanac/internal/tui/commands"
)

func statusCmd(msg string) tea.Cmd {
	return func() tea.Msg {
		return commands.StatusMsgCmd{Msg: msg}
	}
}

// changeYear switches the visible year and reloads its items.
func (m Model) changeYear(year int) (tea.Model, tea.Cmd) {
	if year < 1 || year > 9999 {
		return m, nil
	}
	if m.drag.Active() {
		m.drag.Reset()
		m.setMode(ModeNormal, "year changed")
	}
	m.engine.SetYear(year)
	m.store.set(nil)
	m.selectedID = ""
	m.overlay.Hide()
	m.scrollX, m.scrollY = 0, 0
	m.loading = m.repo != nil
	return m, m.loadItems()
}

// setViewMode changes the granularity, keeping the day at the left edge
// of the viewport in view.
func (m *Model) setViewMode(mode projection.ViewMode) {
	if mode == m.engine.Mode() {
		return
	}
	leftDay := m.engine.DayAt(float64(m.scrollX))
	m.engine.SetViewMode(mode)
	m.scrollX = int(math.Round(m.engine.DayPosition(leftDay)))
	m.clampScroll()
}

// jumpToToday shows the current year with today centered.
func (m Model) jumpToToday() (tea.Model, tea.Cmd) {
	now := m.now()
	var cmd tea.Cmd
	if now.Year() != m.engine.Year() {
		updated, load := m.changeYear(now.Year())
		m = updated.(Model)
		cmd = load
	}
	m.scrollX = m.dayScreenCenter(m.todayOffset())
	m.clampScroll()
	return m, cmd
}

// todayOffset returns today's day offset in the visible year, or -1.
func (m Model) todayOffset() int {
	now := m.now()
	if now.Year() != m.engine.Year() {
		return -1
	}
	return dateutil.DayOffset(m.engine.YearStart(), now)
}

// dayScreenCenter returns the scroll offset that centers day.
func (m Model) dayScreenCenter(day int) int {
	if day < 0 {
		return m.scrollX
	}
	pos := int(math.Round(m.engine.DayPosition(day)))
	return pos - m.layoutCache.TimelineW/2
}

// moveSelection selects the item delta rows away from the current one.
func (m *Model) moveSelection(delta int) {
	layout := m.engine.Layout(m.store.Items())
	if len(layout) == 0 {
		m.selectedID = ""
		return
	}

	idx := selectedIndex(layout, m.selectedID)
	switch {
	case idx < 0 && delta > 0:
		idx = 0
	case idx < 0:
		idx = len(layout) - 1
	default:
		idx = clampInt(idx+delta, 0, len(layout)-1)
	}
	m.selectedID = layout[idx].Item.ID
	m.ensureVisible(layout, idx)
}

// ensureVisible scrolls so row idx and the start of its bar are on screen.
func (m *Model) ensureVisible(layout []projection.ComputedItem, idx int) {
	if rows := m.layoutCache.RowsH; rows > 0 {
		if idx < m.scrollY {
			m.scrollY = idx
		} else if idx >= m.scrollY+rows {
			m.scrollY = idx - rows + 1
		}
	}

	start, end := barCells(layout[idx].Left, layout[idx].Width)
	w := m.layoutCache.TimelineW
	if w > 0 && (end <= m.scrollX || start >= m.scrollX+w) {
		m.scrollX = start
	}
	m.clampScroll()
}

func selectedIndex(layout []projection.ComputedItem, id string) int {
	if id == "" {
		return -1
	}
	for i, ci := range layout {
		if ci.Item.ID == id {
			return i
		}
	}
	return -1
}

// itemDetails renders the lines of the details box.
func itemDetails(it item.Item) string {
	days := it.DurationDays()
	unit := "days"
	if days == 1 {
		unit = "day"
	}

	lines := []string{
		it.Title,
		"",
		fmt.Sprintf("From  %s", dateutil.FormatShort(it.StartDate)),
		fmt.Sprintf("To    %s", dateutil.FormatShort(it.EndDate)),
		fmt.Sprintf("Span  %d %s", days, unit),
		"",
		"ID    " + truncateStr(it.ID, 36),
	}
	return strings.Join(lines, "\n")
}
