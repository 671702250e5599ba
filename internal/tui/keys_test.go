package tui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"

	"github.com/javiermolinar/almanac/internal/projection"
	"github.com/javiermolinar/almanac/internal/tui/commands"
)

func TestYearKeysReload(t *testing.T) {
	m := newTestModel(t)
	m.selectedID = "launch"

	m = send(t, m, key("]"))
	if m.engine.Year() != 2025 {
		t.Fatalf("year = %d, want 2025", m.engine.Year())
	}
	if len(m.Items()) != 0 {
		t.Errorf("items = %d after year change, want 0", len(m.Items()))
	}
	if m.selectedID != "" {
		t.Errorf("selection kept across years")
	}

	// A late load for the previous year is dropped.
	m = send(t, m, commands.ItemsLoadedMsg{Year: 2024, Items: testItems()})
	if len(m.Items()) != 0 {
		t.Errorf("stale load applied: %d items", len(m.Items()))
	}

	m = send(t, m, key("["), key("["))
	if m.engine.Year() != 2023 {
		t.Errorf("year = %d, want 2023", m.engine.Year())
	}
}

func TestViewModeKeys(t *testing.T) {
	tests := []struct {
		keys []string
		want projection.ViewMode
	}{
		{[]string{"w"}, projection.ViewWeeks},
		{[]string{"d"}, projection.ViewDays},
		{[]string{"d", "m"}, projection.ViewMonths},
		{[]string{"v"}, projection.ViewWeeks},
		{[]string{"v", "v", "v"}, projection.ViewMonths},
	}

	for _, tt := range tests {
		t.Run(strings.Join(tt.keys, ","), func(t *testing.T) {
			m := newTestModel(t)
			for _, k := range tt.keys {
				m = send(t, m, key(k))
			}
			if m.engine.Mode() != tt.want {
				t.Errorf("mode = %v, want %v", m.engine.Mode(), tt.want)
			}
		})
	}
}

func TestScrollKeysClamp(t *testing.T) {
	m := newTestModel(t)

	// Month view fits the viewport.
	m = send(t, m, key("right"))
	if m.scrollX != 0 {
		t.Errorf("scrollX = %d in month view, want 0", m.scrollX)
	}

	m = send(t, m, key("d"), key("end"))
	if m.scrollX != m.maxScrollX() || m.scrollX == 0 {
		t.Errorf("scrollX = %d, want max %d", m.scrollX, m.maxScrollX())
	}
	m = send(t, m, key("right"))
	if m.scrollX != m.maxScrollX() {
		t.Errorf("scrolled past the end: %d", m.scrollX)
	}
	m = send(t, m, key("home"), key("left"))
	if m.scrollX != 0 {
		t.Errorf("scrollX = %d, want 0", m.scrollX)
	}
}

func TestViewModeKeepsLeftEdgeDay(t *testing.T) {
	m := newTestModel(t)
	m = send(t, m, key("d"), key("L"))
	leftDay := m.engine.DayAt(float64(m.scrollX))

	m = send(t, m, key("w"))
	if got := m.engine.DayAt(float64(m.scrollX)); got != leftDay {
		t.Errorf("left day = %d after switching to weeks, want %d", got, leftDay)
	}
}

func TestTodayCentersCurrentDay(t *testing.T) {
	m := newTestModel(t)
	m = send(t, m, key("d"), key("t"))

	today := m.todayOffset()
	pos := int(m.engine.DayPosition(today))
	if pos < m.scrollX || pos >= m.scrollX+m.layoutCache.TimelineW {
		t.Errorf("today at %d outside viewport [%d, %d)", pos, m.scrollX, m.scrollX+m.layoutCache.TimelineW)
	}

	m = send(t, m, key("]"), key("t"))
	if m.engine.Year() != 2024 {
		t.Errorf("year = %d after t, want 2024", m.engine.Year())
	}
}

func TestSelectionKeys(t *testing.T) {
	m := newTestModel(t)

	m = send(t, m, key("down"))
	if m.selectedID != "launch" {
		t.Fatalf("selected = %q, want launch", m.selectedID)
	}
	m = send(t, m, key("j"), key("j"))
	if m.selectedID != "trip" {
		t.Errorf("selected = %q, want trip", m.selectedID)
	}
	m = send(t, m, key("k"))
	if m.selectedID != "launch" {
		t.Errorf("selected = %q, want launch", m.selectedID)
	}
	m = send(t, m, key("esc"))
	if m.selectedID != "" {
		t.Errorf("selected = %q after esc, want none", m.selectedID)
	}
	m = send(t, m, key("up"))
	if m.selectedID != "trip" {
		t.Errorf("up with no selection = %q, want trip", m.selectedID)
	}
}

func TestDetailsOverlay(t *testing.T) {
	m := newTestModel(t)

	m = send(t, m, key("enter"))
	if m.overlay.Active() {
		t.Fatal("details opened without a selection")
	}

	m = send(t, m, key("j"), key("enter"))
	if !m.overlay.Active() {
		t.Fatal("details not shown")
	}
	if !strings.Contains(ansi.Strip(m.View()), "Mar 31, 2024") {
		t.Error("details do not show the end date")
	}

	m = send(t, m, key("esc"))
	if m.overlay.Active() {
		t.Error("esc did not close details")
	}
}

func TestDeleteAsksFirst(t *testing.T) {
	m := newTestModel(t)
	m = send(t, m, key("j"), key("x"))
	if m.mode != ModeConfirm || m.confirm != confirmDelete {
		t.Fatalf("mode = %v confirm = %v, want delete confirmation", m.mode, m.confirm)
	}
	if !strings.Contains(m.statusMsg, "Launch") {
		t.Errorf("status = %q, want it to name the item", m.statusMsg)
	}

	m = send(t, m, key("n"))
	if m.mode != ModeNormal || len(m.Items()) != 2 {
		t.Fatalf("n should cancel: mode %v, %d items", m.mode, len(m.Items()))
	}

	m = send(t, m, key("x"), key("y"))
	if m.mode != ModeNormal {
		t.Fatalf("mode = %v after y, want ModeNormal", m.mode)
	}

	launch := findItem(t, m, "launch")
	m = send(t, m, commands.ItemDeletedMsg{Item: launch})
	if len(m.Items()) != 1 {
		t.Errorf("items = %d after delete, want 1", len(m.Items()))
	}
	if m.selectedID != "" {
		t.Errorf("deleted item still selected")
	}
}

func TestPromptLine(t *testing.T) {
	it := testItems()[0]
	if got, want := promptLine(it), "Launch;2024-03-01;2024-03-31"; got != want {
		t.Errorf("promptLine = %q, want %q", got, want)
	}
}
