package tui

import (
	"fmt"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/almanac/internal/projection"
	"github.com/javiermolinar/almanac/internal/tui/commands"
)

// handleKeyMsg handles keyboard input.
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	LogKeyPress(msg)

	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	switch m.mode {
	case ModePrompt:
		return m.handlePromptKeys(msg)
	case ModeConfirm:
		return m.handleConfirmKeys(msg)
	case ModeDrag:
		return m.handleDragKeys(msg)
	default:
		return m.handleNormalKeys(msg)
	}
}

// handleNormalKeys handles keys in normal mode.
func (m Model) handleNormalKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.overlay.Active() {
		switch msg.String() {
		case "esc", "enter", "q":
			m.overlay.Hide()
			return m, nil
		}
	}

	switch msg.String() {
	case "q":
		return m, tea.Quit

	// Year
	case "[":
		return m.changeYear(m.engine.Year() - 1)
	case "]":
		return m.changeYear(m.engine.Year() + 1)

	// View mode
	case "m":
		m.setViewMode(projection.ViewMonths)
	case "w":
		m.setViewMode(projection.ViewWeeks)
	case "d":
		m.setViewMode(projection.ViewDays)
	case "v":
		m.setViewMode(m.engine.Mode().Next())

	// Horizontal scrolling
	case "h", "left":
		m.scrollBy(-m.scrollStep(), 0)
	case "l", "right":
		m.scrollBy(m.scrollStep(), 0)
	case "H", "shift+left", "pgup":
		m.scrollBy(-max(1, m.layoutCache.TimelineW), 0)
	case "L", "shift+right", "pgdown":
		m.scrollBy(max(1, m.layoutCache.TimelineW), 0)
	case "home", "g":
		m.scrollX = 0
	case "end", "G":
		m.scrollX = m.maxScrollX()
	case "t":
		return m.jumpToToday()

	// Selection
	case "j", "down":
		m.moveSelection(1)
	case "k", "up":
		m.moveSelection(-1)
	case "esc":
		m.selectedID = ""
		m.overlay.Hide()

	// Items
	case "a":
		return m.openPrompt()
	case "enter":
		if _, ok := m.Selected(); !ok {
			return m, statusCmd("No item selected")
		}
		m.overlay.Show()
	case "x", "delete":
		it, ok := m.Selected()
		if !ok {
			return m, statusCmd("No item selected")
		}
		m.confirm = confirmDelete
		m.setMode(ModeConfirm, "delete")
		m.statusMsg = fmt.Sprintf("Delete %q? (y/n)", it.Title)
	case "y":
		return m.handleCopy()
	case "r":
		m.loading = true
		return m, m.loadItems()
	}

	return m, nil
}

// handleDragKeys lets escape cancel a gesture before release.
func (m Model) handleDragKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.drag.Reset()
		m.setMode(ModeNormal, "drag cancelled")
		return m, statusCmd("Drag cancelled")
	case "q":
		return m, tea.Quit
	}
	return m, nil
}

// handleConfirmKeys answers the pending y/n question.
func (m Model) handleConfirmKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y", "enter":
		switch m.confirm {
		case confirmDelete:
			return m.confirmDeleteSelected()
		case confirmInit:
			return m.confirmInitialize()
		}
	case "n", "N", "esc":
		if m.confirm == confirmInit {
			return m, tea.Quit
		}
		m.confirm = confirmNone
		m.statusMsg = ""
		m.setMode(ModeNormal, "confirm declined")
	case "q":
		if m.confirm == confirmInit {
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m Model) confirmDeleteSelected() (tea.Model, tea.Cmd) {
	m.confirm = confirmNone
	m.statusMsg = ""
	m.setMode(ModeNormal, "delete confirmed")

	it, ok := m.Selected()
	if !ok || m.repo == nil {
		return m, nil
	}
	return m, commands.DeleteItem(m.repo, it)
}

func (m Model) confirmInitialize() (tea.Model, tea.Cmd) {
	updated, err := m.initializeStorage()
	if err != nil {
		LogError("init", err)
		m.statusMsg = fmt.Sprintf("Error: %v", err)
		return m, nil
	}
	m = updated
	m.confirm = confirmNone
	m.statusMsg = ""
	m.loading = true
	m.setMode(ModeNormal, "initialized")
	return m, tea.Batch(m.loadItems(), commands.WaitForChange(m.changes))
}

// handleCopy copies the selected item as "title;start;end", the same
// form the add prompt accepts.
func (m Model) handleCopy() (tea.Model, tea.Cmd) {
	it, ok := m.Selected()
	if !ok {
		return m, statusCmd("No item selected")
	}
	if err := clipboard.WriteAll(promptLine(it)); err != nil {
		m.statusMsg = fmt.Sprintf("Copy failed: %v", err)
		return m, nil
	}
	return m, statusCmd("Copied " + it.Title)
}

// handleDeleted drops the item from the timeline once the store confirms.
func (m Model) handleDeleted(id, title string) (tea.Model, tea.Cmd) {
	m.store.remove(id)
	if m.selectedID == id {
		m.selectedID = ""
		m.overlay.Hide()
	}
	m.clampScroll()
	return m, statusCmd("Deleted " + title)
}
