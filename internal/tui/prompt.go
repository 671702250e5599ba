package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/almanac/internal/dateutil"
	"github.com/javiermolinar/almanac/internal/item"
	"github.com/javiermolinar/almanac/internal/tui/commands"
	"github.com/javiermolinar/almanac/internal/tui/input"
)

func (m Model) openPrompt() (tea.Model, tea.Cmd) {
	m.overlay.Hide()
	m.prompt.SetValue("")
	m.prompt.Width = max(0, m.layoutCache.Width-len(m.prompt.Prompt)-1)
	m.setMode(ModePrompt, "add")
	return m, tea.Batch(m.prompt.Focus(), textinput.Blink)
}

func (m *Model) closePrompt(reason string) {
	m.prompt.Blur()
	m.prompt.SetValue("")
	m.setMode(ModeNormal, reason)
}

// handlePromptKeys handles keys while typing a new item.
func (m Model) handlePromptKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.closePrompt("prompt cancelled")
		return m, nil

	case "enter":
		return m.handlePromptSubmit(m.prompt.Value())

	case "tab":
		if completed, ok := input.Complete(m.prompt.Value()); ok {
			m.prompt.SetValue(completed)
			m.prompt.CursorEnd()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.prompt, cmd = m.prompt.Update(msg)
	return m, cmd
}

// handlePromptSubmit creates an item from "title;start[;end]". Invalid
// input keeps the prompt open so it can be fixed.
func (m Model) handlePromptSubmit(value string) (tea.Model, tea.Cmd) {
	fields, err := input.ParseAdd(value)
	if err != nil {
		m.statusMsg = fmt.Sprintf("Error: %v", err)
		return m, nil
	}

	it, err := item.New(fields.Title, fields.Start, fields.End)
	if err != nil {
		m.statusMsg = fmt.Sprintf("Error: %v", err)
		return m, nil
	}

	m.closePrompt("item submitted")
	m.statusMsg = ""
	if m.repo == nil {
		m.store.add(it)
		m.selectedID = it.ID
		return m, nil
	}
	return m, commands.CreateItem(m.repo, it)
}

// promptLine formats it the way the add prompt reads it.
func promptLine(it item.Item) string {
	return it.Title + input.Separator +
		it.StartDate.Format(dateutil.DateLayout) + input.Separator +
		it.EndDate.Format(dateutil.DateLayout)
}
