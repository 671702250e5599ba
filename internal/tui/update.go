package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/almanac/internal/dateutil"
	"github.com/javiermolinar/almanac/internal/tui/commands"
)

// statusTTL is how long a status message stays in the footer.
const statusTTL = 3 * time.Second

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case tea.MouseMsg:
		return m.handleMouseMsg(msg)

	case tea.WindowSizeMsg:
		m.applyLayout(msg.Width, msg.Height)
		if m.mode == ModePrompt {
			m.prompt.Width = max(0, msg.Width-len(m.prompt.Prompt)-1)
		}
		return m, nil

	case commands.ItemsLoadedMsg:
		if msg.Year != m.engine.Year() {
			return m, nil
		}
		// An active drag keeps its own copy of the pressed item and
		// resolves it against this collection by ID on release.
		m.store.set(msg.Items)
		m.loading = false
		if _, ok := m.store.get(m.selectedID); !ok {
			m.selectedID = ""
			m.overlay.Hide()
		}
		m.clampScroll()
		return m, nil

	case commands.ItemSavedMsg:
		m.store.replace(msg.Item)
		return m, statusCmd(fmt.Sprintf("%s: %s – %s", msg.Item.Title,
			msg.Item.StartDate.Format(dateutil.DateLayout),
			msg.Item.EndDate.Format(dateutil.DateLayout)))

	case commands.ItemCreatedMsg:
		if msg.Item.Overlaps(m.engine.YearStart(), dateutil.YearEnd(m.engine.Year())) {
			m.store.add(msg.Item)
			m.selectedID = msg.Item.ID
			if layout := m.engine.Layout(m.store.Items()); len(layout) > 0 {
				if idx := selectedIndex(layout, msg.Item.ID); idx >= 0 {
					m.ensureVisible(layout, idx)
				}
			}
		}
		return m, statusCmd("Added " + msg.Item.Title)

	case commands.ItemDeletedMsg:
		return m.handleDeleted(msg.Item.ID, msg.Item.Title)

	case commands.DBChangedMsg:
		if m.drag.Active() || m.repo == nil {
			return m, commands.WaitForChange(m.changes)
		}
		return m, tea.Batch(m.loadItems(), commands.WaitForChange(m.changes))

	case commands.ErrMsg:
		LogError("command", msg.Err)
		m.err = msg.Err
		m.statusMsg = fmt.Sprintf("Error: %v", msg.Err)
		m.statusTime = time.Now().Add(5 * time.Second)
		// Optimistic edits may no longer match storage.
		return m, m.loadItems()

	case commands.StatusMsgCmd:
		m.statusMsg = msg.Msg
		m.statusTime = time.Now().Add(statusTTL)
		return m, tea.Tick(statusTTL, func(time.Time) tea.Msg {
			return commands.ClearStatusMsg{}
		})

	case commands.ClearStatusMsg:
		if time.Now().After(m.statusTime) && m.mode != ModeConfirm {
			m.statusMsg = ""
		}
		return m, nil
	}

	if m.mode == ModePrompt {
		var cmd tea.Cmd
		m.prompt, cmd = m.prompt.Update(msg)
		return m, cmd
	}

	return m, nil
}
