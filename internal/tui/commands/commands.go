// Package commands provides TUI command constructors and message types.
package commands

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/almanac/internal/item"
)

// ItemsLoadedMsg is sent when the items of a year are loaded.
type ItemsLoadedMsg struct {
	Year  int
	Items []item.Item
}

// ItemSavedMsg is sent when a dragged item has been persisted.
type ItemSavedMsg struct {
	Item item.Item
}

// ItemCreatedMsg is sent when a new item has been stored.
type ItemCreatedMsg struct {
	Item item.Item
}

// ItemDeletedMsg is sent when an item has been removed.
type ItemDeletedMsg struct {
	Item item.Item
}

// DBChangedMsg is sent when another process modified the database.
type DBChangedMsg struct{}

// ErrMsg is sent when an error occurs.
type ErrMsg struct {
	Err error
}

// StatusMsgCmd is sent for temporary status messages.
type StatusMsgCmd struct {
	Msg string
}

// ClearStatusMsg is sent to clear the status message.
type ClearStatusMsg struct{}

// LoadItems loads the items overlapping year.
func LoadItems(repo item.Repository, year int) tea.Cmd {
	return func() tea.Msg {
		items, err := repo.ListItemsByYear(context.Background(), year)
		if err != nil {
			return ErrMsg{Err: fmt.Errorf("loading %d: %w", year, err)}
		}
		return ItemsLoadedMsg{Year: year, Items: items}
	}
}

// SaveItem persists the new dates of an existing item.
func SaveItem(repo item.Repository, it item.Item) tea.Cmd {
	return func() tea.Msg {
		if err := repo.UpdateItem(context.Background(), it); err != nil {
			return ErrMsg{Err: fmt.Errorf("saving %q: %w", it.Title, err)}
		}
		return ItemSavedMsg{Item: it}
	}
}

// CreateItem stores a new item.
func CreateItem(repo item.Repository, it item.Item) tea.Cmd {
	return func() tea.Msg {
		if err := repo.CreateItem(context.Background(), &it); err != nil {
			return ErrMsg{Err: fmt.Errorf("adding %q: %w", it.Title, err)}
		}
		return ItemCreatedMsg{Item: it}
	}
}

// DeleteItem removes an item.
func DeleteItem(repo item.Repository, it item.Item) tea.Cmd {
	return func() tea.Msg {
		if err := repo.DeleteItem(context.Background(), it.ID); err != nil {
			return ErrMsg{Err: fmt.Errorf("deleting %q: %w", it.Title, err)}
		}
		return ItemDeletedMsg{Item: it}
	}
}

// WaitForChange blocks until changes delivers a value. A closed channel
// yields nil so the subscription ends quietly.
func WaitForChange(changes <-chan struct{}) tea.Cmd {
	if changes == nil {
		return nil
	}
	return func() tea.Msg {
		if _, ok := <-changes; !ok {
			return nil
		}
		return DBChangedMsg{}
	}
}
