// Package item defines the date-ranged items shown on the year timeline.
package item

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/javiermolinar/almanac/internal/dateutil"
)

// Validation errors.
var (
	ErrEmptyTitle     = errors.New("title cannot be empty")
	ErrEndBeforeStart = errors.New("end date must be on or after start date")
	ErrMissingDates   = errors.New("start and end dates are required")
)

// Domain errors.
var (
	ErrNotFound = errors.New("item not found")
)

// Item is a titled span of calendar days.
// Items are values: the timeline never mutates one in place, it produces
// a replacement for the owning collection to commit.
type Item struct {
	ID        string
	Title     string
	StartDate time.Time
	EndDate   time.Time
}

// New creates an item with a fresh ID covering whole days from start to end.
// start and end use the YYYY-MM-DD format; an empty end means a one-day item.
func New(title, start, end string) (Item, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return Item{}, ErrEmptyTitle
	}

	dr, err := dateutil.NewDateRange(start, end)
	if err != nil {
		if errors.Is(err, dateutil.ErrEndDateBeforeStart) {
			return Item{}, ErrEndBeforeStart
		}
		return Item{}, err
	}

	return Item{
		ID:        NewID(),
		Title:     title,
		StartDate: dr.Start,
		EndDate:   dr.End,
	}, nil
}

// NewID returns a new random item identifier.
func NewID() string {
	return uuid.NewString()
}

// Validate reports whether the item can be stored.
// End dates before the start are rejected rather than clamped.
func (it Item) Validate() error {
	if strings.TrimSpace(it.Title) == "" {
		return ErrEmptyTitle
	}
	if it.StartDate.IsZero() || it.EndDate.IsZero() {
		return ErrMissingDates
	}
	if it.EndDate.Before(it.StartDate) {
		return fmt.Errorf("%q: %w", it.Title, ErrEndBeforeStart)
	}
	return nil
}

// DurationDays returns the inclusive number of days the item spans.
func (it Item) DurationDays() int {
	return dateutil.DurationDays(it.StartDate, it.EndDate)
}

// Same reports whether a and b refer to the same item.
// IDs are compared when both sides carry one, titles otherwise.
func Same(a, b Item) bool {
	if a.ID != "" && b.ID != "" {
		return a.ID == b.ID
	}
	return a.Title == b.Title
}

// Find returns the index of the item matching target, or -1.
func Find(items []Item, target Item) int {
	for i, it := range items {
		if Same(it, target) {
			return i
		}
	}
	return -1
}

// Replace returns a copy of items with the entry matching updated swapped
// for it. The second result is false when no entry matched.
func Replace(items []Item, updated Item) ([]Item, bool) {
	idx := Find(items, updated)
	if idx < 0 {
		return items, false
	}
	out := make([]Item, len(items))
	copy(out, items)
	out[idx] = updated
	return out, true
}

// Overlaps reports whether the item intersects [from, to].
func (it Item) Overlaps(from, to time.Time) bool {
	return !it.StartDate.After(to) && !it.EndDate.Before(from)
}

// String renders the item as "title (start → end)".
func (it Item) String() string {
	return fmt.Sprintf("%s (%s → %s)", it.Title,
		it.StartDate.Format(dateutil.DateLayout), it.EndDate.Format(dateutil.DateLayout))
}
