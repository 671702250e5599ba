package projection

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidViewMode is returned when parsing an unknown view mode.
var ErrInvalidViewMode = errors.New("view mode must be 'months', 'weeks' or 'days'")

// ViewMode is the timeline granularity.
type ViewMode int

const (
	ViewMonths ViewMode = iota
	ViewWeeks
	ViewDays
)

// Modes lists the view modes in cycling order.
func Modes() []ViewMode {
	return []ViewMode{ViewMonths, ViewWeeks, ViewDays}
}

// String returns the lowercase name used in config files and flags.
func (v ViewMode) String() string {
	switch v {
	case ViewMonths:
		return "months"
	case ViewWeeks:
		return "weeks"
	case ViewDays:
		return "days"
	default:
		return fmt.Sprintf("ViewMode(%d)", int(v))
	}
}

// Valid reports whether v is a known view mode.
func (v ViewMode) Valid() bool {
	return v >= ViewMonths && v <= ViewDays
}

// Next returns the following view mode, wrapping around.
func (v ViewMode) Next() ViewMode {
	return ViewMode((int(v) + 1) % len(Modes()))
}

// ParseViewMode parses a view mode name. Singular forms and the first
// letter are accepted.
func ParseViewMode(s string) (ViewMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "months", "month", "m":
		return ViewMonths, nil
	case "weeks", "week", "w":
		return ViewWeeks, nil
	case "days", "day", "d":
		return ViewDays, nil
	default:
		return ViewMonths, ErrInvalidViewMode
	}
}
