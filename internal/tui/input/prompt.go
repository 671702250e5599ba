// Package input parses text typed into the TUI prompt.
package input

import (
	"errors"
	"strings"
)

// ErrPromptFormat is returned when the add prompt cannot be split into fields.
var ErrPromptFormat = errors.New("expected title;YYYY-MM-DD[;YYYY-MM-DD]")

// Separator splits the fields of the add prompt.
const Separator = ";"

// AddFields are the raw fields of an add-item prompt.
type AddFields struct {
	Title string
	Start string
	End   string // empty means a one-day item
}

// ParseAdd splits "title;start[;end]". Surrounding whitespace is trimmed
// and a missing start means today.
func ParseAdd(value string) (AddFields, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return AddFields{}, ErrPromptFormat
	}

	parts := strings.Split(value, Separator)
	if len(parts) > 3 {
		return AddFields{}, ErrPromptFormat
	}
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}

	fields := AddFields{Title: parts[0]}
	if fields.Title == "" {
		return AddFields{}, ErrPromptFormat
	}
	if len(parts) > 1 {
		fields.Start = parts[1]
	}
	if len(parts) > 2 {
		fields.End = parts[2]
	}
	return fields, nil
}

// Complete returns value with the next separator appended when the user
// has filled the current field, and whether anything changed.
func Complete(value string) (string, bool) {
	trimmed := strings.TrimRight(value, " ")
	if trimmed == "" || strings.HasSuffix(trimmed, Separator) {
		return value, false
	}
	if strings.Count(trimmed, Separator) >= 2 {
		return value, false
	}
	return trimmed + Separator, true
}
