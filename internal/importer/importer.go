// Package importer reads and writes item collections in portable formats.
package importer

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/javiermolinar/almanac/internal/item"
)

// ErrUnsupportedFormat is returned for files that are neither YAML nor iCalendar.
var ErrUnsupportedFormat = errors.New("unsupported file format (want .yaml, .yml or .ics)")

// Format identifies a file format.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatICS  Format = "ics"
)

// DetectFormat picks the format from a file extension.
func DetectFormat(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".ics", ".ical", ".ifb":
		return FormatICS, nil
	default:
		return "", fmt.Errorf("%s: %w", path, ErrUnsupportedFormat)
	}
}

// LoadFile reads items from path. Recurring calendar events are expanded
// inside year; a zero year expands within each event's own start year.
func LoadFile(path string, year int) ([]item.Item, error) {
	format, err := DetectFormat(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	switch format {
	case FormatICS:
		return ReadICS(f, year)
	default:
		return ReadYAML(f)
	}
}
