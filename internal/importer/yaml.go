package importer

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/javiermolinar/almanac/internal/dateutil"
	"github.com/javiermolinar/almanac/internal/item"
)

// Document is the YAML layout of an exported collection.
//
//	items:
//	  - title: Launch
//	    start: 2024-06-01
//	    end: 2024-06-03
type Document struct {
	Items []Entry `yaml:"items"`
}

// Entry is one item in a YAML document. Dates use YYYY-MM-DD; a missing
// end makes a one-day item.
type Entry struct {
	ID    string `yaml:"id,omitempty"`
	Title string `yaml:"title"`
	Start string `yaml:"start"`
	End   string `yaml:"end,omitempty"`
}

// ReadYAML decodes a YAML document into validated items.
func ReadYAML(r io.Reader) ([]item.Item, error) {
	var doc Document
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("parsing yaml: %w", err)
	}

	items := make([]item.Item, 0, len(doc.Items))
	for i, e := range doc.Items {
		if strings.TrimSpace(e.Start) == "" {
			return nil, fmt.Errorf("entry %d (%q): %w", i+1, e.Title, item.ErrMissingDates)
		}
		it, err := item.New(e.Title, e.Start, e.End)
		if err != nil {
			return nil, fmt.Errorf("entry %d (%q): %w", i+1, e.Title, err)
		}
		if e.ID != "" {
			it.ID = e.ID
		}
		items = append(items, it)
	}
	return items, nil
}

// WriteYAML encodes items as a YAML document.
func WriteYAML(w io.Writer, items []item.Item) error {
	doc := Document{Items: make([]Entry, 0, len(items))}
	for _, it := range items {
		doc.Items = append(doc.Items, Entry{
			ID:    it.ID,
			Title: it.Title,
			Start: it.StartDate.Format(dateutil.DateLayout),
			End:   it.EndDate.Format(dateutil.DateLayout),
		})
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encoding yaml: %w", err)
	}
	return enc.Close()
}
