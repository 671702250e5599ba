package item

import "github.com/javiermolinar/almanac/internal/dateutil"

// FilterByYear returns the items that overlap any part of year, in their
// original order.
func FilterByYear(items []Item, year int) []Item {
	from := dateutil.YearStart(year)
	to := dateutil.YearEnd(year)

	out := make([]Item, 0, len(items))
	for _, it := range items {
		if it.Overlaps(from, to) {
			out = append(out, it)
		}
	}
	return out
}
