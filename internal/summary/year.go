// Package summary aggregates the items of a year into coverage statistics.
package summary

import (
	"context"
	"fmt"
	"time"

	"github.com/javiermolinar/almanac/internal/dateutil"
	"github.com/javiermolinar/almanac/internal/item"
)

// MonthStats describes one month of the year.
type MonthStats struct {
	Month    time.Month
	Days     int
	Items    int // items overlapping the month
	BusyDays int // days covered by at least one item
}

// Gap is a run of days no item covers.
type Gap struct {
	Start time.Time
	End   time.Time
	Days  int
}

// YearSummary holds aggregated year data.
type YearSummary struct {
	Year       int
	Items      []item.Item
	Months     [12]MonthStats
	BusyDays   int
	FreeDays   int
	LongestGap Gap
}

// Busiest returns the month with the most covered days. Ties go to the
// earlier month; ok is false when nothing is covered.
func (s *YearSummary) Busiest() (MonthStats, bool) {
	best := -1
	for i, m := range s.Months {
		if m.BusyDays > 0 && (best < 0 || m.BusyDays > s.Months[best].BusyDays) {
			best = i
		}
	}
	if best < 0 {
		return MonthStats{}, false
	}
	return s.Months[best], true
}

// SummarizeYear builds year statistics from items. Items outside the year
// are ignored and multi-year items count only their days inside it.
func SummarizeYear(year int, items []item.Item) *YearSummary {
	yearStart := dateutil.YearStart(year)
	daysInYear := dateutil.DaysInYear(year)
	visible := item.FilterByYear(items, year)

	covered := make([]bool, daysInYear)
	var monthItems [12]int
	for _, it := range visible {
		first := max(dateutil.DayOffset(yearStart, it.StartDate), 0)
		last := min(dateutil.DayOffset(yearStart, it.EndDate), daysInYear-1)
		if last < first {
			last = first
		}
		for d := first; d <= last; d++ {
			covered[d] = true
		}

		firstMonth := monthOf(yearStart, first)
		lastMonth := monthOf(yearStart, last)
		for m := firstMonth; m <= lastMonth; m++ {
			monthItems[m-1]++
		}
	}

	s := &YearSummary{Year: year, Items: visible}
	day := 0
	for m := 0; m < 12; m++ {
		n := dateutil.DaysInMonth(year, time.Month(m+1))
		busy := 0
		for d := day; d < day+n; d++ {
			if covered[d] {
				busy++
			}
		}
		s.Months[m] = MonthStats{
			Month:    time.Month(m + 1),
			Days:     n,
			Items:    monthItems[m],
			BusyDays: busy,
		}
		s.BusyDays += busy
		day += n
	}
	s.FreeDays = daysInYear - s.BusyDays
	s.LongestGap = longestGap(yearStart, covered)
	return s
}

func monthOf(yearStart time.Time, day int) time.Month {
	return yearStart.AddDate(0, 0, day).Month()
}

// longestGap finds the first longest run of uncovered days.
func longestGap(yearStart time.Time, covered []bool) Gap {
	bestStart, bestLen := -1, 0
	runStart := -1
	for d := 0; d <= len(covered); d++ {
		if d < len(covered) && !covered[d] {
			if runStart < 0 {
				runStart = d
			}
			continue
		}
		if runStart >= 0 && d-runStart > bestLen {
			bestStart, bestLen = runStart, d-runStart
		}
		runStart = -1
	}
	if bestStart < 0 {
		return Gap{}
	}
	return Gap{
		Start: dateutil.DateAtDayOffset(yearStart, bestStart, false),
		End:   dateutil.DateAtDayOffset(yearStart, bestStart+bestLen-1, true),
		Days:  bestLen,
	}
}

// BuildYearSummary loads the items of year and summarizes them.
func BuildYearSummary(ctx context.Context, repo item.Repository, year int) (*YearSummary, error) {
	items, err := repo.ListItemsByYear(ctx, year)
	if err != nil {
		return nil, fmt.Errorf("fetching items: %w", err)
	}
	return SummarizeYear(year, items), nil
}
