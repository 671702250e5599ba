// Package dateutil provides calendar arithmetic for the year timeline and
// date parsing for user input.
package dateutil

import (
	"errors"
	"strings"
	"time"
)

// Validation errors.
var (
	ErrInvalidDateFormat  = errors.New("date must be in YYYY-MM-DD format")
	ErrEndDateBeforeStart = errors.New("end date must be on or after start date")
)

// DateLayout is the input and storage layout for calendar dates.
const DateLayout = "2006-01-02"

// Day is the length of a calendar day without DST transitions.
const Day = 24 * time.Hour

// YearStart returns January 1st of year at local midnight.
func YearStart(year int) time.Time {
	return time.Date(year, time.January, 1, 0, 0, 0, 0, time.Local)
}

// YearEnd returns December 31st of year at 23:59:59.999 local time.
func YearEnd(year int) time.Time {
	return time.Date(year, time.December, 31, 23, 59, 59, int(999*time.Millisecond), time.Local)
}

// DaysInYear returns the number of calendar days in year (365 or 366).
//
// The span from Jan 1 00:00 to Dec 31 23:59:59 is one second short of
// the full year, so truncating it to whole days and adding one yields the
// inclusive count.
func DaysInYear(year int) int {
	first := dateUTC(YearStart(year))
	last := dateUTC(time.Date(year, time.December, 31, 23, 59, 59, 0, time.Local))
	span := last.Sub(first) + 23*time.Hour + 59*time.Minute + 59*time.Second
	return int(span/Day) + 1
}

// DaysInMonth returns the number of days in the given month of year.
func DaysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// DateAtDayOffset returns the date offset whole days after yearStart.
// When isEnd is set the result is the last instant of that day
// (23:59:59.999), otherwise local midnight.
func DateAtDayOffset(yearStart time.Time, offset int, isEnd bool) time.Time {
	d := time.Date(yearStart.Year(), yearStart.Month(), yearStart.Day()+offset, 0, 0, 0, 0, yearStart.Location())
	if isEnd {
		return EndOfDay(d)
	}
	return d
}

// DayOffset returns the number of calendar days from yearStart to t.
// The result is negative when t precedes yearStart. Wall-clock dates are
// compared, so DST transitions never shift the count.
func DayOffset(yearStart, t time.Time) int {
	t = t.In(yearStart.Location())
	return int(dateUTC(t).Sub(dateUTC(yearStart)) / Day)
}

// DurationDays returns the inclusive number of days covered by
// [start, end], never less than one.
func DurationDays(start, end time.Time) int {
	n := DayOffset(start, end) + 1
	if n < 1 {
		return 1
	}
	return n
}

// TruncateToDay returns t with time set to midnight.
func TruncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// EndOfDay returns the last millisecond of t's day on the wall clock.
func EndOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, int(999*time.Millisecond), t.Location())
}

// ShiftDays moves t by n calendar days, keeping its wall-clock time.
func ShiftDays(t time.Time, n int) time.Time {
	return t.AddDate(0, 0, n)
}

// Clamp restricts t to [lo, hi].
func Clamp(t, lo, hi time.Time) time.Time {
	if t.Before(lo) {
		return lo
	}
	if t.After(hi) {
		return hi
	}
	return t
}

func dateUTC(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// DateRange represents a validated date range.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// NewDateRange creates a new DateRange with validation.
// startDate can be empty (defaults to today) or in YYYY-MM-DD format.
// endDate can be empty (defaults to startDate) or in YYYY-MM-DD format.
// The end of the range is the last instant of its day.
func NewDateRange(startDate, endDate string) (*DateRange, error) {
	start, err := ParseDate(startDate)
	if err != nil {
		return nil, err
	}

	end := start
	if endDate != "" {
		end, err = ParseDate(endDate)
		if err != nil {
			return nil, err
		}
	}

	if end.Before(start) {
		return nil, ErrEndDateBeforeStart
	}

	return &DateRange{Start: start, End: EndOfDay(end)}, nil
}

// ParseDate parses a date string in YYYY-MM-DD format as local midnight.
// An empty string or "today" returns today's date.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "today") {
		return TruncateToDay(time.Now()), nil
	}
	t, err := time.ParseInLocation(DateLayout, s, time.Local)
	if err != nil {
		return time.Time{}, ErrInvalidDateFormat
	}
	return t, nil
}

// FormatShort formats t as "Jan 2, 2006".
func FormatShort(t time.Time) string {
	return t.Format("Jan 2, 2006")
}
