package importer

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"
	"github.com/teambition/rrule-go"

	"github.com/javiermolinar/almanac/internal/dateutil"
	"github.com/javiermolinar/almanac/internal/item"
)

// maxOccurrences caps how many items one recurring event can expand to.
const maxOccurrences = 1000

// event is the subset of a VEVENT the timeline keeps.
type event struct {
	uid     string
	summary string
	start   time.Time
	end     time.Time // inclusive day
	rrule   string
	exdates []time.Time
}

// ReadICS decodes an iCalendar stream into whole-day items.
//
// All-day DTEND values are exclusive and become the previous day. Timed
// events cover every local day they touch. Recurring events are expanded
// within year (or their start year when year is zero); non-recurring
// events outside a non-zero year are dropped.
func ReadICS(r io.Reader, year int) ([]item.Item, error) {
	cal, err := ical.ParseCalendar(r)
	if err != nil {
		return nil, fmt.Errorf("parsing calendar: %w", err)
	}

	var items []item.Item
	for i, ve := range cal.Events() {
		ev, err := parseEvent(ve)
		if err != nil {
			return nil, fmt.Errorf("event %d: %w", i+1, err)
		}

		window := year
		if window == 0 {
			window = ev.start.Year()
		}
		from, to := dateutil.YearStart(window), dateutil.YearEnd(window)

		if ev.rrule == "" {
			it := ev.item(ev.uid, ev.start)
			if year != 0 && !it.Overlaps(from, to) {
				continue
			}
			items = append(items, it)
			continue
		}

		occ, err := ev.expand(from, to)
		if err != nil {
			return nil, fmt.Errorf("event %q: %w", ev.summary, err)
		}
		items = append(items, occ...)
	}
	return items, nil
}

func parseEvent(ve *ical.VEvent) (event, error) {
	var ev event

	if p := ve.GetProperty(ical.ComponentPropertyUniqueId); p != nil {
		ev.uid = strings.TrimSpace(p.Value)
	}
	if p := ve.GetProperty(ical.ComponentPropertySummary); p != nil {
		ev.summary = strings.TrimSpace(p.Value)
	}
	if ev.summary == "" {
		return ev, item.ErrEmptyTitle
	}

	startProp := ve.GetProperty(ical.ComponentPropertyDtStart)
	if startProp == nil {
		return ev, fmt.Errorf("%q: %w", ev.summary, item.ErrMissingDates)
	}
	allDay := isDate(startProp)
	start, err := eventTime(ve.GetStartAt, ve.GetAllDayStartAt, allDay)
	if err != nil {
		return ev, fmt.Errorf("%q: DTSTART: %w", ev.summary, err)
	}
	ev.start = dateutil.TruncateToDay(start)
	ev.end = ev.start

	if endProp := ve.GetProperty(ical.ComponentPropertyDtEnd); endProp != nil {
		end, err := eventTime(ve.GetEndAt, ve.GetAllDayEndAt, isDate(endProp))
		if err != nil {
			return ev, fmt.Errorf("%q: DTEND: %w", ev.summary, err)
		}
		ev.end = inclusiveEnd(start, end, allDay)
	}
	if ev.end.Before(ev.start) {
		return ev, fmt.Errorf("%q: %w", ev.summary, item.ErrEndBeforeStart)
	}

	if p := ve.GetProperty(ical.ComponentPropertyRrule); p != nil {
		ev.rrule = strings.TrimSpace(p.Value)
	}
	for _, p := range ve.GetProperties(ical.ComponentPropertyExdate) {
		for _, part := range strings.Split(p.Value, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			if t, err := parseICSTime(part, tzid(p)); err == nil {
				ev.exdates = append(ev.exdates, dateutil.TruncateToDay(t))
			}
		}
	}

	return ev, nil
}

// inclusiveEnd converts an exclusive DTEND into the last day covered.
func inclusiveEnd(start, end time.Time, allDay bool) time.Time {
	day := dateutil.TruncateToDay(end)
	if allDay || (end.Equal(day) && end.After(start)) {
		day = dateutil.ShiftDays(day, -1)
	}
	if day.Before(dateutil.TruncateToDay(start)) {
		return dateutil.TruncateToDay(start)
	}
	return day
}

func (ev event) item(id string, start time.Time) item.Item {
	span := dateutil.DayOffset(ev.start, ev.end)
	return item.Item{
		ID:        id,
		Title:     ev.summary,
		StartDate: start,
		EndDate:   dateutil.EndOfDay(dateutil.ShiftDays(start, span)),
	}
}

// expand returns one item per occurrence starting within [from, to].
func (ev event) expand(from, to time.Time) ([]item.Item, error) {
	r, err := rrule.StrToRRule(ev.rrule)
	if err != nil {
		return nil, fmt.Errorf("parsing RRULE %q: %w", ev.rrule, err)
	}
	r.DTStart(ev.start)

	var set rrule.Set
	set.RRule(r)
	for _, ex := range ev.exdates {
		set.ExDate(ex)
	}

	starts := set.Between(from, to, true)
	if len(starts) > maxOccurrences {
		starts = starts[:maxOccurrences]
	}

	items := make([]item.Item, 0, len(starts))
	for _, s := range starts {
		day := dateutil.TruncateToDay(s.In(time.Local))
		id := ""
		if ev.uid != "" {
			id = ev.uid + "@" + day.Format(dateutil.DateLayout)
		}
		items = append(items, ev.item(id, day))
	}
	return items, nil
}

// isDate reports whether a property holds a DATE rather than a DATE-TIME.
func isDate(p *ical.IANAProperty) bool {
	if vs, ok := p.ICalParameters["VALUE"]; ok && len(vs) > 0 && strings.EqualFold(vs[0], "DATE") {
		return true
	}
	return !strings.Contains(p.Value, "T")
}

// eventTime reads DTSTART or DTEND through the calendar's accessors, which
// resolve TZID and UTC forms. DATE values keep the calendar day as written;
// DATE-TIME values move to local time.
func eventTime(timed, date func() (time.Time, error), allDay bool) (time.Time, error) {
	if allDay {
		t, err := date()
		if err != nil {
			return time.Time{}, err
		}
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.Local), nil
	}

	t, err := timed()
	if err != nil {
		return time.Time{}, err
	}
	return t.In(time.Local), nil
}

func tzid(p *ical.IANAProperty) string {
	if tzs, ok := p.ICalParameters["TZID"]; ok && len(tzs) > 0 {
		return tzs[0]
	}
	return ""
}

// parseICSTime parses one EXDATE value, which the calendar library only
// exposes as raw text, and converts it to local wall-clock time. Unknown
// TZIDs fall back to local.
func parseICSTime(v, tz string) (time.Time, error) {
	if v == "" {
		return time.Time{}, errors.New("empty time value")
	}

	if strings.HasSuffix(v, "Z") {
		t, err := time.Parse("20060102T150405Z", v)
		if err != nil {
			return time.Time{}, err
		}
		return t.In(time.Local), nil
	}

	loc := time.Local
	if tz != "" {
		if l, err := time.LoadLocation(tz); err == nil {
			loc = l
		}
	}

	if strings.Contains(v, "T") {
		t, err := time.ParseInLocation("20060102T150405", v, loc)
		if err != nil {
			return time.Time{}, err
		}
		return t.In(time.Local), nil
	}

	// Dates carry no zone: keep the calendar day as written.
	return time.ParseInLocation("20060102", v, time.Local)
}
