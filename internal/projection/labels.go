package projection

import (
	"strconv"
	"time"
)

// Label is one header column of the timeline.
type Label struct {
	Text  string
	Width float64
	Day   int // day offset of the column start; negative for a week that began last year
}

// Labels returns the header columns for the current mode.
// Month widths sum exactly to the container width.
func (e *Engine) Labels() []Label {
	switch e.mode {
	case ViewWeeks:
		return e.weekLabels()
	case ViewDays:
		return e.dayLabels()
	default:
		return e.monthLabels()
	}
}

func (e *Engine) monthLabels() []Label {
	labels := make([]Label, 12)
	for m := 0; m < 12; m++ {
		labels[m] = Label{
			Text:  time.Month(m + 1).String()[:3],
			Width: e.monthWidths[m],
			Day:   e.monthFirstDay[m],
		}
	}
	return labels
}

// weekLabels anchors weeks on the Sunday on or before Jan 1 and runs
// until the week holding Dec 31.
func (e *Engine) weekLabels() []Label {
	width := 7 * e.UnitWidth()
	anchor := -int(e.yearStart.Weekday())
	n := (e.daysInYear - anchor + 6) / 7

	labels := make([]Label, n)
	for i := 0; i < n; i++ {
		day := anchor + 7*i
		labels[i] = Label{
			Text:  e.weekText(day),
			Width: width,
			Day:   day,
		}
	}
	return labels
}

// weekText names a week by its month and its index within that month,
// e.g. "Mar W2". A week that starts in the previous year is "Jan W1".
func (e *Engine) weekText(day int) string {
	if day < 0 {
		day = 0
	}
	d := e.yearStart.AddDate(0, 0, day)
	week := (d.Day()-1)/7 + 1
	return d.Month().String()[:3] + " W" + strconv.Itoa(week)
}

func (e *Engine) dayLabels() []Label {
	width := e.UnitWidth()
	labels := make([]Label, e.daysInYear)
	for i := range labels {
		d := e.yearStart.AddDate(0, 0, i)
		text := strconv.Itoa(d.Day())
		if d.Day() == 1 {
			text = d.Month().String()[:3]
		}
		labels[i] = Label{Text: text, Width: width, Day: i}
	}
	return labels
}

// LabelsWidth returns the summed width of labels.
func LabelsWidth(labels []Label) float64 {
	total := 0.0
	for _, l := range labels {
		total += l.Width
	}
	return total
}
