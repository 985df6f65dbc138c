package domain

import (
	"fmt"
	"regexp"
	"time"
)

// WeekSpan is the Monday-to-Friday interval used as the weekly ledger's
// column key.
type WeekSpan struct {
	Start time.Time // Monday
	End   time.Time // Friday
}

// WeekSpanFor computes the Monday-Friday span containing d.
func WeekSpanFor(d time.Time) WeekSpan {
	d = Day(d)
	offset := (int(d.Weekday()) + 6) % 7 // days since Monday
	monday := d.AddDate(0, 0, -offset)
	return WeekSpan{Start: monday, End: monday.AddDate(0, 0, 4)}
}

// Label renders the column-header contract, e.g. "03 Mar 2025 - 07 Mar 2025".
func (w WeekSpan) Label() string {
	return fmt.Sprintf("%s - %s", w.Start.Format("02 Jan 2006"), w.End.Format("02 Jan 2006"))
}

// Contains reports whether the calendar day of d falls inside the span.
func (w WeekSpan) Contains(d time.Time) bool {
	d = Day(d)
	return !d.Before(w.Start) && !d.After(w.End)
}

var weekLabelPattern = regexp.MustCompile(`^(\d{1,2}\s+[A-Za-z]{3,9}\s+\d{4})\s*-\s*(\d{1,2}\s+[A-Za-z]{3,9}\s+\d{4})`)

// ParseWeekLabel recovers a span from an existing column header. Resolution
// by parsed interval, never by recomputing the label, so headers written by
// earlier runs with a different representative date still bind correctly.
func ParseWeekLabel(s string) (WeekSpan, bool) {
	m := weekLabelPattern.FindStringSubmatch(s)
	if m == nil {
		return WeekSpan{}, false
	}
	start, okA := ResolveDate(m[1])
	end, okB := ResolveDate(m[2])
	if !okA || !okB || end.Before(start) {
		return WeekSpan{}, false
	}
	return WeekSpan{Start: start, End: end}, true
}
