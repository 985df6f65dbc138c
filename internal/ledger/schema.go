package ledger

import (
	"fmt"
	"time"

	"reportledger/pkg/domain"
)

// Schema growth. Columns are only ever appended; the index handed out for a
// date never changes once its column exists, regardless of what other dates
// the batch touches afterwards.

// EnsureDayColumn locates or creates the month sheet covering date and the
// column for its calendar day. A freshly created sheet gets the fixed key
// headers and one column per day of the month, in ascending day order, each
// with the weekday name in the secondary header row. The requested date's
// index is guaranteed present on return.
func EnsureDayColumn(wb *Workbook, date time.Time) (*Sheet, int) {
	date = domain.Day(date)
	sheet, _ := wb.EnsureSheet(domain.MonthLabel(date), "Project Name", "Resource Name")
	year, month, _ := date.Date()
	days := daysIn(year, month)
	for day := 1; day <= days; day++ {
		d := domain.DateOf(year, month, day)
		if _, ok := sheet.ColumnIndex(domain.DayLabel(d)); !ok {
			sheet.AppendColumn(domain.DayLabel(d), domain.WeekdayLabel(d))
		}
	}
	idx, ok := sheet.ColumnIndex(domain.DayLabel(date))
	if !ok {
		idx = sheet.AppendColumn(domain.DayLabel(date), domain.WeekdayLabel(date))
	}
	return sheet, idx
}

// EnsureWeekColumn locates or creates the month sheet covering date and the
// column for the Monday-Friday span containing it. A freshly created sheet
// is seeded with one column per span overlapping the month. On existing
// sheets the resolution order is: exact label match, then interval
// containment against every parsed header span (a header written by an
// earlier run from a different representative date still binds), then
// append. When two distinct parsed spans both contain the date the first
// wins and the collision is reported, not silently resolved.
func EnsureWeekColumn(wb *Workbook, date time.Time) (*Sheet, int, []string) {
	date = domain.Day(date)
	sheet, created := wb.EnsureSheet(domain.MonthLabel(date), "Project Name")
	if created {
		seedWeekColumns(sheet, date)
	}

	span := domain.WeekSpanFor(date)
	if idx, ok := sheet.ColumnIndex(span.Label()); ok {
		return sheet, idx, nil
	}

	var inconsistencies []string
	found := 0
	first := 0
	var firstSpan domain.WeekSpan
	for c := 2; c <= len(sheet.Headers); c++ { // column 1 is the project key
		parsed, ok := domain.ParseWeekLabel(sheet.Headers[c-1])
		if !ok || !parsed.Contains(date) {
			continue
		}
		if found == 0 {
			first, firstSpan = c, parsed
		} else if parsed != firstSpan {
			inconsistencies = append(inconsistencies, fmt.Sprintf(
				"sheet %q: week columns %d (%s) and %d (%s) both contain %s",
				sheet.Name, first, firstSpan.Label(), c, parsed.Label(), date.Format("2006-01-02")))
		}
		found++
	}
	if found > 0 {
		return sheet, first, inconsistencies
	}
	return sheet, sheet.AppendColumn(span.Label(), ""), nil
}

// seedWeekColumns appends a column for every Monday-Friday span overlapping
// the month of d, skipping labels that already exist.
func seedWeekColumns(sheet *Sheet, d time.Time) {
	year, month, _ := d.Date()
	first := domain.DateOf(year, month, 1)
	last := domain.DateOf(year, month, daysIn(year, month))
	for cur := domain.WeekSpanFor(first).Start; !cur.After(last); cur = cur.AddDate(0, 0, 7) {
		label := domain.WeekSpanFor(cur).Label()
		if _, ok := sheet.ColumnIndex(label); !ok {
			sheet.AppendColumn(label, "")
		}
	}
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
