package domain

import (
	"regexp"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// Date construction and formatting helpers. All dates are UTC midnight; the
// ledgers only ever care about calendar days.

// DateOf returns the UTC midnight time for the given calendar day.
func DateOf(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// Day truncates t to its UTC calendar day.
func Day(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return DateOf(y, m, d)
}

// MonthLabel is the sheet-name contract, e.g. "March 2025". It must round-trip
// byte-identical with workbooks written by prior runs.
func MonthLabel(d time.Time) string { return d.Format("January 2006") }

// DayLabel is the daily-ledger column header, e.g. "03 March 2025".
func DayLabel(d time.Time) string { return d.Format("02 January 2006") }

// WeekdayLabel is the secondary daily header, e.g. "Monday".
func WeekdayLabel(d time.Time) string { return d.Format("Monday") }

// explicit format ladder tried after the fuzzy pass, most specific first
var dateLayouts = []string{
	"2 January 2006",
	"2 Jan 2006",
	"2006-01-02",
	"2006-1-2",
	"2006/01/02",
	"2-1-2006",
	"2/1/2006",
	"2/1/06",
	"January 2 2006",
	"Jan 2 2006",
}

var (
	ordinalPattern = regexp.MustCompile(`(\d{1,2})(?:st|nd|rd|th)\b`)

	// the right side captures the whole remainder; resolveSide digs the
	// date out, so "Friday 07 March 2025" is not clipped at "Friday 07"
	fromToPattern = regexp.MustCompile(`(?i)\bfrom\s+(.+?)\s+to\s+(.+)`)
	spanPattern   = regexp.MustCompile(`(.+?\d{2,4})\s*[-\x{2013}\x{2014}]\s*(.+)`)

	// candidate shapes scanned out of free text, in descending specificity
	datePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(\d{1,2}(?:st|nd|rd|th)?\s+[A-Za-z]{3,9}\s+\d{4})`),
		regexp.MustCompile(`(?i)([A-Za-z]{3,9}\s+\d{1,2}(?:st|nd|rd|th)?,?\s+\d{4})`),
		regexp.MustCompile(`(\d{4}[-/]\d{1,2}[-/]\d{1,2})`),
		regexp.MustCompile(`(\d{1,2}[-/]\d{1,2}[-/]\d{2,4})`),
		regexp.MustCompile(`(?i)week\s+ending\s+([A-Za-z0-9\-\s,/]+)`),
		regexp.MustCompile(`(?i)(\d{1,2}\s+[A-Za-z]{3,9}\s+\d{4})\s*[-\x{2013}]\s*(\d{1,2}\s+[A-Za-z]{3,9}\s+\d{4})`),
		regexp.MustCompile(`(?i)from\s+(\d{1,2}\s+[A-Za-z]{3,9}\s+\d{4})\s+to\s+(\d{1,2}\s+[A-Za-z]{3,9}\s+\d{4})`),
	}
)

// normalizeDateText removes punctuation noise the heuristics tolerate:
// surrounding angle brackets, period/comma separators, ordinal suffixes,
// and runs of whitespace.
func normalizeDateText(s string) string {
	s = strings.TrimSpace(s)
	s = strings.Trim(s, "<>")
	s = strings.NewReplacer(".", " ", ",", " ").Replace(s)
	s = ordinalPattern.ReplaceAllString(s, "$1")
	return strings.Join(strings.Fields(s), " ")
}

// ResolveDate normalizes a date substring and attempts, in order, a fuzzy
// general-purpose parse followed by the explicit format ladder. A failed
// parse is not an error: callers get (zero, false) and keep searching.
func ResolveDate(s string) (time.Time, bool) {
	s = normalizeDateText(s)
	if s == "" {
		return time.Time{}, false
	}
	if t, err := dateparse.ParseAny(s); err == nil {
		return Day(t), true
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return Day(t), true
		}
	}
	return time.Time{}, false
}

// ResolveRange extracts a (start, end) pair from free text. It tries a
// "from X to Y" phrase first, then a generic "A - B" separator split; the
// first pattern whose both sides resolve wins. A captured side often drags
// in leading prose (a subject prefix, a weekday name), so each side is
// resolved loosely rather than as a whole.
func ResolveRange(s string) (start, end time.Time, ok bool) {
	for _, rx := range []*regexp.Regexp{fromToPattern, spanPattern} {
		m := rx.FindStringSubmatch(s)
		if m == nil {
			continue
		}
		a, okA := resolveSide(m[1])
		b, okB := resolveSide(m[2])
		if okA && okB {
			return a, b, true
		}
	}
	return time.Time{}, time.Time{}, false
}

// resolveSide parses one side of a range expression: the whole side first,
// then the date-shaped substrings inside it, so "WSR 03 March 2025" still
// yields 03 March 2025.
func resolveSide(s string) (time.Time, bool) {
	if d, ok := ResolveDate(s); ok {
		return d, true
	}
	for _, cand := range DateCandidates(s) {
		if d, ok := ResolveDate(cand); ok {
			return d, true
		}
	}
	return time.Time{}, false
}

// DateCandidates scans text for substrings shaped like dates, in descending
// pattern specificity. Callers feed each candidate to ResolveDate and take
// the first that parses.
func DateCandidates(text string) []string {
	var out []string
	for _, rx := range datePatterns {
		for _, m := range rx.FindAllStringSubmatch(text, -1) {
			out = append(out, m[1])
			if len(m) > 2 && m[2] != "" {
				out = append(out, m[2])
			}
		}
	}
	return out
}
