package extract

import (
	"regexp"
	"strings"
	"time"

	"reportledger/pkg/domain"
)

// dailyMarker splits a thread into report blocks. A forwarded or replied
// thread legitimately carries several concatenated daily reports; every
// marker occurrence starts a fresh block.
var (
	dailyMarker = regexp.MustCompile(`(?i)daily status report`)

	// tier 1: date on or after the marker line, arbitrary separators, 4-digit year
	markerDatePattern = regexp.MustCompile(`(?i)Daily Status Report.*?(\d{1,2}[^A-Za-z0-9\n]{0,2}\s*[A-Za-z0-9,\-/\s]+?\d{4})`)
	// tier 2: labeled "for: <date>" form, 2- or 4-digit year
	forDatePattern = regexp.MustCompile(`(?i)for\s*[:\-]?\s*<?([\dA-Za-z\-/\s,]+?\d{2,4})>?`)

	projectLabelPattern  = regexp.MustCompile(`(?i)Project\s*Name[:\s\-]+(.+)`)
	resourceLabelPattern = regexp.MustCompile(`(?i)Resource\s*Name[:\s\-]+(.+)`)
)

// DailyFact is one extracted daily-report block.
type DailyFact struct {
	Project  string
	Resource string
	Date     time.Time
}

// ExtractDaily scans a mail body for embedded daily-report blocks and returns
// one fact per block that yields a date, a project, and a resource. Blocks
// missing any of the three are dropped silently; a heuristic miss on one
// block never blocks the rest of the thread.
func ExtractDaily(body string) []DailyFact {
	text := Text(body)
	parts := dailyMarker.Split(text, -1)
	if len(parts) <= 1 {
		return nil
	}
	var facts []DailyFact
	for _, part := range parts[1:] {
		blk := "Daily Status Report " + part
		date, ok := blockDate(blk)
		if !ok {
			continue
		}
		project := projectFromLabel(blk)
		if project == "" {
			project = projectFromLayout(blk)
		}
		resource := resourceFromLabel(blk)
		if project == "" || resource == "" {
			continue
		}
		facts = append(facts, DailyFact{Project: project, Resource: resource, Date: date})
	}
	return facts
}

// blockDate applies the three date tiers in descending specificity:
// marker-anchored, "for:"-labeled, then a whole-block candidate scan.
func blockDate(blk string) (time.Time, bool) {
	if m := markerDatePattern.FindStringSubmatch(blk); m != nil {
		if d, ok := domain.ResolveDate(m[1]); ok {
			return d, true
		}
	}
	if m := forDatePattern.FindStringSubmatch(blk); m != nil {
		if d, ok := domain.ResolveDate(m[1]); ok {
			return d, true
		}
	}
	for _, cand := range domain.DateCandidates(blk) {
		if d, ok := domain.ResolveDate(cand); ok {
			return d, true
		}
	}
	return time.Time{}, false
}

// projectFromLabel reads a "Project Name: ..." line; the value is the rest of
// that line only.
func projectFromLabel(blk string) string {
	m := projectLabelPattern.FindStringSubmatch(blk)
	if m == nil {
		return ""
	}
	return strings.TrimSpace(firstLine(m[1]))
}

// projectFromLayout is the positional fallback tier: conventional report
// layout puts the project on the second non-blank line of the block.
func projectFromLayout(blk string) string {
	var lines []string
	for _, ln := range strings.Split(blk, "\n") {
		if ln = strings.TrimSpace(ln); ln != "" {
			lines = append(lines, ln)
		}
	}
	if len(lines) < 2 {
		return ""
	}
	return lines[1]
}

// resourceFromLabel reads a "Resource Name: ..." line. There is deliberately
// no positional fallback; a block without the label yields no resource and
// is dropped.
func resourceFromLabel(blk string) string {
	m := resourceLabelPattern.FindStringSubmatch(blk)
	if m == nil {
		return ""
	}
	return strings.TrimSpace(firstLine(m[1]))
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
