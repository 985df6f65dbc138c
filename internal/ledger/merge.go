package ledger

import (
	"fmt"
	"strings"

	"reportledger/pkg/domain"
)

// Report summarizes one merge pass. Applied counts presence markers newly
// written; Duplicates counts cells that already held the marker. Re-applying
// an identical batch yields Applied=0 and Duplicates=N on the second pass.
type Report struct {
	Applied         int      `json:"applied"`
	Duplicates      int      `json:"duplicates"`
	Skipped         []string `json:"skipped,omitempty"`
	Inconsistencies []string `json:"inconsistencies,omitempty"`
}

func (r *Report) skip(i int, reason string) {
	r.Skipped = append(r.Skipped, fmt.Sprintf("row %d: %s", i, reason))
}

// ApplyDaily upserts daily records into the workbook in input order. Each
// record resolves to (month sheet, day column, project+resource row); rows
// and columns are created on demand, only ever appended. Invalid records are
// skipped per-row and reported, the rest of the batch proceeds.
func ApplyDaily(wb *Workbook, records []domain.DailyRecord) Report {
	var rep Report
	for i, rec := range records {
		if !rec.Valid() {
			rep.skip(i, "missing project, resource, or date")
			continue
		}
		sheet, col := EnsureDayColumn(wb, rec.Date)
		project := strings.TrimSpace(rec.Project)
		resource := strings.TrimSpace(rec.Resource)
		row, ok := sheet.FindRow(project, resource)
		if !ok {
			row = sheet.AppendRow(project, resource)
		}
		mark(sheet, row, col, &rep)
	}
	return rep
}

// ApplyWeekly upserts weekly records, one presence marker per (project, week
// span). Span columns resolve by exact label then interval containment, so
// the same date always lands in the same column regardless of batch order.
func ApplyWeekly(wb *Workbook, records []domain.WeeklyRecord) Report {
	var rep Report
	for i, rec := range records {
		if !rec.Valid() {
			rep.skip(i, "missing project, date range, or attachment")
			continue
		}
		sheet, col, inconsistencies := EnsureWeekColumn(wb, rec.StartDate)
		rep.Inconsistencies = append(rep.Inconsistencies, inconsistencies...)
		project := strings.TrimSpace(rec.Project)
		row, ok := sheet.FindRow(project)
		if !ok {
			row = sheet.AppendRow(project)
		}
		mark(sheet, row, col, &rep)
	}
	return rep
}

func mark(sheet *Sheet, row, col int, rep *Report) {
	if sheet.Cell(row, col) == Marker {
		rep.Duplicates++
		return
	}
	sheet.SetCell(row, col, Marker)
	rep.Applied++
}
