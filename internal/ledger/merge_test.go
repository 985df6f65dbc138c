package ledger

import (
	"testing"
	"time"

	"reportledger/pkg/domain"
)

func dailyRecord(project, resource string, day int) domain.DailyRecord {
	return domain.DailyRecord{
		Project:  project,
		Resource: resource,
		Date:     domain.DateOf(2025, time.March, day),
	}
}

func weeklyRecord(project string, startDay int) domain.WeeklyRecord {
	start := domain.DateOf(2025, time.March, startDay)
	return domain.WeeklyRecord{
		Project:       project,
		StartDate:     start,
		EndDate:       start.AddDate(0, 0, 4),
		HasAttachment: true,
	}
}

func TestApplyDailyFirstPass(t *testing.T) {
	wb := &Workbook{Kind: KindDaily}
	records := []domain.DailyRecord{
		dailyRecord("Apollo", "Asha", 3),
		dailyRecord("Apollo", "Ben", 3),
		dailyRecord("Apollo", "Asha", 4),
	}
	rep := ApplyDaily(wb, records)
	if rep.Applied != 3 || rep.Duplicates != 0 {
		t.Fatalf("report %+v", rep)
	}
	sheet, ok := wb.Sheet("March 2025")
	if !ok {
		t.Fatalf("month sheet missing")
	}
	row, ok := sheet.FindRow("Apollo", "Asha")
	if !ok {
		t.Fatalf("row missing")
	}
	col3, _ := sheet.ColumnIndex("03 March 2025")
	col4, _ := sheet.ColumnIndex("04 March 2025")
	if sheet.Cell(row, col3) != Marker || sheet.Cell(row, col4) != Marker {
		t.Fatalf("markers not written")
	}
}

// Re-applying an identical batch is a no-op reported entirely as duplicates.
func TestApplyDailyIdempotent(t *testing.T) {
	wb := &Workbook{Kind: KindDaily}
	records := []domain.DailyRecord{
		dailyRecord("Apollo", "Asha", 3),
		dailyRecord("Apollo", "Ben", 4),
	}
	ApplyDaily(wb, records)
	before := len(wb.Sheets[0].Rows)

	rep := ApplyDaily(wb, records)
	if rep.Applied != 0 || rep.Duplicates != 2 {
		t.Fatalf("second pass report %+v", rep)
	}
	if got := len(wb.Sheets[0].Rows); got != before {
		t.Fatalf("second pass grew rows from %d to %d", before, got)
	}
}

func TestApplyDailySkipsInvalidRows(t *testing.T) {
	wb := &Workbook{Kind: KindDaily}
	records := []domain.DailyRecord{
		{Project: "Apollo"}, // no resource, no date
		dailyRecord("Apollo", "Asha", 3),
	}
	rep := ApplyDaily(wb, records)
	if rep.Applied != 1 || len(rep.Skipped) != 1 {
		t.Fatalf("report %+v", rep)
	}
}

func TestApplyDailySpansMonths(t *testing.T) {
	wb := &Workbook{Kind: KindDaily}
	records := []domain.DailyRecord{
		dailyRecord("Apollo", "Asha", 31),
		{Project: "Apollo", Resource: "Asha", Date: domain.DateOf(2025, time.April, 1)},
	}
	rep := ApplyDaily(wb, records)
	if rep.Applied != 2 {
		t.Fatalf("report %+v", rep)
	}
	if len(wb.Sheets) != 2 {
		t.Fatalf("want one sheet per month, got %v", sheetNames(wb))
	}
}

func TestApplyWeeklyIdempotent(t *testing.T) {
	wb := &Workbook{Kind: KindWeekly}
	records := []domain.WeeklyRecord{
		weeklyRecord("Atlas", 3),
		weeklyRecord("Apollo", 3),
		weeklyRecord("Atlas", 10),
	}
	rep := ApplyWeekly(wb, records)
	if rep.Applied != 3 || rep.Duplicates != 0 {
		t.Fatalf("first pass %+v", rep)
	}
	rep = ApplyWeekly(wb, records)
	if rep.Applied != 0 || rep.Duplicates != 3 {
		t.Fatalf("second pass %+v", rep)
	}
}

func TestApplyWeeklyRequiresAttachment(t *testing.T) {
	wb := &Workbook{Kind: KindWeekly}
	rec := weeklyRecord("Atlas", 3)
	rec.HasAttachment = false
	rep := ApplyWeekly(wb, []domain.WeeklyRecord{rec})
	if rep.Applied != 0 || len(rep.Skipped) != 1 {
		t.Fatalf("report %+v", rep)
	}
}

// Records resolved through differing header representations land in the same
// column and the second one counts as a duplicate.
func TestApplyWeeklyContainmentDeduplicates(t *testing.T) {
	wb := &Workbook{Kind: KindWeekly, Sheets: []*Sheet{{
		Name:    "March 2025",
		Headers: []string{"Project Name", "02 Mar 2025 - 08 Mar 2025"},
	}}}
	rep := ApplyWeekly(wb, []domain.WeeklyRecord{weeklyRecord("Atlas", 3)})
	if rep.Applied != 1 {
		t.Fatalf("first pass %+v", rep)
	}
	rep = ApplyWeekly(wb, []domain.WeeklyRecord{weeklyRecord("Atlas", 3)})
	if rep.Applied != 0 || rep.Duplicates != 1 {
		t.Fatalf("second pass %+v", rep)
	}
	if len(wb.Sheets[0].Headers) != 2 {
		t.Fatalf("containment must not add columns: %v", wb.Sheets[0].Headers)
	}
}

func TestApplyWeeklySurfacesCollisions(t *testing.T) {
	wb := &Workbook{Kind: KindWeekly, Sheets: []*Sheet{{
		Name: "March 2025",
		Headers: []string{
			"Project Name",
			"02 Mar 2025 - 08 Mar 2025",
			"05 Mar 2025 - 09 Mar 2025",
		},
	}}}
	rep := ApplyWeekly(wb, []domain.WeeklyRecord{weeklyRecord("Atlas", 5)})
	if rep.Applied != 1 || len(rep.Inconsistencies) != 1 {
		t.Fatalf("report %+v", rep)
	}
}
