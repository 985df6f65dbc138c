package ledger

import (
	"testing"

	"reportledger/pkg/domain"
)

func TestCodecRoundTripDaily(t *testing.T) {
	wb := &Workbook{Kind: KindDaily}
	ApplyDaily(wb, []domain.DailyRecord{
		dailyRecord("Apollo", "Asha", 3),
		dailyRecord("Atlas", "Ben", 4),
	})

	b, err := Encode(wb)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	got, err := Decode(b, KindDaily)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	sheet, ok := got.Sheet("March 2025")
	if !ok {
		t.Fatalf("month sheet lost in round trip: %v", sheetNames(got))
	}
	col, ok := sheet.ColumnIndex("03 March 2025")
	if !ok {
		t.Fatalf("day column lost: %v", sheet.Headers)
	}
	row, ok := sheet.FindRow("Apollo", "Asha")
	if !ok {
		t.Fatalf("row lost: %v", sheet.Rows)
	}
	if sheet.Cell(row, col) != Marker {
		t.Fatalf("marker lost in round trip")
	}
	if len(sheet.Subheaders) == 0 || sheet.Subheaders[col-1] != "Monday" {
		t.Fatalf("weekday subheader lost: %v", sheet.Subheaders)
	}
}

// A committed batch re-applied after a save/load cycle must read as pure
// duplicates; the xlsx trip cannot launder markers into fresh applies.
func TestCodecPreservesIdempotence(t *testing.T) {
	records := []domain.WeeklyRecord{weeklyRecord("Atlas", 3)}
	wb := &Workbook{Kind: KindWeekly}
	ApplyWeekly(wb, records)

	b, err := Encode(wb)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	reloaded, err := Decode(b, KindWeekly)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	rep := ApplyWeekly(reloaded, records)
	if rep.Applied != 0 || rep.Duplicates != 1 {
		t.Fatalf("post-reload report %+v", rep)
	}
}

func TestMinimalTemplates(t *testing.T) {
	daily, err := MinimalDaily()
	if err != nil {
		t.Fatalf("daily template: %v", err)
	}
	wb, err := Decode(daily, KindDaily)
	if err != nil {
		t.Fatalf("decode daily template: %v", err)
	}
	sheet, ok := wb.Sheet("Summary")
	if !ok || len(sheet.Headers) != 2 || sheet.Headers[0] != "Project Name" {
		t.Fatalf("daily template sheet: %+v", wb.Sheets)
	}

	weekly, err := MinimalWeekly()
	if err != nil {
		t.Fatalf("weekly template: %v", err)
	}
	wb, err = Decode(weekly, KindWeekly)
	if err != nil {
		t.Fatalf("decode weekly template: %v", err)
	}
	if sheet, ok := wb.Sheet("Summary"); !ok || len(sheet.Headers) != 1 {
		t.Fatalf("weekly template sheet: %+v", sheet)
	}
}

// Merging into a decoded bootstrap workbook leaves the Summary tab alone and
// appends the month sheet after it.
func TestMergeIntoBootstrapWorkbook(t *testing.T) {
	minimal, err := MinimalDaily()
	if err != nil {
		t.Fatalf("template: %v", err)
	}
	wb, err := Decode(minimal, KindDaily)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	rep := ApplyDaily(wb, []domain.DailyRecord{dailyRecord("Apollo", "Asha", 3)})
	if rep.Applied != 1 {
		t.Fatalf("report %+v", rep)
	}
	if len(wb.Sheets) != 2 || wb.Sheets[0].Name != "Summary" || wb.Sheets[1].Name != "March 2025" {
		t.Fatalf("sheets: %v", sheetNames(wb))
	}

	b, err := Encode(wb)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if _, err := Decode(b, KindDaily); err != nil {
		t.Fatalf("re-decode: %v", err)
	}
}

func TestDecodeRejectsGarbage(t *testing.T) {
	if _, err := Decode([]byte("not an xlsx file"), KindDaily); err == nil {
		t.Fatalf("garbage bytes must not decode")
	}
}
