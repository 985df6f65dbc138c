package ledger

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// Codec boundary: everything excelize-shaped lives here and in style.go.
// The merge algorithms above operate purely on the in-memory table model.

// Decode parses workbook bytes into the table model. Sheets, column order,
// and cell text are preserved exactly; styling is cosmetic and rebuilt on
// encode.
func Decode(b []byte, kind Kind) (*Workbook, error) {
	f, err := excelize.OpenReader(bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer func() { _ = f.Close() }()

	wb := &Workbook{Kind: kind}
	for _, name := range f.GetSheetList() {
		rows, err := f.GetRows(name)
		if err != nil {
			return nil, fmt.Errorf("read sheet %q: %w", name, err)
		}
		sheet := &Sheet{Name: name}
		header := kind.HeaderRows()
		if len(rows) > 0 {
			sheet.Headers = rows[0]
		}
		if header > 1 && len(rows) > 1 {
			sheet.Subheaders = rows[1]
		}
		for i := header; i < len(rows); i++ {
			sheet.Rows = append(sheet.Rows, rows[i])
		}
		wb.Sheets = append(wb.Sheets, sheet)
	}
	return wb, nil
}

// Encode serializes the table model to xlsx bytes and reapplies the cosmetic
// formatting pass (header styling, marker highlighting, column widths). The
// pass is idempotent and independent of merge order.
func Encode(wb *Workbook) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	for i, sheet := range wb.Sheets {
		if i == 0 {
			if err := f.SetSheetName(f.GetSheetName(0), sheet.Name); err != nil {
				return nil, fmt.Errorf("rename sheet: %w", err)
			}
		} else if _, err := f.NewSheet(sheet.Name); err != nil {
			return nil, fmt.Errorf("create sheet %q: %w", sheet.Name, err)
		}
		if err := writeSheet(f, sheet, wb.Kind); err != nil {
			return nil, err
		}
	}
	if err := applyStyles(f, wb); err != nil {
		return nil, err
	}
	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("serialize workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func writeSheet(f *excelize.File, sheet *Sheet, kind Kind) error {
	setRow := func(row int, values []string) error {
		for c, v := range values {
			if v == "" {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(c+1, row)
			if err != nil {
				return err
			}
			if err := f.SetCellStr(sheet.Name, cell, v); err != nil {
				return err
			}
		}
		return nil
	}
	if err := setRow(1, sheet.Headers); err != nil {
		return fmt.Errorf("write headers %q: %w", sheet.Name, err)
	}
	if kind.HeaderRows() > 1 {
		if err := setRow(2, sheet.Subheaders); err != nil {
			return fmt.Errorf("write subheaders %q: %w", sheet.Name, err)
		}
	}
	first := kind.HeaderRows() + 1
	for r, row := range sheet.Rows {
		if err := setRow(first+r, row); err != nil {
			return fmt.Errorf("write row %d of %q: %w", r, sheet.Name, err)
		}
	}
	return nil
}

// MinimalDaily returns the bootstrap daily workbook: a single "Summary"
// sheet holding the fixed key headers. Used when the remote ledger file is
// missing or unreadable.
func MinimalDaily() ([]byte, error) {
	return Encode(&Workbook{Kind: KindDaily, Sheets: []*Sheet{
		{Name: "Summary", Headers: []string{"Project Name", "Resource Name"}},
	}})
}

// MinimalWeekly returns the bootstrap weekly workbook.
func MinimalWeekly() ([]byte, error) {
	return Encode(&Workbook{Kind: KindWeekly, Sheets: []*Sheet{
		{Name: "Summary", Headers: []string{"Project Name"}},
	}})
}
