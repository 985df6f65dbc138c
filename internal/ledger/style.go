package ledger

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

const (
	headerFillColor = "BDD7EE" // light blue
	markerFillColor = "C6EFCE" // light green
)

func thinBorder() []excelize.Border {
	sides := []string{"left", "right", "top", "bottom"}
	out := make([]excelize.Border, 0, len(sides))
	for _, s := range sides {
		out = append(out, excelize.Border{Type: s, Color: "000000", Style: 1})
	}
	return out
}

// applyStyles runs the cosmetic pass over every sheet: styled header row,
// highlighted presence markers, auto-fitted column widths. Purely cosmetic,
// idempotent, no semantic effect on the ledger.
func applyStyles(f *excelize.File, wb *Workbook) error {
	headerStyle, err := f.NewStyle(&excelize.Style{
		Fill:      excelize.Fill{Type: "pattern", Color: []string{headerFillColor}, Pattern: 1},
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border:    thinBorder(),
	})
	if err != nil {
		return fmt.Errorf("header style: %w", err)
	}
	markerStyle, err := f.NewStyle(&excelize.Style{
		Fill:      excelize.Fill{Type: "pattern", Color: []string{markerFillColor}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return fmt.Errorf("marker style: %w", err)
	}

	keyCols := wb.Kind.KeyColumns()
	firstDataRow := wb.Kind.HeaderRows() + 1
	for _, sheet := range wb.Sheets {
		if len(sheet.Headers) > 0 {
			last, err := excelize.CoordinatesToCellName(len(sheet.Headers), 1)
			if err != nil {
				return err
			}
			if err := f.SetCellStyle(sheet.Name, "A1", last, headerStyle); err != nil {
				return fmt.Errorf("style headers %q: %w", sheet.Name, err)
			}
		}
		for r, row := range sheet.Rows {
			for c := keyCols + 1; c <= len(row); c++ {
				if row[c-1] != Marker {
					continue
				}
				cell, err := excelize.CoordinatesToCellName(c, firstDataRow+r)
				if err != nil {
					return err
				}
				if err := f.SetCellStyle(sheet.Name, cell, cell, markerStyle); err != nil {
					return fmt.Errorf("style marker %q: %w", sheet.Name, err)
				}
			}
		}
		if err := autoFitColumns(f, sheet); err != nil {
			return err
		}
	}
	return nil
}

// autoFitColumns sizes each column to its longest cell plus padding.
func autoFitColumns(f *excelize.File, sheet *Sheet) error {
	for c := 1; c <= len(sheet.Headers); c++ {
		width := len(sheet.Headers[c-1])
		if c <= len(sheet.Subheaders) && len(sheet.Subheaders[c-1]) > width {
			width = len(sheet.Subheaders[c-1])
		}
		for r := range sheet.Rows {
			if v := sheet.Cell(r, c); len(v) > width {
				width = len(v)
			}
		}
		name, err := excelize.ColumnNumberToName(c)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(sheet.Name, name, name, float64(width+2)); err != nil {
			return fmt.Errorf("set width %q: %w", sheet.Name, err)
		}
	}
	return nil
}
