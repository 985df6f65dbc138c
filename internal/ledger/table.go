// Package ledger implements the tracker workbooks: an in-memory table model,
// the month-sheet/column growth rules, the idempotent merge, and the xlsx
// codec boundary. The growth algorithm never touches excelize; serialization
// is confined to codec.go and style.go.
package ledger

import "strings"

// Kind selects the ledger geometry: the daily tracker keys rows by
// project+resource and columns by calendar day, the weekly tracker keys rows
// by project and columns by Monday-Friday spans.
type Kind string

const (
	KindDaily  Kind = "daily"
	KindWeekly Kind = "weekly"
)

// Marker is the presence sentinel. Once written it is never cleared; writing
// it again is a duplicate, counted but not reapplied.
const Marker = "Y"

// HeaderRows returns the number of header rows above the first data row.
func (k Kind) HeaderRows() int {
	if k == KindDaily {
		return 2 // date labels plus weekday names
	}
	return 1
}

// KeyColumns returns how many leading columns form the row key.
func (k Kind) KeyColumns() int {
	if k == KindDaily {
		return 2
	}
	return 1
}

// Workbook is an ordered collection of sheets, one per calendar month plus
// whatever sheets prior runs left behind (e.g. the bootstrap "Summary" tab,
// which merges never touch but round-trips must preserve).
type Workbook struct {
	Kind   Kind
	Sheets []*Sheet
}

// Sheet holds ordered named columns and ordered data rows. Row slices may be
// shorter than the header row; missing cells read as empty.
type Sheet struct {
	Name       string
	Headers    []string // row 1, index 0 = column 1
	Subheaders []string // row 2 weekday names (daily only), aligned with Headers
	Rows       [][]string
}

// Sheet returns the named sheet if present.
func (wb *Workbook) Sheet(name string) (*Sheet, bool) {
	for _, s := range wb.Sheets {
		if s.Name == name {
			return s, true
		}
	}
	return nil, false
}

// EnsureSheet returns the named sheet, creating and appending it with the
// given key-column headers when absent.
func (wb *Workbook) EnsureSheet(name string, keyHeaders ...string) (*Sheet, bool) {
	if s, ok := wb.Sheet(name); ok {
		return s, false
	}
	s := &Sheet{Name: name, Headers: append([]string(nil), keyHeaders...)}
	wb.Sheets = append(wb.Sheets, s)
	return s, true
}

// ColumnIndex returns the 1-based index of the column with the given header,
// compared after trimming, matching how prior runs may have padded labels.
func (s *Sheet) ColumnIndex(label string) (int, bool) {
	for i, h := range s.Headers {
		if strings.TrimSpace(h) == label {
			return i + 1, true
		}
	}
	return 0, false
}

// AppendColumn adds a column after all existing ones and returns its 1-based
// index. Existing column indices are never shifted.
func (s *Sheet) AppendColumn(label, sublabel string) int {
	s.Headers = append(s.Headers, label)
	if sublabel != "" {
		for len(s.Subheaders) < len(s.Headers)-1 {
			s.Subheaders = append(s.Subheaders, "")
		}
		s.Subheaders = append(s.Subheaders, sublabel)
	}
	return len(s.Headers)
}

// Cell reads the cell at data row r (0-based) and column c (1-based).
func (s *Sheet) Cell(r, c int) string {
	if r < 0 || r >= len(s.Rows) || c < 1 || c > len(s.Rows[r]) {
		return ""
	}
	return s.Rows[r][c-1]
}

// SetCell writes the cell at data row r (0-based) and column c (1-based),
// growing the row as needed.
func (s *Sheet) SetCell(r, c int, v string) {
	for len(s.Rows) <= r {
		s.Rows = append(s.Rows, nil)
	}
	for len(s.Rows[r]) < c {
		s.Rows[r] = append(s.Rows[r], "")
	}
	s.Rows[r][c-1] = v
}

// FindRow scans data rows in order for an exact match on the leading key
// cells. Returns the 0-based row index.
func (s *Sheet) FindRow(keys ...string) (int, bool) {
	for i := range s.Rows {
		match := true
		for c, k := range keys {
			if strings.TrimSpace(s.Cell(i, c+1)) != k {
				match = false
				break
			}
		}
		if match {
			return i, true
		}
	}
	return 0, false
}

// AppendRow creates a new data row after all existing rows with the key
// cells filled in. Blank rows left by prior edits are never reused.
func (s *Sheet) AppendRow(keys ...string) int {
	r := len(s.Rows)
	for c, k := range keys {
		s.SetCell(r, c+1, k)
	}
	return r
}
