package sheet

import "strings"

// Table is the first worksheet of a spreadsheet: a header row and the data rows
// below it. Cells are the text the spreadsheet shows for them.
type Table struct {
	Name   string
	Header []string
	Rows   [][]string
}

// NewTable builds a Table from raw rows, using the first non-empty row as the
// header. Fully empty rows are dropped and ragged rows are padded to the header
// width.
func NewTable(name string, raw [][]string) *Table {
	t := &Table{Name: name}
	headerFound := false
	for _, row := range raw {
		if isEmptyRow(row) {
			continue
		}
		if !headerFound {
			t.Header = make([]string, len(row))
			for i, h := range row {
				t.Header[i] = strings.TrimSpace(h)
			}
			headerFound = true
			continue
		}
		t.Rows = append(t.Rows, row)
	}

	width := len(t.Header)
	for _, row := range t.Rows {
		width = max(width, len(row))
	}
	for i, row := range t.Rows {
		if len(row) < width {
			padded := make([]string, width)
			copy(padded, row)
			t.Rows[i] = padded
		}
	}
	return t
}

// ColumnIndex returns the index of the named header column, or -1.
func (t *Table) ColumnIndex(name string) int {
	for i, h := range t.Header {
		if h == name {
			return i
		}
	}
	return -1
}

// Cell returns the trimmed cell at (row, col); out-of-range cells are empty.
func (t *Table) Cell(row, col int) string {
	if row < 0 || row >= len(t.Rows) || col < 0 || col >= len(t.Rows[row]) {
		return ""
	}
	return strings.TrimSpace(t.Rows[row][col])
}

// Len returns the number of data rows.
func (t *Table) Len() int {
	return len(t.Rows)
}

func isEmptyRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
