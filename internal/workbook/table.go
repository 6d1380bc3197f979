package workbook

import (
	"fmt"
	"strconv"
)

// Table is one sheet materialized as ordered rows of named columns.
// Every row has exactly len(Columns) cells; Parse and the grid decoder
// both normalize rows to the header width. Cell values are carried as
// strings and converted back to typed values when written.
type Table struct {
	Columns []string
	Rows    [][]string
}

// RowCount returns the number of data rows (the header is not counted).
func (t Table) RowCount() int {
	return len(t.Rows)
}

// ColCount returns the number of columns.
func (t Table) ColCount() int {
	return len(t.Columns)
}

// Empty reports whether the table has no header and no rows.
func (t Table) Empty() bool {
	return len(t.Columns) == 0 && len(t.Rows) == 0
}

// Cell returns the value at row i, column j, or "" when out of range.
func (t Table) Cell(i, j int) string {
	if i < 0 || i >= len(t.Rows) || j < 0 || j >= len(t.Rows[i]) {
		return ""
	}
	return t.Rows[i][j]
}

// Clone returns a deep copy of the table.
func (t Table) Clone() Table {
	out := Table{
		Columns: append([]string(nil), t.Columns...),
		Rows:    make([][]string, len(t.Rows)),
	}
	for i, row := range t.Rows {
		out.Rows[i] = append([]string(nil), row...)
	}
	return out
}

// AppendRow adds an empty row matching the table's column set.
func (t *Table) AppendRow() {
	t.Rows = append(t.Rows, make([]string, len(t.Columns)))
}

// RemoveRow deletes row i. Out-of-range indices are ignored.
func (t *Table) RemoveRow(i int) {
	if i < 0 || i >= len(t.Rows) {
		return
	}
	t.Rows = append(t.Rows[:i], t.Rows[i+1:]...)
}

// normalizeRow pads or truncates a row to width cells.
func normalizeRow(row []string, width int) []string {
	out := make([]string, width)
	copy(out, row)
	return out
}

// columnName returns the header for position j (0-based), synthesizing a
// name when the header cell is blank.
func columnName(header string, j int) string {
	if header != "" {
		return header
	}
	return fmt.Sprintf("Column %d", j+1)
}

// inferValue converts a cell string back to a typed value so numeric and
// boolean cells round-trip through an edit without becoming text.
func inferValue(s string) any {
	if s == "" {
		return ""
	}
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	// excelize renders boolean cells as TRUE/FALSE
	switch s {
	case "TRUE":
		return true
	case "FALSE":
		return false
	}
	return s
}
