// Package workbook loads, models and writes xlsx workbooks. A Workbook is
// a read-only handle over an uploaded file; individual sheets are
// materialized on demand as Tables and a new workbook is assembled from an
// edited table plus the untouched originals.
package workbook

import (
	"io"

	"github.com/xuri/excelize/v2"
)

// Workbook is a read-only handle over a parsed xlsx file.
type Workbook struct {
	file *excelize.File
}

// Load parses raw uploaded bytes into a Workbook. A file that is not a
// valid xlsx container yields a *LoadError and no handle.
func Load(r io.Reader) (*Workbook, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, &LoadError{Err: err}
	}
	return &Workbook{file: f}, nil
}

// Sheets returns the sheet names in workbook order.
func (w *Workbook) Sheets() []string {
	return w.file.GetSheetList()
}

// HasSheet reports whether name is one of the workbook's sheets.
func (w *Workbook) HasSheet(name string) bool {
	for _, s := range w.Sheets() {
		if s == name {
			return true
		}
	}
	return false
}

// Parse materializes one sheet as a Table. The sheet's first row becomes
// the header; blank header cells get positional names and every data row
// is normalized to the header width. An unknown or unreadable sheet
// yields a *SheetError.
func (w *Workbook) Parse(name string) (Table, error) {
	if !w.HasSheet(name) {
		return Table{}, &SheetError{Sheet: name, Err: excelize.ErrSheetNotExist{SheetName: name}}
	}

	rows, err := w.file.GetRows(name)
	if err != nil {
		return Table{}, &SheetError{Sheet: name, Err: err}
	}
	if len(rows) == 0 {
		return Table{}, nil
	}

	width := 0
	for _, row := range rows {
		if len(row) > width {
			width = len(row)
		}
	}

	t := Table{Columns: make([]string, width)}
	header := normalizeRow(rows[0], width)
	for j, h := range header {
		t.Columns[j] = columnName(h, j)
	}
	for _, row := range rows[1:] {
		t.Rows = append(t.Rows, normalizeRow(row, width))
	}
	return t, nil
}

// Close releases the underlying file resources.
func (w *Workbook) Close() error {
	return w.file.Close()
}
