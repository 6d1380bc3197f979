package workbook

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// SheetSource provides the sheets of an original workbook for
// pass-through copying. *Workbook satisfies it.
type SheetSource interface {
	Sheets() []string
	Parse(name string) (Table, error)
}

// SheetResult is the outcome of materializing one pass-through sheet.
// A sheet that cannot be parsed is substituted with an empty table rather
// than failing the whole write.
type SheetResult struct {
	Name        string
	Table       Table
	Substituted bool
}

// collectSheets materializes every sheet of src except selected, in
// original order, substituting an empty table for unreadable sheets.
func collectSheets(src SheetSource, selected string) []SheetResult {
	var results []SheetResult
	for _, name := range src.Sheets() {
		if name == selected {
			continue
		}
		t, err := src.Parse(name)
		if err != nil {
			results = append(results, SheetResult{Name: name, Substituted: true})
			continue
		}
		results = append(results, SheetResult{Name: name, Table: t})
	}
	return results
}

// Write assembles a new workbook from the edited table plus every other
// sheet of the original source, buffered entirely in memory. The edited
// sheet is written first under sheetName; pass-through sheets follow in
// their original relative order. Unreadable pass-through sheets become
// empty sheets, so the output always carries one sheet per original name.
func Write(edited Table, sheetName string, src SheetSource) ([]byte, error) {
	passthrough := collectSheets(src, sheetName)

	out := excelize.NewFile()
	defer func() { _ = out.Close() }()

	// Rename the placeholder sheet rather than adding beside it and
	// deleting it later: a pass-through sheet may itself carry the
	// placeholder name, and NewSheet would hand it the placeholder slot
	// that the delete then destroys.
	if name := out.GetSheetName(0); name != sheetName {
		if err := out.SetSheetName(name, sheetName); err != nil {
			return nil, fmt.Errorf("create sheet %q: %w", sheetName, err)
		}
	}
	if err := writeSheet(out, sheetName, edited); err != nil {
		return nil, err
	}

	for _, res := range passthrough {
		if _, err := out.NewSheet(res.Name); err != nil {
			return nil, fmt.Errorf("create sheet %q: %w", res.Name, err)
		}
		if err := writeSheet(out, res.Name, res.Table); err != nil {
			return nil, err
		}
	}

	buf, err := out.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("serialize workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// writeSheet writes the header row followed by all data rows. A
// substituted empty table writes nothing, leaving a blank sheet.
func writeSheet(f *excelize.File, name string, t Table) error {
	if t.Empty() {
		return nil
	}

	header := make([]any, len(t.Columns))
	for j, c := range t.Columns {
		header[j] = c
	}
	if err := setRow(f, name, 1, header); err != nil {
		return err
	}

	for i, row := range t.Rows {
		cells := make([]any, len(row))
		for j, v := range row {
			cells[j] = inferValue(v)
		}
		if err := setRow(f, name, i+2, cells); err != nil {
			return err
		}
	}
	return nil
}

func setRow(f *excelize.File, sheet string, row int, cells []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, cell, &cells); err != nil {
		return fmt.Errorf("write row %d of %q: %w", row, sheet, err)
	}
	return nil
}
