// Package grid renders an editable table widget and decodes the edited
// table posted back by the browser. Two renderer variants exist: a rich
// grid with client-side sorting and filtering, and a minimal fallback
// grid with dynamic row controls. One variant is selected at startup by
// probing the static asset set.
package grid

import (
	"fmt"
	"io/fs"
	"net/url"
	"strconv"

	"github.com/a-h/templ"

	"github.com/sheetdeck-labs/sheetdeck/internal/workbook"
)

// richGridScript is the client-side grid asset whose presence enables
// the rich renderer.
const richGridScript = "js/grid.js"

// maxGridCells bounds the grid dimensions accepted from a submitted
// form; the counts are client-supplied and must not size server loops.
const maxGridCells = 1 << 20

// Capabilities describes what a renderer variant supports.
type Capabilities struct {
	Sort        bool
	Filter      bool
	DynamicRows bool
}

// Data is everything a renderer needs to draw the grid.
type Data struct {
	Sheet string
	Table workbook.Table
}

// Renderer presents a table for editing and reconstructs the edited
// table from the submitted grid form.
type Renderer interface {
	Name() string
	Capabilities() Capabilities
	Component(d Data) templ.Component
	EditedTable(form url.Values) (workbook.Table, error)
}

// Probe selects the renderer variant once at startup: the rich grid when
// its client script is present in the static assets, the fallback grid
// otherwise.
func Probe(assets fs.FS) Renderer {
	if _, err := fs.Stat(assets, richGridScript); err == nil {
		return &richRenderer{}
	}
	return &fallbackRenderer{}
}

// decodeGridForm rebuilds a table from grid form fields. The form
// carries "rows" and "cols" counts, "col-<j>" headers and "cell-<i>-<j>"
// values. Rows absent from the form entirely (filtered out client-side)
// are dropped; present rows are normalized to the column count.
func decodeGridForm(form url.Values) (workbook.Table, error) {
	rows, err := strconv.Atoi(form.Get("rows"))
	if err != nil {
		return workbook.Table{}, fmt.Errorf("invalid grid row count %q", form.Get("rows"))
	}
	cols, err := strconv.Atoi(form.Get("cols"))
	if err != nil {
		return workbook.Table{}, fmt.Errorf("invalid grid column count %q", form.Get("cols"))
	}
	if rows < 0 || cols < 0 {
		return workbook.Table{}, fmt.Errorf("negative grid dimensions %dx%d", rows, cols)
	}
	if rows > maxGridCells || cols > maxGridCells || rows*cols > maxGridCells {
		return workbook.Table{}, fmt.Errorf("grid dimensions %dx%d exceed limit", rows, cols)
	}
	if cols == 0 {
		return workbook.Table{}, nil
	}

	t := workbook.Table{Columns: make([]string, cols)}
	for j := 0; j < cols; j++ {
		t.Columns[j] = form.Get(fmt.Sprintf("col-%d", j))
	}

	for i := 0; i < rows; i++ {
		present := false
		row := make([]string, cols)
		for j := 0; j < cols; j++ {
			key := fmt.Sprintf("cell-%d-%d", i, j)
			if form.Has(key) {
				present = true
				row[j] = form.Get(key)
			}
		}
		if !present {
			continue
		}
		t.Rows = append(t.Rows, row)
	}
	return t, nil
}
