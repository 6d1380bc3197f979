package grid

import (
	"context"
	"fmt"
	"io"
	"net/url"

	"github.com/a-h/templ"

	"github.com/sheetdeck-labs/sheetdeck/internal/workbook"
)

// writeGridForm renders the shared grid markup: a form carrying the
// table dimensions, a header row of editable column names and one input
// per cell. Variant-specific attributes and controls are injected via
// tableClass and extra.
func writeGridForm(w io.Writer, d Data, tableClass string, rowControls bool, extra string) error {
	t := d.Table

	if _, err := fmt.Fprintf(w, `<form id="sheet-grid" class="grid-form">`); err != nil {
		return err
	}
	fmt.Fprintf(w, `<input type="hidden" name="rows" value="%d"/>`, t.RowCount())
	fmt.Fprintf(w, `<input type="hidden" name="cols" value="%d"/>`, t.ColCount())

	fmt.Fprintf(w, `<div class="grid-scroll"><table class="%s"><thead><tr>`, tableClass)
	for j, col := range t.Columns {
		fmt.Fprintf(w, `<th><input name="col-%d" value="%s"/></th>`, j, templ.EscapeString(col))
	}
	if rowControls {
		io.WriteString(w, `<th class="row-ctl"></th>`)
	}
	io.WriteString(w, `</tr></thead><tbody>`)

	for i, row := range t.Rows {
		io.WriteString(w, `<tr>`)
		for j, cell := range row {
			fmt.Fprintf(w, `<td><input name="cell-%d-%d" value="%s"/></td>`, i, j, templ.EscapeString(cell))
		}
		if rowControls {
			fmt.Fprintf(w, `<td class="row-ctl"><button type="button" title="Remove row" data-on-click="@post('/rows/remove?i=%d', {contentType: 'form'})">&times;</button></td>`, i)
		}
		io.WriteString(w, `</tr>`)
	}
	io.WriteString(w, `</tbody></table></div>`)

	io.WriteString(w, `<div class="grid-actions">`)
	if extra != "" {
		io.WriteString(w, extra)
	}
	io.WriteString(w, `<button type="button" class="primary" data-on-click="@post('/edit', {contentType: 'form'})">Apply changes</button>`)
	io.WriteString(w, `</div>`)

	_, err := io.WriteString(w, `</form>`)
	return err
}

type richRenderer struct{}

func (r *richRenderer) Name() string { return "rich" }

func (r *richRenderer) Capabilities() Capabilities {
	return Capabilities{Sort: true, Filter: true}
}

// Component renders the rich grid. Sorting and filtering run in the
// browser (js/grid.js) and renumber the cell inputs so a submitted edit
// reflects the current view order, not the original row order.
func (r *richRenderer) Component(d Data) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		extra := `<input type="text" class="grid-filter" placeholder="Filter rows..." data-grid-filter/>`
		if err := writeGridForm(w, d, "grid grid-rich", false, extra); err != nil {
			return err
		}
		_, err := io.WriteString(w, `<script src="/static/js/grid.js" defer></script>`)
		return err
	})
}

func (r *richRenderer) EditedTable(form url.Values) (workbook.Table, error) {
	return decodeGridForm(form)
}

type fallbackRenderer struct{}

func (r *fallbackRenderer) Name() string { return "fallback" }

func (r *fallbackRenderer) Capabilities() Capabilities {
	return Capabilities{DynamicRows: true}
}

// Component renders the minimal grid: inline editing plus add/remove row
// controls, no sorting or filtering.
func (r *fallbackRenderer) Component(d Data) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		extra := `<button type="button" data-on-click="@post('/rows/add', {contentType: 'form'})">Add row</button>`
		return writeGridForm(w, d, "grid grid-fallback", true, extra)
	})
}

func (r *fallbackRenderer) EditedTable(form url.Values) (workbook.Table, error) {
	return decodeGridForm(form)
}
