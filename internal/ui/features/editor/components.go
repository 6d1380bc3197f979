package editor

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"

	"github.com/sheetdeck-labs/sheetdeck/internal/ui/session"
)

// AppShell renders the whole editor view for the session's current
// phase. Its root element id is the SSE patch target, so every
// interaction swaps the entire shell.
func AppShell(v session.View, grid templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<div id="app" class="app">`); err != nil {
			return err
		}
		if err := sidebar(v).Render(ctx, w); err != nil {
			return err
		}
		if err := mainArea(v, grid).Render(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w, `</div>`)
		return err
	})
}

func sidebar(v session.View) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		io.WriteString(w, `<aside class="sidebar">`)
		io.WriteString(w, `<h2>Options</h2>`)
		io.WriteString(w, `<p class="steps">1. Upload a workbook<br/>2. Pick the sheet to edit<br/>3. Download the result</p>`)

		// Plain form post: file uploads go through a full page render,
		// everything after that is patched over SSE.
		io.WriteString(w, `<form method="post" action="/upload" enctype="multipart/form-data">`)
		io.WriteString(w, `<input type="file" name="workbook" accept=".xlsx" required/>`)
		io.WriteString(w, `<button type="submit">Upload</button>`)
		io.WriteString(w, `</form>`)

		if len(v.Sheets) > 0 {
			io.WriteString(w, `<hr/><form id="sheet-picker"><label for="sheet">Sheet to edit</label>`)
			io.WriteString(w, `<select id="sheet" name="sheet" data-on-change="@post('/select', {contentType: 'form'})">`)
			for _, name := range v.Sheets {
				selected := ""
				if name == v.Selected {
					selected = " selected"
				}
				fmt.Fprintf(w, `<option value="%s"%s>%s</option>`, templ.EscapeString(name), selected, templ.EscapeString(name))
			}
			io.WriteString(w, `</select></form>`)
		}

		io.WriteString(w, `<hr/>`)
		if v.CanDownload {
			fmt.Fprintf(w, `<a class="button download" href="/download" download>Download %s</a>`, templ.EscapeString(session.DownloadPrefix+v.FileName))
		} else {
			io.WriteString(w, `<span class="button download disabled">Download edited workbook</span>`)
		}

		_, err := io.WriteString(w, `</aside>`)
		return err
	})
}

func mainArea(v session.View, grid templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		io.WriteString(w, `<main class="main"><h1>SheetDeck</h1>`)

		if v.Error != "" {
			fmt.Fprintf(w, `<div class="error">%s</div>`, templ.EscapeString(v.Error))
		}

		switch {
		case v.Phase == session.PhaseNoFile:
			io.WriteString(w, `<div class="notice">No file selected. Upload an <code>.xlsx</code> workbook to start editing.</div>`)
		case v.Phase == session.PhaseFileLoaded && len(v.Sheets) == 0:
			// Empty workbook: the error banner above already says so.
		default:
			if err := metrics(v).Render(ctx, w); err != nil {
				return err
			}
			fmt.Fprintf(w, `<h2>Editing sheet: %s</h2>`, templ.EscapeString(v.Selected))
			if grid != nil {
				if err := grid.Render(ctx, w); err != nil {
					return err
				}
			}
		}

		_, err := io.WriteString(w, `</main>`)
		return err
	})
}

func metrics(v session.View) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w, `<div class="metrics">`+
			`<div class="metric"><div class="value">%d</div><div class="label">Rows</div></div>`+
			`<div class="metric"><div class="value">%d</div><div class="label">Columns</div></div>`+
			`</div>`, v.Rows, v.Cols)
		return err
	})
}
