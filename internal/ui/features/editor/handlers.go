package editor

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/a-h/templ"
	"github.com/starfederation/datastar-go/datastar"

	"github.com/sheetdeck-labs/sheetdeck/internal/grid"
	"github.com/sheetdeck-labs/sheetdeck/internal/ui/notifier"
	"github.com/sheetdeck-labs/sheetdeck/internal/ui/session"
	"github.com/sheetdeck-labs/sheetdeck/internal/ui/views"
	"github.com/sheetdeck-labs/sheetdeck/internal/workbook"
)

// xlsxMIME is the workbook container MIME type for upload and download.
const xlsxMIME = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Handlers provides the HTTP handlers for the editor feature.
type Handlers struct {
	sessions  *session.Manager
	renderer  grid.Renderer
	notifier  *notifier.Notifier
	logger    *slog.Logger
	maxUpload int64
}

// NewHandlers creates a Handlers instance.
func NewHandlers(sessions *session.Manager, renderer grid.Renderer, notify *notifier.Notifier, logger *slog.Logger, maxUpload int64) *Handlers {
	return &Handlers{
		sessions:  sessions,
		renderer:  renderer,
		notifier:  notify,
		logger:    logger,
		maxUpload: maxUpload,
	}
}

// shell builds the full app view for the session's current phase.
func (h *Handlers) shell(st *session.State) templ.Component {
	v := st.View()
	var gridC templ.Component
	if v.Phase >= session.PhaseSheetSelected {
		gridC = h.renderer.Component(grid.Data{Sheet: v.Selected, Table: v.Table})
	}
	return AppShell(v, gridC)
}

// IndexPage renders the full editor page.
func (h *Handlers) IndexPage(w http.ResponseWriter, r *http.Request) {
	st := h.sessions.State(w, r)
	if err := views.Page("SheetDeck", h.shell(st)).Render(r.Context(), w); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// Upload handles the workbook upload form. Load failures are recorded on
// the session and surfaced on the following page render; the session
// stays in (or returns to) the no-file phase.
func (h *Handlers) Upload(w http.ResponseWriter, r *http.Request) {
	st := h.sessions.State(w, r)

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUpload)
	if err := r.ParseMultipartForm(h.maxUpload); err != nil {
		h.logger.Warn("upload rejected", "error", err)
		http.Error(w, "upload too large or malformed", http.StatusRequestEntityTooLarge)
		return
	}

	file, hdr, err := r.FormFile("workbook")
	if err != nil {
		http.Error(w, "missing workbook file", http.StatusBadRequest)
		return
	}
	defer func() { _ = file.Close() }()

	data, err := io.ReadAll(file)
	if err != nil {
		http.Error(w, "failed to read upload", http.StatusBadRequest)
		return
	}

	if err := st.Upload(hdr.Filename, data); err != nil {
		h.logger.Warn("workbook rejected", "file", hdr.Filename, "error", err)
	} else {
		h.logger.Info("workbook loaded", "file", hdr.Filename, "sheets", len(st.View().Sheets))
	}

	// Post-redirect-get: the following page render shows either the
	// grid or the load error.
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Select switches the edited sheet and patches the app view.
func (h *Handlers) Select(w http.ResponseWriter, r *http.Request) {
	st := h.sessions.State(w, r)
	sse := datastar.NewSSE(w, r)

	if err := r.ParseForm(); err != nil {
		_ = sse.ConsoleError(err)
		return
	}
	if err := st.SelectSheet(r.PostForm.Get("sheet")); err != nil {
		h.logger.Warn("sheet selection failed", "error", err)
		// The shell renders the recorded user-visible error.
	}

	h.patchShell(sse, st)
}

// Edit receives the grid form, records the edited table and patches the
// app view with download enabled.
func (h *Handlers) Edit(w http.ResponseWriter, r *http.Request) {
	st := h.sessions.State(w, r)
	sse := datastar.NewSSE(w, r)

	if err := r.ParseForm(); err != nil {
		_ = sse.ConsoleError(err)
		return
	}
	t, err := h.renderer.EditedTable(r.PostForm)
	if err != nil {
		_ = sse.ConsoleError(fmt.Errorf("decode grid: %w", err))
		return
	}
	if err := st.ApplyEdit(t); err != nil {
		_ = sse.ConsoleError(err)
		return
	}

	h.patchShell(sse, st)
}

// AddRow appends an empty row to the working table, preserving the cell
// edits submitted with the request.
func (h *Handlers) AddRow(w http.ResponseWriter, r *http.Request) {
	h.mutateRows(w, r, func(t *workbook.Table) {
		t.AppendRow()
	})
}

// RemoveRow deletes the row named by the i query parameter, preserving
// the cell edits submitted with the request.
func (h *Handlers) RemoveRow(w http.ResponseWriter, r *http.Request) {
	i, err := strconv.Atoi(r.URL.Query().Get("i"))
	if err != nil {
		i = -1
	}
	h.mutateRows(w, r, func(t *workbook.Table) {
		t.RemoveRow(i)
	})
}

func (h *Handlers) mutateRows(w http.ResponseWriter, r *http.Request, mutate func(*workbook.Table)) {
	st := h.sessions.State(w, r)
	sse := datastar.NewSSE(w, r)

	if err := r.ParseForm(); err != nil {
		_ = sse.ConsoleError(err)
		return
	}
	t, err := h.renderer.EditedTable(r.PostForm)
	if err != nil {
		_ = sse.ConsoleError(fmt.Errorf("decode grid: %w", err))
		return
	}
	mutate(&t)
	if err := st.UpdateWorking(t); err != nil {
		_ = sse.ConsoleError(err)
		return
	}

	h.patchShell(sse, st)
}

// Download streams the assembled workbook: the edited sheet first, all
// other original sheets after it, unchanged.
func (h *Handlers) Download(w http.ResponseWriter, r *http.Request) {
	st := h.sessions.State(w, r)

	data, name, err := st.Download()
	if err != nil {
		http.Error(w, err.Error(), http.StatusConflict)
		return
	}

	w.Header().Set("Content-Type", xlsxMIME)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	_, _ = w.Write(data)
}

// Updates is the long-lived SSE endpoint. It patches the app view
// whenever the notifier broadcasts, e.g. when watch mode reloads the
// workbook from disk.
func (h *Handlers) Updates(w http.ResponseWriter, r *http.Request) {
	st := h.sessions.State(w, r)
	sse := datastar.NewSSE(w, r)

	updates := h.notifier.Subscribe()
	defer h.notifier.Unsubscribe(updates)

	ctx := r.Context()
	for {
		select {
		case <-ctx.Done():
			return
		case <-updates:
			h.patchShell(sse, st)
		}
	}
}

func (h *Handlers) patchShell(sse *datastar.ServerSentEventGenerator, st *session.State) {
	if err := sse.PatchElementTempl(h.shell(st)); err != nil {
		_ = sse.ConsoleError(err)
	}
}
