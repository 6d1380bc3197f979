// Package editor provides the worksheet editing feature: upload, sheet
// selection, the editable grid and workbook download.
package editor

import (
	"log/slog"

	"github.com/go-chi/chi/v5"

	"github.com/sheetdeck-labs/sheetdeck/internal/grid"
	"github.com/sheetdeck-labs/sheetdeck/internal/ui/notifier"
	"github.com/sheetdeck-labs/sheetdeck/internal/ui/session"
)

// SetupRoutes registers the editor feature routes.
func SetupRoutes(
	router chi.Router,
	sessions *session.Manager,
	renderer grid.Renderer,
	notify *notifier.Notifier,
	logger *slog.Logger,
	maxUpload int64,
) error {
	handlers := NewHandlers(sessions, renderer, notify, logger, maxUpload)

	router.Get("/", handlers.IndexPage)
	router.Get("/updates", handlers.Updates)
	router.Get("/download", handlers.Download)

	router.Post("/upload", handlers.Upload)
	router.Post("/select", handlers.Select)
	router.Post("/edit", handlers.Edit)
	router.Post("/rows/add", handlers.AddRow)
	router.Post("/rows/remove", handlers.RemoveRow)

	return nil
}
