// Package router sets up HTTP routes for the editor server.
package router

import (
	"log/slog"

	"github.com/go-chi/chi/v5"

	"github.com/sheetdeck-labs/sheetdeck/internal/grid"
	editorFeature "github.com/sheetdeck-labs/sheetdeck/internal/ui/features/editor"
	"github.com/sheetdeck-labs/sheetdeck/internal/ui/notifier"
	"github.com/sheetdeck-labs/sheetdeck/internal/ui/resources"
	"github.com/sheetdeck-labs/sheetdeck/internal/ui/session"
)

// SetupRoutes configures all routes for the editor server.
func SetupRoutes(
	router chi.Router,
	sessions *session.Manager,
	renderer grid.Renderer,
	notify *notifier.Notifier,
	logger *slog.Logger,
	maxUpload int64,
) error {
	// Static assets
	router.Handle("/static/*", resources.Handler())

	return editorFeature.SetupRoutes(router, sessions, renderer, notify, logger, maxUpload)
}
