// Package ui provides the local web server hosting the worksheet editor.
package ui

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	"github.com/sheetdeck-labs/sheetdeck/internal/grid"
	"github.com/sheetdeck-labs/sheetdeck/internal/ui/notifier"
	"github.com/sheetdeck-labs/sheetdeck/internal/ui/resources"
	"github.com/sheetdeck-labs/sheetdeck/internal/ui/router"
	"github.com/sheetdeck-labs/sheetdeck/internal/ui/session"
)

// Server is the editor web server.
type Server struct {
	sessions  *session.Manager
	renderer  grid.Renderer
	notifier  *notifier.Notifier
	port      int
	openPath  string
	watch     bool
	maxUpload int64
	logger    *slog.Logger
}

// Config holds configuration for the editor server.
type Config struct {
	Port          int
	SessionSecret string
	OpenPath      string
	Watch         bool
	MaxUploadMB   int
	Logger        *slog.Logger
}

// NewServer creates a new editor server. The grid renderer variant is
// probed once here, from the static asset set the server will serve.
func NewServer(cfg Config) *Server {
	renderer := grid.Probe(resources.FS())
	cfg.Logger.Debug("grid renderer selected", "variant", renderer.Name())

	sessions := session.NewManager(cfg.SessionSecret)
	if cfg.OpenPath != "" {
		path := cfg.OpenPath
		logger := cfg.Logger
		sessions.Bootstrap = func(st *session.State) {
			if err := preload(st, path); err != nil {
				logger.Warn("failed to preload workbook", "path", path, "error", err)
			}
		}
	}

	return &Server{
		sessions:  sessions,
		renderer:  renderer,
		notifier:  notifier.New(),
		port:      cfg.Port,
		openPath:  cfg.OpenPath,
		watch:     cfg.Watch && cfg.OpenPath != "",
		maxUpload: int64(cfg.MaxUploadMB) << 20,
		logger:    cfg.Logger,
	}
}

// Renderer returns the grid renderer variant selected at startup.
func (s *Server) Renderer() grid.Renderer {
	return s.renderer
}

// Serve starts the server and blocks until the context is cancelled.
func (s *Server) Serve(ctx context.Context) error {
	addr := fmt.Sprintf(":%d", s.port)
	s.logger.Info("starting editor server", "addr", fmt.Sprintf("http://localhost:%d", s.port), "grid", s.renderer.Name())

	eg, egctx := errgroup.WithContext(ctx)

	r := chi.NewMux()
	r.Use(
		middleware.Logger,
		middleware.Recoverer,
		middleware.Compress(5),
	)

	if err := router.SetupRoutes(r, s.sessions, s.renderer, s.notifier, s.logger, s.maxUpload); err != nil {
		return fmt.Errorf("failed to setup routes: %w", err)
	}

	srv := &http.Server{
		Addr:    addr,
		Handler: r,
		BaseContext: func(_ net.Listener) context.Context {
			return egctx
		},
		ReadHeaderTimeout: 10 * time.Second,
	}

	if s.watch {
		eg.Go(func() error {
			return s.watchWorkbook(egctx)
		})
	}

	eg.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	eg.Go(func() error {
		<-egctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		s.logger.Debug("shutting down editor server...")
		return srv.Shutdown(shutdownCtx)
	})

	return eg.Wait()
}

// watchWorkbook watches the opened workbook file and pushes a reload
// into every session when it changes on disk.
func (s *Server) watchWorkbook(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer func() { _ = watcher.Close() }()

	// Watch the directory: editors typically replace the file on save,
	// which drops a watch registered on the file itself.
	if err := watcher.Add(filepath.Dir(s.openPath)); err != nil {
		s.logger.Error("failed to watch workbook directory", "error", err)
		return nil
	}

	var debounceTimer *time.Timer

	for {
		select {
		case <-ctx.Done():
			return nil

		case event := <-watcher.Events:
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if filepath.Clean(event.Name) != filepath.Clean(s.openPath) {
				continue
			}

			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.AfterFunc(100*time.Millisecond, func() {
				s.logger.Debug("workbook changed on disk, reloading", "file", event.Name)
				s.sessions.Each(func(st *session.State) {
					if err := preload(st, s.openPath); err != nil {
						s.logger.Error("reload failed", "error", err)
					}
				})
				s.notifier.Broadcast()
			})

		case err := <-watcher.Errors:
			s.logger.Error("watcher error", "error", err)
		}
	}
}

// preload loads a workbook from disk into a session, as if it had been
// uploaded.
func preload(st *session.State, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return st.Upload(filepath.Base(path), data)
}
