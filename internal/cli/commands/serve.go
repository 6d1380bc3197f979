package commands

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"os/exec"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/sheetdeck-labs/sheetdeck/internal/cli/config"
	"github.com/sheetdeck-labs/sheetdeck/internal/ui"
)

// ConfigFunc retrieves the loaded configuration from the command context.
type ConfigFunc func(ctx context.Context) *config.Config

// ServeOptions holds options for the serve command.
type ServeOptions struct {
	Port      int
	NoBrowser bool
	Open      string
	Watch     bool
}

// NewServeCommand creates the serve command.
func NewServeCommand(getConfig ConfigFunc) *cobra.Command {
	opts := &ServeOptions{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the SheetDeck editor server",
		Long: `Start a local web server hosting the worksheet editor.

The editor lets you:
- Upload an xlsx workbook and pick the sheet to edit
- Edit cells inline; sort and filter when the rich grid is active
- Download the workbook with your changes and all other sheets intact`,
		Example: `  # Start on the default port
  sheetdeck serve

  # Start on a custom port without opening the browser
  sheetdeck serve --port 3000 --no-browser

  # Preload a workbook and reload it when it changes on disk
  sheetdeck serve --open budget.xlsx`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd, opts, getConfig)
		},
	}

	cmd.Flags().IntVar(&opts.Port, "port", 0, "Port to serve on (default: 8765)")
	cmd.Flags().BoolVar(&opts.NoBrowser, "no-browser", false, "Don't auto-open browser")
	cmd.Flags().StringVar(&opts.Open, "open", "", "Workbook file to preload")
	cmd.Flags().BoolVar(&opts.Watch, "watch", true, "Reload the preloaded workbook on disk changes")

	return cmd
}

func runServe(cmd *cobra.Command, opts *ServeOptions, getConfig ConfigFunc) error {
	cfg := getConfig(cmd.Context())
	logger := config.GetLogger(cmd.Context())

	// CLI flags override config file
	port := cfg.Port
	if opts.Port != 0 {
		port = opts.Port
	}

	autoOpen := cfg.AutoOpen
	if opts.NoBrowser {
		autoOpen = false
	}

	openPath := cfg.Open
	if opts.Open != "" {
		openPath = opts.Open
	}

	watch := cfg.Watch
	if cmd.Flags().Changed("watch") {
		watch = opts.Watch
	}

	if openPath != "" {
		if _, err := os.Stat(openPath); err != nil {
			return fmt.Errorf("workbook does not exist: %s", openPath)
		}
	}

	serverCfg := ui.Config{
		Port:          port,
		SessionSecret: sessionSecret(),
		OpenPath:      openPath,
		Watch:         watch,
		MaxUploadMB:   cfg.MaxUploadMB,
		Logger:        logger,
	}

	server := ui.NewServer(serverCfg)

	if autoOpen {
		url := fmt.Sprintf("http://localhost:%d", port)
		go openBrowser(url)
	}

	fmt.Printf("Starting SheetDeck on http://localhost:%d\n", port)
	fmt.Println("Press Ctrl+C to stop")

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	return server.Serve(ctx)
}

// sessionSecret returns the cookie signing secret: from the environment
// when set, random otherwise. Sessions don't survive a restart either
// way, so a per-process secret is fine.
func sessionSecret() string {
	if secret := os.Getenv("SHEETDECK_SESSION_SECRET"); secret != "" {
		return secret
	}
	buf := make([]byte, 32)
	_, _ = rand.Read(buf)
	return hex.EncodeToString(buf)
}

// openBrowser opens the default browser to the specified URL.
func openBrowser(url string) {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url) //nolint:noctx
	case "linux":
		cmd = exec.Command("xdg-open", url) //nolint:noctx
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url) //nolint:noctx
	default:
		return
	}

	_ = cmd.Start()
}
