// Command sheetdeck runs the browser-based worksheet editor.
package main

import (
	"os"

	"github.com/sheetdeck-labs/sheetdeck/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
