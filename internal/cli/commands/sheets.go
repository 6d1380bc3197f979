package commands

import (
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/sheetdeck-labs/sheetdeck/internal/workbook"
)

// NewSheetsCommand creates the sheets command.
func NewSheetsCommand(getConfig ConfigFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "sheets <file>",
		Short: "List the sheets of a workbook",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSheets(cmd, args[0])
		},
	}
}

func runSheets(cmd *cobra.Command, path string) error {
	wb, err := openWorkbook(path)
	if err != nil {
		return err
	}
	defer func() { _ = wb.Close() }()

	sheets := wb.Sheets()
	if len(sheets) == 0 {
		return workbook.ErrNoSheets
	}

	t := table.NewWriter()
	t.SetOutputMirror(cmd.OutOrStdout())
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"#", "Sheet", "Rows", "Columns"})

	for i, name := range sheets {
		tab, err := wb.Parse(name)
		if err != nil {
			t.AppendRow(table.Row{i + 1, name, "-", "-"})
			continue
		}
		t.AppendRow(table.Row{i + 1, name, tab.RowCount(), tab.ColCount()})
	}

	t.Render()
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "(%d sheets)\n", len(sheets))
	return nil
}

// openWorkbook loads a workbook from a local file.
func openWorkbook(path string) (*workbook.Workbook, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	return workbook.Load(f)
}
