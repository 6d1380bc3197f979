package commands

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

// NewPreviewCommand creates the preview command.
func NewPreviewCommand(getConfig ConfigFunc) *cobra.Command {
	var rows int

	cmd := &cobra.Command{
		Use:   "preview <file> [sheet]",
		Short: "Print the first rows of a sheet",
		Long:  `Print the first rows of a sheet as a table. Defaults to the first sheet.`,
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			limit := rows
			if !cmd.Flags().Changed("rows") {
				limit = getConfig(cmd.Context()).PreviewRows
			}

			sheet := ""
			if len(args) > 1 {
				sheet = args[1]
			}
			return runPreview(cmd, args[0], sheet, limit)
		},
	}

	cmd.Flags().IntVar(&rows, "rows", 10, "Number of rows to print")

	return cmd
}

func runPreview(cmd *cobra.Command, path, sheet string, limit int) error {
	wb, err := openWorkbook(path)
	if err != nil {
		return err
	}
	defer func() { _ = wb.Close() }()

	sheets := wb.Sheets()
	if len(sheets) == 0 {
		return fmt.Errorf("%s contains no sheets", path)
	}
	if sheet == "" {
		sheet = sheets[0]
	}

	tab, err := wb.Parse(sheet)
	if err != nil {
		return err
	}

	t := table.NewWriter()
	t.SetOutputMirror(cmd.OutOrStdout())
	t.SetStyle(table.StyleLight)

	header := make(table.Row, tab.ColCount())
	for j, col := range tab.Columns {
		header[j] = col
	}
	t.AppendHeader(header)

	shown := 0
	for _, row := range tab.Rows {
		if shown >= limit {
			break
		}
		r := make(table.Row, len(row))
		for j, cell := range row {
			r[j] = cell
		}
		t.AppendRow(r)
		shown++
	}

	t.Render()
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "(%d of %d rows)\n", shown, tab.RowCount())
	return nil
}
