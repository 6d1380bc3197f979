package workbook

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// buildWorkbook creates xlsx bytes with the given sheets in order.
// Each sheet's rows include the header row.
func buildWorkbook(t *testing.T, sheets []string, rows map[string][][]any) []byte {
	t.Helper()

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	for i, name := range sheets {
		if i == 0 {
			require.NoError(t, f.SetSheetName(f.GetSheetName(0), name))
		} else {
			_, err := f.NewSheet(name)
			require.NoError(t, err)
		}
		for r, row := range rows[name] {
			cell, err := excelize.CoordinatesToCellName(1, r+1)
			require.NoError(t, err)
			require.NoError(t, f.SetSheetRow(name, cell, &row))
		}
	}

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

func TestLoad_CorruptFile(t *testing.T) {
	_, err := Load(bytes.NewReader([]byte("this is not a workbook")))
	require.Error(t, err)

	var loadErr *LoadError
	assert.ErrorAs(t, err, &loadErr)
}

func TestLoad_SheetOrder(t *testing.T) {
	data := buildWorkbook(t, []string{"Zeta", "Alpha", "Mid"}, map[string][][]any{
		"Zeta": {{"a"}, {1}},
	})

	wb, err := Load(bytes.NewReader(data))
	require.NoError(t, err)
	defer func() { _ = wb.Close() }()

	assert.Equal(t, []string{"Zeta", "Alpha", "Mid"}, wb.Sheets())
	assert.True(t, wb.HasSheet("Alpha"))
	assert.False(t, wb.HasSheet("alpha"))
}

func TestParse_HeaderAndRows(t *testing.T) {
	data := buildWorkbook(t, []string{"Data"}, map[string][][]any{
		"Data": {
			{"a", "b"},
			{1, 2},
			{3, 4},
		},
	})

	wb, err := Load(bytes.NewReader(data))
	require.NoError(t, err)
	defer func() { _ = wb.Close() }()

	tab, err := wb.Parse("Data")
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "b"}, tab.Columns)
	assert.Equal(t, 2, tab.RowCount())
	assert.Equal(t, 2, tab.ColCount())
	assert.Equal(t, "1", tab.Cell(0, 0))
	assert.Equal(t, "4", tab.Cell(1, 1))
}

func TestParse_RaggedRowsNormalized(t *testing.T) {
	data := buildWorkbook(t, []string{"Data"}, map[string][][]any{
		"Data": {
			{"a", "b", "c"},
			{1},
			{1, 2, 3, 4},
		},
	})

	wb, err := Load(bytes.NewReader(data))
	require.NoError(t, err)
	defer func() { _ = wb.Close() }()

	tab, err := wb.Parse("Data")
	require.NoError(t, err)

	// The widest row sets the width; the header gains synthesized names.
	assert.Equal(t, []string{"a", "b", "c", "Column 4"}, tab.Columns)
	for _, row := range tab.Rows {
		assert.Len(t, row, 4)
	}
	assert.Equal(t, "", tab.Cell(0, 1))
	assert.Equal(t, "4", tab.Cell(1, 3))
}

func TestParse_BlankHeaderCells(t *testing.T) {
	data := buildWorkbook(t, []string{"Data"}, map[string][][]any{
		"Data": {
			{"a", "", "c"},
			{1, 2, 3},
		},
	})

	wb, err := Load(bytes.NewReader(data))
	require.NoError(t, err)
	defer func() { _ = wb.Close() }()

	tab, err := wb.Parse("Data")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "Column 2", "c"}, tab.Columns)
}

func TestParse_UnknownSheet(t *testing.T) {
	data := buildWorkbook(t, []string{"Data"}, map[string][][]any{
		"Data": {{"a"}},
	})

	wb, err := Load(bytes.NewReader(data))
	require.NoError(t, err)
	defer func() { _ = wb.Close() }()

	_, err = wb.Parse("Nope")
	require.Error(t, err)

	var sheetErr *SheetError
	require.ErrorAs(t, err, &sheetErr)
	assert.Equal(t, "Nope", sheetErr.Sheet)
}

func TestParse_EmptySheet(t *testing.T) {
	data := buildWorkbook(t, []string{"Data", "Blank"}, map[string][][]any{
		"Data": {{"a"}, {1}},
	})

	wb, err := Load(bytes.NewReader(data))
	require.NoError(t, err)
	defer func() { _ = wb.Close() }()

	tab, err := wb.Parse("Blank")
	require.NoError(t, err)
	assert.True(t, tab.Empty())
}
