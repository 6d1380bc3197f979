package workbook

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubSource fakes an original workbook for substitution tests.
type stubSource struct {
	sheets []string
	tables map[string]Table
	broken map[string]bool
}

func (s *stubSource) Sheets() []string { return s.sheets }

func (s *stubSource) Parse(name string) (Table, error) {
	if s.broken[name] {
		return Table{}, &SheetError{Sheet: name, Err: errors.New("boom")}
	}
	return s.tables[name], nil
}

func loadOutput(t *testing.T, data []byte) *Workbook {
	t.Helper()
	wb, err := Load(bytes.NewReader(data))
	require.NoError(t, err)
	t.Cleanup(func() { _ = wb.Close() })
	return wb
}

func TestWrite_EditedSheetFirst(t *testing.T) {
	src := buildSource(t, []string{"Alpha", "Data", "Notes"})

	edited, err := src.Parse("Data")
	require.NoError(t, err)

	out, err := Write(edited, "Data", src)
	require.NoError(t, err)

	wb := loadOutput(t, out)
	// The edited sheet moves to the front; the rest keep their order.
	assert.Equal(t, []string{"Data", "Alpha", "Notes"}, wb.Sheets())
}

func TestWrite_RoundTripIdentity(t *testing.T) {
	src := buildSource(t, []string{"Data", "Notes"})

	edited, err := src.Parse("Data")
	require.NoError(t, err)

	out, err := Write(edited, "Data", src)
	require.NoError(t, err)

	wb := loadOutput(t, out)
	require.Equal(t, []string{"Data", "Notes"}, wb.Sheets())

	for _, name := range []string{"Data", "Notes"} {
		want, err := src.Parse(name)
		require.NoError(t, err)
		got, err := wb.Parse(name)
		require.NoError(t, err)
		assert.Equal(t, want, got, "sheet %s should round-trip unchanged", name)
	}
}

func TestWrite_ExampleScenario(t *testing.T) {
	// Workbook ["Data","Notes"]; Data a1 edited 1 -> 10.
	src := buildSource(t, []string{"Data", "Notes"})

	edited, err := src.Parse("Data")
	require.NoError(t, err)
	edited.Rows[0][0] = "10"

	out, err := Write(edited, "Data", src)
	require.NoError(t, err)

	wb := loadOutput(t, out)
	assert.Equal(t, []string{"Data", "Notes"}, wb.Sheets())

	data, err := wb.Parse("Data")
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"10", "2"}, {"3", "4"}}, data.Rows)

	// Isolation: Notes is untouched.
	wantNotes, err := src.Parse("Notes")
	require.NoError(t, err)
	gotNotes, err := wb.Parse("Notes")
	require.NoError(t, err)
	assert.Equal(t, wantNotes, gotNotes)
}

func TestWrite_RowGrowth(t *testing.T) {
	src := buildSource(t, []string{"Data", "Notes"})

	edited, err := src.Parse("Data")
	require.NoError(t, err)
	n := edited.RowCount()
	edited.AppendRow()
	edited.AppendRow()
	edited.Rows[n][0] = "5"
	edited.Rows[n][1] = "6"
	edited.Rows[n+1][0] = "7"
	edited.Rows[n+1][1] = "8"

	out, err := Write(edited, "Data", src)
	require.NoError(t, err)

	got, err := loadOutput(t, out).Parse("Data")
	require.NoError(t, err)
	assert.Equal(t, n+2, got.RowCount())
	assert.Equal(t, "5", got.Cell(n, 0))
}

func TestWrite_SubstitutesUnreadableSheets(t *testing.T) {
	src := &stubSource{
		sheets: []string{"Data", "Broken", "Notes"},
		tables: map[string]Table{
			"Data":  {Columns: []string{"a"}, Rows: [][]string{{"1"}}},
			"Notes": {Columns: []string{"n"}, Rows: [][]string{{"x"}}},
		},
		broken: map[string]bool{"Broken": true},
	}

	out, err := Write(src.tables["Data"], "Data", src)
	require.NoError(t, err)

	wb := loadOutput(t, out)
	// Sheet set preserved even though Broken could not be read.
	assert.Equal(t, []string{"Data", "Broken", "Notes"}, wb.Sheets())

	broken, err := wb.Parse("Broken")
	require.NoError(t, err)
	assert.True(t, broken.Empty())

	notes, err := wb.Parse("Notes")
	require.NoError(t, err)
	assert.Equal(t, src.tables["Notes"], notes)
}

func TestCollectSheets(t *testing.T) {
	src := &stubSource{
		sheets: []string{"A", "B", "C"},
		tables: map[string]Table{
			"A": {Columns: []string{"x"}},
			"C": {Columns: []string{"y"}},
		},
		broken: map[string]bool{"B": true},
	}

	results := collectSheets(src, "C")
	require.Len(t, results, 2)

	assert.Equal(t, "A", results[0].Name)
	assert.False(t, results[0].Substituted)

	assert.Equal(t, "B", results[1].Name)
	assert.True(t, results[1].Substituted)
	assert.True(t, results[1].Table.Empty())
}

func TestWrite_SelectedMatchesDefaultSheetName(t *testing.T) {
	// The excelize scratch file starts with a sheet named Sheet1; writing
	// the edited sheet under that same name must not duplicate or drop it.
	src := &stubSource{
		sheets: []string{"Sheet1", "Other"},
		tables: map[string]Table{
			"Sheet1": {Columns: []string{"a"}, Rows: [][]string{{"1"}}},
			"Other":  {Columns: []string{"b"}, Rows: [][]string{{"2"}}},
		},
	}

	out, err := Write(src.tables["Sheet1"], "Sheet1", src)
	require.NoError(t, err)

	wb := loadOutput(t, out)
	assert.Equal(t, []string{"Sheet1", "Other"}, wb.Sheets())
}

func TestWrite_PassthroughNamedLikePlaceholder(t *testing.T) {
	// A pass-through sheet may carry the scratch file's default name
	// while a different sheet is edited; it must survive the write.
	src := &stubSource{
		sheets: []string{"Sheet1", "Data"},
		tables: map[string]Table{
			"Sheet1": {Columns: []string{"keep"}, Rows: [][]string{{"me"}}},
			"Data":   {Columns: []string{"a"}, Rows: [][]string{{"1"}}},
		},
	}

	out, err := Write(src.tables["Data"], "Data", src)
	require.NoError(t, err)

	wb := loadOutput(t, out)
	assert.Equal(t, []string{"Data", "Sheet1"}, wb.Sheets())

	kept, err := wb.Parse("Sheet1")
	require.NoError(t, err)
	assert.Equal(t, src.tables["Sheet1"], kept)
}

func TestInferValue(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  any
	}{
		{"empty", "", ""},
		{"integer", "42", int64(42)},
		{"negative", "-7", int64(-7)},
		{"float", "3.14", 3.14},
		{"bool true", "TRUE", true},
		{"bool false", "FALSE", false},
		{"lowercase true is text", "true", "true"},
		{"text", "hello", "hello"},
		{"numeric-ish text", "12abc", "12abc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, inferValue(tt.input))
		})
	}
}

// buildSource loads a real workbook with the standard two-column fixture
// sheets used across the writer tests.
func buildSource(t *testing.T, sheets []string) *Workbook {
	t.Helper()

	rows := make(map[string][][]any, len(sheets))
	for _, name := range sheets {
		switch name {
		case "Notes":
			rows[name] = [][]any{{"n"}, {"x"}, {"y"}}
		default:
			rows[name] = [][]any{{"a", "b"}, {1, 2}, {3, 4}}
		}
	}

	data := buildWorkbook(t, sheets, rows)
	wb, err := Load(bytes.NewReader(data))
	require.NoError(t, err)
	t.Cleanup(func() { _ = wb.Close() })
	return wb
}
