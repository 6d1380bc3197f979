// Package session owns the per-session editing state machine: no file,
// file loaded, sheet selected, edited. Every user interaction is one
// synchronous transition; guards discard in-progress edits when the
// selection or the file changes.
package session

import (
	"bytes"
	"fmt"
	"sync"

	"github.com/sheetdeck-labs/sheetdeck/internal/workbook"
)

// Phase is the interaction state of one session.
type Phase int

const (
	PhaseNoFile Phase = iota
	PhaseFileLoaded
	PhaseSheetSelected
	PhaseEdited
)

func (p Phase) String() string {
	switch p {
	case PhaseNoFile:
		return "no-file"
	case PhaseFileLoaded:
		return "file-loaded"
	case PhaseSheetSelected:
		return "sheet-selected"
	case PhaseEdited:
		return "edited"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// DownloadPrefix marks the derived file name of an edited workbook.
const DownloadPrefix = "edited_"

// handle is the workbook surface the state machine depends on.
// *workbook.Workbook satisfies it; tests substitute degenerate handles.
type handle interface {
	Sheets() []string
	HasSheet(name string) bool
	Parse(name string) (workbook.Table, error)
	Close() error
}

// loadWorkbook is swapped in tests to simulate degenerate workbooks.
var loadWorkbook = func(data []byte) (handle, error) {
	wb, err := workbook.Load(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	return wb, nil
}

// State holds everything one session owns: the uploaded workbook handle,
// the selected sheet, the current table shown in the grid and the edited
// table once the user applies changes. All fields are guarded by mu;
// every transition runs to completion under the lock.
type State struct {
	mu sync.Mutex

	phase    Phase
	fileName string
	wb       handle
	sheets   []string
	selected string
	current  workbook.Table
	edited   *workbook.Table
	userErr  string
}

// View is an immutable snapshot of a State for rendering.
type View struct {
	Phase       Phase
	FileName    string
	Sheets      []string
	Selected    string
	Table       workbook.Table
	Rows        int
	Cols        int
	Error       string
	CanDownload bool
}

// NewState returns a session in the initial no-file phase.
func NewState() *State {
	return &State{phase: PhaseNoFile}
}

// View returns a rendering snapshot of the session.
func (s *State) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return View{
		Phase:       s.phase,
		FileName:    s.fileName,
		Sheets:      append([]string(nil), s.sheets...),
		Selected:    s.selected,
		Table:       s.current.Clone(),
		Rows:        s.current.RowCount(),
		Cols:        s.current.ColCount(),
		Error:       s.userErr,
		CanDownload: s.phase == PhaseEdited,
	}
}

// Upload replaces the session's workbook with a freshly uploaded file.
// Any previous handle and in-progress edits are discarded. A load
// failure leaves the session back in the no-file phase with a
// user-visible message; an empty workbook halts in the file-loaded
// phase. On success the first sheet is selected and parsed, matching
// the sheet selector's default choice.
func (s *State) Upload(name string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.reset()

	wb, err := loadWorkbook(data)
	if err != nil {
		s.userErr = err.Error()
		return err
	}

	s.wb = wb
	s.fileName = name
	s.sheets = wb.Sheets()
	s.phase = PhaseFileLoaded

	if len(s.sheets) == 0 {
		s.userErr = "This workbook contains no sheets."
		return workbook.ErrNoSheets
	}
	return s.selectSheet(s.sheets[0])
}

// SelectSheet switches the edited sheet. Selecting a different sheet
// discards any in-progress edits; a sheet that fails to parse leaves the
// previously displayed state intact and surfaces the error.
func (s *State) SelectSheet(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selectSheet(name)
}

func (s *State) selectSheet(name string) error {
	if s.wb == nil {
		return fmt.Errorf("no workbook loaded")
	}
	if !s.wb.HasSheet(name) {
		err := fmt.Errorf("unknown sheet %q", name)
		s.userErr = err.Error()
		return err
	}

	t, err := s.wb.Parse(name)
	if err != nil {
		s.userErr = fmt.Sprintf("Cannot read sheet %q: %v", name, err)
		return err
	}

	s.selected = name
	s.current = t
	s.edited = nil
	s.userErr = ""
	s.phase = PhaseSheetSelected
	return nil
}

// ApplyEdit records the edited table returned by the grid and enters the
// edited phase, enabling download.
func (s *State) ApplyEdit(t workbook.Table) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase < PhaseSheetSelected {
		return fmt.Errorf("no sheet selected")
	}
	edited := t.Clone()
	s.edited = &edited
	s.current = t
	s.userErr = ""
	s.phase = PhaseEdited
	return nil
}

// UpdateWorking replaces the working table shown in the grid without
// entering the edited phase. Used by the dynamic row controls so cell
// edits survive an add or remove round-trip.
func (s *State) UpdateWorking(t workbook.Table) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase < PhaseSheetSelected {
		return fmt.Errorf("no sheet selected")
	}
	s.current = t
	s.edited = nil
	s.userErr = ""
	s.phase = PhaseSheetSelected
	return nil
}

// Download assembles the output workbook: the edited table first under
// the selected sheet name, every other original sheet after it. Returns
// the bytes and the derived file name.
func (s *State) Download() ([]byte, string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase != PhaseEdited || s.edited == nil {
		return nil, "", fmt.Errorf("no edited table to download")
	}
	data, err := workbook.Write(*s.edited, s.selected, s.wb)
	if err != nil {
		return nil, "", err
	}
	return data, DownloadPrefix + s.fileName, nil
}

// reset discards the workbook handle and all derived state. Caller holds mu.
func (s *State) reset() {
	if s.wb != nil {
		_ = s.wb.Close()
	}
	s.phase = PhaseNoFile
	s.fileName = ""
	s.wb = nil
	s.sheets = nil
	s.selected = ""
	s.current = workbook.Table{}
	s.edited = nil
	s.userErr = ""
}
