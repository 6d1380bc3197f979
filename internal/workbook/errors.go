package workbook

import (
	"errors"
	"fmt"
)

// ErrNoSheets indicates a workbook that parsed successfully but contains
// no sheets. Callers treat this as a reportable, non-fatal condition.
var ErrNoSheets = errors.New("workbook contains no sheets")

// LoadError wraps a failure to parse an uploaded file as a workbook.
// No handle is produced when a LoadError is returned.
type LoadError struct {
	Err error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("failed to read workbook: %v", e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// SheetError wraps a failure to materialize a single sheet. The rest of
// the workbook remains readable.
type SheetError struct {
	Sheet string
	Err   error
}

func (e *SheetError) Error() string {
	return fmt.Sprintf("failed to read sheet %q: %v", e.Sheet, e.Err)
}

func (e *SheetError) Unwrap() error {
	return e.Err
}
