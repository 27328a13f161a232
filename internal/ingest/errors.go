package ingest

import (
	"errors"
	"fmt"
)

var (
	// ErrFileNotFound is returned when the workbook path does not exist.
	ErrFileNotFound = errors.New("workbook file not found")

	// ErrEmptyWorkbook is returned when the workbook contains zero sheets.
	ErrEmptyWorkbook = errors.New("workbook contains no sheets")
)

// ParseError wraps a structural failure while opening or reading the
// workbook. It is fatal: no partial output is produced.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse workbook %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// SheetWarning records a sheet that was skipped during ingestion. Warnings
// are non-fatal; ingestion continues with the remaining sheets.
type SheetWarning struct {
	Sheet  string `json:"sheet"`
	Reason string `json:"reason"`
}

func (w SheetWarning) String() string {
	return fmt.Sprintf("sheet %q skipped: %s", w.Sheet, w.Reason)
}

// NoValidDataError is returned when no sheet in the workbook was accepted.
// It is distinct from a dataset that is merely empty after row filtering:
// callers must treat it as "nothing to display", not as a crash. The
// warnings explain why each sheet was rejected.
type NoValidDataError struct {
	Path     string
	Warnings []SheetWarning
}

func (e *NoValidDataError) Error() string {
	return fmt.Sprintf("no valid data in workbook %s (%d sheets skipped)", e.Path, len(e.Warnings))
}
