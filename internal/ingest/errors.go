package ingest

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingInput marks a required artifact that does not exist.
	ErrMissingInput = errors.New("missing input artifact")
	// ErrMalformedRow marks a row that was skipped during ingestion.
	ErrMalformedRow = errors.New("malformed row")
)

// MissingInputError reports a required artifact absent for a broadcast date.
type MissingInputError struct {
	Date     string
	Artifact string
	Path     string
}

func (e *MissingInputError) Error() string {
	if e.Date == "" {
		return fmt.Sprintf("%s not found: %s", e.Artifact, e.Path)
	}
	return fmt.Sprintf("%s for %s not found: %s", e.Artifact, e.Date, e.Path)
}

func (e *MissingInputError) Unwrap() error {
	return ErrMissingInput
}

// Issue describes one skipped input row.
type Issue struct {
	Source string `json:"source"`
	Line   int    `json:"line"`
	Reason string `json:"reason"`
}

func (i Issue) Error() string {
	return fmt.Sprintf("%s line %d: %s", i.Source, i.Line, i.Reason)
}

func (i Issue) Unwrap() error {
	return ErrMalformedRow
}

// Issues collects the rows skipped while reading one artifact.
type Issues []Issue

func (is *Issues) add(source string, line int, format string, args ...any) {
	*is = append(*is, Issue{Source: source, Line: line, Reason: fmt.Sprintf(format, args...)})
}

// Len returns the number of skipped rows.
func (is Issues) Len() int {
	return len(is)
}

// Err joins every issue into one error, or returns nil when there are none.
func (is Issues) Err() error {
	if len(is) == 0 {
		return nil
	}
	errs := make([]error, len(is))
	for i, issue := range is {
		errs[i] = issue
	}
	return errors.Join(errs...)
}
