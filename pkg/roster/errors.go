package roster

import (
	"errors"
	"fmt"
)

// ErrValidation marks a request rejected before any workbook was touched.
var ErrValidation = errors.New("invalid request")

// ErrEmptySheet indicates the source sheet has no header row to work from.
var ErrEmptySheet = errors.New("source sheet is empty")

// ErrEmptyName indicates a full name with no tokens after splitting.
var ErrEmptyName = errors.New("name has no tokens")

// MissingFieldError reports a source row that lacks a required record field.
// It aborts processing of that row only; batch callers log it and continue.
type MissingFieldError struct {
	Row   int // 1-based source row number
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("row %d: missing %s", e.Row, e.Field)
}

// NoPartitionError reports a last name whose initial maps to no destination
// book. The batch continues; the student is skipped after a notification.
type NoPartitionError struct {
	FullName string
	LastName string
}

func (e *NoPartitionError) Error() string {
	return fmt.Sprintf("no partition for last name %q (student %q)", e.LastName, e.FullName)
}
