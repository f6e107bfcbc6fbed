package grid

import (
	"fmt"
	"regexp"
)

// maxColumns is the last addressable worksheet column ("XFD").
const maxColumns = 16384

var columnPattern = regexp.MustCompile(`^[A-Z]+$`)

// ColumnError reports a column label that cannot be used for a selection.
type ColumnError struct {
	Label  string
	Reason string
}

func (e *ColumnError) Error() string {
	return fmt.Sprintf("column %q: %s", e.Label, e.Reason)
}

// ParseColumn converts a column label to its 1-based column index.
// Labels are digits of a bijective base-26 numeral system: "A"=1, "Z"=26,
// "AA"=27, "AB"=28. Anything but a run of uppercase letters is rejected.
func ParseColumn(label string) (int, error) {
	if !columnPattern.MatchString(label) {
		return 0, &ColumnError{Label: label, Reason: "must be one or more uppercase letters"}
	}
	n := 0
	for _, r := range label {
		n = n*26 + int(r-'A') + 1
		if n > maxColumns {
			return 0, &ColumnError{Label: label, Reason: "beyond the last worksheet column"}
		}
	}
	return n, nil
}

// ParseColumnRange resolves an inclusive column span. The end label must not
// resolve before the start label; selecting the same column twice is allowed.
func ParseColumnRange(fromLabel, toLabel string) (from, to int, err error) {
	from, err = ParseColumn(fromLabel)
	if err != nil {
		return 0, 0, err
	}
	to, err = ParseColumn(toLabel)
	if err != nil {
		return 0, 0, err
	}
	if to < from {
		return 0, 0, &ColumnError{Label: toLabel, Reason: fmt.Sprintf("range ends before start column %q", fromLabel)}
	}
	return from, to, nil
}
