package grid

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// FirstDataRow is the lowest selectable row; row 1 is reserved for the header.
const FirstDataRow = 2

// RowSpecError reports a row-selection token that cannot be parsed.
type RowSpecError struct {
	Token string
}

func (e *RowSpecError) Error() string {
	return fmt.Sprintf("row selection %q: expected a row number or an inclusive range like 5-7", e.Token)
}

// ParseRowSpec expands a row-number specification such as "2,3,5-7" into a
// sorted, de-duplicated list of 1-based row numbers. Dash ranges are
// inclusive; a reversed range ("10-8") contributes nothing; rows below 2 are
// discarded. Blank segments are ignored, malformed ones are errors.
func ParseRowSpec(spec string) ([]int, error) {
	seen := make(map[int]bool)
	for _, tok := range strings.Split(spec, ",") {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		lo, hi, err := parseRowToken(tok)
		if err != nil {
			return nil, err
		}
		for n := lo; n <= hi; n++ {
			if n >= FirstDataRow {
				seen[n] = true
			}
		}
	}
	rows := make([]int, 0, len(seen))
	for n := range seen {
		rows = append(rows, n)
	}
	sort.Ints(rows)
	return rows, nil
}

func parseRowToken(tok string) (lo, hi int, err error) {
	parts := strings.SplitN(tok, "-", 2)
	lo, err = parseRowNumber(tok, parts[0])
	if err != nil {
		return 0, 0, err
	}
	if len(parts) == 1 {
		return lo, lo, nil
	}
	hi, err = parseRowNumber(tok, parts[1])
	if err != nil {
		return 0, 0, err
	}
	return lo, hi, nil
}

func parseRowNumber(tok, s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 {
		return 0, &RowSpecError{Token: tok}
	}
	return n, nil
}
