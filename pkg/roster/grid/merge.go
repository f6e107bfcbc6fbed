package grid

import "strings"

// Merge consolidates duplicate rows into one output row per identifier.
//
// rows is a grid whose first row is the header; idCol is the 1-based
// identifier column, and [from, to] is the inclusive 1-based grade-range span.
// Callers are expected to have validated 1 <= from <= to.
//
// The output grid is `to` columns wide. Its header is the source header
// truncated or padded to that width. Data rows with a blank identifier are
// dropped. The first occurrence of an identifier seeds its output row with the
// columns before `from` copied verbatim and everything else empty; every
// occurrence, the first included, then overwrites the cells in [from, to]
// whose incoming value is non-blank. Later non-blank values win, blanks never
// erase anything, and output rows appear in first-seen identifier order.
func Merge(rows [][]string, idCol, from, to int) [][]string {
	out := [][]string{Fit(headerOf(rows), to)}
	index := make(map[string]int)

	for _, row := range dataOf(rows) {
		id := strings.TrimSpace(Cell(row, idCol))
		if id == "" {
			continue
		}
		i, ok := index[id]
		if !ok {
			seeded := make([]string, to)
			for c := 1; c < from; c++ {
				seeded[c-1] = Cell(row, c)
			}
			i = len(out)
			index[id] = i
			out = append(out, seeded)
		}
		for c := from; c <= to; c++ {
			if v := Cell(row, c); !Blank(v) {
				out[i][c-1] = v
			}
		}
	}
	return out
}

func headerOf(rows [][]string) []string {
	if len(rows) == 0 {
		return nil
	}
	return rows[0]
}

func dataOf(rows [][]string) [][]string {
	if len(rows) < 2 {
		return nil
	}
	return rows[1:]
}
