// Package grid provides tabular primitives for roster worksheets: column
// label resolution, row-number selections, and the row merge engine.
package grid

import (
	"strings"

	"github.com/xuri/excelize/v2"
)

// Blank reports whether a cell value is empty once surrounding whitespace is
// removed. The string "0" is a value, not a blank.
func Blank(v string) bool {
	return strings.TrimSpace(v) == ""
}

// Cell returns the value at the 1-based column, or "" when the row is too
// short to reach it.
func Cell(row []string, col int) string {
	if col < 1 || col > len(row) {
		return ""
	}
	return row[col-1]
}

// Fit returns row truncated or right-padded with "" to exactly width cells.
func Fit(row []string, width int) []string {
	out := make([]string, width)
	copy(out, row)
	return out
}

// ReadSheet reads the used range of a sheet as a row-major grid of cell
// values. Rows keep the ragged widths the workbook reports.
func ReadSheet(f *excelize.File, sheet string) ([][]string, error) {
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// WriteRows writes a rectangular block of values with its top-left corner at
// the 1-based (row, col) position.
func WriteRows(f *excelize.File, sheet string, row, col int, rows [][]string) error {
	for i := range rows {
		cell, err := excelize.CoordinatesToCellName(col, row+i)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &rows[i]); err != nil {
			return err
		}
	}
	return nil
}
