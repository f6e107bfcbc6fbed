package roster

import (
	"fmt"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/3nvyx/Garrison-Office-Drive-Scripts/pkg/roster/grid"
)

// ConsolidateRequest selects the workbook, sheet, and columns for a
// consolidation run. Column letters are validated before the workbook is
// touched.
type ConsolidateRequest struct {
	// Path is the source workbook.
	Path string
	// Sheet is the source sheet name.
	Sheet string
	// IDColumn is the letter of the student ID column.
	IDColumn string
	// GradeFrom and GradeTo bound the merge range, inclusive.
	GradeFrom string
	GradeTo   string
	// OutSheet receives the merged grid. Empty means rewrite the source
	// sheet in place.
	OutSheet string
	// OutPath saves the result to a different workbook. Empty means save
	// over Path.
	OutPath string
}

// ConsolidateReport summarizes a consolidation run.
type ConsolidateReport struct {
	Sheet   string `json:"sheet"`
	Output  string `json:"output"`
	InRows  int    `json:"in_rows"`
	OutRows int    `json:"out_rows"`
	Width   int    `json:"width"`
}

// Consolidate merges duplicate student rows in the requested workbook and
// writes the result to the output sheet.
func Consolidate(log *zap.Logger, req ConsolidateRequest) (*ConsolidateReport, error) {
	if log == nil {
		log = zap.NewNop()
	}
	idCol, err := grid.ParseColumn(req.IDColumn)
	if err != nil {
		return nil, fmt.Errorf("%w: id column: %w", ErrValidation, err)
	}
	from, to, err := grid.ParseColumnRange(req.GradeFrom, req.GradeTo)
	if err != nil {
		return nil, fmt.Errorf("%w: grade range: %w", ErrValidation, err)
	}

	f, err := excelize.OpenFile(req.Path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	rows, err := grid.ReadSheet(f, req.Sheet)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%s: %w", req.Sheet, ErrEmptySheet)
	}

	merged := grid.Merge(rows, idCol, from, to)

	out := req.OutSheet
	if out == "" {
		out = req.Sheet
	}
	if out == req.Sheet {
		err = rewriteInPlace(f, out, rows, merged)
	} else {
		err = replaceSheet(f, out, merged)
	}
	if err != nil {
		return nil, err
	}
	if err := boldHeader(f, out, to); err != nil {
		return nil, err
	}
	if req.OutPath != "" && req.OutPath != req.Path {
		err = f.SaveAs(req.OutPath)
	} else {
		err = f.Save()
	}
	if err != nil {
		return nil, err
	}

	report := &ConsolidateReport{
		Sheet:   req.Sheet,
		Output:  out,
		InRows:  len(rows) - 1,
		OutRows: len(merged) - 1,
		Width:   to,
	}
	log.Info("consolidated roster",
		zap.String("sheet", report.Sheet),
		zap.String("output", report.Output),
		zap.Int("in_rows", report.InRows),
		zap.Int("out_rows", report.OutRows),
	)
	return report, nil
}

// rewriteInPlace overwrites the source sheet with the merged grid. Rows are
// padded to the old sheet width so stale cells outside the merge range are
// cleared, and leftover rows below the new grid are removed.
func rewriteInPlace(f *excelize.File, sheet string, old, merged [][]string) error {
	width := 0
	for _, row := range old {
		if len(row) > width {
			width = len(row)
		}
	}
	padded := make([][]string, len(merged))
	for i, row := range merged {
		if len(row) < width {
			row = grid.Fit(row, width)
		}
		padded[i] = row
	}
	if err := grid.WriteRows(f, sheet, 1, 1, padded); err != nil {
		return err
	}
	for r := len(old); r > len(merged); r-- {
		if err := f.RemoveRow(sheet, r); err != nil {
			return err
		}
	}
	return nil
}

// replaceSheet drops any existing output sheet and writes the merged grid
// into a fresh one.
func replaceSheet(f *excelize.File, sheet string, merged [][]string) error {
	idx, err := f.GetSheetIndex(sheet)
	if err != nil {
		return err
	}
	if idx != -1 {
		if err := f.DeleteSheet(sheet); err != nil {
			return err
		}
	}
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}
	return grid.WriteRows(f, sheet, 1, 1, merged)
}

func boldHeader(f *excelize.File, sheet string, width int) error {
	style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	end, err := excelize.CoordinatesToCellName(width, 1)
	if err != nil {
		return err
	}
	return f.SetCellStyle(sheet, "A1", end, style)
}
