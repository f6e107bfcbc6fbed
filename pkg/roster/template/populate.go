package template

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// Options trims optional layout pieces per run.
type Options struct {
	// Legend controls the status legend block.
	Legend bool
	// Logo holds the PNG bytes anchored at the logo cell; empty skips the
	// anchor.
	Logo []byte
}

// Populate writes the student template onto an existing sheet. Writes are not
// transactional: a failure part-way leaves the cells already written.
func Populate(f *excelize.File, sheet string, s Student, opts Options) error {
	cells := make([]Cell, 0, len(keyBlock)+4)
	cells = append(cells, studentCells(s)...)
	cells = append(cells, keyBlock...)
	for _, c := range cells {
		if err := writeCell(f, sheet, c); err != nil {
			return err
		}
	}

	if err := writeOrgTable(f, sheet); err != nil {
		return err
	}
	if opts.Legend {
		if err := writeLegend(f, sheet); err != nil {
			return err
		}
	}
	if err := applyChrome(f, sheet); err != nil {
		return err
	}
	if len(opts.Logo) > 0 {
		if err := anchorLogo(f, sheet, opts.Logo); err != nil {
			return err
		}
	}
	return nil
}

func writeCell(f *excelize.File, sheet string, c Cell) error {
	name, err := excelize.CoordinatesToCellName(c.Col, c.Row)
	if err != nil {
		return err
	}
	if c.Formula {
		if err := f.SetCellFormula(sheet, name, c.Value); err != nil {
			return fmt.Errorf("formula %s: %w", name, err)
		}
		return nil
	}
	if err := f.SetCellValue(sheet, name, c.Value); err != nil {
		return fmt.Errorf("cell %s: %w", name, err)
	}
	return nil
}

func writeOrgTable(f *excelize.File, sheet string) error {
	for i, label := range orgHeader {
		name, err := excelize.CoordinatesToCellName(orgCol+i, orgHeaderRow)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, name, label); err != nil {
			return fmt.Errorf("org header %s: %w", name, err)
		}
	}
	for i, code := range orgCodes {
		name, err := excelize.CoordinatesToCellName(orgCol, orgHeaderRow+1+i)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, name, code); err != nil {
			return fmt.Errorf("org code %s: %w", name, err)
		}
	}
	return nil
}

func writeLegend(f *excelize.File, sheet string) error {
	name, err := excelize.CoordinatesToCellName(legendCol, legendRow)
	if err != nil {
		return err
	}
	if err := f.SetCellValue(sheet, name, "Legend"); err != nil {
		return err
	}
	for i, row := range legendRows {
		labelCell, err := excelize.CoordinatesToCellName(legendCol, legendRow+1+i)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, labelCell, row.Label); err != nil {
			return err
		}
		meaningCell, err := excelize.CoordinatesToCellName(legendCol+1, legendRow+1+i)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, meaningCell, row.Meaning); err != nil {
			return err
		}
		style, err := f.NewStyle(&excelize.Style{
			Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{row.Fill}},
		})
		if err != nil {
			return err
		}
		if err := f.SetCellStyle(sheet, labelCell, labelCell, style); err != nil {
			return fmt.Errorf("legend fill %s: %w", labelCell, err)
		}
	}
	return nil
}

// applyChrome sets the fixed presentation: bold labels and table headers,
// readable column widths.
func applyChrome(f *excelize.File, sheet string) error {
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", "A10", bold); err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "D1", "G1", bold); err != nil {
		return err
	}
	if err := f.SetColWidth(sheet, "A", "A", 16); err != nil {
		return err
	}
	if err := f.SetColWidth(sheet, "B", "B", 30); err != nil {
		return err
	}
	return f.SetColWidth(sheet, "D", "G", 14)
}

func anchorLogo(f *excelize.File, sheet string, logo []byte) error {
	// Repopulating an existing sheet must not stack another copy.
	if pics, err := f.GetPictures(sheet, logoCell); err == nil && len(pics) > 0 {
		return nil
	}
	err := f.AddPictureFromBytes(sheet, logoCell, &excelize.Picture{
		Extension: ".png",
		File:      logo,
		Format:    &excelize.GraphicOptions{ScaleX: logoScale, ScaleY: logoScale},
	})
	if err != nil {
		return fmt.Errorf("logo at %s: %w", logoCell, err)
	}
	return nil
}
