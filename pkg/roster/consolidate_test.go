package roster

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/xuri/excelize/v2"

	"github.com/3nvyx/Garrison-Office-Drive-Scripts/pkg/roster/grid"
)

const testSheet = "Form Responses"

func writeBook(t *testing.T, sheet string, rows [][]string) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		t.Fatalf("SetSheetName: %v", err)
	}
	for i := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatal(err)
		}
		if err := f.SetSheetRow(sheet, cell, &rows[i]); err != nil {
			t.Fatalf("SetSheetRow: %v", err)
		}
	}
	path := filepath.Join(t.TempDir(), "roster.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("SaveAs: %v", err)
	}
	return path
}

func readBook(t *testing.T, path, sheet string) [][]string {
	t.Helper()
	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("OpenFile: %v", err)
	}
	defer f.Close()
	rows, err := grid.ReadSheet(f, sheet)
	if err != nil {
		t.Fatalf("ReadSheet: %v", err)
	}
	return rows
}

func rosterFixture() [][]string {
	return [][]string{
		{"Submitted", "Student ID", "Name", "Email", "Program", "Wk1", "Wk2"},
		{"1/9", "S001", "Ana Lee", "ana@campus.edu", "CH 33", "A", "", ""},
		{"1/9", "", "ghost", "ghost@campus.edu", "", "Z", "Z", "Z"},
		{"1/10", "S002", "Bo Reyes", "bo@campus.edu", "SELF", "", "B", ""},
		{"1/11", "S001", "Ana Lee", "ana@campus.edu", "CH 33", "", "C", "D"},
	}
}

// GetRows drops trailing blank cells, so expectations are written without
// them.
func consolidatedFixture() [][]string {
	return [][]string{
		{"Submitted", "Student ID", "Name", "Email", "Program", "Wk1", "Wk2"},
		{"1/9", "S001", "Ana Lee", "ana@campus.edu", "CH 33", "A", "C", "D"},
		{"1/10", "S002", "Bo Reyes", "bo@campus.edu", "SELF", "", "B"},
	}
}

func gradeRequest(path string) ConsolidateRequest {
	return ConsolidateRequest{
		Path:      path,
		Sheet:     testSheet,
		IDColumn:  "B",
		GradeFrom: "F",
		GradeTo:   "H",
		OutSheet:  "Consolidated",
	}
}

func TestConsolidateToOutputSheet(t *testing.T) {
	path := writeBook(t, testSheet, rosterFixture())

	report, err := Consolidate(nil, gradeRequest(path))
	if err != nil {
		t.Fatalf("Consolidate() error = %v", err)
	}
	if report.InRows != 4 || report.OutRows != 2 || report.Width != 8 {
		t.Errorf("report = %+v, want InRows 4, OutRows 2, Width 8", report)
	}

	if diff := cmp.Diff(consolidatedFixture(), readBook(t, path, "Consolidated")); diff != "" {
		t.Errorf("consolidated rows mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(rosterFixture()[0], readBook(t, path, testSheet)[0]); diff != "" {
		t.Errorf("source header changed (-want +got):\n%s", diff)
	}
}

func TestConsolidateIsIdempotent(t *testing.T) {
	path := writeBook(t, testSheet, rosterFixture())

	for i := 0; i < 2; i++ {
		if _, err := Consolidate(nil, gradeRequest(path)); err != nil {
			t.Fatalf("Consolidate() run %d error = %v", i+1, err)
		}
	}

	if diff := cmp.Diff(consolidatedFixture(), readBook(t, path, "Consolidated")); diff != "" {
		t.Errorf("consolidated rows mismatch after rerun (-want +got):\n%s", diff)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	count := 0
	for _, name := range f.GetSheetList() {
		if name == "Consolidated" {
			count++
		}
	}
	if count != 1 {
		t.Errorf("Consolidated sheets = %d, want 1", count)
	}
}

func TestConsolidateInPlace(t *testing.T) {
	path := writeBook(t, testSheet, rosterFixture())
	req := gradeRequest(path)
	req.OutSheet = ""

	report, err := Consolidate(nil, req)
	if err != nil {
		t.Fatalf("Consolidate() error = %v", err)
	}
	if report.Output != testSheet {
		t.Errorf("report.Output = %q, want source sheet", report.Output)
	}

	if diff := cmp.Diff(consolidatedFixture(), readBook(t, path, testSheet)); diff != "" {
		t.Errorf("rewritten rows mismatch (-want +got):\n%s", diff)
	}
}

func TestConsolidateToSeparateWorkbook(t *testing.T) {
	path := writeBook(t, testSheet, rosterFixture())
	req := gradeRequest(path)
	req.OutPath = filepath.Join(t.TempDir(), "merged.xlsx")

	if _, err := Consolidate(nil, req); err != nil {
		t.Fatalf("Consolidate() error = %v", err)
	}

	if diff := cmp.Diff(consolidatedFixture(), readBook(t, req.OutPath, "Consolidated")); diff != "" {
		t.Errorf("consolidated rows mismatch (-want +got):\n%s", diff)
	}
	if got := readBook(t, path, testSheet); len(got) != len(rosterFixture()) {
		t.Errorf("source rows = %d, want untouched %d", len(got), len(rosterFixture()))
	}
}

func TestConsolidateValidatesBeforeWriting(t *testing.T) {
	original := rosterFixture()
	path := writeBook(t, testSheet, original)

	tests := []struct {
		name string
		edit func(*ConsolidateRequest)
	}{
		{"bad id column", func(r *ConsolidateRequest) { r.IDColumn = "7" }},
		{"reversed range", func(r *ConsolidateRequest) { r.GradeFrom, r.GradeTo = "H", "F" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := gradeRequest(path)
			tt.edit(&req)
			if _, err := Consolidate(nil, req); !errors.Is(err, ErrValidation) {
				t.Fatalf("Consolidate() error = %v, want ErrValidation", err)
			}
			if diff := cmp.Diff(original[0], readBook(t, path, testSheet)[0]); diff != "" {
				t.Errorf("source modified after rejected request (-want +got):\n%s", diff)
			}
		})
	}
}

func TestConsolidateEmptySheet(t *testing.T) {
	path := writeBook(t, testSheet, rosterFixture())
	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := f.NewSheet("Empty"); err != nil {
		t.Fatal(err)
	}
	if err := f.Save(); err != nil {
		t.Fatal(err)
	}
	f.Close()

	req := gradeRequest(path)
	req.Sheet = "Empty"
	_, err = Consolidate(nil, req)
	if !errors.Is(err, ErrEmptySheet) {
		t.Errorf("Consolidate() error = %v, want ErrEmptySheet", err)
	}
}
