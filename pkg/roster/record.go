package roster

import (
	"strings"

	"github.com/3nvyx/Garrison-Office-Drive-Scripts/pkg/roster/grid"
)

// StudentRecord is one routed student's identity, pulled from a source row
// and consumed immediately by the router.
type StudentRecord struct {
	ID       string `json:"id"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Program  string `json:"program"`
}

// ColumnLayout locates the record fields on a source row (1-based columns).
type ColumnLayout struct {
	ID      int
	Name    int
	Email   int
	Program int
}

// ExtractRecord pulls a StudentRecord from a source row. A blank benefit
// program becomes the NoProgram sentinel; a blank name, ID, or email fails
// the row with a MissingFieldError carrying its 1-based row number.
func ExtractRecord(row []string, rowNum int, layout ColumnLayout) (StudentRecord, error) {
	fullName := strings.TrimSpace(grid.Cell(row, layout.Name))
	if fullName == "" {
		return StudentRecord{}, &MissingFieldError{Row: rowNum, Field: "full name"}
	}
	id := strings.TrimSpace(grid.Cell(row, layout.ID))
	if id == "" {
		return StudentRecord{}, &MissingFieldError{Row: rowNum, Field: "student ID"}
	}
	email := strings.TrimSpace(grid.Cell(row, layout.Email))
	if email == "" {
		return StudentRecord{}, &MissingFieldError{Row: rowNum, Field: "email"}
	}
	program := strings.TrimSpace(grid.Cell(row, layout.Program))
	if program == "" {
		program = NoProgram
	}
	return StudentRecord{ID: id, FullName: fullName, Email: email, Program: program}, nil
}
