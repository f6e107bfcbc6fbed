// Package template instantiates the fixed student-sheet layout: a key/value
// header block, the organization table, a status legend, and the office logo.
// Only the four record fields and the payor line vary per student.
package template

// Student carries the per-instantiation values written into the header block.
type Student struct {
	Name  string
	ID    string
	Email string
	Payor string
}

// Cell is one templated write at a fixed position. Formula cells hold the
// formula text without a leading "=".
type Cell struct {
	Row     int
	Col     int
	Value   string
	Formula bool
}

// Block anchors for the fixed layout. The key/value block runs down columns
// A/B; the organization table and legend sit in columns D through G.
const (
	keyCol = 1 // "A"
	valCol = 2 // "B"

	orgCol       = 4 // "D"
	orgHeaderRow = 1

	legendCol = 4
	legendRow = 9

	logoCell  = "I1"
	logoScale = 0.55
)

// keyBlock is the vertical header block: labels in column A, with the
// manual-entry placeholders and the GPA formulas in column B. The student
// values for rows 1-4 come from studentCells.
var keyBlock = []Cell{
	{1, keyCol, "Name", false},
	{2, keyCol, "Student ID", false},
	{3, keyCol, "Email", false},
	{4, keyCol, "Payor", false},
	{5, keyCol, "Education Plan", false},
	{6, keyCol, "Counselor", false},
	{7, keyCol, "Units Completed", false},
	{8, keyCol, "Grade Points", false},
	{9, keyCol, "GPA", false},
	{10, keyCol, "Standing", false},
	{5, valCol, "", false},
	{6, valCol, "", false},
	{7, valCol, "", false},
	{8, valCol, "", false},
	{9, valCol, `IF(B7=0,"",ROUND(B8/B7,2))`, true},
	{10, valCol, `IF(B9="","",IF(B9>=2,"GOOD","PROBATION"))`, true},
}

func studentCells(s Student) []Cell {
	return []Cell{
		{1, valCol, s.Name, false},
		{2, valCol, s.ID, false},
		{3, valCol, s.Email, false},
		{4, valCol, s.Payor, false},
	}
}

// orgHeader and orgCodes form the organization table: one prefilled code
// column, the rest left blank for manual entry during certification.
var orgHeader = []string{"Org", "Contact", "Status", "Updated"}

var orgCodes = []string{"VA", "CALVET", "NSO", "CVSO", "EOPS", "FINAID"}

// legendRows pair a status color with its meaning; the color cells get the
// matching fill when the legend is written.
var legendRows = []struct {
	Label   string
	Meaning string
	Fill    string
}{
	{"Green", "Cleared to register", "C6EFCE"},
	{"Yellow", "Documents pending", "FFEB9C"},
	{"Red", "Hold, see counselor", "FFC7CE"},
}
