package partition

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// xlsx caps worksheet titles well below the 100 characters the display key
// allows, so stored titles are cut again at the workbook boundary.
const maxSheetTitle = 31

// Book is one open destination workbook holding per-student sheets.
type Book struct {
	ID   string
	Path string
	File *excelize.File
}

// Open opens the partition workbook at path. The workbook must already
// exist; a missing file is a configuration problem, not a cue to create one.
func Open(id, path string) (*Book, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open partition book %q: %w", id, err)
	}
	return &Book{ID: id, Path: path, File: f}, nil
}

// Create writes a fresh workbook for a partition book at path.
func Create(id, path string) (*Book, error) {
	f := excelize.NewFile()
	if err := f.SaveAs(path); err != nil {
		f.Close()
		return nil, fmt.Errorf("create partition book %q: %w", id, err)
	}
	return &Book{ID: id, Path: path, File: f}, nil
}

// Titles lists the workbook's sheet titles in tab order.
func (b *Book) Titles() []string {
	return b.File.GetSheetList()
}

// Find locates an existing sheet by title, ignoring case. It returns the
// stored title so callers address the sheet exactly as the workbook spells it.
func (b *Book) Find(title string) (string, bool) {
	want := StoreTitle(title)
	for _, existing := range b.Titles() {
		if strings.EqualFold(existing, want) {
			return existing, true
		}
	}
	return "", false
}

// Ensure finds the sheet for title or creates it, reporting which happened.
// A title already present under different casing is reused, never duplicated.
func (b *Book) Ensure(title string) (actual string, created bool, err error) {
	stored := StoreTitle(title)
	if stored == "" {
		return "", false, fmt.Errorf("sheet title %q is empty once stored", title)
	}
	if existing, ok := b.Find(stored); ok {
		return existing, false, nil
	}
	if _, err := b.File.NewSheet(stored); err != nil {
		return "", false, fmt.Errorf("create sheet %q: %w", stored, err)
	}
	return stored, true, nil
}

// Reorder rearranges the workbook's tabs to match order, which must list
// every current title. The full ordering is reassigned in one pass.
func (b *Book) Reorder(order []string) error {
	for i := len(order) - 2; i >= 0; i-- {
		if err := b.File.MoveSheet(order[i], order[i+1]); err != nil {
			return fmt.Errorf("move sheet %q: %w", order[i], err)
		}
	}
	return nil
}

// Save writes the workbook back to its path.
func (b *Book) Save() error {
	return b.File.SaveAs(b.Path)
}

// Close releases the workbook without saving.
func (b *Book) Close() error {
	return b.File.Close()
}

// StoreTitle converts a sanitized display key into the form the workbook
// stores: cut to the xlsx title limit and stripped of the surrounding
// apostrophes xlsx refuses.
func StoreTitle(title string) string {
	if runes := []rune(title); len(runes) > maxSheetTitle {
		title = string(runes[:maxSheetTitle])
	}
	return strings.Trim(strings.TrimSpace(title), "'")
}
