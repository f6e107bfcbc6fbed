// Package partition routes students to destination workbooks by last-name
// initial and keeps each workbook's tabs in roster order.
package partition

import (
	"errors"
	"fmt"
	"sort"
	"unicode"
)

// Map assigns every letter A-Z to a destination book ID. It is static
// configuration data loaded at startup, never computed.
type Map struct {
	// Letters maps an uppercase initial ("A".."Z") to a book ID.
	Letters map[string]string
}

// UnknownBookError reports a book ID with no configured workbook path.
type UnknownBookError struct {
	BookID string
}

func (e *UnknownBookError) Error() string {
	return fmt.Sprintf("partition book %q is not configured", e.BookID)
}

// BookFor returns the book ID a last name routes to. The key is the
// upper-cased first rune of the last name; anything outside A-Z, or a letter
// the map does not cover, reports false.
func (m Map) BookFor(lastName string) (string, bool) {
	for _, r := range lastName {
		initial := unicode.ToUpper(r)
		if initial < 'A' || initial > 'Z' {
			return "", false
		}
		id, ok := m.Letters[string(initial)]
		return id, ok
	}
	return "", false
}

// Validate checks that every letter A-Z maps to a book declared in books.
func (m Map) Validate(books map[string]string) error {
	var errs []error
	for r := 'A'; r <= 'Z'; r++ {
		letter := string(r)
		id, ok := m.Letters[letter]
		if !ok || id == "" {
			errs = append(errs, fmt.Errorf("letter %s has no partition book", letter))
			continue
		}
		if _, ok := books[id]; !ok {
			errs = append(errs, fmt.Errorf("letter %s: %w", letter, &UnknownBookError{BookID: id}))
		}
	}
	return errors.Join(errs...)
}

// BookIDs returns the distinct book IDs the map routes to, sorted.
func (m Map) BookIDs() []string {
	seen := make(map[string]bool)
	for _, id := range m.Letters {
		if id != "" {
			seen[id] = true
		}
	}
	ids := make([]string, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
