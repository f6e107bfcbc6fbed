package partition

import "strings"

// Opener resolves a partition book ID to an open workbook.
type Opener interface {
	Open(id string) (*Book, error)
}

// PathOpener opens partition books from a fixed ID-to-path table.
type PathOpener struct {
	Paths map[string]string
}

func (o PathOpener) Open(id string) (*Book, error) {
	path, ok := o.Paths[id]
	if !ok || strings.TrimSpace(path) == "" {
		return nil, &UnknownBookError{BookID: id}
	}
	return Open(id, path)
}
