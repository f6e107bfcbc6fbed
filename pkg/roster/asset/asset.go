// Package asset resolves stable asset IDs to the image bytes anchored on
// student sheets.
package asset

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrNoAsset indicates an empty or unresolvable asset ID.
var ErrNoAsset = errors.New("asset not found")

// Source fetches a static asset by its stable ID.
type Source interface {
	Fetch(id string) ([]byte, error)
}

// Dir serves PNG assets stored as <id>.png under a root directory.
type Dir struct {
	Root string
}

func (d Dir) Fetch(id string) ([]byte, error) {
	if strings.TrimSpace(id) == "" {
		return nil, ErrNoAsset
	}
	b, err := os.ReadFile(filepath.Join(d.Root, id+".png"))
	if err != nil {
		return nil, fmt.Errorf("asset %q: %w", id, err)
	}
	return b, nil
}
