package asset

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestDirFetch(t *testing.T) {
	root := t.TempDir()
	want := []byte{0x89, 'P', 'N', 'G'}
	if err := os.WriteFile(filepath.Join(root, "seal.png"), want, 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := Dir{Root: root}.Fetch("seal")
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if !bytes.Equal(got, want) {
		t.Errorf("Fetch() = %v, want %v", got, want)
	}
}

func TestDirFetchMissing(t *testing.T) {
	_, err := Dir{Root: t.TempDir()}.Fetch("absent")
	if err == nil {
		t.Fatal("Fetch() error = nil, want error for missing asset")
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Fetch() error = %v, want wrapped os.ErrNotExist", err)
	}
}

func TestDirFetchBlankID(t *testing.T) {
	d := Dir{Root: t.TempDir()}
	for _, id := range []string{"", "  "} {
		if _, err := d.Fetch(id); !errors.Is(err, ErrNoAsset) {
			t.Errorf("Fetch(%q) error = %v, want ErrNoAsset", id, err)
		}
	}
}
