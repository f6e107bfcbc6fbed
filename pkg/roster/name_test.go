package roster

import (
	"errors"
	"strings"
	"testing"
)

func TestParseName(t *testing.T) {
	tests := []struct {
		full string
		want Name
	}{
		{"Bo Reyes", Name{First: "Bo", Last: "Reyes"}},
		{"Maria de la Cruz Santos", Name{First: "Maria", Middle: "de la Cruz", Last: "Santos"}},
		{"Ana B. Lee", Name{First: "Ana", Middle: "B.", Last: "Lee"}},
		{"Cher", Name{First: "Cher", Last: "Cher"}},
		{"  padded \t name  ", Name{First: "padded", Last: "name"}},
	}
	for _, tt := range tests {
		t.Run(tt.full, func(t *testing.T) {
			got, err := ParseName(tt.full)
			if err != nil {
				t.Fatalf("ParseName(%q) error = %v", tt.full, err)
			}
			if got != tt.want {
				t.Errorf("ParseName(%q) = %+v, want %+v", tt.full, got, tt.want)
			}
		})
	}
}

func TestParseNameEmpty(t *testing.T) {
	for _, full := range []string{"", "   ", "\t\n"} {
		if _, err := ParseName(full); !errors.Is(err, ErrEmptyName) {
			t.Errorf("ParseName(%q) error = %v, want ErrEmptyName", full, err)
		}
	}
}

func TestDisplayKey(t *testing.T) {
	tests := []struct {
		name Name
		want string
	}{
		{Name{First: "Bo", Last: "Reyes"}, "Reyes, Bo"},
		{Name{First: "Maria", Middle: "de la Cruz", Last: "Santos"}, "Santos, Maria de la Cruz"},
		{Name{First: "Cher", Last: "Cher"}, "Cher, Cher"},
	}
	for _, tt := range tests {
		if got := tt.name.DisplayKey(); got != tt.want {
			t.Errorf("DisplayKey(%+v) = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestSanitizeTitle(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "Reyes, Bo", "Reyes, Bo"},
		{"disallowed punctuation", "O'Brien/Smith: Jr?", "O'BrienSmith Jr"},
		{"brackets and stars", "[Lee]*", "Lee"},
		{"control characters", "Ana\x00Lee\x1f", "AnaLee"},
		{"high control characters", "XYZ", "XYZ"},
		{"surrounding space", "  Lee, Ana  ", "Lee, Ana"},
		{"backslash", `Lee\Ana`, "LeeAna"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SanitizeTitle(tt.in); got != tt.want {
				t.Errorf("SanitizeTitle(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestSanitizeTitleTruncatesRunes(t *testing.T) {
	long := strings.Repeat("é", 150)
	got := SanitizeTitle(long)
	if n := len([]rune(got)); n != 100 {
		t.Errorf("len(SanitizeTitle(long)) = %d runes, want 100", n)
	}
}

func TestSameTitle(t *testing.T) {
	tests := []struct {
		a, b string
		want bool
	}{
		{"Reyes, Bo", "reyes, bo", true},
		{"Öberg, Kai", "öberg, kai", true},
		{"Reyes, Bo", "Reyes, B", false},
	}
	for _, tt := range tests {
		if got := SameTitle(tt.a, tt.b); got != tt.want {
			t.Errorf("SameTitle(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}
