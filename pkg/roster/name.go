package roster

import "strings"

// maxTitleLen bounds sanitized sheet titles.
const maxTitleLen = 100

// Name is the parsed form of a student's full name. A single-token name
// serves as both first and last name; Middle may be empty.
type Name struct {
	First  string
	Middle string
	Last   string
}

// ParseName splits a raw full name on whitespace. The first token is the
// first name, the final token the last name, and everything between joins
// into the middle name.
func ParseName(full string) (Name, error) {
	tokens := strings.Fields(full)
	if len(tokens) == 0 {
		return Name{}, ErrEmptyName
	}
	return Name{
		First:  tokens[0],
		Middle: strings.Join(tokens[1:max(len(tokens)-1, 1)], " "),
		Last:   tokens[len(tokens)-1],
	}, nil
}

// DisplayKey returns the canonical "Last, First Middle" form used as the
// student's sheet title. The middle segment is omitted when empty.
func (n Name) DisplayKey() string {
	key := n.Last + ", " + n.First
	if n.Middle != "" {
		key += " " + n.Middle
	}
	return key
}

// titleDisallowed are the characters worksheet titles cannot contain.
var titleDisallowed = map[rune]bool{
	':': true, '\\': true, '/': true, '?': true, '*': true, '[': true, ']': true,
}

// SanitizeTitle makes a display key safe to use as a worksheet title: control
// characters and the disallowed title characters are dropped, surrounding
// whitespace is trimmed, and the result is cut to 100 characters.
func SanitizeTitle(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r <= 0x1f || (r >= 0x7f && r <= 0x9f) || titleDisallowed[r] {
			continue
		}
		b.WriteRune(r)
	}
	title := strings.TrimSpace(b.String())
	if runes := []rune(title); len(runes) > maxTitleLen {
		title = string(runes[:maxTitleLen])
	}
	return title
}

// SameTitle reports whether two sheet titles name the same entity. Titles
// differing only in case are the same sheet.
func SameTitle(a, b string) bool {
	return strings.EqualFold(a, b)
}
