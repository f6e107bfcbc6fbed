package partition

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// markerPrefix flags a tab for attention without changing where it sorts;
// the marker is stripped before titles are compared.
const markerPrefix = "* "

// Order returns titles in roster order: a locale-aware, case-insensitive
// comparison of each title with any leading marker removed. Titles that
// compare equal keep their current relative order.
func Order(titles []string) []string {
	c := collate.New(language.English, collate.IgnoreCase)
	out := append([]string(nil), titles...)
	sort.SliceStable(out, func(i, j int) bool {
		return c.CompareString(sortKey(out[i]), sortKey(out[j])) < 0
	})
	return out
}

func sortKey(title string) string {
	return strings.TrimPrefix(title, markerPrefix)
}
