package roster

import (
	"regexp"
	"strings"
)

// DefaultPayor is reported when no benefit rule matches: the student pays out
// of pocket.
const DefaultPayor = "SELF"

// NoProgram is the sentinel stored when a student left the benefit-program
// question blank: not enrolled in any tracked program.
const NoProgram = "NONE"

// payorRule maps response keywords to the payor line written on the student
// sheet. Keywords are matched as substrings of the normalized response.
type payorRule struct {
	keywords []string
	payor    string
}

// payorRules is ordered: the first matching rule wins, so the more specific
// federal chapters sit above the state and campus programs. A bare "GI Bill"
// with no chapter lands on CH 33, the common case, but only after every
// specific rule has had its chance.
var payorRules = []payorRule{
	{[]string{"CHAPTER 33", "CH 33", "CH33", "POST 911", "POST911"}, "CH 33"},
	{[]string{"CHAPTER 31", "CH 31", "CH31", "VOC REHAB", "VOCATIONAL REHAB", "VRE"}, "CH 31"},
	{[]string{"CHAPTER 35", "CH 35", "CH35", "DEA", "DEPENDENT"}, "CH 35"},
	{[]string{"CHAPTER 30", "CH 30", "CH30", "MONTGOMERY", "MGIB"}, "CH 30"},
	{[]string{"1606", "RESERVE", "GUARD"}, "CH 1606"},
	{[]string{"CALVET", "CAL VET", "FEE WAIVER"}, "CALVET"},
	{[]string{"EOPS"}, "EOPS"},
	{[]string{"GI BILL"}, "CH 33"},
}

var (
	nonWord    = regexp.MustCompile(`[^\w\s]`)
	whitespace = regexp.MustCompile(`\s+`)
)

// ClassifyPayor maps a free-text benefit-program response to the payor line
// for the student sheet. The response is upper-cased, stripped of punctuation
// and collapsed to single spaces before the ordered rules run.
func ClassifyPayor(response string) string {
	text := normalizeProgram(response)
	for _, rule := range payorRules {
		for _, kw := range rule.keywords {
			if strings.Contains(text, kw) {
				return rule.payor
			}
		}
	}
	return DefaultPayor
}

func normalizeProgram(s string) string {
	s = strings.ToUpper(s)
	s = nonWord.ReplaceAllString(s, "")
	s = whitespace.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}
