package dataset

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// CleanKey canonicalises an occupation key: NFKC normalisation, trimmed,
// lower-cased, internal whitespace collapsed to single spaces.
func CleanKey(s string) string {
	s = norm.NFKC.String(s)
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

// SquashKey removes all whitespace from a cleaned key, matching the
// file-name derived keys ("bus driver" -> "busdriver").
func SquashKey(s string) string {
	return strings.Join(strings.Fields(CleanKey(s)), "")
}

// TitleCase upper-cases the first letter of every word ("bus driver" -> "Bus Driver").
// A Caser is stateful, so each call gets its own.
func TitleCase(s string) string {
	return cases.Title(language.English).String(s)
}
