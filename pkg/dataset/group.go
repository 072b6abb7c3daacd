package dataset

import (
	"fmt"
	"strings"

	"github.com/genai-bias/biasplot/pkg/errors"
)

// Group is a demographic category tracked as a percentage.
type Group string

const (
	Women    Group = "Women"
	Men      Group = "Men"
	White    Group = "White"
	Black    Group = "Black"
	Asian    Group = "Asian"
	Hispanic Group = "Hispanic"
)

// Panel sets used by the dot plots.
var (
	RaceGroups   = []Group{White, Hispanic, Black, Asian}
	GenderGroups = []Group{Women}
	AllGroups    = []Group{Women, White, Black, Asian, Hispanic}
)

// Column returns the unprefixed percentage column for g (e.g. "p_white").
func (g Group) Column() string {
	return "p_" + strings.ToLower(string(g))
}

// Valid reports whether g is a known group.
func (g Group) Valid() bool {
	switch g {
	case Women, Men, White, Black, Asian, Hispanic:
		return true
	}
	return false
}

// ParseGroup parses a group name case-insensitively. Column names such as
// "p_white" and "diff_p_white" are accepted too.
func ParseGroup(s string) (Group, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.TrimPrefix(s, "diff_")
	s = strings.TrimPrefix(s, "p_")
	switch s {
	case "women", "woman", "female":
		return Women, nil
	case "men", "man", "male":
		return Men, nil
	case "white":
		return White, nil
	case "black":
		return Black, nil
	case "asian":
		return Asian, nil
	case "hispanic":
		return Hispanic, nil
	}
	return "", errors.New(errors.ErrCodeInvalidConfig, "unknown group: %q", s)
}

// ParseGroups parses a list of group names.
func ParseGroups(names []string) ([]Group, error) {
	groups := make([]Group, 0, len(names))
	for _, n := range names {
		g, err := ParseGroup(n)
		if err != nil {
			return nil, err
		}
		groups = append(groups, g)
	}
	return groups, nil
}

// Kind says whether a table holds raw percentages or differences from a baseline.
type Kind int

const (
	Percentages Kind = iota
	Differences
)

// Prefix returns the column prefix for tables of this kind.
func (k Kind) Prefix() string {
	if k == Differences {
		return "diff_"
	}
	return ""
}

// String implements fmt.Stringer.
func (k Kind) String() string {
	switch k {
	case Percentages:
		return "percentages"
	case Differences:
		return "differences"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// ParseKind parses "percentages" or "differences".
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "percentages", "percent", "":
		return Percentages, nil
	case "differences", "diff", "diffs":
		return Differences, nil
	}
	return 0, errors.New(errors.ErrCodeInvalidConfig, "unknown table kind: %q (must be 'percentages' or 'differences')", s)
}
