package align

import (
	"cmp"
	"slices"

	"github.com/genai-bias/biasplot/pkg/dataset"
	"github.com/genai-bias/biasplot/pkg/errors"
)

// Direction is the sort direction of the reference-group mean.
type Direction string

const (
	// Ascending lists the most underrepresented occupations first.
	Ascending Direction = "ascending"
	// Descending lists the most overrepresented occupations first.
	Descending Direction = "descending"
)

// ParseDirection parses a direction name; the empty string means Descending.
func ParseDirection(s string) (Direction, error) {
	switch Direction(s) {
	case "", Descending, "desc":
		return Descending, nil
	case Ascending, "asc":
		return Ascending, nil
	}
	return "", errors.New(errors.ErrCodeInvalidConfig, "unknown sort direction %q", s)
}

// ReferenceMeans returns, for each key, the mean of ref across sources.
func ReferenceMeans(keys []string, records []dataset.Record, ref dataset.Group) map[string]dataset.Value {
	idx := dataset.Index(records)
	sources := dataset.Sources(records)
	means := make(map[string]dataset.Value, len(keys))
	for _, k := range keys {
		vs := make([]dataset.Value, 0, len(sources))
		for _, s := range sources {
			vs = append(vs, idx.Get(k, ref, s))
		}
		means[k] = dataset.Mean(vs)
	}
	return means
}

// Order returns keys stably sorted by their mean ref value across sources.
// Keys with no defined reference value keep their relative order at the end.
func Order(keys []string, records []dataset.Record, ref dataset.Group, dir Direction) []string {
	means := ReferenceMeans(keys, records, ref)
	out := slices.Clone(keys)
	slices.SortStableFunc(out, func(a, b string) int {
		va, vb := means[a], means[b]
		switch {
		case !va.Valid && !vb.Valid:
			return 0
		case !va.Valid:
			return 1
		case !vb.Valid:
			return -1
		}
		if dir == Ascending {
			return cmp.Compare(va.V, vb.V)
		}
		return cmp.Compare(vb.V, va.V)
	})
	return out
}
