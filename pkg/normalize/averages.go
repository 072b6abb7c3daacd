package normalize

import (
	"github.com/genai-bias/biasplot/pkg/dataset"
)

// Average is the mean difference for one (group, source) pair.
type Average struct {
	Group  dataset.Group
	Source string
	Value  dataset.Value
	// N counts the occupations that contributed a value.
	N int
}

// Averages returns the mean value per (group, source), skipping missing
// values. Results follow the order of groups, then sources as first seen.
// When keys is non-nil only those occupations contribute.
func Averages(records []dataset.Record, groups []dataset.Group, keys []string) []Average {
	var allow map[string]bool
	if keys != nil {
		allow = make(map[string]bool, len(keys))
		for _, k := range keys {
			allow[k] = true
		}
	}

	type acc struct {
		sum float64
		n   int
	}
	sums := make(map[dataset.Group]map[string]*acc)
	for _, r := range records {
		if allow != nil && !allow[r.Key] {
			continue
		}
		bySource, ok := sums[r.Group]
		if !ok {
			bySource = make(map[string]*acc)
			sums[r.Group] = bySource
		}
		a, ok := bySource[r.Source]
		if !ok {
			a = &acc{}
			bySource[r.Source] = a
		}
		if r.Value.Valid {
			a.sum += r.Value.V
			a.n++
		}
	}

	sources := dataset.Sources(records)
	out := make([]Average, 0, len(groups)*len(sources))
	for _, g := range groups {
		for _, s := range sources {
			avg := Average{Group: g, Source: s}
			if a := sums[g][s]; a != nil && a.n > 0 {
				avg.Value = dataset.Some(a.sum / float64(a.n))
				avg.N = a.n
			}
			out = append(out, avg)
		}
	}
	return out
}

// AverageAcross returns the per-occupation mean across sources for each
// group, as a single table named name.
func AverageAcross(records []dataset.Record, groups []dataset.Group, name string) *dataset.SourceTable {
	idx := dataset.Index(records)
	sources := dataset.Sources(records)

	var keys []string
	seen := make(map[string]bool)
	for _, r := range records {
		if !seen[r.Key] {
			seen[r.Key] = true
			keys = append(keys, r.Key)
		}
	}

	t := dataset.NewSourceTable(name)
	for _, k := range keys {
		values := make(map[dataset.Group]dataset.Value, len(groups))
		for _, g := range groups {
			vs := make([]dataset.Value, 0, len(sources))
			for _, s := range sources {
				vs = append(vs, idx.Get(k, g, s))
			}
			values[g] = dataset.Mean(vs)
		}
		_ = t.Add(k, values)
	}
	return t
}
