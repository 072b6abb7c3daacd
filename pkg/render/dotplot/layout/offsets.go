package layout

import (
	"math"
	"slices"

	"github.com/genai-bias/biasplot/pkg/dataset"
)

// Default overlap parameters, in percentage points and row units.
const (
	DefaultTolerance = 3.0
	DefaultBaseUnit  = 0.18
)

// Options configures overlap detection.
type Options struct {
	// Tolerance is the largest |a-b| at which two values overlap.
	Tolerance float64
	// BaseUnit is the vertical distance between adjacent group members.
	BaseUnit float64
}

// DefaultOptions returns the default overlap parameters.
func DefaultOptions() Options {
	return Options{Tolerance: DefaultTolerance, BaseUnit: DefaultBaseUnit}
}

// Groups clusters the sources of one row by value proximity to an anchor.
// Groups are returned in anchor order with members sorted by name.
func Groups(values map[string]dataset.Value, opts Options) [][]string {
	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	slices.Sort(names)

	used := make(map[string]bool, len(names))
	var groups [][]string
	for i, anchor := range names {
		if used[anchor] {
			continue
		}
		used[anchor] = true
		group := []string{anchor}
		a := values[anchor]
		if a.Valid {
			for _, other := range names[i+1:] {
				if used[other] {
					continue
				}
				if b := values[other]; b.Valid && math.Abs(a.V-b.V) <= opts.Tolerance {
					group = append(group, other)
					used[other] = true
				}
			}
		}
		groups = append(groups, group)
	}
	return groups
}

// Offsets returns a vertical offset for every key of values.
func Offsets(values map[string]dataset.Value, opts Options) map[string]float64 {
	offsets := make(map[string]float64, len(values))
	for _, g := range Groups(values, opts) {
		k := len(g)
		if k == 1 {
			offsets[g[0]] = 0
			continue
		}
		start := -float64(k / 2)
		if k%2 == 0 {
			start = -(float64(k)/2 - 0.5)
		}
		for i, name := range g {
			offsets[name] = (start + float64(i)) * opts.BaseUnit
		}
	}
	return offsets
}
