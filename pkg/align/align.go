package align

import (
	"github.com/genai-bias/biasplot/pkg/dataset"
	"github.com/genai-bias/biasplot/pkg/errors"
)

// Policy selects how occupations are combined across sources.
type Policy string

const (
	PolicyIntersect Policy = "intersect"
	PolicyUnion     Policy = "union"
)

// ParsePolicy parses a policy name; the empty string means PolicyIntersect.
func ParsePolicy(s string) (Policy, error) {
	switch Policy(s) {
	case "", PolicyIntersect:
		return PolicyIntersect, nil
	case PolicyUnion:
		return PolicyUnion, nil
	}
	return "", errors.New(errors.ErrCodeInvalidConfig, "unknown occupation policy %q (want intersect or union)", s)
}

// Index builds the occupation index for records under the given policy.
func Index(records []dataset.Record, p Policy) ([]string, error) {
	if p == PolicyUnion {
		keys := Union(records)
		if len(keys) == 0 {
			return nil, errors.New(errors.ErrCodeNoCommonOccupations, "no occupations in input")
		}
		return keys, nil
	}
	return Intersect(records)
}

// Intersect returns the keys present in every source, in first-seen order.
func Intersect(records []dataset.Record) ([]string, error) {
	sources := dataset.Sources(records)
	present := make(map[string]map[string]bool)
	var order []string
	for _, r := range records {
		m, ok := present[r.Key]
		if !ok {
			m = make(map[string]bool)
			present[r.Key] = m
			order = append(order, r.Key)
		}
		m[r.Source] = true
	}

	var keys []string
	for _, k := range order {
		if len(present[k]) == len(sources) {
			keys = append(keys, k)
		}
	}
	if len(keys) == 0 {
		return nil, errors.New(errors.ErrCodeNoCommonOccupations,
			"no occupation is shared by all %d sources", len(sources))
	}
	return keys, nil
}

// Union returns every key in first-seen order.
func Union(records []dataset.Record) []string {
	seen := make(map[string]bool)
	var keys []string
	for _, r := range records {
		if !seen[r.Key] {
			seen[r.Key] = true
			keys = append(keys, r.Key)
		}
	}
	return keys
}
