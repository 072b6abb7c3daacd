// Package normalize turns per-source percentage tables into canonical
// long-form records of differences from a baseline.
//
// For every source, every occupation in that source and every requested
// group the record value is source[group] - baseline[group]. The baseline is
// authoritative: an occupation it lacks is a fatal MISSING_BASELINE error,
// never a silent zero. Occupations the baseline has but a source lacks are
// reported as warnings.
package normalize

import (
	"slices"
	"strings"

	"github.com/genai-bias/biasplot/pkg/dataset"
	"github.com/genai-bias/biasplot/pkg/errors"
)

// Result holds the normalised records and any data-quality warnings.
type Result struct {
	Records  []dataset.Record
	Warnings []errors.Warning
}

// Normalize computes difference records for each source against baseline.
func Normalize(sources []*dataset.SourceTable, baseline *dataset.SourceTable, groups []dataset.Group) (Result, error) {
	if baseline == nil {
		return Result{}, errors.New(errors.ErrCodeInvalidConfig, "baseline table is required")
	}
	if len(sources) == 0 {
		return Result{}, errors.New(errors.ErrCodeInvalidConfig, "at least one source table is required")
	}
	if err := checkGroups(groups); err != nil {
		return Result{}, err
	}

	var res Result
	for _, src := range sources {
		var missing []string
		for _, row := range src.Rows {
			if !baseline.Has(row.Key) {
				missing = append(missing, row.Key)
			}
		}
		if len(missing) > 0 {
			return Result{}, errors.New(errors.ErrCodeMissingBaseline,
				"baseline missing for occupations in %s: %s", src.Name, strings.Join(missing, ", "))
		}

		for _, row := range src.Rows {
			base, _ := baseline.Row(row.Key)
			for _, g := range groups {
				res.Records = append(res.Records, dataset.Record{
					Key:    row.Key,
					Group:  g,
					Source: src.Name,
					Value:  row.Get(g).Sub(base.Get(g)),
				})
			}
		}

		if absent := absentFrom(src, baseline); len(absent) > 0 {
			res.Warnings = append(res.Warnings, errors.Warnf(errors.ErrCodeMissingBaseline,
				"%s lacks %d baseline occupation(s): %s", src.Name, len(absent), strings.Join(absent, ", ")))
		}
	}
	return res, nil
}

// FromDifferences builds records from tables whose values are already
// differences from the baseline.
func FromDifferences(sources []*dataset.SourceTable, groups []dataset.Group) (Result, error) {
	if len(sources) == 0 {
		return Result{}, errors.New(errors.ErrCodeInvalidConfig, "at least one source table is required")
	}
	if err := checkGroups(groups); err != nil {
		return Result{}, err
	}
	var res Result
	for _, src := range sources {
		for _, row := range src.Rows {
			for _, g := range groups {
				res.Records = append(res.Records, dataset.Record{
					Key:    row.Key,
					Group:  g,
					Source: src.Name,
					Value:  row.Get(g),
				})
			}
		}
	}
	return res, nil
}

// ToTables regroups records into one difference table per source, keeping
// source and occupation order.
func ToTables(records []dataset.Record) []*dataset.SourceTable {
	var tables []*dataset.SourceTable
	bySource := make(map[string]*dataset.SourceTable)
	rows := make(map[string]map[string]map[dataset.Group]dataset.Value)
	for _, r := range records {
		t, ok := bySource[r.Source]
		if !ok {
			t = dataset.NewSourceTable(r.Source)
			bySource[r.Source] = t
			rows[r.Source] = make(map[string]map[dataset.Group]dataset.Value)
			tables = append(tables, t)
		}
		values, ok := rows[r.Source][r.Key]
		if !ok {
			values = make(map[dataset.Group]dataset.Value)
			rows[r.Source][r.Key] = values
			_ = t.Add(r.Key, values)
		}
		values[r.Group] = r.Value
	}
	return tables
}

func checkGroups(groups []dataset.Group) error {
	if len(groups) == 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "no groups requested")
	}
	for _, g := range groups {
		if !g.Valid() {
			return errors.New(errors.ErrCodeInvalidConfig, "unknown group: %q", g)
		}
	}
	return nil
}

func absentFrom(src, baseline *dataset.SourceTable) []string {
	var absent []string
	for _, k := range baseline.Keys() {
		if !src.Has(k) {
			absent = append(absent, k)
		}
	}
	slices.Sort(absent)
	return absent
}
