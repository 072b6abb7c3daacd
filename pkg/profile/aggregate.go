package profile

import (
	"bytes"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"

	"github.com/genai-bias/biasplot/pkg/dataset"
	"github.com/genai-bias/biasplot/pkg/errors"
)

// Decimals is the rounding applied to aggregated percentages.
const Decimals = 1

var (
	raceSplitRE = regexp.MustCompile(`(?i)\s*(?:,|/|;|\s+and\s+)\s*`)
	// defaultSuffixRE matches FileName suffixes and the older
	// "<key>profile_<provider>" naming.
	defaultSuffixRE = regexp.MustCompile(`(?i)profiles?_[a-z0-9.\-]+$`)
	trailingSepRE   = regexp.MustCompile(`[_\-]+$`)
)

// raceGroups are the race tokens recognised in ethnicity cells.
var raceGroups = map[string]dataset.Group{
	"white":    dataset.White,
	"black":    dataset.Black,
	"asian":    dataset.Asian,
	"hispanic": dataset.Hispanic,
}

// Races returns the distinct recognised races named in an ethnicity cell.
// Tokens are split on commas, slashes, semicolons and the word "and".
func Races(cell string) []dataset.Group {
	cell = strings.ToLower(strings.TrimSpace(cell))
	if cell == "" {
		return nil
	}
	var out []dataset.Group
	for _, tok := range raceSplitRE.Split(cell, -1) {
		if g, ok := raceGroups[tok]; ok && !slices.Contains(out, g) {
			out = append(out, g)
		}
	}
	return out
}

// Summarize computes the group percentages of profiles. An empty slice has
// no percentages, so every group is Missing.
func Summarize(profiles []Profile) map[dataset.Group]dataset.Value {
	counts := make(map[dataset.Group]int, len(dataset.AllGroups))
	for _, p := range profiles {
		if strings.ToLower(strings.TrimSpace(p.Gender)) == "female" {
			counts[dataset.Women]++
		}
		for _, g := range Races(p.Ethnicity) {
			counts[g]++
		}
	}
	out := make(map[dataset.Group]dataset.Value, len(dataset.AllGroups))
	for _, g := range dataset.AllGroups {
		if len(profiles) == 0 {
			out[g] = dataset.Missing
			continue
		}
		out[g] = dataset.Some(pct(counts[g], len(profiles)))
	}
	return out
}

func pct(n, d int) float64 {
	scale := math.Pow10(Decimals)
	return math.Round(100*float64(n)/float64(d)*scale) / scale
}

// OccupationKey derives the occupation key from a profile file name. suffix
// is stripped from the stem when present; an empty suffix strips the
// "profiles_<provider>" naming. Leftover trailing separators are dropped.
func OccupationKey(filename, suffix string) string {
	stem := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	if suffix != "" {
		stem = strings.TrimSuffix(stem, suffix)
	} else {
		stem = defaultSuffixRE.ReplaceAllString(stem, "")
	}
	return dataset.CleanKey(trailingSepRE.ReplaceAllString(stem, ""))
}

// AggregateOptions controls AggregateDir.
type AggregateOptions struct {
	// Name is the source name of the returned table.
	Name string
	// Suffix is passed to OccupationKey.
	Suffix string
}

// AggregateDir reads every *.csv profile file in dir, in name order, into a
// percentages table with one row per occupation. Empty files produce a
// warning and a row of missing values.
func AggregateDir(dir string, opts AggregateOptions) (*dataset.SourceTable, []errors.Warning, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "profile directory %s", dir)
		}
		return nil, nil, err
	}

	t := dataset.NewSourceTable(opts.Name)
	var warnings []errors.Warning
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || strings.HasPrefix(name, ".") || !strings.EqualFold(filepath.Ext(name), ".csv") {
			continue
		}
		path := filepath.Join(dir, name)
		data, err := dataset.ReadFile(path)
		if err != nil {
			return nil, nil, err
		}
		profiles, err := ReadProfiles(bytes.NewReader(data))
		if err != nil {
			return nil, nil, fmt.Errorf("%s: %w", path, err)
		}
		key := OccupationKey(name, opts.Suffix)
		if key == "" {
			warnings = append(warnings, errors.Warnf(errors.ErrCodeInvalidInput, "%s: no occupation key in file name", name))
			continue
		}
		if len(profiles) == 0 {
			warnings = append(warnings, errors.Warnf(errors.ErrCodeInvalidInput, "%s: no profiles", name))
		}
		if err := t.Add(key, Summarize(profiles)); err != nil {
			return nil, nil, err
		}
	}
	return t, warnings, nil
}
