package align

import (
	"slices"
	"strings"
	"unicode"

	"github.com/genai-bias/biasplot/pkg/dataset"
	"github.com/genai-bias/biasplot/pkg/errors"
)

// LabelMap maps occupation keys to display labels.
type LabelMap map[string]string

// Label returns the label for key, or NiceLabel(key) if none is set.
func (m LabelMap) Label(key string) string {
	if l, ok := m[key]; ok && l != "" {
		return l
	}
	return NiceLabel(key)
}

// CuratedOccupations is the hand-maintained list of the 41 study
// occupations, in the alphabetical order of their search terms.
var CuratedOccupations = []string{
	"administrative assistant",
	"author",
	"bartender",
	"biologist",
	"building inspector",
	"bus driver",
	"butcher",
	"chef",
	"chemist",
	"chief executive officer",
	"childcare worker",
	"computer programmer",
	"construction worker",
	"cook",
	"crane operator",
	"custodian",
	"customer service representative",
	"doctor",
	"drafter",
	"electrician",
	"engineer",
	"garbage collector",
	"housekeeper",
	"insurance sales agent",
	"lab tech",
	"librarian",
	"mail carrier",
	"nurse",
	"nurse practitioner",
	"pharmacist",
	"pilot",
	"plumber",
	"police officer",
	"primary school teacher",
	"receptionist",
	"roofer",
	"security guard",
	"software developer",
	"special ed teacher",
	"truck driver",
	"welder",
}

// ZipLabels pairs sorted(keys) with labels positionally and title-cases the
// labels. When the lengths differ it fails with LABEL_MISMATCH if strict is
// set, otherwise it pairs up the shorter length and returns a warning.
// Keys left without a label fall back to NiceLabel via LabelMap.Label.
func ZipLabels(keys, labels []string, strict bool) (LabelMap, []errors.Warning, error) {
	sorted := slices.Clone(keys)
	slices.Sort(sorted)

	var warnings []errors.Warning
	if len(sorted) != len(labels) {
		if strict {
			return nil, nil, errors.New(errors.ErrCodeLabelMismatch,
				"%d occupations but %d curated labels", len(sorted), len(labels))
		}
		warnings = append(warnings, errors.Warnf(errors.ErrCodeLabelMismatch,
			"%d occupations but %d curated labels; pairing the first %d",
			len(sorted), len(labels), min(len(sorted), len(labels))))
	}

	m := make(LabelMap, len(sorted))
	for i := range min(len(sorted), len(labels)) {
		m[sorted[i]] = dataset.TitleCase(labels[i])
	}
	return m, warnings, nil
}

// MapLabels resolves a label for every key from dict. Keys absent from dict
// get NiceLabel(key) and are returned in unmapped.
func MapLabels(keys []string, dict map[string]string) (m LabelMap, unmapped []string) {
	m = make(LabelMap, len(keys))
	for _, k := range keys {
		if l, ok := dict[k]; ok && strings.TrimSpace(l) != "" {
			m[k] = strings.TrimSpace(l)
			continue
		}
		m[k] = NiceLabel(k)
		unmapped = append(unmapped, k)
	}
	return m, unmapped
}

// NiceLabel derives a display label from a raw key: underscores become
// spaces, camelCase words are split, whitespace collapses and every word is
// title-cased ("bus_driver" -> "Bus Driver", "nursePractitioner" ->
// "Nurse Practitioner").
func NiceLabel(key string) string {
	var b strings.Builder
	runes := []rune(key)
	for i, r := range runes {
		switch {
		case r == '_' || r == '-':
			b.WriteRune(' ')
			continue
		case i > 0 && unicode.IsUpper(r) && unicode.IsLower(runes[i-1]):
			b.WriteRune(' ')
		}
		b.WriteRune(r)
	}
	words := strings.Fields(b.String())
	return dataset.TitleCase(strings.ToLower(strings.Join(words, " ")))
}
