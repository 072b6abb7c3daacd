package align

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/genai-bias/biasplot/pkg/dataset"
	"github.com/genai-bias/biasplot/pkg/errors"
)

func rec(key, source string, g dataset.Group, v dataset.Value) dataset.Record {
	return dataset.Record{Key: key, Group: g, Source: source, Value: v}
}

func TestIntersect(t *testing.T) {
	records := []dataset.Record{
		rec("pilot", "A", dataset.White, dataset.Some(1)),
		rec("nurse", "A", dataset.White, dataset.Some(1)),
		rec("chef", "A", dataset.White, dataset.Some(1)),
		rec("nurse", "B", dataset.White, dataset.Some(1)),
		rec("pilot", "B", dataset.White, dataset.Missing),
	}

	got, err := Intersect(records)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"pilot", "nurse"}, got); diff != "" {
		t.Errorf("Intersect mismatch (-want +got):\n%s", diff)
	}

	if diff := cmp.Diff([]string{"pilot", "nurse", "chef"}, Union(records)); diff != "" {
		t.Errorf("Union mismatch (-want +got):\n%s", diff)
	}
}

func TestIntersectEmpty(t *testing.T) {
	records := []dataset.Record{
		rec("pilot", "A", dataset.White, dataset.Some(1)),
		rec("nurse", "B", dataset.White, dataset.Some(1)),
	}
	_, err := Intersect(records)
	if !errors.Is(err, errors.ErrCodeNoCommonOccupations) {
		t.Errorf("error = %v, want NO_COMMON_OCCUPATIONS", err)
	}
	if _, err := Index(nil, PolicyUnion); !errors.Is(err, errors.ErrCodeNoCommonOccupations) {
		t.Errorf("union of nothing: error = %v", err)
	}
}

func TestParsePolicy(t *testing.T) {
	for in, want := range map[string]Policy{"": PolicyIntersect, "intersect": PolicyIntersect, "union": PolicyUnion} {
		got, err := ParsePolicy(in)
		if err != nil || got != want {
			t.Errorf("ParsePolicy(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := ParsePolicy("outer"); !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("ParsePolicy(outer) error = %v", err)
	}
}

func TestOrder(t *testing.T) {
	records := []dataset.Record{
		rec("a", "X", dataset.White, dataset.Some(10)),
		rec("a", "Y", dataset.White, dataset.Some(20)), // mean 15
		rec("b", "X", dataset.White, dataset.Some(-5)),
		rec("b", "Y", dataset.White, dataset.Missing), // mean -5
		rec("c", "X", dataset.White, dataset.Missing),
		rec("c", "Y", dataset.White, dataset.Missing), // undefined
		rec("d", "X", dataset.White, dataset.Some(15)), // mean 15, ties with a
		rec("e", "X", dataset.Black, dataset.Some(99)), // no White value
	}
	keys := []string{"a", "b", "c", "d", "e"}

	tests := []struct {
		dir  Direction
		want []string
	}{
		{Descending, []string{"a", "d", "b", "c", "e"}},
		{Ascending, []string{"b", "a", "d", "c", "e"}},
	}
	for _, tt := range tests {
		t.Run(string(tt.dir), func(t *testing.T) {
			got := Order(keys, records, dataset.White, tt.dir)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Order mismatch (-want +got):\n%s", diff)
			}
		})
	}

	if diff := cmp.Diff([]string{"a", "b", "c", "d", "e"}, keys); diff != "" {
		t.Errorf("Order modified its input:\n%s", diff)
	}
}

func TestZipLabels(t *testing.T) {
	keys := []string{"nurse", "busdriver", "pilot"}
	labels := []string{"bus driver", "nurse", "pilot"}

	m, warnings, err := ZipLabels(keys, labels, true)
	if err != nil {
		t.Fatal(err)
	}
	want := LabelMap{"busdriver": "Bus Driver", "nurse": "Nurse", "pilot": "Pilot"}
	if diff := cmp.Diff(want, m); diff != "" {
		t.Errorf("ZipLabels mismatch (-want +got):\n%s", diff)
	}
	if len(warnings) != 0 {
		t.Errorf("unexpected warnings: %v", warnings)
	}
}

func TestZipLabelsMismatch(t *testing.T) {
	keys := []string{"a", "b", "c"}
	labels := []string{"alpha", "beta"}

	if _, _, err := ZipLabels(keys, labels, true); !errors.Is(err, errors.ErrCodeLabelMismatch) {
		t.Fatalf("strict: error = %v, want LABEL_MISMATCH", err)
	}

	m, warnings, err := ZipLabels(keys, labels, false)
	if err != nil {
		t.Fatal(err)
	}
	if len(warnings) != 1 || warnings[0].Code != errors.ErrCodeLabelMismatch {
		t.Errorf("warnings = %v", warnings)
	}
	if len(m) != 2 {
		t.Errorf("got %d labels, want 2", len(m))
	}
	if got := m.Label("c"); got != "C" {
		t.Errorf("fallback label = %q, want C", got)
	}
}

func TestMapLabels(t *testing.T) {
	dict := map[string]string{"nurse": "Registered Nurse", "pilot": " "}
	m, unmapped := MapLabels([]string{"nurse", "pilot", "lab_tech"}, dict)

	want := LabelMap{"nurse": "Registered Nurse", "pilot": "Pilot", "lab_tech": "Lab Tech"}
	if diff := cmp.Diff(want, m); diff != "" {
		t.Errorf("MapLabels mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"pilot", "lab_tech"}, unmapped); diff != "" {
		t.Errorf("unmapped mismatch (-want +got):\n%s", diff)
	}
}

func TestNiceLabel(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"bus_driver", "Bus Driver"},
		{"nursePractitioner", "Nurse Practitioner"},
		{"  chief   executive officer ", "Chief Executive Officer"},
		{"CEO", "Ceo"},
		{"welder", "Welder"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := NiceLabel(tt.in); got != tt.want {
			t.Errorf("NiceLabel(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestCuratedOccupations(t *testing.T) {
	if len(CuratedOccupations) != 41 {
		t.Errorf("got %d curated occupations, want 41", len(CuratedOccupations))
	}
	for i := 1; i < len(CuratedOccupations); i++ {
		if CuratedOccupations[i-1] >= CuratedOccupations[i] {
			t.Errorf("curated list not sorted at %q", CuratedOccupations[i])
		}
	}
}
