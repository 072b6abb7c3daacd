package dataset

import (
	"slices"

	"github.com/genai-bias/biasplot/pkg/errors"
)

// Row is one occupation in a SourceTable.
type Row struct {
	Key    string
	Values map[Group]Value
}

// Get returns the value for g, missing if absent.
func (r Row) Get(g Group) Value {
	if r.Values == nil {
		return Missing
	}
	return r.Values[g]
}

// SourceTable holds one row per occupation for a single data source.
// Rows keep their input order.
type SourceTable struct {
	Name string
	Rows []Row

	// Labels maps keys to display names when the input carried a label
	// column (the BLS "Occupation" column).
	Labels map[string]string

	index map[string]int
}

// NewSourceTable creates an empty table.
func NewSourceTable(name string) *SourceTable {
	return &SourceTable{Name: name, index: make(map[string]int)}
}

// Add appends a row. A key already present is a DUPLICATE_KEY error.
func (t *SourceTable) Add(key string, values map[Group]Value) error {
	if t.index == nil {
		t.index = make(map[string]int)
	}
	if _, ok := t.index[key]; ok {
		return errors.New(errors.ErrCodeDuplicateKey, "%s: duplicate occupation %q", t.Name, key)
	}
	t.index[key] = len(t.Rows)
	t.Rows = append(t.Rows, Row{Key: key, Values: values})
	return nil
}

// Row returns the row for key.
func (t *SourceTable) Row(key string) (Row, bool) {
	i, ok := t.index[key]
	if !ok {
		return Row{}, false
	}
	return t.Rows[i], true
}

// Has reports whether key is present.
func (t *SourceTable) Has(key string) bool {
	_, ok := t.index[key]
	return ok
}

// Keys returns the occupation keys in row order.
func (t *SourceTable) Keys() []string {
	keys := make([]string, len(t.Rows))
	for i, r := range t.Rows {
		keys[i] = r.Key
	}
	return keys
}

// Len returns the number of rows.
func (t *SourceTable) Len() int { return len(t.Rows) }

// Groups returns the groups present in at least one row, in AllGroups order
// followed by Men.
func (t *SourceTable) Groups() []Group {
	seen := make(map[Group]bool)
	for _, r := range t.Rows {
		for g := range r.Values {
			seen[g] = true
		}
	}
	var out []Group
	for _, g := range append(slices.Clone(AllGroups), Men) {
		if seen[g] {
			out = append(out, g)
		}
	}
	return out
}
