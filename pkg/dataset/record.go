package dataset

// Record is the canonical long-form unit: one value per
// (occupation, group, source). Value is a percentage-point difference from
// the baseline, missing when either side lacks data.
type Record struct {
	Key    string
	Group  Group
	Source string
	Value  Value
}

// Sources returns the distinct source names in first-seen order.
func Sources(records []Record) []string {
	seen := make(map[string]bool)
	var out []string
	for _, r := range records {
		if !seen[r.Source] {
			seen[r.Source] = true
			out = append(out, r.Source)
		}
	}
	return out
}

// Lookup indexes records by (key, group, source).
type Lookup map[string]map[Group]map[string]Value

// Index builds a Lookup over records.
func Index(records []Record) Lookup {
	l := make(Lookup)
	for _, r := range records {
		byGroup, ok := l[r.Key]
		if !ok {
			byGroup = make(map[Group]map[string]Value)
			l[r.Key] = byGroup
		}
		bySource, ok := byGroup[r.Group]
		if !ok {
			bySource = make(map[string]Value)
			byGroup[r.Group] = bySource
		}
		bySource[r.Source] = r.Value
	}
	return l
}

// Get returns the value for (key, group, source), missing if absent.
func (l Lookup) Get(key string, g Group, source string) Value {
	return l[key][g][source]
}
