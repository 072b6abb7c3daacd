package layout

import (
	"github.com/genai-bias/biasplot/pkg/align"
	"github.com/genai-bias/biasplot/pkg/dataset"
)

// SummaryLabel is the label of the synthetic first row of every panel.
const SummaryLabel = "Average"

// Point is one source's marker in a row.
type Point struct {
	Source string
	Value  dataset.Value
	Offset float64
	// Y is the row index plus Offset.
	Y float64
}

// Row is one line of a panel.
type Row struct {
	Key     string
	Label   string
	Summary bool
	Index   int
	// Points holds one entry per figure source, in source order.
	Points []Point
}

// Panel holds the rows of one demographic group.
type Panel struct {
	Group dataset.Group
	Rows  []Row
}

// Figure is a complete dot-plot layout.
type Figure struct {
	Sources []string
	Panels  []Panel
	Options Options
}

// Build lays out records as one panel per group. index fixes the occupation
// rows and their order; sources fixes the point order within a row. The
// summary row averages each source over the indexed occupations only.
func Build(records []dataset.Record, index []string, labels align.LabelMap, groups []dataset.Group, sources []string, opts Options) Figure {
	if sources == nil {
		sources = dataset.Sources(records)
	}
	lookup := dataset.Index(records)

	fig := Figure{Sources: sources, Options: opts}
	for _, g := range groups {
		panel := Panel{Group: g, Rows: make([]Row, 0, len(index)+1)}

		summary := make(map[string]dataset.Value, len(sources))
		for _, s := range sources {
			vs := make([]dataset.Value, 0, len(index))
			for _, k := range index {
				vs = append(vs, lookup.Get(k, g, s))
			}
			summary[s] = dataset.Mean(vs)
		}
		panel.Rows = append(panel.Rows, newRow("", SummaryLabel, true, 0, sources, summary, opts))

		for i, k := range index {
			values := make(map[string]dataset.Value, len(sources))
			for _, s := range sources {
				values[s] = lookup.Get(k, g, s)
			}
			panel.Rows = append(panel.Rows, newRow(k, labels.Label(k), false, i+1, sources, values, opts))
		}
		fig.Panels = append(fig.Panels, panel)
	}
	return fig
}

func newRow(key, label string, summary bool, idx int, sources []string, values map[string]dataset.Value, opts Options) Row {
	offsets := Offsets(values, opts)
	row := Row{Key: key, Label: label, Summary: summary, Index: idx, Points: make([]Point, len(sources))}
	for i, s := range sources {
		row.Points[i] = Point{
			Source: s,
			Value:  values[s],
			Offset: offsets[s],
			Y:      float64(idx) + offsets[s],
		}
	}
	return row
}

// SummaryOnly returns a copy of f keeping only the summary row of each
// panel, with overlap offsets cleared.
func (f Figure) SummaryOnly() Figure {
	out := Figure{Sources: f.Sources, Options: f.Options}
	for _, p := range f.Panels {
		np := Panel{Group: p.Group}
		for _, r := range p.Rows {
			if !r.Summary {
				continue
			}
			nr := Row{Key: r.Key, Label: r.Label, Summary: true, Index: 0, Points: make([]Point, len(r.Points))}
			for i, pt := range r.Points {
				nr.Points[i] = Point{Source: pt.Source, Value: pt.Value}
			}
			np.Rows = append(np.Rows, nr)
		}
		out.Panels = append(out.Panels, np)
	}
	return out
}

// Rows returns the number of rows per panel.
func (f Figure) Rows() int {
	if len(f.Panels) == 0 {
		return 0
	}
	return len(f.Panels[0].Rows)
}
