package sink

import (
	"encoding/json"

	"github.com/genai-bias/biasplot/pkg/render/dotplot/layout"
)

type jsonOutput struct {
	Sources   []string    `json:"sources"`
	Tolerance float64     `json:"tolerance"`
	BaseUnit  float64     `json:"base_unit"`
	Panels    []jsonPanel `json:"panels"`
}

type jsonPanel struct {
	Group string    `json:"group"`
	Rows  []jsonRow `json:"rows"`
}

type jsonRow struct {
	Key     string      `json:"key,omitempty"`
	Label   string      `json:"label"`
	Summary bool        `json:"summary,omitempty"`
	Index   int         `json:"index"`
	Points  []jsonPoint `json:"points"`
}

type jsonPoint struct {
	Source string   `json:"source"`
	Value  *float64 `json:"value"`
	Offset float64  `json:"offset"`
	Y      float64  `json:"y"`
}

// RenderJSON exports the complete figure layout. Missing values are null.
func RenderJSON(fig layout.Figure) ([]byte, error) {
	out := jsonOutput{
		Sources:   fig.Sources,
		Tolerance: fig.Options.Tolerance,
		BaseUnit:  fig.Options.BaseUnit,
		Panels:    make([]jsonPanel, 0, len(fig.Panels)),
	}
	for _, p := range fig.Panels {
		jp := jsonPanel{Group: string(p.Group), Rows: make([]jsonRow, 0, len(p.Rows))}
		for _, r := range p.Rows {
			jr := jsonRow{Key: r.Key, Label: r.Label, Summary: r.Summary, Index: r.Index, Points: make([]jsonPoint, 0, len(r.Points))}
			for _, pt := range r.Points {
				jpt := jsonPoint{Source: pt.Source, Offset: pt.Offset, Y: pt.Y}
				if pt.Value.Valid {
					v := pt.Value.V
					jpt.Value = &v
				}
				jr.Points = append(jr.Points, jpt)
			}
			jp.Rows = append(jp.Rows, jr)
		}
		out.Panels = append(out.Panels, jp)
	}
	return json.MarshalIndent(out, "", "  ")
}
