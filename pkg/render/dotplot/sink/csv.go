package sink

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/genai-bias/biasplot/pkg/render/dotplot/layout"
)

// CSVHeader is the header row written by WriteCSV.
var CSVHeader = []string{"occupation", "label", "group", "source", "value", "offset", "x_px", "y_px", "is_summary"}

// WriteCSV writes every plotted point of fig with its pixel position under
// the given SVG options. Missing values are written as an empty value and
// no pixel position. Points of the summary row have no occupation and
// is_summary set to true.
func WriteCSV(w io.Writer, fig layout.Figure, opts ...SVGOption) error {
	g := newGeometry(fig, newSVGRenderer(opts...))

	cw := csv.NewWriter(w)
	if err := cw.Write(CSVHeader); err != nil {
		return err
	}
	for i, p := range fig.Panels {
		for _, r := range p.Rows {
			for _, pt := range r.Points {
				x, y := "", ""
				if pt.Value.Valid {
					x = fmtFloat(g.X(i, pt.Value.V))
					y = fmtFloat(g.Y(pt.Y))
				}
				rec := []string{
					r.Key, r.Label, string(p.Group), pt.Source,
					pt.Value.Format(4), fmtFloat(pt.Offset), x, y,
					strconv.FormatBool(r.Summary),
				}
				if err := cw.Write(rec); err != nil {
					return err
				}
			}
		}
	}
	cw.Flush()
	return cw.Error()
}

func fmtFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', 2, 64)
}
