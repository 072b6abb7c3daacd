package sink

import (
	"github.com/genai-bias/biasplot/pkg/render/dotplot/layout"
)

// AveragesSuffix is appended to the title of the averages-only figure.
const AveragesSuffix = " (Averages Only)"

// RenderAverages draws only the summary row of each panel, titled with
// AveragesSuffix.
func RenderAverages(fig layout.Figure, opts ...SVGOption) []byte {
	r := newSVGRenderer(opts...)
	all := append([]SVGOption{WithRowHeight(40)}, opts...)
	if r.title != "" {
		all = append(all, WithTitle(r.title+AveragesSuffix))
	}
	return RenderSVG(fig.SummaryOnly(), all...)
}
