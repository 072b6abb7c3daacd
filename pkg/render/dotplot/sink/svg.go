package sink

import (
	"bytes"
	"fmt"
	"math"

	"github.com/genai-bias/biasplot/pkg/render/dotplot/layout"
	"github.com/genai-bias/biasplot/pkg/render/dotplot/styles"
)

// Default figure text.
const (
	DefaultTitle  = "Racial Representation Across 41 Occupations"
	DefaultXLabel = "Difference from BLS (percentage-point difference)"
	LegendTitle   = "Model"
)

const (
	fontSize        = 11.0
	titleFontSize   = 26.0
	panelFontSize   = 14.0
	xLabelFontSize  = 14.0
	markerSize      = 8.5
	summaryMarker   = 10.5
	labelPad        = 10.0
	panelGap        = 18.0
	marginX         = 20.0
	titleHeight     = 56.0
	legendRowHeight = 20.0
	panelTitleSpace = 26.0
	axisSpace       = 64.0
)

type SVGOption func(*svgRenderer)

type svgRenderer struct {
	style      styles.Style
	title      string
	xlabel     string
	xmin, xmax float64
	panelWidth float64
	rowHeight  float64
	legend     bool
	markers    map[string]styles.Marker
}

func WithStyle(s styles.Style) SVGOption { return func(r *svgRenderer) { r.style = s } }
func WithTitle(t string) SVGOption        { return func(r *svgRenderer) { r.title = t } }
func WithXLabel(l string) SVGOption       { return func(r *svgRenderer) { r.xlabel = l } }
func WithoutLegend() SVGOption            { return func(r *svgRenderer) { r.legend = false } }

// WithXRange sets the value range of the x axis. Invalid ranges are ignored.
func WithXRange(lo, hi float64) SVGOption {
	return func(r *svgRenderer) {
		if lo < hi {
			r.xmin, r.xmax = lo, hi
		}
	}
}

// WithPanelWidth sets the plotting width of each panel in pixels.
func WithPanelWidth(w float64) SVGOption {
	return func(r *svgRenderer) {
		if w > 0 {
			r.panelWidth = w
		}
	}
}

// WithRowHeight sets the distance between rows in pixels.
func WithRowHeight(h float64) SVGOption {
	return func(r *svgRenderer) {
		if h > 0 {
			r.rowHeight = h
		}
	}
}

// WithMarkers overrides the marker of individual sources.
func WithMarkers(m map[string]styles.Marker) SVGOption {
	return func(r *svgRenderer) { r.markers = m }
}

func newSVGRenderer(opts ...SVGOption) svgRenderer {
	r := svgRenderer{
		style:      styles.Simple{},
		title:      DefaultTitle,
		xlabel:     DefaultXLabel,
		xmin:       -100,
		xmax:       100,
		panelWidth: 260,
		rowHeight:  22,
		legend:     true,
	}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

// geometry maps figure coordinates to pixels.
type geometry struct {
	r           svgRenderer
	labelWidth  float64
	top         float64
	plotHeight  float64
	width       float64
	height      float64
	panelLefts  []float64
	markers     map[string]styles.Marker
	legendLines int
}

func newGeometry(fig layout.Figure, r svgRenderer) geometry {
	g := geometry{r: r}

	for _, p := range fig.Panels {
		for _, row := range p.Rows {
			g.labelWidth = max(g.labelWidth, styles.TextWidth(row.Label, fontSize))
		}
	}
	g.labelWidth += 2 * labelPad

	g.markers = styles.Assign(fig.Sources)
	for s, m := range r.markers {
		g.markers[s] = m
	}

	left := marginX + g.labelWidth
	for range fig.Panels {
		g.panelLefts = append(g.panelLefts, left)
		left += r.panelWidth + panelGap
	}
	g.width = max(left-panelGap+marginX, 2*marginX+styles.TextWidth(r.title, titleFontSize))

	if r.legend && len(fig.Sources) > 0 {
		g.legendLines = 1 + len(fig.Sources)
	}
	g.top = titleHeight + float64(g.legendLines)*legendRowHeight + panelTitleSpace
	g.plotHeight = float64(fig.Rows()) * r.rowHeight
	g.height = g.top + g.plotHeight + axisSpace
	return g
}

// X returns the pixel x of value v in panel i, clamped to the axis.
func (g geometry) X(i int, v float64) float64 {
	v = min(max(v, g.r.xmin), g.r.xmax)
	return g.panelLefts[i] + (v-g.r.xmin)/(g.r.xmax-g.r.xmin)*g.r.panelWidth
}

// Y returns the pixel y of row coordinate y.
func (g geometry) Y(y float64) float64 {
	return g.top + (y+0.5)*g.r.rowHeight
}

// RenderSVG draws the figure: panels side by side sharing the row labels,
// a dashed zero line, dotted x grid, a bold summary label with a dashed
// separator below it, a legend and the axis title.
func RenderSVG(fig layout.Figure, opts ...SVGOption) []byte {
	r := newSVGRenderer(opts...)
	g := newGeometry(fig, r)

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f" font-family="%s">`+"\n",
		g.width, g.height, g.width, g.height, styles.EscapeXML(r.style.FontFamily()))
	buf.WriteString(`  <rect width="100%" height="100%" fill="white"/>` + "\n")

	renderTitle(&buf, g)
	if g.legendLines > 0 {
		renderLegend(&buf, g, fig.Sources)
	}
	renderRowLabels(&buf, g, fig)
	for i, p := range fig.Panels {
		renderPanel(&buf, g, i, p)
	}
	renderXLabel(&buf, g)

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func renderTitle(buf *bytes.Buffer, g geometry) {
	if g.r.title == "" {
		return
	}
	fmt.Fprintf(buf, `  <text x="%.1f" y="%.1f" text-anchor="middle" font-size="%.0f" font-weight="bold">%s</text>`+"\n",
		g.width/2, titleHeight*0.7, titleFontSize, styles.EscapeXML(g.r.title))
}

func renderLegend(buf *bytes.Buffer, g geometry, sources []string) {
	x := marginX
	y := titleHeight
	w := legendWidth(sources)
	h := float64(g.legendLines) * legendRowHeight
	fmt.Fprintf(buf, `  <rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="white" stroke="#cccccc"/>`+"\n",
		x, y-4, w, h)
	fmt.Fprintf(buf, `  <text x="%.1f" y="%.1f" font-size="%.0f" font-weight="bold">%s</text>`+"\n",
		x+8, y+legendRowHeight*0.7, fontSize, LegendTitle)
	for i, s := range sources {
		cy := y + float64(i+1)*legendRowHeight + legendRowHeight/2 - 4
		g.r.style.RenderMarker(buf, g.markers[s], x+16, cy, markerSize)
		fmt.Fprintf(buf, `  <text x="%.1f" y="%.1f" font-size="%.0f" dominant-baseline="middle">%s</text>`+"\n",
			x+30, cy, fontSize, styles.EscapeXML(s))
	}
}

// legendWidth returns the legend box width needed for sources.
func legendWidth(sources []string) float64 {
	w := styles.TextWidth(LegendTitle, fontSize)
	for _, s := range sources {
		w = max(w, styles.TextWidth(s, fontSize))
	}
	return w + 42
}

func renderRowLabels(buf *bytes.Buffer, g geometry, fig layout.Figure) {
	if len(fig.Panels) == 0 {
		return
	}
	x := marginX + g.labelWidth - labelPad
	for _, row := range fig.Panels[0].Rows {
		weight := ""
		if row.Summary {
			weight = ` font-weight="bold"`
		}
		fmt.Fprintf(buf, `  <text x="%.1f" y="%.1f" font-size="%.0f" text-anchor="end" dominant-baseline="middle"%s>%s</text>`+"\n",
			x, g.Y(float64(row.Index)), fontSize, weight, styles.EscapeXML(row.Label))
	}
}

func renderPanel(buf *bytes.Buffer, g geometry, i int, p layout.Panel) {
	left := g.panelLefts[i]
	top, bottom := g.top, g.top+g.plotHeight

	fmt.Fprintf(buf, `  <g class="panel" id="panel-%s">`+"\n", styles.EscapeXML(string(p.Group)))
	fmt.Fprintf(buf, `  <text x="%.1f" y="%.1f" text-anchor="middle" font-size="%.0f">%s</text>`+"\n",
		left+g.r.panelWidth/2, top-8, panelFontSize, styles.EscapeXML(string(p.Group)))
	fmt.Fprintf(buf, `  <rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="none" stroke="black" stroke-width="0.8"/>`+"\n",
		left, top, g.r.panelWidth, g.plotHeight)

	for _, t := range ticks(g.r.xmin, g.r.xmax) {
		x := g.X(i, t)
		fmt.Fprintf(buf, `  <line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="#b0b0b0" stroke-width="0.8" stroke-dasharray="1,3"/>`+"\n",
			x, top, x, bottom)
		fmt.Fprintf(buf, `  <text x="%.1f" y="%.1f" text-anchor="middle" font-size="%.0f">%s</text>`+"\n",
			x, bottom+16, fontSize, formatTick(t))
	}

	if g.r.xmin < 0 && g.r.xmax > 0 {
		x := g.X(i, 0)
		fmt.Fprintf(buf, `  <line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="black" stroke-width="1" stroke-dasharray="5,4"/>`+"\n",
			x, top, x, bottom)
	}

	if len(p.Rows) > 1 && p.Rows[0].Summary {
		y := g.Y(0.5)
		fmt.Fprintf(buf, `  <line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="gray" stroke-opacity="0.55" stroke-width="0.8" stroke-dasharray="4,3"/>`+"\n",
			left, y, left+g.r.panelWidth, y)
	}

	for _, row := range p.Rows {
		size := markerSize
		if row.Summary {
			size = summaryMarker
		}
		for _, pt := range row.Points {
			if !pt.Value.Valid {
				continue
			}
			g.r.style.RenderMarker(buf, g.markers[pt.Source], g.X(i, pt.Value.V), g.Y(pt.Y), size)
		}
	}
	buf.WriteString("  </g>\n")
}

func renderXLabel(buf *bytes.Buffer, g geometry) {
	if g.r.xlabel == "" || len(g.panelLefts) == 0 {
		return
	}
	lo := g.panelLefts[0]
	hi := g.panelLefts[len(g.panelLefts)-1] + g.r.panelWidth
	fmt.Fprintf(buf, `  <text x="%.1f" y="%.1f" text-anchor="middle" font-size="%.0f">%s</text>`+"\n",
		(lo+hi)/2, g.height-14, xLabelFontSize, styles.EscapeXML(g.r.xlabel))
}

// ticks returns evenly spaced values covering [lo, hi], about four steps.
func ticks(lo, hi float64) []float64 {
	step := niceStep((hi - lo) / 4)
	var out []float64
	for t := math.Ceil(lo/step) * step; t <= hi+step*1e-9; t += step {
		out = append(out, math.Round(t/step)*step)
	}
	return out
}

func niceStep(raw float64) float64 {
	if raw <= 0 {
		return 1
	}
	mag := math.Pow(10, math.Floor(math.Log10(raw)))
	switch f := raw / mag; {
	case f <= 1:
		return mag
	case f <= 2:
		return 2 * mag
	case f <= 2.5:
		return 2.5 * mag
	case f <= 5:
		return 5 * mag
	default:
		return 10 * mag
	}
}

func formatTick(t float64) string {
	if t == math.Trunc(t) {
		return fmt.Sprintf("%.0f", t)
	}
	return fmt.Sprintf("%g", t)
}
