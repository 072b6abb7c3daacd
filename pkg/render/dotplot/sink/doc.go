// Package sink provides output format renderers for dot-plot figures.
//
// # Overview
//
// A "sink" transforms a computed [layout.Figure] into a final output format:
//
//   - SVG: panels side by side with a shared occupation axis
//   - PDF: print-ready output (requires rsvg-convert)
//   - PNG: raster image output (requires rsvg-convert)
//   - CSV: every plotted point with its pixel position
//   - JSON: the full figure for regression comparisons
//
// # SVG Output
//
// [RenderSVG] draws one panel per group with the x axis fixed to
// [-100, 100] unless [WithXRange] says otherwise. Each source keeps one
// marker shape and colour across panels, the summary row is labelled in
// bold and separated from the occupations by a dashed line.
//
//	svg := sink.RenderSVG(fig,
//	    sink.WithTitle("Gender Representation Across 41 Occupations"),
//	    sink.WithStyle(styles.Monochrome{}),
//	)
//
// [RenderAverages] draws the summary rows alone.
package sink
