// Package render provides chart rendering for occupational bias figures.
//
// # Overview
//
// Charts are drawn as SVG by the [dotplot] subpackages and converted to
// other formats here:
//
//   - Generic format conversion (SVG to PDF/PNG)
//   - Comparative dot plots (in [dotplot] subpackages)
//
// # Format Conversion
//
// The [ToPDF] and [ToPNG] functions convert any SVG using the external
// rsvg-convert tool (from librsvg). A missing tool is an UNSUPPORTED error;
// [Available] lets callers check up front.
//
//	svg := sink.RenderSVG(fig)
//	pdf, err := render.ToPDF(ctx, svg)
//	png, err := render.ToPNG(ctx, svg, 2.0)  // 2x scale
//
// # Dot Plots
//
//   - [dotplot/layout]: overlap offsets and figure assembly
//   - [dotplot/styles]: markers, palette, text helpers
//   - [dotplot/sink]: SVG, PDF, PNG, CSV and JSON output
//
// [dotplot]: github.com/genai-bias/biasplot/pkg/render/dotplot/sink
// [dotplot/layout]: github.com/genai-bias/biasplot/pkg/render/dotplot/layout
// [dotplot/styles]: github.com/genai-bias/biasplot/pkg/render/dotplot/styles
// [dotplot/sink]: github.com/genai-bias/biasplot/pkg/render/dotplot/sink
package render
