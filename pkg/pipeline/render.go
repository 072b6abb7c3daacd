package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/genai-bias/biasplot/pkg/cache"
	"github.com/genai-bias/biasplot/pkg/config"
	"github.com/genai-bias/biasplot/pkg/observability"
	"github.com/genai-bias/biasplot/pkg/render"
	"github.com/genai-bias/biasplot/pkg/render/dotplot/layout"
	"github.com/genai-bias/biasplot/pkg/render/dotplot/sink"
	"github.com/genai-bias/biasplot/pkg/render/dotplot/styles"
)

// artifactTTL bounds how long rendered outputs stay in the cache.
const artifactTTL = 7 * 24 * time.Hour

// Render produces one artifact per configured format, plus an
// averages-only figure for the image formats when cfg.Averages is set.
// With a non-empty inputHash, artifacts are served from and stored in the
// runner's cache.
func (r *Runner) Render(ctx context.Context, fig layout.Figure, inputHash string, cfg config.Config) ([]Artifact, error) {
	svgOpts := SVGOptions(fig, cfg)

	var figHash string
	if inputHash != "" {
		data, err := sink.RenderJSON(fig)
		if err != nil {
			return nil, err
		}
		figHash = cache.Hash(data)
	}

	var out []Artifact
	for _, format := range cfg.Formats {
		a, err := r.artifact(ctx, inputHash, figHash, cfg, format, false, func() ([]byte, error) {
			return renderFormat(ctx, fig, format, cfg.PNGScale, svgOpts)
		})
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		out = append(out, a)

		if !cfg.Averages || !isImage(format) {
			continue
		}
		a, err = r.artifact(ctx, inputHash, figHash, cfg, format, true, func() ([]byte, error) {
			return renderAverages(ctx, fig, format, cfg.PNGScale, svgOpts)
		})
		if err != nil {
			return nil, fmt.Errorf("render %s averages: %w", format, err)
		}
		out = append(out, a)
	}
	return out, nil
}

// SVGOptions translates the chart settings of cfg into sink options.
func SVGOptions(fig layout.Figure, cfg config.Config) []sink.SVGOption {
	style, _ := styles.ByName(cfg.Style)
	return []sink.SVGOption{
		sink.WithStyle(style),
		sink.WithTitle(cfg.Title),
		sink.WithXLabel(cfg.XLabel),
		sink.WithXRange(cfg.XMin, cfg.XMax),
		sink.WithPanelWidth(cfg.PanelWidth),
		sink.WithRowHeight(cfg.RowHeight),
		sink.WithMarkers(styles.Assign(fig.Sources)),
	}
}

func (r *Runner) artifact(ctx context.Context, inputHash, figHash string, cfg config.Config, format string, averages bool, build func() ([]byte, error)) (Artifact, error) {
	name := cfg.OutputName
	if averages {
		name += AveragesSuffix
	}
	a := Artifact{Name: name + "." + format, Format: format}

	var key string
	if inputHash != "" {
		key = r.Keyer.ArtifactKey(inputHash, cache.ArtifactKeyOpts{
			Format:     a.Name,
			Figure:     figHash,
			Style:      cfg.Style,
			Title:      cfg.Title,
			XLabel:     cfg.XLabel,
			XMin:       cfg.XMin,
			XMax:       cfg.XMax,
			PanelWidth: cfg.PanelWidth,
			RowHeight:  cfg.RowHeight,
			Scale:      cfg.PNGScale,
		})
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			observability.Cache().OnCacheHit(ctx, "artifact")
			a.Data, a.Cached = data, true
			return a, nil
		}
		observability.Cache().OnCacheMiss(ctx, "artifact")
	}

	data, err := build()
	if err != nil {
		return a, err
	}
	a.Data = data

	if key != "" {
		if err := r.Cache.Set(ctx, key, data, artifactTTL); err != nil {
			r.Logger.Warn("cache write failed", "artifact", a.Name, "err", err)
		} else {
			observability.Cache().OnCacheSet(ctx, "artifact", len(data))
		}
	}
	return a, nil
}

func isImage(format string) bool {
	return format == config.FormatSVG || format == config.FormatPDF || format == config.FormatPNG
}

func renderFormat(ctx context.Context, fig layout.Figure, format string, scale float64, svgOpts []sink.SVGOption) ([]byte, error) {
	switch format {
	case config.FormatSVG:
		return sink.RenderSVG(fig, svgOpts...), nil
	case config.FormatPDF:
		return sink.RenderPDF(ctx, fig, sink.WithPDFSVGOptions(svgOpts...))
	case config.FormatPNG:
		return sink.RenderPNG(ctx, fig, sink.WithPNGSVGOptions(svgOpts...), sink.WithScale(scale))
	case config.FormatJSON:
		return sink.RenderJSON(fig)
	case config.FormatCSV:
		var buf bytes.Buffer
		if err := sink.WriteCSV(&buf, fig, svgOpts...); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	}
	return nil, fmt.Errorf("unsupported format: %s", format)
}

func renderAverages(ctx context.Context, fig layout.Figure, format string, scale float64, svgOpts []sink.SVGOption) ([]byte, error) {
	svg := sink.RenderAverages(fig, svgOpts...)
	switch format {
	case config.FormatPDF:
		return render.ToPDF(ctx, svg)
	case config.FormatPNG:
		return render.ToPNG(ctx, svg, scale)
	}
	return svg, nil
}
