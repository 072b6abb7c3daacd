package pipeline

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/genai-bias/biasplot/pkg/align"
	"github.com/genai-bias/biasplot/pkg/cache"
	"github.com/genai-bias/biasplot/pkg/config"
	"github.com/genai-bias/biasplot/pkg/dataset"
	"github.com/genai-bias/biasplot/pkg/errors"
	"github.com/genai-bias/biasplot/pkg/normalize"
	"github.com/genai-bias/biasplot/pkg/observability"
	"github.com/genai-bias/biasplot/pkg/render/dotplot/layout"
)

// Runner encapsulates pipeline execution with artifact caching.
//
// The Runner is stateless except for the cache and logger. Multiple
// goroutines can safely use the same Runner with different configs.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete load → normalize → align → layout → render
// pipeline.
func (r *Runner) Execute(ctx context.Context, cfg config.Config) (*Result, error) {
	result, in, err := r.prepare(ctx, cfg)
	if err != nil {
		return nil, err
	}
	hooks := observability.Pipeline()

	// Stage 4: Layout
	groups, _ := cfg.Groups()
	sources := make([]string, len(in.Tables))
	for i, t := range in.Tables {
		sources[i] = t.Name
	}
	start := time.Now()
	hooks.OnStageStart(ctx, observability.StageLayout)
	result.Figure = layout.Build(result.Records, result.Index, result.Labels, groups, sources, cfg.LayoutOptions())
	result.Stats.LayoutTime = time.Since(start)
	hooks.OnStageComplete(ctx, observability.StageLayout, result.Figure.Rows(), result.Stats.LayoutTime, nil)

	r.Logger.Info("computed layout",
		"panels", len(result.Figure.Panels),
		"rows", result.Figure.Rows(),
		"duration", result.Stats.LayoutTime)

	// Stage 5: Render
	start = time.Now()
	hooks.OnStageStart(ctx, observability.StageRender)
	artifacts, err := r.Render(ctx, result.Figure, result.InputHash, cfg)
	result.Stats.RenderTime = time.Since(start)
	hooks.OnStageComplete(ctx, observability.StageRender, len(artifacts), result.Stats.RenderTime, err)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts

	r.Logger.Info("rendered outputs",
		"formats", cfg.Formats,
		"artifacts", len(artifacts),
		"cached", result.CacheHits(),
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Prepare runs the load, normalize and align stages only and computes the
// per-source averages. The returned result has no figure or artifacts.
func (r *Runner) Prepare(ctx context.Context, cfg config.Config) (*Result, error) {
	result, _, err := r.prepare(ctx, cfg)
	return result, err
}

func (r *Runner) prepare(ctx context.Context, cfg config.Config) (*Result, *Inputs, error) {
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}
	hooks := observability.Pipeline()
	result := &Result{}

	// Stage 1: Load
	start := time.Now()
	hooks.OnStageStart(ctx, observability.StageLoad)
	in, err := Load(ctx, cfg)
	hooks.OnStageComplete(ctx, observability.StageLoad, len(cfg.Sources), time.Since(start), err)
	if err != nil {
		return nil, nil, fmt.Errorf("load: %w", err)
	}
	result.Tables = in.Tables
	result.Baseline = in.Baseline
	result.InputHash = in.Hash
	result.Stats.LoadTime = time.Since(start)
	result.Stats.Sources = len(in.Tables)

	r.Logger.Info("loaded tables",
		"sources", len(in.Tables),
		"kind", cfg.DataKind(),
		"duration", result.Stats.LoadTime)

	// Stage 2: Normalize
	if err := r.normalize(ctx, cfg, result); err != nil {
		return nil, nil, fmt.Errorf("normalize: %w", err)
	}

	// Stage 3: Align
	if err := r.align(ctx, cfg, in, result); err != nil {
		return nil, nil, fmt.Errorf("align: %w", err)
	}
	groups, _ := cfg.Groups()
	result.Averages = normalize.Averages(result.Records, groups, result.Index)
	return result, in, nil
}

func (r *Runner) normalize(ctx context.Context, cfg config.Config, result *Result) error {
	hooks := observability.Pipeline()
	start := time.Now()
	hooks.OnStageStart(ctx, observability.StageNormalize)

	groups, _ := cfg.Groups()
	var (
		res normalize.Result
		err error
	)
	if cfg.DataKind() == dataset.Percentages {
		res, err = normalize.Normalize(result.Tables, result.Baseline, groups)
	} else {
		res, err = normalize.FromDifferences(result.Tables, groups)
	}
	hooks.OnStageComplete(ctx, observability.StageNormalize, len(res.Records), time.Since(start), err)
	if err != nil {
		return err
	}
	result.Records = res.Records
	result.Stats.Records = len(res.Records)
	r.warn(ctx, observability.StageNormalize, result, res.Warnings...)
	return nil
}

func (r *Runner) align(ctx context.Context, cfg config.Config, in *Inputs, result *Result) error {
	hooks := observability.Pipeline()
	start := time.Now()
	hooks.OnStageStart(ctx, observability.StageAlign)

	policy, _ := align.ParsePolicy(cfg.Policy)
	dir, _ := align.ParseDirection(cfg.Direction)

	index, err := align.Index(result.Records, policy)
	if err == nil {
		index = align.Order(index, result.Records, cfg.Reference(), dir)
		result.Labels, err = r.labels(ctx, cfg, in, index, result)
	}
	hooks.OnStageComplete(ctx, observability.StageAlign, len(index), time.Since(start), err)
	if err != nil {
		return err
	}
	result.Index = index
	result.Stats.Occupations = len(index)

	r.Logger.Debug("aligned occupations",
		"policy", policy,
		"direction", dir,
		"occupations", len(index))
	return nil
}

// labels resolves a display label for every key in index. A labels file
// wins, then the requested mode. Auto mode prefers the baseline's own label
// column and falls back to the curated list.
func (r *Runner) labels(ctx context.Context, cfg config.Config, in *Inputs, index []string, result *Result) (align.LabelMap, error) {
	if in.LabelFile != nil {
		m, unmapped := align.MapLabels(index, in.LabelFile)
		r.warnUnmapped(ctx, "labels_file", unmapped, result)
		return m, nil
	}

	switch cfg.Labels {
	case config.LabelsNice:
		m, _ := align.MapLabels(index, nil)
		return m, nil
	case config.LabelsAuto:
		if in.Baseline != nil && len(in.Baseline.Labels) > 0 {
			m, unmapped := align.MapLabels(index, in.Baseline.Labels)
			r.warnUnmapped(ctx, "baseline", unmapped, result)
			return m, nil
		}
	}

	m, warnings, err := align.ZipLabels(index, align.CuratedOccupations, cfg.StrictLabels())
	if err != nil {
		return nil, err
	}
	r.warn(ctx, observability.StageAlign, result, warnings...)
	return m, nil
}

func (r *Runner) warnUnmapped(ctx context.Context, from string, unmapped []string, result *Result) {
	if len(unmapped) == 0 {
		return
	}
	r.warn(ctx, observability.StageAlign, result, errors.Warnf(errors.ErrCodeLabelMismatch,
		"%d occupation(s) have no label in %s: %s", len(unmapped), from, strings.Join(unmapped, ", ")))
}

func (r *Runner) warn(ctx context.Context, stage observability.Stage, result *Result, warnings ...errors.Warning) {
	for _, w := range warnings {
		result.Warnings = append(result.Warnings, w)
		observability.Pipeline().OnWarning(ctx, stage, w.String())
		r.Logger.Warn(w.Message, "code", w.Code, "stage", stage)
	}
}
