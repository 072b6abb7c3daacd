// Package pipeline provides the chart pipeline for biasplot.
//
// This package implements the complete load → normalize → align → layout →
// render pipeline behind the plot command. Each stage is a plain function
// over the previous stage's output, so the stages can also be run on their
// own from tests.
//
// # Architecture
//
//  1. Load: read the source tables (and the baseline, when configured)
//  2. Normalize: turn tables into difference records
//  3. Align: pick, order and label the occupations
//  4. Layout: assign rows and overlap offsets
//  5. Render: produce SVG, PDF, PNG, CSV and JSON outputs
//
// Configuration errors from any stage abort the run. Data-quality problems
// are collected as warnings on the [Result] and reported through the
// observability hooks.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	cfg, _ := config.Load("chart.toml")
//	result, err := runner.Execute(ctx, cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, a := range result.Artifacts {
//	    os.WriteFile(a.Name, a.Data, 0644)
//	}
package pipeline

import (
	"time"

	"github.com/genai-bias/biasplot/pkg/align"
	"github.com/genai-bias/biasplot/pkg/dataset"
	"github.com/genai-bias/biasplot/pkg/errors"
	"github.com/genai-bias/biasplot/pkg/normalize"
	"github.com/genai-bias/biasplot/pkg/render/dotplot/layout"
)

// AveragesSuffix is appended to the output name of the averages-only figure.
const AveragesSuffix = "_averages"

// Artifact is one rendered output file.
type Artifact struct {
	// Name is the file name, without directory.
	Name   string
	Format string
	Data   []byte
	// Cached is set when Data came from the artifact cache.
	Cached bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	Tables   []*dataset.SourceTable
	Baseline *dataset.SourceTable

	Records  []dataset.Record
	Index    []string
	Labels   align.LabelMap
	Figure   layout.Figure
	Averages []normalize.Average

	// InputHash identifies the input tables and labels for artifact caching.
	InputHash string

	Artifacts []Artifact
	Warnings  []errors.Warning
	Stats     Stats
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Sources     int
	Occupations int
	Records     int
	LoadTime    time.Duration
	LayoutTime  time.Duration
	RenderTime  time.Duration
}

// CacheHits counts artifacts served from the cache.
func (r *Result) CacheHits() int {
	n := 0
	for _, a := range r.Artifacts {
		if a.Cached {
			n++
		}
	}
	return n
}
