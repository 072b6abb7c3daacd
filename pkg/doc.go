// Package pkg provides the core libraries for biasplot.
//
// # Overview
//
// biasplot compares how LLM-generated occupational profiles differ from
// Bureau of Labor Statistics demographics, one dot per model, occupation and
// demographic group. The pkg directory is organized into four areas:
//
//  1. [dataset], [normalize], [align] - Domain logic (tables, differences,
//     occupation selection and labels)
//  2. [render] - Layout and output (overlap offsets, SVG, PDF, PNG, CSV, JSON)
//  3. [profile], [generate] - Data preparation (LLM requests, reply parsing,
//     profile aggregation)
//  4. [pipeline], [cache], [config], [observability] - Orchestration and
//     infrastructure
//
// # Architecture
//
// The typical data flow through biasplot:
//
//	LLM provider ([generate]) or batch output ([profile.ConvertBatch])
//	         ↓
//	    profile CSVs per occupation
//	         ↓
//	    [profile.AggregateDir] (percentages per group)
//	         ↓
//	    [normalize] (minus the BLS baseline)
//	         ↓
//	    [align] (common occupations, order, labels)
//	         ↓
//	    [render/dotplot/layout] (rows and overlap offsets)
//	         ↓
//	    SVG/PDF/PNG/CSV/JSON output
//
// # Quick Start
//
//	import (
//	    "context"
//	    "github.com/genai-bias/biasplot/pkg/config"
//	    "github.com/genai-bias/biasplot/pkg/pipeline"
//	)
//
//	cfg, _ := config.Load("chart.toml")
//	result, err := pipeline.NewRunner(nil, nil, nil).Execute(context.Background(), cfg)
//	if err != nil {
//	    return err
//	}
//	for _, a := range result.Artifacts {
//	    os.WriteFile(a.Name, a.Data, 0644)
//	}
//
// # Error Handling
//
// Errors carry a code from [errors]. Configuration errors (missing columns,
// occupations absent from the baseline, label count mismatches) abort a run;
// data-quality problems are returned as warnings alongside the result.
//
// [dataset]: github.com/genai-bias/biasplot/pkg/dataset
// [normalize]: github.com/genai-bias/biasplot/pkg/normalize
// [align]: github.com/genai-bias/biasplot/pkg/align
// [render]: github.com/genai-bias/biasplot/pkg/render
// [render/dotplot/layout]: github.com/genai-bias/biasplot/pkg/render/dotplot/layout
// [profile]: github.com/genai-bias/biasplot/pkg/profile
// [profile.ConvertBatch]: github.com/genai-bias/biasplot/pkg/profile#ConvertBatch
// [profile.AggregateDir]: github.com/genai-bias/biasplot/pkg/profile#AggregateDir
// [generate]: github.com/genai-bias/biasplot/pkg/generate
// [pipeline]: github.com/genai-bias/biasplot/pkg/pipeline
// [cache]: github.com/genai-bias/biasplot/pkg/cache
// [config]: github.com/genai-bias/biasplot/pkg/config
// [observability]: github.com/genai-bias/biasplot/pkg/observability
// [errors]: github.com/genai-bias/biasplot/pkg/errors
package pkg
