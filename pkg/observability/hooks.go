// Package observability lets the CLI watch a chart run without the library
// packages knowing who is watching.
//
// Three event families are exposed: pipeline stages (load through render),
// artifact cache lookups, and LLM generation requests. Each has an interface
// and a no-op default. main installs real implementations once at startup,
// typically [NewLogHooks]:
//
//	observability.SetPipelineHooks(observability.NewLogHooks(logger))
//
// and library code reports through the package accessors:
//
//	start := time.Now()
//	observability.Pipeline().OnStageStart(ctx, observability.StageAlign)
//	res, err := align.Align(tables, opts)
//	observability.Pipeline().OnStageComplete(ctx, observability.StageAlign, len(res.Keys), time.Since(start), err)
package observability

import (
	"context"
	"sync"
	"time"
)

// Stage names a step of the chart pipeline.
type Stage string

const (
	StageLoad      Stage = "load"
	StageNormalize Stage = "normalize"
	StageAlign     Stage = "align"
	StageLayout    Stage = "layout"
	StageRender    Stage = "render"
)

// PipelineHooks receives events from the chart pipeline.
type PipelineHooks interface {
	OnStageStart(ctx context.Context, stage Stage)
	// OnStageComplete reports how many items the stage produced (rows,
	// records, occupations, panels or artifacts).
	OnStageComplete(ctx context.Context, stage Stage, items int, duration time.Duration, err error)
	// OnWarning reports a data-quality problem that did not stop the run.
	OnWarning(ctx context.Context, stage Stage, message string)
}

// CacheHooks receives artifact and response cache lookups. keyType is the
// key namespace, e.g. "artifact" or "reply".
type CacheHooks interface {
	OnCacheHit(ctx context.Context, keyType string)
	OnCacheMiss(ctx context.Context, keyType string)
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// GenerationHooks receives one event per profile request sent to a provider.
type GenerationHooks interface {
	OnRequest(ctx context.Context, provider, model, occupation string)
	OnReply(ctx context.Context, provider, model, occupation string, duration time.Duration)
	// OnError covers both failed API calls and replies that could not be
	// parsed into a profile.
	OnError(ctx context.Context, provider, model, occupation string, err error)
}

// NoopPipelineHooks discards pipeline events.
type NoopPipelineHooks struct{}

func (NoopPipelineHooks) OnStageStart(context.Context, Stage)                                {}
func (NoopPipelineHooks) OnStageComplete(context.Context, Stage, int, time.Duration, error) {}
func (NoopPipelineHooks) OnWarning(context.Context, Stage, string)                           {}

// NoopCacheHooks discards cache events.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// NoopGenerationHooks discards generation events.
type NoopGenerationHooks struct{}

func (NoopGenerationHooks) OnRequest(context.Context, string, string, string)              {}
func (NoopGenerationHooks) OnReply(context.Context, string, string, string, time.Duration) {}
func (NoopGenerationHooks) OnError(context.Context, string, string, string, error)         {}

type registry struct {
	mu         sync.RWMutex
	pipeline   PipelineHooks
	cache      CacheHooks
	generation GenerationHooks
}

var installed = newRegistry()

func newRegistry() *registry {
	return &registry{
		pipeline:   NoopPipelineHooks{},
		cache:      NoopCacheHooks{},
		generation: NoopGenerationHooks{},
	}
}

func (r *registry) update(fn func(*registry)) {
	r.mu.Lock()
	fn(r)
	r.mu.Unlock()
}

func (r *registry) snapshot() (PipelineHooks, CacheHooks, GenerationHooks) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.pipeline, r.cache, r.generation
}

// SetPipelineHooks installs h for all later pipeline runs. A nil h is ignored.
func SetPipelineHooks(h PipelineHooks) {
	if h != nil {
		installed.update(func(r *registry) { r.pipeline = h })
	}
}

// SetCacheHooks installs h for cache events. A nil h is ignored.
func SetCacheHooks(h CacheHooks) {
	if h != nil {
		installed.update(func(r *registry) { r.cache = h })
	}
}

// SetGenerationHooks installs h for generation events. A nil h is ignored.
func SetGenerationHooks(h GenerationHooks) {
	if h != nil {
		installed.update(func(r *registry) { r.generation = h })
	}
}

func Pipeline() PipelineHooks {
	p, _, _ := installed.snapshot()
	return p
}

func Cache() CacheHooks {
	_, c, _ := installed.snapshot()
	return c
}

func Generation() GenerationHooks {
	_, _, g := installed.snapshot()
	return g
}

// Reset puts the no-op hooks back. Tests use it to undo Set* calls.
func Reset() {
	installed.update(func(r *registry) {
		r.pipeline = NoopPipelineHooks{}
		r.cache = NoopCacheHooks{}
		r.generation = NoopGenerationHooks{}
	})
}
