package observability

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// LogHooks writes every event to a logger at debug level. Warnings and
// errors are logged at warn level.
type LogHooks struct {
	Logger *log.Logger
}

// NewLogHooks returns hooks that log to logger.
func NewLogHooks(logger *log.Logger) *LogHooks {
	return &LogHooks{Logger: logger}
}

func (h *LogHooks) OnStageStart(_ context.Context, stage Stage) {
	h.Logger.Debug("stage started", "stage", stage)
}

func (h *LogHooks) OnStageComplete(_ context.Context, stage Stage, items int, d time.Duration, err error) {
	if err != nil {
		h.Logger.Warn("stage failed", "stage", stage, "duration", d, "err", err)
		return
	}
	h.Logger.Debug("stage finished", "stage", stage, "items", items, "duration", d)
}

func (h *LogHooks) OnWarning(_ context.Context, stage Stage, msg string) {
	h.Logger.Warn(msg, "stage", stage)
}

func (h *LogHooks) OnCacheHit(_ context.Context, keyType string) {
	h.Logger.Debug("cache hit", "type", keyType)
}

func (h *LogHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.Logger.Debug("cache miss", "type", keyType)
}

func (h *LogHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.Logger.Debug("cache set", "type", keyType, "bytes", size)
}

func (h *LogHooks) OnRequest(_ context.Context, provider, model, occupation string) {
	h.Logger.Debug("request", "provider", provider, "model", model, "occupation", occupation)
}

func (h *LogHooks) OnReply(_ context.Context, provider, model, occupation string, d time.Duration) {
	h.Logger.Debug("reply", "provider", provider, "model", model, "occupation", occupation, "duration", d)
}

func (h *LogHooks) OnError(_ context.Context, provider, model, occupation string, err error) {
	h.Logger.Warn("generation failed", "provider", provider, "model", model, "occupation", occupation, "err", err)
}

var (
	_ PipelineHooks   = (*LogHooks)(nil)
	_ CacheHooks      = (*LogHooks)(nil)
	_ GenerationHooks = (*LogHooks)(nil)
)
