package observability

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// LogPipelineHooks writes pipeline and cache events to Logger at debug
// level. Failures are logged at warn level.
type LogPipelineHooks struct {
	Logger *log.Logger
}

func (h LogPipelineHooks) OnLoadStart(_ context.Context, source string) {
	h.Logger.Debug("load started", "source", source)
}

func (h LogPipelineHooks) OnLoadComplete(_ context.Context, source string, n int, d time.Duration, err error) {
	if err != nil {
		h.Logger.Warn("load failed", "source", source, "err", err)
		return
	}
	h.Logger.Debug("load finished", "source", source, "bodies", n, "duration", d)
}

func (h LogPipelineHooks) OnLayoutStart(_ context.Context, n int) {
	h.Logger.Debug("layout started", "bodies", n)
}

func (h LogPipelineHooks) OnLayoutComplete(_ context.Context, sections, boosts int, d time.Duration, err error) {
	if err != nil {
		h.Logger.Warn("layout failed", "err", err)
		return
	}
	h.Logger.Debug("layout finished", "sections", sections, "boosts", boosts, "duration", d)
}

func (h LogPipelineHooks) OnRenderStart(_ context.Context, formats []string) {
	h.Logger.Debug("render started", "formats", formats)
}

func (h LogPipelineHooks) OnRenderComplete(_ context.Context, formats []string, d time.Duration, err error) {
	if err != nil {
		h.Logger.Warn("render failed", "formats", formats, "err", err)
		return
	}
	h.Logger.Debug("render finished", "formats", formats, "duration", d)
}

func (h LogPipelineHooks) OnCacheHit(_ context.Context, keyType string) {
	h.Logger.Debug("cache hit", "type", keyType)
}

func (h LogPipelineHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.Logger.Debug("cache miss", "type", keyType)
}

func (h LogPipelineHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.Logger.Debug("cache set", "type", keyType, "bytes", size)
}

// LogHTTPHooks writes one line per served request.
type LogHTTPHooks struct {
	Logger *log.Logger
}

func (LogHTTPHooks) OnRequest(context.Context, string, string) {}

func (h LogHTTPHooks) OnResponse(_ context.Context, method, path string, status int, d time.Duration) {
	h.Logger.Info("served", "method", method, "path", path, "status", status, "duration", d)
}

var (
	_ PipelineHooks = LogPipelineHooks{}
	_ CacheHooks    = LogPipelineHooks{}
	_ HTTPHooks     = LogHTTPHooks{}
)
