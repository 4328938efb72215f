package cli

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// logHooks reports pipeline and frame events to a logger at debug level.
// It implements observability.PipelineHooks and observability.FrameHooks.
type logHooks struct {
	logger *log.Logger
}

func newLogHooks(l *log.Logger) *logHooks {
	return &logHooks{logger: l}
}

func (h *logHooks) OnLoadStart(_ context.Context, source string) {
	h.logger.Debug("load started", "source", source)
}

func (h *logHooks) OnLoadComplete(_ context.Context, source string, nodeCount int, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("load failed", "source", source, "err", err)
		return
	}
	h.logger.Debug("load finished", "source", source, "nodes", nodeCount, "duration", d)
}

func (h *logHooks) OnLayoutStart(_ context.Context, nodeCount int) {
	h.logger.Debug("layout started", "nodes", nodeCount)
}

func (h *logHooks) OnLayoutComplete(_ context.Context, rectCount int, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("layout failed", "err", err)
		return
	}
	h.logger.Debug("layout finished", "rects", rectCount, "duration", d)
}

func (h *logHooks) OnRenderStart(_ context.Context, formats []string) {
	h.logger.Debug("render started", "formats", formats)
}

func (h *logHooks) OnRenderComplete(_ context.Context, formats []string, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("render failed", "formats", formats, "err", err)
		return
	}
	h.logger.Debug("render finished", "formats", formats, "duration", d)
}

func (h *logHooks) OnTransition(renderer string, rectCount, attached int) {
	h.logger.Debug("transition", "renderer", renderer, "rects", rectCount, "attached", attached)
}

// OnFrame runs once per frame; the level check keeps it free when debug
// logging is off.
func (h *logHooks) OnFrame(renderer string, dt time.Duration, maxError float64, attached int) {
	if h.logger.GetLevel() > log.DebugLevel {
		return
	}
	h.logger.Debug("frame", "renderer", renderer, "dt", dt, "max_error", maxError, "attached", attached)
}

func (h *logHooks) OnConverged(renderer string, frames int) {
	h.logger.Debug("converged", "renderer", renderer, "frames", frames)
}
