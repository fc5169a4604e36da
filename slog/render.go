package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/docview"
)

// Ensure LoggingRenderer implements docview.Renderer.
var _ docview.Renderer = (*LoggingRenderer)(nil)

// LoggingRenderer wraps a Renderer with logging.
type LoggingRenderer struct {
	next   docview.Renderer
	logger *slog.Logger
}

// NewLoggingRenderer creates a new LoggingRenderer.
func NewLoggingRenderer(next docview.Renderer, logger *slog.Logger) *LoggingRenderer {
	return &LoggingRenderer{next: next, logger: logger}
}

// Render delegates to the wrapped renderer and logs the operation.
func (r *LoggingRenderer) Render(ctx context.Context, path string, opts docview.RenderOptions) (doc *docview.RenderedDocument, err error) {
	defer func(begin time.Time) {
		var bytes, warnings int
		if doc != nil {
			bytes = len(doc.HTML)
			warnings = len(doc.Warnings)
		}
		r.logger.Info("render",
			"path", path,
			"theme", string(opts.Theme),
			"bytes", bytes,
			"warnings", warnings,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return r.next.Render(ctx, path, opts)
}
