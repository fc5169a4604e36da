package prometheus

import (
	"context"
	"time"

	"github.com/fwojciec/docview"
)

// Ensure Renderer implements docview.Renderer.
var _ docview.Renderer = (*Renderer)(nil)

// Renderer wraps a docview.Renderer and records metrics.
type Renderer struct {
	next    docview.Renderer
	metrics *Metrics
}

// NewRenderer creates a new instrumented Renderer.
func NewRenderer(next docview.Renderer, metrics *Metrics) *Renderer {
	return &Renderer{next: next, metrics: metrics}
}

func (r *Renderer) Render(ctx context.Context, path string, opts docview.RenderOptions) (doc *docview.RenderedDocument, err error) {
	defer func(begin time.Time) {
		r.metrics.record("render", time.Since(begin).Seconds(), err)
		if doc != nil {
			r.metrics.RenderWarnings.Add(float64(len(doc.Warnings)))
		}
	}(time.Now())
	return r.next.Render(ctx, path, opts)
}
