package mock

import (
	"context"

	"github.com/fwojciec/docview"
)

// Compile-time interface verification.
var (
	_ docview.Renderer      = (*Renderer)(nil)
	_ docview.HTMLProcessor = (*HTMLProcessor)(nil)
	_ docview.Sanitizer     = (*Sanitizer)(nil)
)

// Renderer is a mock implementation of docview.Renderer.
type Renderer struct {
	RenderFn func(ctx context.Context, path string, opts docview.RenderOptions) (*docview.RenderedDocument, error)
}

func (r *Renderer) Render(ctx context.Context, path string, opts docview.RenderOptions) (*docview.RenderedDocument, error) {
	return r.RenderFn(ctx, path, opts)
}

// HTMLProcessor is a mock implementation of docview.HTMLProcessor.
type HTMLProcessor struct {
	ProcessFn func(html string, names ...string) (string, map[string]string, error)
}

func (p *HTMLProcessor) Process(html string, names ...string) (string, map[string]string, error) {
	return p.ProcessFn(html, names...)
}

// Sanitizer is a mock implementation of docview.Sanitizer.
type Sanitizer struct {
	SanitizeFn func(html string) string
}

func (s *Sanitizer) Sanitize(html string) string {
	return s.SanitizeFn(html)
}
