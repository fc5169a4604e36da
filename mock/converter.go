package mock

import (
	"context"

	"github.com/fwojciec/docview"
)

// Compile-time interface verification.
var (
	_ docview.Converter         = (*Converter)(nil)
	_ docview.MarkdownConverter = (*MarkdownConverter)(nil)
)

// Converter is a mock implementation of docview.Converter.
type Converter struct {
	ConvertFn func(ctx context.Context, src, dst string, opts docview.RenderOptions) (*docview.ConvertResult, error)
}

func (c *Converter) Convert(ctx context.Context, src, dst string, opts docview.RenderOptions) (*docview.ConvertResult, error) {
	return c.ConvertFn(ctx, src, dst, opts)
}

// MarkdownConverter is a mock implementation of docview.MarkdownConverter.
type MarkdownConverter struct {
	ConvertFn func(html string) (string, error)
}

func (c *MarkdownConverter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}
