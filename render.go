package docview

import "context"

// Theme selects the stylesheet a converter embeds in its output.
type Theme string

// Supported themes.
const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// Fragment names extracted from rendered HTML.
const (
	FragmentHead = "head"
	FragmentBody = "body"
)

// RenderOptions holds per-request rendering preferences.
type RenderOptions struct {
	Theme Theme
}

// RenderedDocument is the result of converting one document. It is built
// fresh for each request and never cached.
type RenderedDocument struct {
	// HTML is the full converter output after link normalization.
	HTML string

	// Fragments maps a tag name to its inner markup. Tags missing from
	// HTML have no entry.
	Fragments map[string]string

	// Warnings collects recoverable problems, such as a converter exiting
	// with a non-zero status while still producing output.
	Warnings []string
}

// Fragment returns the inner markup of the named tag and whether the tag
// was present.
func (d *RenderedDocument) Fragment(name string) (string, bool) {
	s, ok := d.Fragments[name]
	return s, ok
}

// ConvertResult describes a finished converter run.
type ConvertResult struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// Converter translates a document into an HTML file.
type Converter interface {
	// Convert reads the document at src and writes HTML to dst.
	// A converter that ran to completion returns a result even when its
	// exit code is non-zero; an error means it could not run at all
	// (ERENDER) or the context expired.
	Convert(ctx context.Context, src, dst string, opts RenderOptions) (*ConvertResult, error)
}

// HTMLProcessor post-processes converter output.
type HTMLProcessor interface {
	// Process rewrites every hyperlink target in html with NormalizeLink,
	// then returns the rewritten document and the inner markup of the first
	// element with each of the given tag names. Tags that do not appear in
	// html are absent from fragments.
	Process(html string, names ...string) (out string, fragments map[string]string, err error)
}

// Sanitizer removes unsafe markup from an HTML fragment.
type Sanitizer interface {
	Sanitize(html string) string
}

// Renderer turns a document into a RenderedDocument.
type Renderer interface {
	// Render converts the document at path.
	// Returns EINVALID if path is not an eligible document, ENOTFOUND if it
	// does not exist and ERENDER if the converter produced no output.
	Render(ctx context.Context, path string, opts RenderOptions) (*RenderedDocument, error)
}

// RenderInRoot resolves name against root and renders it with r.
// Returns ENOTDIR if root is not a directory and EOUTSIDE if name escapes
// root; in both cases r is never called.
func RenderInRoot(ctx context.Context, r Renderer, root, name string, opts RenderOptions) (*RenderedDocument, error) {
	if err := CheckRoot(root); err != nil {
		return nil, err
	}
	path, err := ResolveInRoot(root, name)
	if err != nil {
		return nil, err
	}
	return r.Render(ctx, path, opts)
}
