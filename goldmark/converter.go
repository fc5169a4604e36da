// Package goldmark implements docview.Converter for Markdown documents
// in-process, without an external tool.
package goldmark

import (
	"bytes"
	"context"
	"fmt"
	"html"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/fwojciec/docview"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
)

// Extensions are the Markdown suffixes this converter handles.
var Extensions = []string{".md", ".markdown"}

// htmlTemplate wraps goldmark's fragment output in a complete HTML5 document.
const htmlTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>%s</title>
<style>%s</style>
</head>
<body class="%s">
%s
</body>
</html>
`

// Highlighting styles per theme.
var chromaStyles = map[docview.Theme]string{
	docview.ThemeLight: "github",
	docview.ThemeDark:  "monokai",
}

// Ensure Converter implements docview.Converter at compile time.
var _ docview.Converter = (*Converter)(nil)

// Converter converts Markdown to HTML using goldmark.
// Converter is safe for concurrent use.
type Converter struct {
	md goldmark.Markdown
}

// NewConverter creates a Converter with GFM extensions and syntax highlighting.
func NewConverter() *Converter {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			extension.Footnote,
			highlighting.NewHighlighting(
				highlighting.WithFormatOptions(
					chromahtml.WithClasses(true),
				),
			),
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
	)
	return &Converter{md: md}
}

// Convert reads Markdown from src and writes a standalone HTML document to
// dst. A document that fails to convert is reported through the exit code,
// the same way an external converter would.
func (c *Converter) Convert(ctx context.Context, src, dst string, opts docview.RenderOptions) (*docview.ConvertResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	source, err := os.ReadFile(src)
	if err != nil {
		return nil, docview.Errorf(docview.ERENDER, "failed to read %s: %v", filepath.Base(src), err)
	}

	var body bytes.Buffer
	if err := c.md.Convert(source, &body); err != nil {
		return &docview.ConvertResult{ExitCode: 1, Stderr: err.Error()}, nil
	}

	theme := opts.Theme
	if theme == "" {
		theme = docview.ThemeLight
	}
	var css strings.Builder
	if err := chromahtml.New(chromahtml.WithClasses(true)).WriteCSS(&css, styleFor(theme)); err != nil {
		return nil, docview.Errorf(docview.ERENDER, "failed to write highlighting CSS: %v", err)
	}

	title := html.EscapeString(strings.TrimSuffix(filepath.Base(src), filepath.Ext(src)))
	out := fmt.Sprintf(htmlTemplate, title, css.String(), theme, body.String())
	if err := os.WriteFile(dst, []byte(out), 0600); err != nil {
		return nil, docview.Errorf(docview.ERENDER, "failed to write output: %v", err)
	}
	return &docview.ConvertResult{}, nil
}

func styleFor(theme docview.Theme) *chroma.Style {
	if name, ok := chromaStyles[theme]; ok {
		return styles.Get(name)
	}
	return styles.Fallback
}
