// Package htmltomarkdown implements docview.MarkdownConverter for reading
// rendered documents in a terminal.
package htmltomarkdown

import (
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/docview"
)

// Ensure Converter implements docview.MarkdownConverter at compile time.
var _ docview.MarkdownConverter = (*Converter)(nil)

// DefaultChrome selects the parts of converter output that describe the page
// rather than the document: the generated table of contents, the author and
// revision line, the "last updated" footer and empty section anchors.
var DefaultChrome = []string{
	"#toc",
	"#header > .details",
	"#footer",
	"a.anchor",
}

// Converter turns rendered document bodies into Markdown, dropping converter
// chrome first.
type Converter struct {
	conv   *converter.Converter
	chrome []string
}

// Option configures a Converter.
type Option func(*Converter)

// WithChrome replaces the selectors removed before conversion. No selectors
// keeps the body intact.
func WithChrome(selectors ...string) Option {
	return func(c *Converter) {
		c.chrome = selectors
	}
}

// NewConverter creates a new Converter.
func NewConverter(opts ...Option) *Converter {
	c := &Converter{
		conv: converter.NewConverter(
			converter.WithPlugins(
				base.NewBasePlugin(),
				commonmark.NewCommonmarkPlugin(),
				table.NewTablePlugin(),
			),
		),
		chrome: DefaultChrome,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Convert transforms an HTML fragment into Markdown.
func (c *Converter) Convert(html string) (string, error) {
	if strings.TrimSpace(html) == "" {
		return "", docview.Errorf(docview.EINVALID, "empty HTML input")
	}

	if len(c.chrome) > 0 {
		doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
		if err != nil {
			return "", docview.Errorf(docview.EINVALID, "failed to parse HTML: %v", err)
		}
		doc.Find(strings.Join(c.chrome, ", ")).Remove()
		if html, err = doc.Find("body").Html(); err != nil {
			return "", docview.Errorf(docview.EINTERNAL, "failed to serialize HTML: %v", err)
		}
	}

	result, err := c.conv.ConvertString(html)
	if err != nil {
		return "", docview.Errorf(docview.EINTERNAL, "failed to convert HTML to Markdown: %v", err)
	}

	return result, nil
}
