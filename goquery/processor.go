// Package goquery post-processes rendered HTML: it normalizes hyperlink
// targets and extracts named fragments for embedding.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/docview"
	"golang.org/x/net/html"
)

// Ensure Processor implements docview.HTMLProcessor at compile time.
var _ docview.HTMLProcessor = (*Processor)(nil)

// Processor implements docview.HTMLProcessor with goquery.
type Processor struct{}

// NewProcessor creates a new Processor.
func NewProcessor() *Processor {
	return &Processor{}
}

// Process normalizes links over the whole document, then extracts the named
// fragments from the normalized tree.
func (p *Processor) Process(src string, names ...string) (string, map[string]string, error) {
	doc, err := parse(src)
	if err != nil {
		return "", nil, err
	}

	normalizeLinks(doc)

	out, err := doc.Html()
	if err != nil {
		return "", nil, docview.Errorf(docview.EINTERNAL, "failed to serialize HTML: %v", err)
	}
	frags, err := fragments(doc, presentTags(src), names)
	if err != nil {
		return "", nil, err
	}
	return out, frags, nil
}

// NormalizeLinks rewrites the href of every anchor in src with
// docview.NormalizeLink and returns the serialized document.
func NormalizeLinks(src string) (string, error) {
	doc, err := parse(src)
	if err != nil {
		return "", err
	}
	normalizeLinks(doc)
	out, err := doc.Html()
	if err != nil {
		return "", docview.Errorf(docview.EINTERNAL, "failed to serialize HTML: %v", err)
	}
	return out, nil
}

// ExtractFragments returns the inner markup of the first element with each
// tag name. Tags that do not appear in src are absent from the result.
func ExtractFragments(src string, names ...string) (map[string]string, error) {
	doc, err := parse(src)
	if err != nil {
		return nil, err
	}
	return fragments(doc, presentTags(src), names)
}

func parse(src string) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(src))
	if err != nil {
		return nil, docview.Errorf(docview.EINVALID, "failed to parse HTML: %v", err)
	}
	return doc, nil
}

func normalizeLinks(doc *goquery.Document) {
	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		if normalized := docview.NormalizeLink(href); normalized != href {
			sel.SetAttr("href", normalized)
		}
	})
}

func fragments(doc *goquery.Document, present map[string]bool, names []string) (map[string]string, error) {
	result := make(map[string]string, len(names))
	for _, name := range names {
		// The HTML parser synthesizes head and body; only report tags the
		// source really contained.
		if !present[name] {
			continue
		}
		sel := doc.Find(name).First()
		if sel.Length() == 0 {
			continue
		}
		inner, err := sel.Html()
		if err != nil {
			return nil, docview.Errorf(docview.EINTERNAL, "failed to serialize %s: %v", name, err)
		}
		result[name] = inner
	}
	return result, nil
}

// presentTags returns the names of all start tags found in src.
func presentTags(src string) map[string]bool {
	found := make(map[string]bool)
	z := html.NewTokenizer(strings.NewReader(src))
	for {
		switch z.Next() {
		case html.ErrorToken:
			return found
		case html.StartTagToken, html.SelfClosingTagToken:
			name, _ := z.TagName()
			found[string(name)] = true
		}
	}
}
