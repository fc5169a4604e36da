package main

import (
	"fmt"

	"github.com/fwojciec/docview"
)

// Run executes the render command.
func (c *RenderCmd) Run(deps *Dependencies) error {
	opts := docview.RenderOptions{Theme: docview.ThemeLight}
	if c.Dark {
		opts.Theme = docview.ThemeDark
	}

	doc, err := docview.RenderInRoot(deps.Ctx, deps.Renderer, deps.Root, c.Name, opts)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docview.ErrorMessage(err))
		return err
	}
	for _, w := range doc.Warnings {
		fmt.Fprintf(deps.Stderr, "warning: %s\n", w)
	}

	out, err := c.output(doc, deps.Markdown)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docview.ErrorMessage(err))
		return err
	}
	fmt.Fprintln(deps.Stdout, out)
	return nil
}

func (c *RenderCmd) output(doc *docview.RenderedDocument, md docview.MarkdownConverter) (string, error) {
	switch c.Format {
	case "head", "body":
		frag, ok := doc.Fragment(c.Format)
		if !ok {
			return "", docview.Errorf(docview.EINVALID, "rendered document has no <%s> element", c.Format)
		}
		return frag, nil
	case "markdown":
		if md == nil {
			return "", docview.Errorf(docview.EINTERNAL, "markdown output is not available")
		}
		body, ok := doc.Fragment(docview.FragmentBody)
		if !ok {
			body = doc.HTML
		}
		return md.Convert(body)
	default:
		return doc.HTML, nil
	}
}
