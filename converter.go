package docview

// MarkdownConverter converts rendered HTML to Markdown for plain-text output.
type MarkdownConverter interface {
	// Convert transforms an HTML fragment into Markdown.
	Convert(html string) (string, error)
}
