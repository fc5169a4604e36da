package goldmark_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/fwojciec/docview"
	"github.com/fwojciec/docview/goldmark"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Ensure Converter implements docview.Converter at compile time.
var _ docview.Converter = (*goldmark.Converter)(nil)

func TestConverter_Convert(t *testing.T) {
	t.Parallel()

	t.Run("writes a standalone HTML document", func(t *testing.T) {
		t.Parallel()

		// Given a markdown document
		dir := t.TempDir()
		src := filepath.Join(dir, "readme.md")
		dst := filepath.Join(dir, "out.html")
		require.NoError(t, os.WriteFile(src, []byte("# Title\n\nSee [site](example.com).\n\n| a | b |\n|---|---|\n| 1 | 2 |\n"), 0644))

		// When I convert it
		res, err := goldmark.NewConverter().Convert(context.Background(), src, dst, docview.RenderOptions{})

		// Then the output holds a full document with converted markup
		require.NoError(t, err)
		assert.Equal(t, 0, res.ExitCode)
		data, err := os.ReadFile(dst)
		require.NoError(t, err)
		out := string(data)
		assert.Contains(t, out, "<title>readme</title>")
		assert.Contains(t, out, `<h1 id="title">Title</h1>`)
		assert.Contains(t, out, `<a href="example.com">site</a>`)
		assert.Contains(t, out, "<table>")
		assert.Contains(t, out, `<body class="light">`)
	})

	t.Run("highlights fenced code with CSS classes", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		src := filepath.Join(dir, "code.md")
		dst := filepath.Join(dir, "out.html")
		require.NoError(t, os.WriteFile(src, []byte("```go\nfunc main() {}\n```\n"), 0644))

		_, err := goldmark.NewConverter().Convert(context.Background(), src, dst, docview.RenderOptions{Theme: docview.ThemeDark})

		require.NoError(t, err)
		data, err := os.ReadFile(dst)
		require.NoError(t, err)
		assert.Contains(t, string(data), `class="chroma"`)
		assert.Contains(t, string(data), `<body class="dark">`)
	})

	t.Run("fails with ERENDER for a missing source", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()

		_, err := goldmark.NewConverter().Convert(context.Background(), filepath.Join(dir, "missing.md"), filepath.Join(dir, "out.html"), docview.RenderOptions{})

		assert.Equal(t, docview.ERENDER, docview.ErrorCode(err))
	})
}
