// Package render implements docview.Renderer by running a converter into a
// scoped temporary directory and post-processing its output.
package render

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fwojciec/docview"
)

// DefaultTimeout bounds a single converter run.
const DefaultTimeout = 30 * time.Second

// outputName is the file the converter writes inside the temp directory.
const outputName = "out.html"

// Ensure Pipeline implements docview.Renderer at compile time.
var _ docview.Renderer = (*Pipeline)(nil)

// Pipeline renders documents. Converters are selected by file extension.
// Pipeline holds no per-request state and is safe for concurrent use.
type Pipeline struct {
	Filter     *docview.DocumentFilter
	Converters map[string]docview.Converter
	Processor  docview.HTMLProcessor

	// Sanitizer cleans the body fragment. Optional.
	Sanitizer docview.Sanitizer

	// Timeout bounds each converter run. Zero means DefaultTimeout.
	Timeout time.Duration

	// TempDir is the parent of per-render temp directories.
	// Empty means os.TempDir().
	TempDir string

	Logger *slog.Logger
}

// Render converts the document at path and returns its normalized HTML and
// head/body fragments.
func (p *Pipeline) Render(ctx context.Context, path string, opts docview.RenderOptions) (*docview.RenderedDocument, error) {
	if !p.filter().IsEligible(path) {
		return nil, docview.Errorf(docview.EINVALID, "%s is not a document", filepath.Base(path))
	}
	conv, ok := p.Converters[strings.ToLower(filepath.Ext(path))]
	if !ok {
		return nil, docview.Errorf(docview.EINVALID, "no converter for %s", filepath.Base(path))
	}
	if fi, err := os.Stat(path); err != nil || !fi.Mode().IsRegular() {
		return nil, docview.Errorf(docview.ENOTFOUND, "document %s not found", filepath.Base(path))
	}

	tmpDir, err := os.MkdirTemp(p.TempDir, "docview-render-*")
	if err != nil {
		return nil, fmt.Errorf("creating temp directory: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	timeout := p.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	out := filepath.Join(tmpDir, outputName)
	res, err := conv.Convert(ctx, path, out, opts)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, docview.Errorf(docview.ERENDER, "converting %s timed out", filepath.Base(path))
		}
		return nil, err
	}

	doc := &docview.RenderedDocument{}
	if res.ExitCode != 0 {
		// Converters may still write partial output alongside an error.
		p.logger().Warn("converter exited with non-zero status",
			"path", path,
			"exit_code", res.ExitCode,
			"stderr", strings.TrimSpace(res.Stderr),
		)
		doc.Warnings = append(doc.Warnings, warning(path, res))
	}

	raw, err := os.ReadFile(out)
	if errors.Is(err, os.ErrNotExist) {
		return nil, docview.Errorf(docview.ERENDER, "converter produced no output for %s", filepath.Base(path))
	} else if err != nil {
		return nil, fmt.Errorf("reading converter output: %w", err)
	}

	html, frags, err := p.Processor.Process(string(raw), docview.FragmentHead, docview.FragmentBody)
	if err != nil {
		return nil, err
	}
	if body, ok := frags[docview.FragmentBody]; ok && p.Sanitizer != nil {
		frags[docview.FragmentBody] = p.Sanitizer.Sanitize(body)
	}

	doc.HTML = html
	doc.Fragments = frags
	return doc, nil
}

func (p *Pipeline) filter() *docview.DocumentFilter {
	if p.Filter == nil {
		return docview.NewDocumentFilter()
	}
	return p.Filter
}

func (p *Pipeline) logger() *slog.Logger {
	if p.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return p.Logger
}

func warning(path string, res *docview.ConvertResult) string {
	msg := fmt.Sprintf("%s: converter exited with status %d", filepath.Base(path), res.ExitCode)
	if stderr := strings.TrimSpace(res.Stderr); stderr != "" {
		msg += ": " + firstLine(stderr)
	}
	return msg
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
