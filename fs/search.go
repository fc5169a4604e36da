// Package fs implements docview.SearchService by scanning the local filesystem.
package fs

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/fwojciec/docview"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/cases"
)

// DefaultConcurrency is the number of files read in parallel during a
// content search.
const DefaultConcurrency = 8

// Ensure SearchService implements docview.SearchService at compile time.
var _ docview.SearchService = (*SearchService)(nil)

// SearchService searches documents by walking the directory tree on every
// call. SearchService is safe for concurrent use by multiple goroutines.
type SearchService struct {
	filter      *docview.DocumentFilter
	concurrency int
	skipHidden  bool
}

// Option configures a SearchService.
type Option func(*SearchService)

// WithConcurrency sets the number of files read in parallel by content
// searches. Defaults to DefaultConcurrency if not specified.
func WithConcurrency(n int) Option {
	return func(s *SearchService) {
		s.concurrency = n
	}
}

// WithSkipHiddenDirs stops walks from entering hidden directories below
// root, such as .git. By default hidden directories are walked and only the
// file's own name decides eligibility.
func WithSkipHiddenDirs() Option {
	return func(s *SearchService) {
		s.skipHidden = true
	}
}

// NewSearchService creates a SearchService that considers the documents
// accepted by filter. A nil filter means docview.NewDocumentFilter().
func NewSearchService(filter *docview.DocumentFilter, opts ...Option) *SearchService {
	if filter == nil {
		filter = docview.NewDocumentFilter()
	}
	s := &SearchService{
		filter:      filter,
		concurrency: DefaultConcurrency,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.concurrency <= 0 {
		s.concurrency = DefaultConcurrency
	}
	return s
}

// SearchByName returns documents whose path relative to root contains term.
func (s *SearchService) SearchByName(ctx context.Context, root, term string, caseSensitive bool) (docview.MatchSet, error) {
	if err := docview.CheckRoot(root); err != nil {
		return nil, err
	}

	match := newMatcher(term, caseSensitive)
	matches := docview.NewMatchSet()
	err := s.walk(ctx, root, func(_, rel string) error {
		if match(rel) {
			matches.Add(rel)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return matches, nil
}

// SearchByContent returns documents whose text contains term. Files that
// cannot be read or are not valid UTF-8 are skipped.
func (s *SearchService) SearchByContent(ctx context.Context, root, term string, caseSensitive bool) (docview.MatchSet, error) {
	if err := docview.CheckRoot(root); err != nil {
		return nil, err
	}

	match := newMatcher(term, caseSensitive)
	matches := docview.NewMatchSet()
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)

	err := s.walk(gctx, root, func(path, rel string) error {
		g.Go(func() error {
			if gctx.Err() != nil {
				return gctx.Err()
			}
			content, ok := readText(path)
			if !ok || !match(content) {
				return nil
			}
			mu.Lock()
			matches.Add(rel)
			mu.Unlock()
			return nil
		})
		return nil
	})
	// Wait even when the walk failed so no reader outlives the call.
	if werr := g.Wait(); err == nil {
		err = werr
	}
	if err != nil {
		return nil, err
	}
	return matches, nil
}

// Search returns the case-insensitive union of name and content matches.
// Every path is checked against the document filter again before it is
// included.
func (s *SearchService) Search(ctx context.Context, root, term string) (docview.MatchSet, error) {
	if err := docview.CheckRoot(root); err != nil {
		return nil, err
	}

	var byName, byContent docview.MatchSet
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		byName, err = s.SearchByName(gctx, root, term, false)
		return err
	})
	g.Go(func() (err error) {
		byContent, err = s.SearchByContent(gctx, root, term, false)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	matches := docview.NewMatchSet()
	for rel := range byName.Union(byContent) {
		if s.filter.IsEligible(rel) {
			matches.Add(rel)
		}
	}
	return matches, nil
}

// Tree returns every document under root.
func (s *SearchService) Tree(ctx context.Context, root string) (docview.MatchSet, error) {
	if err := docview.CheckRoot(root); err != nil {
		return nil, err
	}

	matches := docview.NewMatchSet()
	err := s.walk(ctx, root, func(_, rel string) error {
		matches.Add(rel)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return matches, nil
}

// walk calls fn for every eligible document under root with its full path
// and its path relative to root. Only regular files (or links to them) are
// reported, and hidden directories are entered unless skipHidden is set. Errors on
// individual entries are skipped so one unreadable directory never aborts a
// search; only context cancellation stops the walk.
func (s *SearchService) walk(ctx context.Context, root string, fn func(path, rel string) error) error {
	// WalkDir does not descend into a root given as a symlink.
	if resolved, err := filepath.EvalSymlinks(root); err == nil {
		root = resolved
	}
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if err != nil {
			if d != nil && d.IsDir() && path != root {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			if s.skipHidden && path != root && docview.IsHidden(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		if !s.filter.IsEligible(d.Name()) || !isRegular(path, d) {
			return nil
		}
		rel, err := docview.RelativeTo(root, path)
		if err != nil {
			return nil
		}
		return fn(path, rel)
	})
}

func isRegular(path string, d fs.DirEntry) bool {
	if d.Type().IsRegular() {
		return true
	}
	if d.Type()&fs.ModeSymlink == 0 {
		return false
	}
	fi, err := os.Stat(path)
	return err == nil && fi.Mode().IsRegular()
}

// newMatcher returns a substring predicate for term. Without case
// sensitivity both sides are compared after Unicode case folding.
func newMatcher(term string, caseSensitive bool) func(string) bool {
	if caseSensitive {
		return func(s string) bool {
			return strings.Contains(s, term)
		}
	}
	folded := cases.Fold().String(term)
	return func(s string) bool {
		return strings.Contains(cases.Fold().String(s), folded)
	}
}

// readText returns the content of the file at path if it can be read and
// decodes as UTF-8 text.
func readText(path string) (string, bool) {
	data, err := os.ReadFile(path)
	if err != nil || !utf8.Valid(data) {
		return "", false
	}
	return string(data), true
}
