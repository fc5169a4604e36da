package prometheus

import (
	"context"
	"time"

	"github.com/fwojciec/docview"
)

// Ensure SearchService implements docview.SearchService.
var _ docview.SearchService = (*SearchService)(nil)

// SearchService wraps a docview.SearchService and records metrics.
type SearchService struct {
	next    docview.SearchService
	metrics *Metrics
}

// NewSearchService creates a new instrumented SearchService.
func NewSearchService(next docview.SearchService, metrics *Metrics) *SearchService {
	return &SearchService{next: next, metrics: metrics}
}

func (s *SearchService) SearchByName(ctx context.Context, root, term string, caseSensitive bool) (matches docview.MatchSet, err error) {
	defer s.observe("search_name", time.Now(), &matches, &err)
	return s.next.SearchByName(ctx, root, term, caseSensitive)
}

func (s *SearchService) SearchByContent(ctx context.Context, root, term string, caseSensitive bool) (matches docview.MatchSet, err error) {
	defer s.observe("search_content", time.Now(), &matches, &err)
	return s.next.SearchByContent(ctx, root, term, caseSensitive)
}

func (s *SearchService) Search(ctx context.Context, root, term string) (matches docview.MatchSet, err error) {
	defer s.observe("search", time.Now(), &matches, &err)
	return s.next.Search(ctx, root, term)
}

func (s *SearchService) Tree(ctx context.Context, root string) (matches docview.MatchSet, err error) {
	defer s.observe("tree", time.Now(), &matches, &err)
	return s.next.Tree(ctx, root)
}

func (s *SearchService) observe(operation string, begin time.Time, matches *docview.MatchSet, err *error) {
	s.metrics.record(operation, time.Since(begin).Seconds(), *err)
	if *err == nil {
		s.metrics.Matches.WithLabelValues(operation).Observe(float64(matches.Len()))
	}
}
