package mock

import (
	"context"

	"github.com/fwojciec/docview"
)

var _ docview.SearchService = (*SearchService)(nil)

// SearchService is a mock implementation of docview.SearchService.
type SearchService struct {
	SearchByNameFn    func(ctx context.Context, root, term string, caseSensitive bool) (docview.MatchSet, error)
	SearchByContentFn func(ctx context.Context, root, term string, caseSensitive bool) (docview.MatchSet, error)
	SearchFn          func(ctx context.Context, root, term string) (docview.MatchSet, error)
	TreeFn            func(ctx context.Context, root string) (docview.MatchSet, error)
}

func (s *SearchService) SearchByName(ctx context.Context, root, term string, caseSensitive bool) (docview.MatchSet, error) {
	return s.SearchByNameFn(ctx, root, term, caseSensitive)
}

func (s *SearchService) SearchByContent(ctx context.Context, root, term string, caseSensitive bool) (docview.MatchSet, error) {
	return s.SearchByContentFn(ctx, root, term, caseSensitive)
}

func (s *SearchService) Search(ctx context.Context, root, term string) (docview.MatchSet, error) {
	return s.SearchFn(ctx, root, term)
}

func (s *SearchService) Tree(ctx context.Context, root string) (docview.MatchSet, error) {
	return s.TreeFn(ctx, root)
}
