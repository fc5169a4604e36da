// Package slog provides logging decorators for docview services.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/docview"
)

// Ensure LoggingSearchService implements docview.SearchService.
var _ docview.SearchService = (*LoggingSearchService)(nil)

// LoggingSearchService wraps a SearchService with logging.
type LoggingSearchService struct {
	next   docview.SearchService
	logger *slog.Logger
}

// NewLoggingSearchService creates a new LoggingSearchService.
func NewLoggingSearchService(next docview.SearchService, logger *slog.Logger) *LoggingSearchService {
	return &LoggingSearchService{next: next, logger: logger}
}

func (s *LoggingSearchService) SearchByName(ctx context.Context, root, term string, caseSensitive bool) (matches docview.MatchSet, err error) {
	defer func(begin time.Time) {
		s.logger.Info("search",
			"root", root,
			"mode", "name",
			"term", term,
			"case_sensitive", caseSensitive,
			"count", matches.Len(),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.SearchByName(ctx, root, term, caseSensitive)
}

func (s *LoggingSearchService) SearchByContent(ctx context.Context, root, term string, caseSensitive bool) (matches docview.MatchSet, err error) {
	defer func(begin time.Time) {
		s.logger.Info("search",
			"root", root,
			"mode", "content",
			"term", term,
			"case_sensitive", caseSensitive,
			"count", matches.Len(),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.SearchByContent(ctx, root, term, caseSensitive)
}

func (s *LoggingSearchService) Search(ctx context.Context, root, term string) (matches docview.MatchSet, err error) {
	defer func(begin time.Time) {
		s.logger.Info("search",
			"root", root,
			"mode", "all",
			"term", term,
			"count", matches.Len(),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Search(ctx, root, term)
}

func (s *LoggingSearchService) Tree(ctx context.Context, root string) (matches docview.MatchSet, err error) {
	defer func(begin time.Time) {
		s.logger.Info("tree",
			"root", root,
			"count", matches.Len(),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Tree(ctx, root)
}
