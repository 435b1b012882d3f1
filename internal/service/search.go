// Package service implements the business logic of the search core: query
// interpretation, filter construction, fallback degradation, and typeahead.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Nikelesh006/megasifi-search/internal/domain"
	"github.com/Nikelesh006/megasifi-search/internal/query"
	"github.com/Nikelesh006/megasifi-search/internal/repository"
)

const (
	defaultLimit = 24
	maxLimit     = 100
)

// SearchService executes product searches and suggestions against the
// product repository.
type SearchService struct {
	repo   repository.ProductRepository
	logger *slog.Logger
}

// NewSearchService creates a new search service.
func NewSearchService(repo repository.ProductRepository, logger *slog.Logger) *SearchService {
	return &SearchService{
		repo:   repo,
		logger: logger,
	}
}

// SearchParams holds the caller-supplied search parameters. Zero or negative
// Page and Limit are normalized to their defaults rather than rejected.
type SearchParams struct {
	Query    string
	Category string
	Page     int
	Limit    int
}

// Search interprets the raw query, runs a relevance-ranked text search, and
// degrades to a regex token search when the store reports a missing text
// index. Any other repository failure propagates unchanged.
func (s *SearchService) Search(ctx context.Context, p SearchParams) (*domain.SearchResult, error) {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit < 1 {
		p.Limit = defaultLimit
	}
	if p.Limit > maxLimit {
		p.Limit = maxLimit
	}
	skip := int64(p.Page-1) * int64(p.Limit)

	parsed := query.Interpret(p.Query)

	filter := repository.SearchFilter{
		TextQuery: parsed.TextQuery,
		Category:  p.Category,
		MaxPrice:  parsed.MaxPrice,
	}
	sortMode := repository.SortPopularity
	if parsed.TextQuery != "" {
		sortMode = repository.SortRelevance
	}

	items, total, err := s.findAndCount(ctx, filter, sortMode, skip, int64(p.Limit))
	if errors.Is(err, repository.ErrTextIndexUnavailable) && parsed.TextQuery != "" {
		s.logger.WarnContext(ctx, "text index unavailable, falling back to regex search",
			slog.String("query", parsed.TextQuery),
		)
		items, total, err = s.findAndCount(ctx, fallbackFilter(parsed.TextQuery, filter), repository.SortPopularity, skip, int64(p.Limit))
	}
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}

	if items == nil {
		items = []domain.Product{}
	}

	totalPages := int((total + int64(p.Limit) - 1) / int64(p.Limit))
	if totalPages < 1 {
		totalPages = 1
	}

	s.logger.DebugContext(ctx, "search executed",
		slog.String("query", p.Query),
		slog.Int64("total", total),
		slog.Int("page", p.Page),
	)

	return &domain.SearchResult{
		Items:       items,
		Total:       total,
		Page:        p.Page,
		TotalPages:  totalPages,
		ParsedQuery: parsed,
	}, nil
}

// findAndCount issues the page fetch and the total count as a concurrent
// pair, joining both before returning. There is no ordering dependency
// between the two reads.
func (s *SearchService) findAndCount(ctx context.Context, f repository.SearchFilter, sort repository.SortMode, skip, limit int64) ([]domain.Product, int64, error) {
	type countResult struct {
		n   int64
		err error
	}
	countCh := make(chan countResult, 1)
	go func() {
		n, err := s.repo.Count(ctx, f)
		countCh <- countResult{n: n, err: err}
	}()

	items, findErr := s.repo.Find(ctx, f, sort, skip, limit)
	count := <-countCh

	if findErr != nil {
		return nil, 0, findErr
	}
	if count.err != nil {
		return nil, 0, count.err
	}
	return items, count.n, nil
}

// fallbackFilter rebuilds the filter for the regex path: the text query is
// tokenized into an all-tokens-in-any-order match, or a single substring
// match when only stop words remain. Category and price carry over.
func fallbackFilter(textQuery string, f repository.SearchFilter) repository.SearchFilter {
	fb := repository.SearchFilter{
		Category: f.Category,
		MaxPrice: f.MaxPrice,
	}
	if tokens := query.Tokenize(textQuery); len(tokens) > 0 {
		fb.Tokens = tokens
	} else {
		fb.Substring = textQuery
	}
	return fb
}
