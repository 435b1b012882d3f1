// Package repository defines the read-only contract the search core uses to
// query the product catalog.
package repository

import (
	"context"
	"errors"

	"github.com/Nikelesh006/megasifi-search/internal/domain"
)

// ErrTextIndexUnavailable reports that a relevance-ranked text search was
// rejected because the backing collection has no text index. Implementations
// decide when a backend failure means this; callers branch with errors.Is
// and must never inspect driver error messages themselves.
var ErrTextIndexUnavailable = errors.New("text index unavailable")

// SearchFilter describes one product query. At most one of TextQuery,
// Tokens, and Substring is set: TextQuery asks for a relevance-ranked text
// match, Tokens for a case-insensitive all-tokens-as-substrings match in any
// order, and Substring for a single case-insensitive containment match.
// Category and MaxPrice compose with any of them. MaxPrice compares against
// the effective price (offer price when set, list price otherwise).
type SearchFilter struct {
	TextQuery string
	Tokens    []string
	Substring string
	Category  string
	MaxPrice  *float64
}

// SortMode selects the ranking applied to Find results.
type SortMode int

const (
	// SortRelevance orders by text score, then popularity, then rating.
	// Only meaningful when the filter carries a TextQuery.
	SortRelevance SortMode = iota

	// SortPopularity orders by popularity, then rating, then creation time.
	SortPopularity
)

// ProductRepository is the read-only view of the product catalog.
type ProductRepository interface {
	// Find returns up to limit products matching the filter, skipping the
	// first skip matches, in the given sort order.
	Find(ctx context.Context, filter SearchFilter, sort SortMode, skip, limit int64) ([]domain.Product, error)

	// Count returns the total number of products matching the filter,
	// ignoring pagination.
	Count(ctx context.Context, filter SearchFilter) (int64, error)

	// FindByPrefix returns up to limit products whose name, brand, or
	// search keywords start with the given prefix (case-insensitive),
	// ordered by popularity then rating.
	FindByPrefix(ctx context.Context, prefix string, limit int64) ([]domain.Product, error)

	// GetByID returns a single product or pkg/errors.ErrNotFound.
	GetByID(ctx context.Context, id string) (*domain.Product, error)

	// FindByIDs returns the products for the given IDs. Unknown IDs are
	// silently skipped.
	FindByIDs(ctx context.Context, ids []string) ([]domain.Product, error)

	// List returns a page of products, newest first, optionally restricted
	// to a category, along with the total count.
	List(ctx context.Context, category string, skip, limit int64) ([]domain.Product, int64, error)
}
