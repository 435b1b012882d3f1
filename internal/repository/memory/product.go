// Package memory provides in-memory implementations of the repository
// interfaces, used in tests and when no MongoDB deployment is configured.
package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Nikelesh006/megasifi-search/internal/domain"
	"github.com/Nikelesh006/megasifi-search/internal/repository"
	apperrors "github.com/Nikelesh006/megasifi-search/pkg/errors"
)

// ProductRepository is an in-memory implementation of
// repository.ProductRepository. It mirrors the MongoDB semantics closely
// enough to exercise the executor, including the text-index failure mode:
// with the index disabled, text-query filters fail with
// repository.ErrTextIndexUnavailable just as the real store would.
// Thread-safe via sync.RWMutex.
type ProductRepository struct {
	mu        sync.RWMutex
	products  map[string]domain.Product
	textIndex bool
}

// NewProductRepository creates an empty in-memory repository with the text
// index enabled.
func NewProductRepository() *ProductRepository {
	return &ProductRepository{
		products:  make(map[string]domain.Product),
		textIndex: true,
	}
}

// SetTextIndex toggles the simulated text index. Disabling it makes
// text-query filters fail the way a collection without the index does.
func (r *ProductRepository) SetTextIndex(enabled bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.textIndex = enabled
}

// Put inserts or replaces a product, assigning an ID when missing.
func (r *ProductRepository) Put(p domain.Product) domain.Product {
	r.mu.Lock()
	defer r.mu.Unlock()

	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	r.products[p.ID.Hex()] = p
	return p
}

// Ping always succeeds.
func (r *ProductRepository) Ping(_ context.Context) error { return nil }

// Find returns a page of products matching the filter in the given order.
func (r *ProductRepository) Find(_ context.Context, f repository.SearchFilter, sortMode repository.SortMode, skip, limit int64) ([]domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matched, scores, err := r.match(f)
	if err != nil {
		return nil, err
	}

	sortProducts(matched, scores, sortMode)

	total := int64(len(matched))
	if skip > total {
		skip = total
	}
	end := skip + limit
	if limit <= 0 || end > total {
		end = total
	}

	page := make([]domain.Product, end-skip)
	copy(page, matched[skip:end])
	return page, nil
}

// Count returns the number of products matching the filter.
func (r *ProductRepository) Count(_ context.Context, f repository.SearchFilter) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matched, _, err := r.match(f)
	if err != nil {
		return 0, err
	}
	return int64(len(matched)), nil
}

// FindByPrefix returns products whose name, brand, or search keywords start
// with the prefix, most popular first.
func (r *ProductRepository) FindByPrefix(_ context.Context, prefix string, limit int64) ([]domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	prefix = strings.ToLower(prefix)

	var matched []domain.Product
	for _, p := range r.products {
		if matchesPrefix(p, prefix) {
			matched = append(matched, p)
		}
	}

	sortProducts(matched, nil, repository.SortPopularity)

	if limit > 0 && int64(len(matched)) > limit {
		matched = matched[:limit]
	}
	return matched, nil
}

// GetByID returns a single product by its hex object ID.
func (r *ProductRepository) GetByID(_ context.Context, id string) (*domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.products[id]
	if !ok {
		return nil, fmt.Errorf("product %s: %w", id, apperrors.ErrNotFound)
	}
	return &p, nil
}

// FindByIDs returns the products for the given IDs, skipping unknown ones.
func (r *ProductRepository) FindByIDs(_ context.Context, ids []string) ([]domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	products := make([]domain.Product, 0, len(ids))
	for _, id := range ids {
		if p, ok := r.products[id]; ok {
			products = append(products, p)
		}
	}
	return products, nil
}

// List returns a page of the catalog, newest first, with the total count.
func (r *ProductRepository) List(_ context.Context, category string, skip, limit int64) ([]domain.Product, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matched []domain.Product
	for _, p := range r.products {
		if category == "" || p.Category == category {
			matched = append(matched, p)
		}
	}

	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].CreatedAt.After(matched[j].CreatedAt)
		}
		return matched[i].ID.Hex() < matched[j].ID.Hex()
	})

	total := int64(len(matched))
	if skip > total {
		skip = total
	}
	end := skip + limit
	if limit <= 0 || end > total {
		end = total
	}
	page := make([]domain.Product, end-skip)
	copy(page, matched[skip:end])
	return page, total, nil
}

// match evaluates the filter against every product and, for text queries,
// returns a naive relevance score (number of matched terms) per product ID.
func (r *ProductRepository) match(f repository.SearchFilter) ([]domain.Product, map[string]int, error) {
	if f.TextQuery != "" && !r.textIndex {
		return nil, nil, fmt.Errorf("text query %q: %w", f.TextQuery, repository.ErrTextIndexUnavailable)
	}

	var terms []string
	if f.TextQuery != "" {
		terms = strings.Fields(strings.ToLower(f.TextQuery))
	}

	var matched []domain.Product
	scores := make(map[string]int)

	for _, p := range r.products {
		if f.Category != "" && p.Category != f.Category {
			continue
		}
		if f.MaxPrice != nil && p.EffectivePrice() > *f.MaxPrice {
			continue
		}

		text := searchableText(p)
		switch {
		case len(terms) > 0:
			// $text semantics: OR over terms, ranked by how many hit.
			score := 0
			for _, term := range terms {
				if strings.Contains(text, term) {
					score++
				}
			}
			if score == 0 {
				continue
			}
			scores[p.ID.Hex()] = score
		case len(f.Tokens) > 0:
			// Fallback semantics: every token somewhere, any order.
			ok := true
			for _, tok := range f.Tokens {
				if !strings.Contains(text, strings.ToLower(tok)) {
					ok = false
					break
				}
			}
			if !ok {
				continue
			}
		case f.Substring != "":
			if !strings.Contains(text, strings.ToLower(f.Substring)) {
				continue
			}
		}

		matched = append(matched, p)
	}

	return matched, scores, nil
}

// searchableText concatenates the same fields the text index covers.
func searchableText(p domain.Product) string {
	parts := []string{p.Name, p.Brand, p.Category, p.SubCategory, p.Description}
	parts = append(parts, p.Tags...)
	parts = append(parts, p.SearchKeywords...)
	return strings.ToLower(strings.Join(parts, " "))
}

func matchesPrefix(p domain.Product, prefix string) bool {
	if strings.HasPrefix(strings.ToLower(p.Name), prefix) {
		return true
	}
	if p.Brand != "" && strings.HasPrefix(strings.ToLower(p.Brand), prefix) {
		return true
	}
	for _, kw := range p.SearchKeywords {
		if strings.HasPrefix(strings.ToLower(kw), prefix) {
			return true
		}
	}
	return false
}

// sortProducts orders matches like the MongoDB repository: relevance (when
// scores are present) then popularity, rating, creation time, with the hex
// ID as a final deterministic tie-break.
func sortProducts(products []domain.Product, scores map[string]int, mode repository.SortMode) {
	sort.Slice(products, func(i, j int) bool {
		a, b := products[i], products[j]
		if mode == repository.SortRelevance && scores != nil {
			sa, sb := scores[a.ID.Hex()], scores[b.ID.Hex()]
			if sa != sb {
				return sa > sb
			}
		}
		if a.Popularity != b.Popularity {
			return a.Popularity > b.Popularity
		}
		if a.Rating != b.Rating {
			return a.Rating > b.Rating
		}
		if mode == repository.SortPopularity && !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
		return a.ID.Hex() < b.ID.Hex()
	})
}
