package memory

import (
	"context"
	"sort"
	"sync"
)

// WishlistRepository is an in-memory implementation of
// domain.WishlistRepository.
type WishlistRepository struct {
	mu    sync.RWMutex
	items map[string]map[string]struct{}
}

// NewWishlistRepository creates an empty in-memory wishlist store.
func NewWishlistRepository() *WishlistRepository {
	return &WishlistRepository{
		items: make(map[string]map[string]struct{}),
	}
}

// Add inserts a product into the user's wishlist (idempotent).
func (r *WishlistRepository) Add(_ context.Context, userID, productID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.items[userID] == nil {
		r.items[userID] = make(map[string]struct{})
	}
	r.items[userID][productID] = struct{}{}
	return nil
}

// Remove deletes a product from the user's wishlist.
func (r *WishlistRepository) Remove(_ context.Context, userID, productID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.items[userID], productID)
	return nil
}

// List returns the product IDs in the user's wishlist in a stable order.
func (r *WishlistRepository) List(_ context.Context, userID string) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]string, 0, len(r.items[userID]))
	for id := range r.items[userID] {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

// Exists checks whether a product is in the user's wishlist.
func (r *WishlistRepository) Exists(_ context.Context, userID, productID string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.items[userID][productID]
	return ok, nil
}
