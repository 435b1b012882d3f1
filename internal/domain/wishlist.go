package domain

import "context"

// WishlistRepository defines the interface for wishlist membership storage.
// Membership is a server-owned set keyed by user identity.
type WishlistRepository interface {
	// Add inserts a product into the user's wishlist (idempotent).
	Add(ctx context.Context, userID, productID string) error

	// Remove deletes a product from the user's wishlist.
	Remove(ctx context.Context, userID, productID string) error

	// List returns the product IDs in the user's wishlist.
	List(ctx context.Context, userID string) ([]string, error)

	// Exists checks whether a product is in the user's wishlist.
	Exists(ctx context.Context, userID, productID string) (bool, error)
}
