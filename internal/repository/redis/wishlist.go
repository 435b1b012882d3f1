// Package redis implements wishlist storage as one Redis set per user.
package redis

import (
	"context"
	"fmt"
	"sort"

	"github.com/redis/go-redis/v9"
)

// Config holds Redis connection configuration.
type Config struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// Addr returns the Redis address string.
func (c Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// NewClient creates a Redis client and verifies the connection.
func NewClient(ctx context.Context, cfg Config) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}

// WishlistRepository stores each user's liked products as a Redis set keyed
// by user identity, implementing domain.WishlistRepository.
type WishlistRepository struct {
	client *redis.Client
}

// NewWishlistRepository creates a wishlist repository over the given client.
func NewWishlistRepository(client *redis.Client) *WishlistRepository {
	return &WishlistRepository{client: client}
}

func wishlistKey(userID string) string {
	return "wishlist:" + userID
}

// Ping verifies the underlying connection, for readiness checks.
func (r *WishlistRepository) Ping(ctx context.Context) error {
	if err := r.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping: %w", err)
	}
	return nil
}

// Add inserts a product into the user's wishlist. Adding an existing member
// is a no-op.
func (r *WishlistRepository) Add(ctx context.Context, userID, productID string) error {
	if err := r.client.SAdd(ctx, wishlistKey(userID), productID).Err(); err != nil {
		return fmt.Errorf("wishlist add: %w", err)
	}
	return nil
}

// Remove deletes a product from the user's wishlist.
func (r *WishlistRepository) Remove(ctx context.Context, userID, productID string) error {
	if err := r.client.SRem(ctx, wishlistKey(userID), productID).Err(); err != nil {
		return fmt.Errorf("wishlist remove: %w", err)
	}
	return nil
}

// List returns the product IDs in the user's wishlist in a stable order.
func (r *WishlistRepository) List(ctx context.Context, userID string) ([]string, error) {
	ids, err := r.client.SMembers(ctx, wishlistKey(userID)).Result()
	if err != nil {
		return nil, fmt.Errorf("wishlist list: %w", err)
	}
	// SMEMBERS order is unspecified; keep responses stable.
	sort.Strings(ids)
	return ids, nil
}

// Exists checks whether a product is in the user's wishlist.
func (r *WishlistRepository) Exists(ctx context.Context, userID, productID string) (bool, error) {
	ok, err := r.client.SIsMember(ctx, wishlistKey(userID), productID).Result()
	if err != nil {
		return false, fmt.Errorf("wishlist exists: %w", err)
	}
	return ok, nil
}
