// Package mongo implements the product repository against a MongoDB
// collection with an optional text index over the searchable fields.
package mongo

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/Nikelesh006/megasifi-search/internal/domain"
	"github.com/Nikelesh006/megasifi-search/internal/repository"
	apperrors "github.com/Nikelesh006/megasifi-search/pkg/errors"
)

// CollectionName is the products collection queried by the repository.
const CollectionName = "products"

// ProductRepository is a MongoDB-backed implementation of
// repository.ProductRepository.
type ProductRepository struct {
	coll   *mongo.Collection
	logger *slog.Logger
}

// NewProductRepository creates a repository over the products collection of
// the given database.
func NewProductRepository(db *mongo.Database, logger *slog.Logger) *ProductRepository {
	return &ProductRepository{
		coll:   db.Collection(CollectionName),
		logger: logger,
	}
}

// Ping verifies the underlying connection, for readiness checks.
func (r *ProductRepository) Ping(ctx context.Context) error {
	if err := r.coll.Database().Client().Ping(ctx, readpref.Primary()); err != nil {
		return fmt.Errorf("mongodb ping: %w", err)
	}
	return nil
}

// Find returns a page of products matching the filter in the given order.
func (r *ProductRepository) Find(ctx context.Context, f repository.SearchFilter, sort repository.SortMode, skip, limit int64) ([]domain.Product, error) {
	opts := options.Find().
		SetSort(buildSort(sort)).
		SetSkip(skip).
		SetLimit(limit)

	if sort == repository.SortRelevance {
		// The textScore meta projection adds the score field without
		// excluding anything else.
		opts.SetProjection(bson.M{"score": bson.M{"$meta": "textScore"}})
	}

	cursor, err := r.coll.Find(ctx, buildFilter(f), opts)
	if err != nil {
		return nil, fmt.Errorf("find products: %w", classify(err))
	}
	defer func() { _ = cursor.Close(ctx) }()

	var products []domain.Product
	if err := cursor.All(ctx, &products); err != nil {
		return nil, fmt.Errorf("decode products: %w", classify(err))
	}
	return products, nil
}

// Count returns the total number of products matching the filter.
func (r *ProductRepository) Count(ctx context.Context, f repository.SearchFilter) (int64, error) {
	n, err := r.coll.CountDocuments(ctx, buildFilter(f))
	if err != nil {
		return 0, fmt.Errorf("count products: %w", classify(err))
	}
	return n, nil
}

// FindByPrefix returns products whose name, brand, or search keywords start
// with the prefix, most popular first.
func (r *ProductRepository) FindByPrefix(ctx context.Context, prefix string, limit int64) ([]domain.Product, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "popularity", Value: -1}, {Key: "rating", Value: -1}}).
		SetLimit(limit)

	cursor, err := r.coll.Find(ctx, prefixFilter(prefix), opts)
	if err != nil {
		return nil, fmt.Errorf("find by prefix: %w", err)
	}
	defer func() { _ = cursor.Close(ctx) }()

	var products []domain.Product
	if err := cursor.All(ctx, &products); err != nil {
		return nil, fmt.Errorf("decode prefix matches: %w", err)
	}
	return products, nil
}

// GetByID returns a single product by its hex object ID.
func (r *ProductRepository) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("product id %q: %w", id, apperrors.ErrInvalidInput)
	}

	var product domain.Product
	err = r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&product)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("product %s: %w", id, apperrors.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get product: %w", err)
	}
	return &product, nil
}

// FindByIDs returns the products for the given hex IDs, skipping IDs that
// do not parse or do not exist.
func (r *ProductRepository) FindByIDs(ctx context.Context, ids []string) ([]domain.Product, error) {
	oids := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		oid, err := primitive.ObjectIDFromHex(id)
		if err != nil {
			r.logger.WarnContext(ctx, "skipping malformed product id", slog.String("id", id))
			continue
		}
		oids = append(oids, oid)
	}
	if len(oids) == 0 {
		return []domain.Product{}, nil
	}

	cursor, err := r.coll.Find(ctx, bson.M{"_id": bson.M{"$in": oids}})
	if err != nil {
		return nil, fmt.Errorf("find products by ids: %w", err)
	}
	defer func() { _ = cursor.Close(ctx) }()

	var products []domain.Product
	if err := cursor.All(ctx, &products); err != nil {
		return nil, fmt.Errorf("decode products by ids: %w", err)
	}
	return products, nil
}

// List returns a page of the catalog, newest first, optionally restricted
// to one category, with the total count for the same filter.
func (r *ProductRepository) List(ctx context.Context, category string, skip, limit int64) ([]domain.Product, int64, error) {
	filter := bson.M{}
	if category != "" {
		filter["category"] = category
	}

	total, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("count catalog: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(skip).
		SetLimit(limit)

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list catalog: %w", err)
	}
	defer func() { _ = cursor.Close(ctx) }()

	var products []domain.Product
	if err := cursor.All(ctx, &products); err != nil {
		return nil, 0, fmt.Errorf("decode catalog page: %w", err)
	}
	return products, total, nil
}
