package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nikelesh006/megasifi-search/internal/domain"
	"github.com/Nikelesh006/megasifi-search/internal/repository"
	"github.com/Nikelesh006/megasifi-search/internal/repository/memory"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestService(repo repository.ProductRepository) *SearchService {
	return NewSearchService(repo, newTestLogger())
}

func TestSearch_PriceCeilingFiltersByEffectivePrice(t *testing.T) {
	repo := memory.NewProductRepository()
	cotton := repo.Put(domain.Product{
		Name:       "Red Cotton Shirt",
		Brand:      "Loomcraft",
		Category:   "apparel",
		Price:      1200,
		Popularity: 40,
	})
	repo.Put(domain.Product{
		Name:       "Red Silk Shirt",
		Brand:      "Loomcraft",
		Category:   "apparel",
		Price:      2000,
		Popularity: 90,
	})
	discounted := repo.Put(domain.Product{
		Name:       "Red Linen Shirt",
		Brand:      "Loomcraft",
		Category:   "apparel",
		Price:      2500,
		OfferPrice: 1400,
		Popularity: 60,
	})

	svc := newTestService(repo)
	result, err := svc.Search(context.Background(), SearchParams{Query: "red shirt under 1500"})
	require.NoError(t, err)

	assert.Equal(t, "red shirt", result.ParsedQuery.TextQuery)
	require.NotNil(t, result.ParsedQuery.MaxPrice)
	assert.Equal(t, 1500.0, *result.ParsedQuery.MaxPrice)

	require.Equal(t, int64(2), result.Total)
	ids := []string{result.Items[0].ID.Hex(), result.Items[1].ID.Hex()}
	assert.Contains(t, ids, cotton.ID.Hex())
	assert.Contains(t, ids, discounted.ID.Hex())
}

func TestSearch_RelevanceBeatsPopularity(t *testing.T) {
	repo := memory.NewProductRepository()
	both := repo.Put(domain.Product{
		Name:       "Red Shirt",
		Popularity: 5,
	})
	repo.Put(domain.Product{
		Name:       "Blue Shirt",
		Popularity: 500,
	})

	svc := newTestService(repo)
	result, err := svc.Search(context.Background(), SearchParams{Query: "red shirt"})
	require.NoError(t, err)

	require.Equal(t, int64(2), result.Total)
	assert.Equal(t, both.ID, result.Items[0].ID)
}

func TestSearch_Pagination(t *testing.T) {
	repo := memory.NewProductRepository()
	for i := 0; i < 5; i++ {
		repo.Put(domain.Product{Name: "Trail Backpack", Popularity: float64(i)})
	}

	svc := newTestService(repo)
	ctx := context.Background()

	result, err := svc.Search(ctx, SearchParams{Query: "backpack", Page: 3, Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(5), result.Total)
	assert.Equal(t, 3, result.Page)
	assert.Equal(t, 3, result.TotalPages)
	assert.Len(t, result.Items, 1)

	// Page past the end returns an empty (non-nil) page with the same totals.
	result, err = svc.Search(ctx, SearchParams{Query: "backpack", Page: 9, Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(5), result.Total)
	assert.NotNil(t, result.Items)
	assert.Empty(t, result.Items)
}

func TestSearch_NoMatchesReportsOnePage(t *testing.T) {
	svc := newTestService(memory.NewProductRepository())

	result, err := svc.Search(context.Background(), SearchParams{Query: "nothing here"})
	require.NoError(t, err)
	assert.Equal(t, int64(0), result.Total)
	assert.Equal(t, 1, result.TotalPages)
	assert.NotNil(t, result.Items)
	assert.Empty(t, result.Items)
}

func TestSearch_NormalizesPageAndLimit(t *testing.T) {
	repo := memory.NewProductRepository()
	for i := 0; i < 150; i++ {
		repo.Put(domain.Product{Name: "Steel Bottle", Popularity: float64(i)})
	}

	svc := newTestService(repo)
	result, err := svc.Search(context.Background(), SearchParams{Query: "bottle", Page: -2, Limit: 100000})
	require.NoError(t, err)

	assert.Equal(t, 1, result.Page)
	assert.Len(t, result.Items, 100)
	assert.Equal(t, 2, result.TotalPages)
}

func TestSearch_FallsBackWithoutTextIndex(t *testing.T) {
	repo := memory.NewProductRepository()
	repo.SetTextIndex(false)

	want := repo.Put(domain.Product{
		Name:  "Blue Shoes Running Edition",
		Price: 900,
	})
	repo.Put(domain.Product{
		Name:  "Running Socks",
		Price: 300,
	})
	repo.Put(domain.Product{
		Name:  "Blue Running Shoes Deluxe",
		Price: 2400,
	})

	svc := newTestService(repo)
	result, err := svc.Search(context.Background(), SearchParams{Query: "running shoes under 1500"})
	require.NoError(t, err)

	// Tokens match in any order; the price ceiling still applies.
	require.Equal(t, int64(1), result.Total)
	assert.Equal(t, want.ID, result.Items[0].ID)
	require.NotNil(t, result.ParsedQuery.MaxPrice)
	assert.Equal(t, 1500.0, *result.ParsedQuery.MaxPrice)
}

func TestSearch_CategoryScopesResults(t *testing.T) {
	repo := memory.NewProductRepository()
	repo.Put(domain.Product{Name: "Canvas Tote", Category: "bags"})
	repo.Put(domain.Product{Name: "Canvas Print", Category: "decor"})

	svc := newTestService(repo)
	result, err := svc.Search(context.Background(), SearchParams{Query: "canvas", Category: "bags"})
	require.NoError(t, err)

	require.Equal(t, int64(1), result.Total)
	assert.Equal(t, "Canvas Tote", result.Items[0].Name)
}

// faultyRepo fails every catalog read with a fixed error.
type faultyRepo struct {
	err error
}

func (f *faultyRepo) Find(context.Context, repository.SearchFilter, repository.SortMode, int64, int64) ([]domain.Product, error) {
	return nil, f.err
}
func (f *faultyRepo) Count(context.Context, repository.SearchFilter) (int64, error) {
	return 0, f.err
}
func (f *faultyRepo) FindByPrefix(context.Context, string, int64) ([]domain.Product, error) {
	return nil, f.err
}
func (f *faultyRepo) GetByID(context.Context, string) (*domain.Product, error) { return nil, f.err }
func (f *faultyRepo) FindByIDs(context.Context, []string) ([]domain.Product, error) {
	return nil, f.err
}
func (f *faultyRepo) List(context.Context, string, int64, int64) ([]domain.Product, int64, error) {
	return nil, 0, f.err
}

func TestSearch_NonIndexErrorsPropagate(t *testing.T) {
	cause := errors.New("connection reset")
	svc := newTestService(&faultyRepo{err: cause})

	_, err := svc.Search(context.Background(), SearchParams{Query: "anything"})
	require.Error(t, err)
	assert.ErrorIs(t, err, cause)
}
