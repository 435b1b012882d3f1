package http

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nikelesh006/megasifi-search/internal/domain"
	"github.com/Nikelesh006/megasifi-search/internal/repository/memory"
	"github.com/Nikelesh006/megasifi-search/internal/service"
	"github.com/Nikelesh006/megasifi-search/pkg/health"
	"github.com/Nikelesh006/megasifi-search/pkg/httputil"
)

func newTestRouter(repo *memory.ProductRepository) http.Handler {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := service.NewSearchService(repo, logger)

	return NewRouter(RouterDeps{
		Search:   NewSearchHandler(svc, logger),
		Catalog:  NewCatalogHandler(repo, logger),
		Wishlist: NewWishlistHandler(memory.NewWishlistRepository(), repo, logger),
		Health:   health.NewHandler(),
		Logger:   logger,
		Service:  "search-test",
	})
}

type searchEnvelope struct {
	Data  *domain.SearchResult    `json:"data"`
	Error *httputil.ErrorResponse `json:"error"`
}

func TestSearch_EndToEnd(t *testing.T) {
	repo := memory.NewProductRepository()
	repo.Put(domain.Product{Name: "Red Cotton Shirt", Price: 1200, Popularity: 10})
	repo.Put(domain.Product{Name: "Red Silk Shirt", Price: 2000, Popularity: 90})
	router := newTestRouter(repo)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/search?q=red+shirt+under+1500", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp searchEnvelope
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	require.Nil(t, resp.Error)
	require.NotNil(t, resp.Data)

	assert.Equal(t, "red shirt", resp.Data.ParsedQuery.TextQuery)
	require.NotNil(t, resp.Data.ParsedQuery.MaxPrice)
	assert.Equal(t, 1500.0, *resp.Data.ParsedQuery.MaxPrice)
	require.Equal(t, int64(1), resp.Data.Total)
	assert.Equal(t, "Red Cotton Shirt", resp.Data.Items[0].Name)
	assert.Equal(t, 1, resp.Data.Page)
	assert.Equal(t, 1, resp.Data.TotalPages)
}

func TestSearch_EmptyResultKeepsContract(t *testing.T) {
	router := newTestRouter(memory.NewProductRepository())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/search?q=nothing", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"items":[]`)
	assert.Contains(t, w.Body.String(), `"totalPages":1`)
}

func TestSearch_BadPaginationCoercesToDefaults(t *testing.T) {
	repo := memory.NewProductRepository()
	repo.Put(domain.Product{Name: "Oak Table"})
	router := newTestRouter(repo)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/search?q=oak&page=banana&limit=-5", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp searchEnvelope
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	require.NotNil(t, resp.Data)
	assert.Equal(t, 1, resp.Data.Page)
	assert.Equal(t, int64(1), resp.Data.Total)
}

func TestSearch_RejectsOverlongQuery(t *testing.T) {
	router := newTestRouter(memory.NewProductRepository())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/search?q="+strings.Repeat("x", 201), nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp searchEnvelope
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	require.NotNil(t, resp.Error)
	assert.Equal(t, "VALIDATION_ERROR", resp.Error.Code)
}

func TestSuggest_ReturnsEmptyListNotNull(t *testing.T) {
	router := newTestRouter(memory.NewProductRepository())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/search/suggest?q=", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"data":[]`)
}

func TestSuggest_ReturnsSuggestions(t *testing.T) {
	repo := memory.NewProductRepository()
	repo.Put(domain.Product{Name: "Classic Oxford Shoe", Brand: "Clarkson", Category: "footwear"})
	router := newTestRouter(repo)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/search/suggest?q=cla", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data []domain.Suggestion `json:"data"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	require.Len(t, resp.Data, 2)
	assert.Equal(t, "Classic Oxford Shoe", resp.Data[0].Text)
	assert.Equal(t, "footwear", resp.Data[0].Category)
}

func TestHealthLive(t *testing.T) {
	router := newTestRouter(memory.NewProductRepository())

	req := httptest.NewRequest(http.MethodGet, "/health/live", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}
