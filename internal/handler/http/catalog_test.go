package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nikelesh006/megasifi-search/internal/domain"
	"github.com/Nikelesh006/megasifi-search/internal/repository/memory"
	"github.com/Nikelesh006/megasifi-search/pkg/httputil"
)

func TestCatalogList(t *testing.T) {
	repo := memory.NewProductRepository()
	now := time.Now()
	repo.Put(domain.Product{Name: "Older Chair", Category: "furniture", CreatedAt: now.Add(-time.Hour)})
	repo.Put(domain.Product{Name: "Newer Chair", Category: "furniture", CreatedAt: now})
	repo.Put(domain.Product{Name: "Kettle", Category: "kitchen", CreatedAt: now})
	router := newTestRouter(repo)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/products?category=furniture", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data struct {
			Items      []domain.Product `json:"data"`
			TotalCount int              `json:"total_count"`
			TotalPages int              `json:"total_pages"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, 2, resp.Data.TotalCount)
	assert.Equal(t, 1, resp.Data.TotalPages)
	require.Len(t, resp.Data.Items, 2)
	assert.Equal(t, "Newer Chair", resp.Data.Items[0].Name)
}

func TestCatalogGet(t *testing.T) {
	repo := memory.NewProductRepository()
	p := repo.Put(domain.Product{Name: "Floor Lamp", Price: 2500})
	router := newTestRouter(repo)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/products/"+p.ID.Hex(), nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data domain.Product `json:"data"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, "Floor Lamp", resp.Data.Name)
	assert.Equal(t, 2500.0, resp.Data.Price)
}

func TestCatalogGet_NotFound(t *testing.T) {
	router := newTestRouter(memory.NewProductRepository())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/products/ffffffffffffffffffffffff", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusNotFound, w.Code)

	var resp struct {
		Error *httputil.ErrorResponse `json:"error"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	require.NotNil(t, resp.Error)
	assert.Equal(t, "NOT_FOUND", resp.Error.Code)
}
