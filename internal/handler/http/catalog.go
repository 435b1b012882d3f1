package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Nikelesh006/megasifi-search/internal/repository"
	"github.com/Nikelesh006/megasifi-search/pkg/httputil"
	"github.com/Nikelesh006/megasifi-search/pkg/pagination"
)

// CatalogHandler serves read-only catalog endpoints. Catalog writes belong
// to the seller-facing management service.
type CatalogHandler struct {
	repo   repository.ProductRepository
	logger *slog.Logger
}

// NewCatalogHandler creates a new catalog HTTP handler.
func NewCatalogHandler(repo repository.ProductRepository, logger *slog.Logger) *CatalogHandler {
	return &CatalogHandler{
		repo:   repo,
		logger: logger,
	}
}

// List handles GET /api/v1/products
func (h *CatalogHandler) List(w http.ResponseWriter, r *http.Request) {
	params := pagination.FromRequest(r)
	category := r.URL.Query().Get("category")

	products, total, err := h.repo.List(r.Context(), category, int64(params.Offset), int64(params.PerPage))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{
		Data: pagination.NewResult(products, int(total), params),
	})
}

// Get handles GET /api/v1/products/{id}
func (h *CatalogHandler) Get(w http.ResponseWriter, r *http.Request) {
	product, err := h.repo.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: product})
}
