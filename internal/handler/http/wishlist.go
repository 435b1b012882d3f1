package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Nikelesh006/megasifi-search/internal/domain"
	"github.com/Nikelesh006/megasifi-search/internal/repository"
	apperrors "github.com/Nikelesh006/megasifi-search/pkg/errors"
	"github.com/Nikelesh006/megasifi-search/pkg/httputil"
	"github.com/Nikelesh006/megasifi-search/pkg/middleware"
)

// WishlistHandler handles HTTP requests for wishlist endpoints. Membership
// is a server-owned set keyed by the authenticated user.
type WishlistHandler struct {
	wishlist domain.WishlistRepository
	products repository.ProductRepository
	logger   *slog.Logger
}

// NewWishlistHandler creates a new wishlist HTTP handler.
func NewWishlistHandler(wishlist domain.WishlistRepository, products repository.ProductRepository, logger *slog.Logger) *WishlistHandler {
	return &WishlistHandler{
		wishlist: wishlist,
		products: products,
		logger:   logger,
	}
}

// wishlistResponse is the hydrated wishlist returned by List.
type wishlistResponse struct {
	Items []domain.Product `json:"items"`
	Total int              `json:"total"`
}

// Add handles POST /api/v1/wishlist/{productId}
func (h *WishlistHandler) Add(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.requireUser(w, r)
	if !ok {
		return
	}

	productID := chi.URLParam(r, "productId")
	if _, err := h.products.GetByID(r.Context(), productID); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	if err := h.wishlist.Add(r.Context(), userID, productID); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{
		Data: map[string]string{"product_id": productID, "status": "added"},
	})
}

// Remove handles DELETE /api/v1/wishlist/{productId}
func (h *WishlistHandler) Remove(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.requireUser(w, r)
	if !ok {
		return
	}

	productID := chi.URLParam(r, "productId")
	if err := h.wishlist.Remove(r.Context(), userID, productID); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{
		Data: map[string]string{"product_id": productID, "status": "removed"},
	})
}

// List handles GET /api/v1/wishlist
func (h *WishlistHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.requireUser(w, r)
	if !ok {
		return
	}

	ids, err := h.wishlist.List(r.Context(), userID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	items, err := h.products.FindByIDs(r.Context(), ids)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{
		Data: wishlistResponse{Items: items, Total: len(items)},
	})
}

func (h *WishlistHandler) requireUser(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID := middleware.UserIDFromContext(r.Context())
	if userID == "" {
		httputil.WriteError(w, r, apperrors.Unauthorized("user not authenticated"), h.logger)
		return "", false
	}
	return userID, true
}
