package http

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/Nikelesh006/megasifi-search/internal/service"
	"github.com/Nikelesh006/megasifi-search/pkg/httputil"
	"github.com/Nikelesh006/megasifi-search/pkg/validator"
)

// SearchHandler handles HTTP requests for search and suggest endpoints.
type SearchHandler struct {
	service *service.SearchService
	logger  *slog.Logger
}

// NewSearchHandler creates a new search HTTP handler.
func NewSearchHandler(svc *service.SearchService, logger *slog.Logger) *SearchHandler {
	return &SearchHandler{
		service: svc,
		logger:  logger,
	}
}

// searchRequest bounds the free-text parameters before they reach the
// repository layer.
type searchRequest struct {
	Query    string `validate:"max=200"`
	Category string `validate:"max=100"`
}

// Search handles GET /api/v1/search
func (h *SearchHandler) Search(w http.ResponseWriter, r *http.Request) {
	req := searchRequest{
		Query:    r.URL.Query().Get("q"),
		Category: r.URL.Query().Get("category"),
	}
	if err := validator.Validate(req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	// Degenerate page/limit values coerce to defaults rather than erroring.
	params := service.SearchParams{
		Query:    req.Query,
		Category: req.Category,
		Page:     intQueryParam(r, "page"),
		Limit:    intQueryParam(r, "limit"),
	}

	result, err := h.service.Search(r.Context(), params)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: result})
}

// Suggest handles GET /api/v1/search/suggest
func (h *SearchHandler) Suggest(w http.ResponseWriter, r *http.Request) {
	suggestions, err := h.service.Suggest(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: suggestions})
}

// intQueryParam returns the named query parameter as a positive integer, or
// 0 when it is absent or unparseable (the service applies its defaults).
func intQueryParam(r *http.Request, name string) int {
	v := r.URL.Query().Get(name)
	if v == "" {
		return 0
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 1 {
		return 0
	}
	return n
}
