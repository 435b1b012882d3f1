package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Nikelesh006/megasifi-search/pkg/health"
	"github.com/Nikelesh006/megasifi-search/pkg/middleware"
)

// RouterDeps carries everything the router needs to mount the service.
type RouterDeps struct {
	Search   *SearchHandler
	Catalog  *CatalogHandler
	Wishlist *WishlistHandler
	Health   *health.Handler
	Logger   *slog.Logger
	Service  string
}

// NewRouter builds the chi router with the shared middleware chain and all
// service routes.
func NewRouter(deps RouterDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(CORS)
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.RequestLogging(deps.Logger))
	r.Use(middleware.Identity)
	r.Use(middleware.RequestLogger(deps.Logger))
	r.Use(middleware.PrometheusMetrics(deps.Service))
	r.Use(chimw.Compress(5))
	r.Use(chimw.Timeout(30 * time.Second))

	r.Get("/health/live", deps.Health.LivenessHandler())
	r.Get("/health/ready", deps.Health.ReadinessHandler())
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/search", deps.Search.Search)
		r.Get("/search/suggest", deps.Search.Suggest)

		r.Get("/products", deps.Catalog.List)
		r.Get("/products/{id}", deps.Catalog.Get)

		r.Route("/wishlist", func(r chi.Router) {
			r.Get("/", deps.Wishlist.List)
			r.Post("/{productId}", deps.Wishlist.Add)
			r.Delete("/{productId}", deps.Wishlist.Remove)
		})
	})

	return r
}
