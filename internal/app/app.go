package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/Nikelesh006/megasifi-search/internal/config"
	"github.com/Nikelesh006/megasifi-search/internal/domain"
	handler "github.com/Nikelesh006/megasifi-search/internal/handler/http"
	"github.com/Nikelesh006/megasifi-search/internal/repository"
	memoryrepo "github.com/Nikelesh006/megasifi-search/internal/repository/memory"
	mongorepo "github.com/Nikelesh006/megasifi-search/internal/repository/mongo"
	redisrepo "github.com/Nikelesh006/megasifi-search/internal/repository/redis"
	"github.com/Nikelesh006/megasifi-search/internal/service"
	"github.com/Nikelesh006/megasifi-search/pkg/health"
)

const serviceName = "search-service"

// App wires together all dependencies and runs the search service.
type App struct {
	cfg         *config.Config
	logger      *slog.Logger
	mongoClient *mongo.Client
	redisClient *goredis.Client
	httpServer  *http.Server
}

// NewApp creates a new application instance, initializing all dependencies.
func NewApp(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	healthHandler := health.NewHandler()

	// Initialize product store based on configuration.
	var products repository.ProductRepository
	var mongoClient *mongo.Client
	switch cfg.ProductStore {
	case "mongo":
		client, err := mongorepo.Connect(ctx, cfg.MongoURI)
		if err != nil {
			return nil, fmt.Errorf("connect mongo: %w", err)
		}
		mongoClient = client
		repo := mongorepo.NewProductRepository(client.Database(cfg.MongoDatabase), logger)
		products = repo
		healthHandler.Register("mongo", repo.Ping)
		logger.Info("mongo product store initialized",
			slog.String("database", cfg.MongoDatabase),
		)
	default:
		products = memoryrepo.NewProductRepository()
		logger.Info("in-memory product store initialized")
	}

	// Initialize wishlist store based on configuration.
	var wishlist domain.WishlistRepository
	var redisClient *goredis.Client
	switch cfg.WishlistStore {
	case "redis":
		client, err := redisrepo.NewClient(ctx, redisrepo.Config{
			Host:     cfg.RedisHost,
			Port:     cfg.RedisPort,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err != nil {
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		redisClient = client
		repo := redisrepo.NewWishlistRepository(client)
		wishlist = repo
		healthHandler.Register("redis", repo.Ping)
		logger.Info("redis wishlist store initialized",
			slog.String("host", cfg.RedisHost),
		)
	default:
		wishlist = memoryrepo.NewWishlistRepository()
		logger.Info("in-memory wishlist store initialized")
	}

	// Build the service layer.
	searchService := service.NewSearchService(products, logger)

	// HTTP router.
	router := handler.NewRouter(handler.RouterDeps{
		Search:   handler.NewSearchHandler(searchService, logger),
		Catalog:  handler.NewCatalogHandler(products, logger),
		Wishlist: handler.NewWishlistHandler(wishlist, products, logger),
		Health:   healthHandler,
		Logger:   logger,
		Service:  serviceName,
	})

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &App{
		cfg:         cfg,
		logger:      logger,
		mongoClient: mongoClient,
		redisClient: redisClient,
		httpServer:  httpServer,
	}, nil
}

// Run starts the HTTP server, blocking until the context is canceled.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		a.logger.Info("starting HTTP server",
			slog.String("addr", a.httpServer.Addr),
		)
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("shutdown signal received")
	case err := <-errCh:
		return err
	}

	return a.Shutdown()
}

// Shutdown gracefully stops all components.
func (a *App) Shutdown() error {
	a.logger.Info("shutting down application...")

	var errs []error

	// Graceful HTTP server shutdown with a 10-second deadline.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := a.httpServer.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("http server shutdown error", slog.String("error", err.Error()))
		errs = append(errs, err)
	}

	if a.mongoClient != nil {
		if err := a.mongoClient.Disconnect(shutdownCtx); err != nil {
			a.logger.Error("mongo disconnect error", slog.String("error", err.Error()))
			errs = append(errs, err)
		}
	}

	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.logger.Error("redis close error", slog.String("error", err.Error()))
			errs = append(errs, err)
		}
	}

	a.logger.Info("application shutdown complete")
	return errors.Join(errs...)
}
