package config

import (
	"fmt"

	pkgconfig "github.com/Nikelesh006/megasifi-search/pkg/config"
)

// Config holds all configuration for the search service.
type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	// HTTP server
	HTTPPort int `env:"SEARCH_HTTP_PORT" envDefault:"8010"`

	// Product store selection (mongo or memory)
	ProductStore  string `env:"PRODUCT_STORE" envDefault:"mongo"`
	MongoURI      string `env:"MONGO_URI" envDefault:"mongodb://localhost:27017"`
	MongoDatabase string `env:"MONGO_DATABASE" envDefault:"megasifi"`

	// Wishlist store selection (redis or memory)
	WishlistStore string `env:"WISHLIST_STORE" envDefault:"redis"`
	RedisHost     string `env:"REDIS_HOST" envDefault:"localhost"`
	RedisPort     int    `env:"REDIS_PORT" envDefault:"6379"`
	RedisPassword string `env:"REDIS_PASSWORD" envDefault:""`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := pkgconfig.Load(cfg); err != nil {
		return nil, fmt.Errorf("load search config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// validate checks configuration invariants.
func (c *Config) validate() error {
	if c.HTTPPort < 1 || c.HTTPPort > 65535 {
		return fmt.Errorf("invalid HTTP port: %d", c.HTTPPort)
	}
	switch c.ProductStore {
	case "mongo", "memory":
	default:
		return fmt.Errorf("invalid product store: %s", c.ProductStore)
	}
	switch c.WishlistStore {
	case "redis", "memory":
	default:
		return fmt.Errorf("invalid wishlist store: %s", c.WishlistStore)
	}
	return nil
}
