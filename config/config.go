package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"productapi.app/errors"
)

// Config represents the application configuration structure
type Config struct {
	Server    ServerConfig    `split_words:"true"`
	RedCircle RedCircleConfig `split_words:"true"`
	Cache     CacheConfig     `split_words:"true"`
	AppEnv    string          `envconfig:"APP_ENV" default:"development"`
	// RequestLogFile enables the upstream request file log when set
	RequestLogFile string `envconfig:"REQUEST_LOG_FILE" default:""`
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Port int `envconfig:"SERVER_PORT" default:"8080"`
}

// RedCircleConfig contains settings for the RedCircle product API
type RedCircleConfig struct {
	APIKey  string        `envconfig:"REDCIRCLE_API_KEY"`
	BaseURL string        `envconfig:"REDCIRCLE_BASE_URL" default:"https://api.redcircleapi.com/request"`
	Timeout time.Duration `envconfig:"REDCIRCLE_TIMEOUT" default:"10s"`
}

// CacheConfig contains cache backend selection and per-category TTLs
type CacheConfig struct {
	Type          string        `envconfig:"CACHE_TYPE" default:"memory"`
	RedisAddr     string        `envconfig:"CACHE_REDIS_ADDR" default:"localhost:6379"`
	RedisPassword string        `envconfig:"CACHE_REDIS_PASSWORD" default:""`
	RedisDB       int           `envconfig:"CACHE_REDIS_DB" default:"0"`
	ProductTTL    time.Duration `envconfig:"CACHE_PRODUCT_TTL" default:"1h"`
	SearchTTL     time.Duration `envconfig:"CACHE_SEARCH_TTL" default:"5m"`
	StockTTL      time.Duration `envconfig:"CACHE_STOCK_TTL" default:"1m"`
}

// LoadConfig loads and validates application configuration from environment variables
func LoadConfig() (*Config, error) {
	var config Config
	if err := envconfig.Process("", &config); err != nil {
		return nil, errors.NewConfigurationError("error processing config", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	// A missing API key is deliberately non-fatal: every upstream call will
	// fail authorization predictably, which is easier to diagnose at runtime
	// than a refused boot.
	if config.RedCircle.APIKey == "" {
		slog.Warn("REDCIRCLE_API_KEY is not set; upstream requests will fail authorization")
	}

	return &config, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if err := c.Server.Validate(); err != nil {
		return err
	}
	if err := c.RedCircle.Validate(); err != nil {
		return err
	}
	if err := c.Cache.Validate(); err != nil {
		return err
	}
	if c.AppEnv != "development" && c.AppEnv != "production" {
		return errors.NewConfigurationError("APP_ENV must be development or production", nil)
	}
	return nil
}

// IsProduction reports whether error messages should be redacted
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// Validate checks server configuration
func (s *ServerConfig) Validate() error {
	if s.Port < 1 || s.Port > 65535 {
		return errors.NewConfigurationError("SERVER_PORT must be between 1 and 65535", nil)
	}
	return nil
}

// Validate checks RedCircle API configuration
func (r *RedCircleConfig) Validate() error {
	if r.BaseURL == "" {
		return errors.NewConfigurationError("REDCIRCLE_BASE_URL cannot be empty", nil)
	}
	if !strings.HasPrefix(r.BaseURL, "http://") && !strings.HasPrefix(r.BaseURL, "https://") {
		return errors.NewConfigurationError("REDCIRCLE_BASE_URL must start with http:// or https://", nil)
	}
	if r.Timeout <= 0 {
		return errors.NewConfigurationError("REDCIRCLE_TIMEOUT must be positive", nil)
	}
	return nil
}

// Validate checks cache configuration
func (c *CacheConfig) Validate() error {
	if c.Type != "memory" && c.Type != "redis" {
		return errors.NewConfigurationError(fmt.Sprintf("CACHE_TYPE must be memory or redis, got %q", c.Type), nil)
	}
	if c.Type == "redis" && c.RedisAddr == "" {
		return errors.NewConfigurationError("CACHE_REDIS_ADDR cannot be empty when CACHE_TYPE is redis", nil)
	}
	if c.ProductTTL <= 0 || c.SearchTTL <= 0 || c.StockTTL <= 0 {
		return errors.NewConfigurationError("cache TTLs must be positive", nil)
	}
	return nil
}
