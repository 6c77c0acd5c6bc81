package app

import (
	"fmt"
	"log/slog"
	"time"

	"productapi.app/api"
	"productapi.app/config"
	"productapi.app/providers"
	"productapi.app/providers/cache"
	"productapi.app/service"
)

// Application represents the main application with all its dependencies
type Application struct {
	config *config.Config
	server *api.Server
	caches []*cache.MemoryCache
}

// NewApplication creates and initializes a new application instance
func NewApplication() (*Application, error) {
	app := &Application{}

	if err := app.loadConfiguration(); err != nil {
		return nil, err
	}

	if err := app.initializeServices(); err != nil {
		return nil, err
	}

	return app, nil
}

func (app *Application) loadConfiguration() error {
	slog.Info("Loading configuration...")

	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		return fmt.Errorf("load application configuration: %w", err)
	}

	app.config = cfg
	slog.Info("Configuration loaded successfully")
	return nil
}

func (app *Application) initializeServices() error {
	slog.Info("Initializing services...")

	productCache, err := app.newCache("product")
	if err != nil {
		return fmt.Errorf("create product cache: %w", err)
	}

	stockCache, err := app.newCache("stock")
	if err != nil {
		return fmt.Errorf("create stock cache: %w", err)
	}

	provider, err := app.buildProvider(productCache, stockCache)
	if err != nil {
		return fmt.Errorf("build product provider: %w", err)
	}

	productService := service.NewProductService(provider)
	app.server = api.NewServer(app.config, productService)

	slog.Info("Services initialized successfully")
	return nil
}

// newCache creates one instrumented cache instance for a data category
func (app *Application) newCache(cacheType string) (providers.Cache, error) {
	var backend providers.Cache

	switch app.config.Cache.Type {
	case "redis":
		redisCache, err := cache.NewRedisCache(&cache.RedisCacheConfig{
			Addr:         app.config.Cache.RedisAddr,
			Password:     app.config.Cache.RedisPassword,
			DB:           app.config.Cache.RedisDB,
			DialTimeout:  5 * time.Second,
			ReadTimeout:  3 * time.Second,
			WriteTimeout: 3 * time.Second,
		})
		if err != nil {
			return nil, err
		}
		backend = redisCache
	default:
		memCache := cache.NewMemoryCache()
		app.caches = append(app.caches, memCache)
		backend = memCache
	}

	return providers.NewInstrumentedCache(backend, cacheType), nil
}

func (app *Application) buildProvider(productCache, stockCache providers.Cache) (providers.ProductProvider, error) {
	var provider providers.ProductProvider = providers.NewRedCircleProvider(&app.config.RedCircle)

	if app.config.RequestLogFile != "" {
		requestLogger, err := providers.NewFileLogger(app.config.RequestLogFile)
		if err != nil {
			return nil, fmt.Errorf("create request logger: %w", err)
		}
		provider = providers.NewProductLoggerDecorator(provider, requestLogger)
	}

	provider = providers.NewProductCacheProxy(
		provider,
		productCache,
		stockCache,
		app.config.Cache.ProductTTL,
		app.config.Cache.SearchTTL,
		app.config.Cache.StockTTL,
	)

	return provider, nil
}

// Config returns the application configuration
func (app *Application) Config() *config.Config {
	return app.config
}

// Start begins serving HTTP requests
func (app *Application) Start() error {
	slog.Info("Starting HTTP server", "port", app.config.Server.Port)
	return app.server.Start()
}

// Shutdown stops background workers
func (app *Application) Shutdown() error {
	for _, memCache := range app.caches {
		memCache.Stop()
	}
	slog.Info("Application shut down")
	return nil
}
