package providers

import (
	"context"
	"time"

	"productapi.app/models"
	"productapi.app/providers/cache"
)

// RequestOptions tunes a single provider call. The zero value means "use the
// cache and the default timeout".
type RequestOptions struct {
	ForceRefresh bool
	Timeout      time.Duration
}

// ProductProvider defines the interface for product data providers
type ProductProvider interface {
	GetProduct(ctx context.Context, tcin string, opts RequestOptions) (models.ProductPayload, error)
	GetProductByBarcode(ctx context.Context, gtin string, opts RequestOptions) (models.ProductPayload, error)
	GetStoreStock(ctx context.Context, tcin, zipcode, storeID string, opts RequestOptions) (models.ProductPayload, error)
	Search(ctx context.Context, term string, page int, sortBy string, opts RequestOptions) (models.ProductPayload, error)
}

// Cache is an alias to avoid circular imports
type Cache = cache.Cache

// RequestLogger defines the interface for per-request file logging
type RequestLogger interface {
	LogRequest(operation, identifier string)
	LogResponse(operation, identifier string, size int, duration time.Duration)
	LogError(operation, identifier string, err error, duration time.Duration)
}
