package providers

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"productapi.app/models"
)

// ProductCacheProxy caches provider responses with per-category TTLs.
// Product and search payloads share one cache instance, stock payloads use a
// separate one with a much shorter TTL.
type ProductCacheProxy struct {
	realProvider ProductProvider
	productCache Cache
	stockCache   Cache
	productTTL   time.Duration
	searchTTL    time.Duration
	stockTTL     time.Duration
}

func NewProductCacheProxy(realProvider ProductProvider, productCache, stockCache Cache, productTTL, searchTTL, stockTTL time.Duration) ProductProvider {
	return &ProductCacheProxy{
		realProvider: realProvider,
		productCache: productCache,
		stockCache:   stockCache,
		productTTL:   productTTL,
		searchTTL:    searchTTL,
		stockTTL:     stockTTL,
	}
}

func (p *ProductCacheProxy) GetProduct(ctx context.Context, tcin string, opts RequestOptions) (models.ProductPayload, error) {
	cacheKey := productCacheKey(tcin)

	return p.cached(ctx, p.productCache, cacheKey, p.productTTL, opts, func() (models.ProductPayload, error) {
		return p.realProvider.GetProduct(ctx, tcin, opts)
	})
}

func (p *ProductCacheProxy) GetProductByBarcode(ctx context.Context, gtin string, opts RequestOptions) (models.ProductPayload, error) {
	cacheKey := barcodeCacheKey(gtin)

	return p.cached(ctx, p.productCache, cacheKey, p.productTTL, opts, func() (models.ProductPayload, error) {
		return p.realProvider.GetProductByBarcode(ctx, gtin, opts)
	})
}

func (p *ProductCacheProxy) GetStoreStock(ctx context.Context, tcin, zipcode, storeID string, opts RequestOptions) (models.ProductPayload, error) {
	// storeID is deliberately absent from the key: the upstream response is
	// identical regardless of its value.
	cacheKey := stockCacheKey(tcin, zipcode)

	return p.cached(ctx, p.stockCache, cacheKey, p.stockTTL, opts, func() (models.ProductPayload, error) {
		return p.realProvider.GetStoreStock(ctx, tcin, zipcode, storeID, opts)
	})
}

func (p *ProductCacheProxy) Search(ctx context.Context, term string, page int, sortBy string, opts RequestOptions) (models.ProductPayload, error) {
	if page < 1 {
		page = 1
	}
	cacheKey := searchCacheKey(term, page, sortBy)

	return p.cached(ctx, p.productCache, cacheKey, p.searchTTL, opts, func() (models.ProductPayload, error) {
		return p.realProvider.Search(ctx, term, page, sortBy, opts)
	})
}

func (p *ProductCacheProxy) cached(ctx context.Context, cache Cache, cacheKey string, ttl time.Duration, opts RequestOptions, fetch func() (models.ProductPayload, error)) (models.ProductPayload, error) {
	if !opts.ForceRefresh {
		if cachedPayload, found := cache.Get(ctx, cacheKey); found {
			slog.Debug("cache hit", "key", cacheKey)
			return models.ProductPayload(cachedPayload), nil
		}
		slog.Debug("cache miss", "key", cacheKey)
	}

	payload, err := fetch()
	if err != nil {
		return nil, err
	}

	cache.Set(ctx, cacheKey, payload, ttl)

	return payload, nil
}

// Cache keys are a pure function of the logical query: identifier plus
// whatever parameters the upstream actually honors.
func productCacheKey(tcin string) string {
	return fmt.Sprintf("product:tcin:%s", tcin)
}

func barcodeCacheKey(gtin string) string {
	return fmt.Sprintf("product:gtin:%s", gtin)
}

func stockCacheKey(tcin, zipcode string) string {
	return fmt.Sprintf("stock:%s:%s", tcin, zipcode)
}

func searchCacheKey(term string, page int, sortBy string) string {
	return fmt.Sprintf("search:%s:%d:%s", term, page, sortBy)
}
