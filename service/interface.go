package service

import (
	"context"

	"productapi.app/models"
	"productapi.app/providers"
)

// ProductServiceInterface defines the interface for product operations
type ProductServiceInterface interface {
	GetProduct(ctx context.Context, tcin string) (models.ProductPayload, error)
	GetProductByBarcode(ctx context.Context, gtin string) (models.ProductPayload, error)
	GetStoreStock(ctx context.Context, tcin, zipcode, storeID string) (models.ProductPayload, error)
	Search(ctx context.Context, req *models.SearchRequest) (*models.SearchData, error)
	GetProducts(ctx context.Context, tcins []string) map[string]models.ProductPayload
	GetStoreStocks(ctx context.Context, tcins []string, zipcode string) map[string]models.ProductPayload
	HealthCheck(ctx context.Context) bool
}

// ProductProviderInterface is an alias to the providers interface
type ProductProviderInterface = providers.ProductProvider

// Ensure implementations satisfy interfaces
var _ ProductServiceInterface = (*ProductService)(nil)
