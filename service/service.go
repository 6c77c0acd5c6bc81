package service

import (
	"context"
	"encoding/json"
	"log/slog"

	"productapi.app/errors"
	"productapi.app/models"
	"productapi.app/providers"
	"productapi.app/pkg/validation"
)

// healthCheckTCIN is a known-good product used for upstream health probes
const healthCheckTCIN = "78025470"

// ProductService validates identifiers and delegates to the product provider
type ProductService struct {
	provider providers.ProductProvider
	bulk     *providers.BulkFetcher
}

// NewProductService creates a new product service with the specified provider
func NewProductService(provider providers.ProductProvider) *ProductService {
	return &ProductService{
		provider: provider,
		bulk:     providers.NewBulkFetcher(provider),
	}
}

// GetProduct retrieves product detail for a TCIN
func (s *ProductService) GetProduct(ctx context.Context, tcin string) (models.ProductPayload, error) {
	if !validation.IsValidTCIN(tcin) {
		return nil, errors.NewValidationError("tcin must be 8-10 digits").WithContext(tcin, "getProduct")
	}

	return s.provider.GetProduct(ctx, tcin, providers.RequestOptions{})
}

// GetProductByBarcode retrieves product detail for a GTIN/UPC barcode
func (s *ProductService) GetProductByBarcode(ctx context.Context, gtin string) (models.ProductPayload, error) {
	if !validation.IsValidGTIN(gtin) {
		return nil, errors.NewValidationError("gtin must be 8-14 digits").WithContext(gtin, "getProductByBarcode")
	}

	return s.provider.GetProductByBarcode(ctx, gtin, providers.RequestOptions{})
}

// GetStoreStock retrieves in-store stock for a TCIN near a zip code. When
// storeID is given the upstream list is filtered client-side; the upstream
// itself does not support store filtering.
func (s *ProductService) GetStoreStock(ctx context.Context, tcin, zipcode, storeID string) (models.ProductPayload, error) {
	if !validation.IsValidTCIN(tcin) {
		return nil, errors.NewValidationError("tcin must be 8-10 digits").WithContext(tcin, "getStoreStock")
	}
	if !validation.IsValidZipcode(zipcode) {
		return nil, errors.NewValidationError("zipcode must be 5 digits").WithContext(zipcode, "getStoreStock")
	}

	payload, err := s.provider.GetStoreStock(ctx, tcin, zipcode, storeID, providers.RequestOptions{})
	if err != nil {
		return nil, err
	}

	if storeID == "" {
		return payload, nil
	}

	return filterStockByStore(payload, storeID)
}

// Search retrieves one page of search results and shapes it, returning an
// explicit empty result set (not an error) when nothing matched.
func (s *ProductService) Search(ctx context.Context, req *models.SearchRequest) (*models.SearchData, error) {
	term, ok := validation.TrimAndValidate(req.Query)
	if !ok {
		return nil, errors.NewValidationError("search term cannot be empty").WithContext(req.Query, "search")
	}

	page := req.Page
	if page < 1 {
		page = 1
	}

	payload, err := s.provider.Search(ctx, term, page, req.Sort, providers.RequestOptions{})
	if err != nil {
		return nil, err
	}

	var envelope models.UpstreamEnvelope
	if err := json.Unmarshal(payload, &envelope); err != nil {
		return nil, errors.NewUnknownError("failed to decode search response", err).WithContext(term, "search")
	}

	data := &models.SearchData{
		Results:        envelope.SearchResults,
		Facets:         envelope.Facets,
		Categories:     envelope.Categories,
		RelatedQueries: envelope.RelatedQueries,
	}
	if envelope.Pagination != nil {
		data.Pagination = *envelope.Pagination
	}
	if len(data.Results) == 0 || string(data.Results) == "null" {
		data.Results = json.RawMessage("[]")
		data.Pagination = models.Pagination{}
	}

	return data, nil
}

// GetProducts fetches multiple products concurrently; failed items are omitted
func (s *ProductService) GetProducts(ctx context.Context, tcins []string) map[string]models.ProductPayload {
	return s.bulk.GetProducts(ctx, tcins)
}

// GetStoreStocks fetches stock for multiple products concurrently
func (s *ProductService) GetStoreStocks(ctx context.Context, tcins []string, zipcode string) map[string]models.ProductPayload {
	return s.bulk.GetStoreStocks(ctx, tcins, zipcode)
}

// HealthCheck probes the upstream with a forced, cache-bypassing lookup of a
// known-good product. Any failure reports unhealthy.
func (s *ProductService) HealthCheck(ctx context.Context) bool {
	_, err := s.provider.GetProduct(ctx, healthCheckTCIN, providers.RequestOptions{ForceRefresh: true})
	if err != nil {
		slog.Warn("upstream health check failed", "error", err)
		return false
	}
	return true
}

// filterStockByStore keeps only in_store_stock entries matching storeID.
// Fields other than in_store_stock are passed through unchanged.
func filterStockByStore(payload models.ProductPayload, storeID string) (models.ProductPayload, error) {
	var body map[string]json.RawMessage
	if err := json.Unmarshal(payload, &body); err != nil {
		return nil, errors.NewUnknownError("failed to decode stock response", err)
	}

	rawStock, ok := body["in_store_stock"]
	if !ok {
		return payload, nil
	}

	var stores []map[string]json.RawMessage
	if err := json.Unmarshal(rawStock, &stores); err != nil {
		return nil, errors.NewUnknownError("failed to decode stock list", err)
	}

	filtered := make([]map[string]json.RawMessage, 0, len(stores))
	for _, store := range stores {
		var id string
		if raw, ok := store["store_id"]; ok {
			if err := json.Unmarshal(raw, &id); err != nil {
				// store_id may be numeric in older payloads
				var numeric json.Number
				if err := json.Unmarshal(raw, &numeric); err == nil {
					id = numeric.String()
				}
			}
		}
		if id == storeID {
			filtered = append(filtered, store)
		}
	}

	updatedStock, err := json.Marshal(filtered)
	if err != nil {
		return nil, errors.NewUnknownError("failed to encode filtered stock", err)
	}
	body["in_store_stock"] = updatedStock

	updated, err := json.Marshal(body)
	if err != nil {
		return nil, errors.NewUnknownError("failed to encode stock response", err)
	}

	return models.ProductPayload(updated), nil
}
