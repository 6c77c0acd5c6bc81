package providers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"productapi.app/errors"
	"productapi.app/models"
)

// stubProvider returns canned payloads per identifier and fails for the rest
type stubProvider struct {
	payloads map[string]string
}

func (s *stubProvider) GetProduct(ctx context.Context, tcin string, opts RequestOptions) (models.ProductPayload, error) {
	if body, ok := s.payloads[tcin]; ok {
		return models.ProductPayload(body), nil
	}
	return nil, errors.NewNotFoundError("product not found").WithContext(tcin, "getProduct")
}

func (s *stubProvider) GetProductByBarcode(ctx context.Context, gtin string, opts RequestOptions) (models.ProductPayload, error) {
	return s.GetProduct(ctx, gtin, opts)
}

func (s *stubProvider) GetStoreStock(ctx context.Context, tcin, zipcode, storeID string, opts RequestOptions) (models.ProductPayload, error) {
	return s.GetProduct(ctx, tcin, opts)
}

func (s *stubProvider) Search(ctx context.Context, term string, page int, sortBy string, opts RequestOptions) (models.ProductPayload, error) {
	return nil, errors.NewUnknownError("not implemented", nil)
}

func TestBulkFetcher_GetProducts(t *testing.T) {
	ctx := context.Background()

	t.Run("FailedItemsAreOmittedNotFatal", func(t *testing.T) {
		fetcher := NewBulkFetcher(&stubProvider{payloads: map[string]string{
			"78025470": `{"product":{"tcin":"78025470"}}`,
			"13860428": `{"product":{"tcin":"13860428"}}`,
		}})

		results := fetcher.GetProducts(ctx, []string{"78025470", "13860428", "99999999"})

		assert.Contains(t, results, "78025470")
		assert.Contains(t, results, "13860428")
		assert.NotContains(t, results, "99999999")
	})

	t.Run("CanonicalDecimalKeyAdded", func(t *testing.T) {
		fetcher := NewBulkFetcher(&stubProvider{payloads: map[string]string{
			"078025470": `{"product":{"tcin":"78025470"}}`,
		}})

		results := fetcher.GetProducts(ctx, []string{"078025470"})

		assert.Contains(t, results, "078025470")
		assert.Contains(t, results, "78025470")
		assert.Equal(t, results["078025470"], results["78025470"])
	})

	t.Run("EmptyInput", func(t *testing.T) {
		fetcher := NewBulkFetcher(&stubProvider{})

		results := fetcher.GetProducts(ctx, nil)

		assert.Empty(t, results)
	})

	t.Run("AllItemsFail", func(t *testing.T) {
		fetcher := NewBulkFetcher(&stubProvider{})

		results := fetcher.GetProducts(ctx, []string{"11111111", "22222222"})

		assert.Empty(t, results)
	})
}

func TestBulkFetcher_GetStoreStocks(t *testing.T) {
	fetcher := NewBulkFetcher(&stubProvider{payloads: map[string]string{
		"78025470": `{"in_store_stock":[{"store_id":"1234"}]}`,
	}})

	results := fetcher.GetStoreStocks(context.Background(), []string{"78025470", "99999999"}, "90210")

	assert.Contains(t, results, "78025470")
	assert.NotContains(t, results, "99999999")
	assert.Len(t, results, 1)
}
