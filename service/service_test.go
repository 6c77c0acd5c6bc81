package service

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	apperrors "productapi.app/errors"
	"productapi.app/models"
	"productapi.app/providers"
)

// MockProductProvider for testing
type MockProductProvider struct {
	mock.Mock
}

func (m *MockProductProvider) GetProduct(ctx context.Context, tcin string, opts providers.RequestOptions) (models.ProductPayload, error) {
	args := m.Called(ctx, tcin, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(models.ProductPayload), args.Error(1)
}

func (m *MockProductProvider) GetProductByBarcode(ctx context.Context, gtin string, opts providers.RequestOptions) (models.ProductPayload, error) {
	args := m.Called(ctx, gtin, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(models.ProductPayload), args.Error(1)
}

func (m *MockProductProvider) GetStoreStock(ctx context.Context, tcin, zipcode, storeID string, opts providers.RequestOptions) (models.ProductPayload, error) {
	args := m.Called(ctx, tcin, zipcode, storeID, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(models.ProductPayload), args.Error(1)
}

func (m *MockProductProvider) Search(ctx context.Context, term string, page int, sortBy string, opts providers.RequestOptions) (models.ProductPayload, error) {
	args := m.Called(ctx, term, page, sortBy, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(models.ProductPayload), args.Error(1)
}

func TestProductService_GetProduct(t *testing.T) {
	ctx := context.Background()

	t.Run("ValidTCIN", func(t *testing.T) {
		mockProvider := new(MockProductProvider)
		payload := models.ProductPayload(`{"product":{"tcin":"78025470"}}`)
		mockProvider.On("GetProduct", ctx, "78025470", providers.RequestOptions{}).Return(payload, nil)

		svc := NewProductService(mockProvider)
		result, err := svc.GetProduct(ctx, "78025470")

		assert.NoError(t, err)
		assert.Equal(t, payload, result)
		mockProvider.AssertExpectations(t)
	})

	t.Run("InvalidTCINRejectedWithoutProviderCall", func(t *testing.T) {
		mockProvider := new(MockProductProvider)

		svc := NewProductService(mockProvider)

		for _, tcin := range []string{"123", "12345678901", "7802547a", ""} {
			result, err := svc.GetProduct(ctx, tcin)

			assert.Nil(t, result)
			assert.True(t, apperrors.IsValidationError(err), "tcin %q", tcin)
		}

		mockProvider.AssertNotCalled(t, "GetProduct")
	})
}

func TestProductService_GetProductByBarcode(t *testing.T) {
	ctx := context.Background()

	t.Run("ValidGTIN", func(t *testing.T) {
		mockProvider := new(MockProductProvider)
		payload := models.ProductPayload(`{"product":{"tcin":"78025470"}}`)
		mockProvider.On("GetProductByBarcode", ctx, "036000291452", providers.RequestOptions{}).Return(payload, nil)

		svc := NewProductService(mockProvider)
		result, err := svc.GetProductByBarcode(ctx, "036000291452")

		assert.NoError(t, err)
		assert.Equal(t, payload, result)
	})

	t.Run("InvalidGTIN", func(t *testing.T) {
		svc := NewProductService(new(MockProductProvider))

		_, err := svc.GetProductByBarcode(ctx, "1234567")

		assert.True(t, apperrors.IsValidationError(err))
	})
}

func TestProductService_GetStoreStock(t *testing.T) {
	ctx := context.Background()
	stockPayload := models.ProductPayload(`{"in_store_stock":[{"store_id":"1234","quantity":5},{"store_id":"5678","quantity":0}]}`)

	t.Run("NoStoreFilter", func(t *testing.T) {
		mockProvider := new(MockProductProvider)
		mockProvider.On("GetStoreStock", ctx, "78025470", "90210", "", providers.RequestOptions{}).Return(stockPayload, nil)

		svc := NewProductService(mockProvider)
		result, err := svc.GetStoreStock(ctx, "78025470", "90210", "")

		assert.NoError(t, err)
		assert.Equal(t, stockPayload, result)
	})

	t.Run("StoreFilterAppliedClientSide", func(t *testing.T) {
		mockProvider := new(MockProductProvider)
		mockProvider.On("GetStoreStock", ctx, "78025470", "90210", "1234", providers.RequestOptions{}).Return(stockPayload, nil)

		svc := NewProductService(mockProvider)
		result, err := svc.GetStoreStock(ctx, "78025470", "90210", "1234")

		require.NoError(t, err)

		var body struct {
			InStoreStock []map[string]interface{} `json:"in_store_stock"`
		}
		require.NoError(t, json.Unmarshal(result, &body))
		require.Len(t, body.InStoreStock, 1)
		assert.Equal(t, "1234", body.InStoreStock[0]["store_id"])
	})

	t.Run("InvalidZipcode", func(t *testing.T) {
		svc := NewProductService(new(MockProductProvider))

		_, err := svc.GetStoreStock(ctx, "78025470", "9021", "")

		assert.True(t, apperrors.IsValidationError(err))
	})
}

func TestProductService_Search(t *testing.T) {
	ctx := context.Background()

	t.Run("ResultsWithPagination", func(t *testing.T) {
		mockProvider := new(MockProductProvider)
		payload := models.ProductPayload(`{
			"search_results":[{"product":{"tcin":"78025470"}}],
			"pagination":{"current_page":1,"total_pages":3,"total_results":55}
		}`)
		mockProvider.On("Search", ctx, "red shoes", 1, "", providers.RequestOptions{}).Return(payload, nil)

		svc := NewProductService(mockProvider)
		data, err := svc.Search(ctx, &models.SearchRequest{Query: "red shoes"})

		require.NoError(t, err)
		assert.Equal(t, 1, data.Pagination.CurrentPage)
		assert.Equal(t, 3, data.Pagination.TotalPages)
		assert.Equal(t, 55, data.Pagination.TotalResults)
	})

	t.Run("EmptyResultsAreNotAnError", func(t *testing.T) {
		mockProvider := new(MockProductProvider)
		payload := models.ProductPayload(`{"search_results":[],"pagination":{"current_page":1,"total_pages":1,"total_results":0}}`)
		mockProvider.On("Search", ctx, "asdfqwerty", 1, "", providers.RequestOptions{}).Return(payload, nil)

		svc := NewProductService(mockProvider)
		data, err := svc.Search(ctx, &models.SearchRequest{Query: "asdfqwerty"})

		require.NoError(t, err)
		assert.Equal(t, "[]", string(data.Results))
		assert.Equal(t, models.Pagination{}, data.Pagination)
	})

	t.Run("MissingResultsFieldTreatedAsEmpty", func(t *testing.T) {
		mockProvider := new(MockProductProvider)
		payload := models.ProductPayload(`{"request_info":{"success":true}}`)
		mockProvider.On("Search", ctx, "nothing", 1, "", providers.RequestOptions{}).Return(payload, nil)

		svc := NewProductService(mockProvider)
		data, err := svc.Search(ctx, &models.SearchRequest{Query: "nothing"})

		require.NoError(t, err)
		assert.Equal(t, "[]", string(data.Results))
	})

	t.Run("TermIsTrimmed", func(t *testing.T) {
		mockProvider := new(MockProductProvider)
		payload := models.ProductPayload(`{"search_results":[]}`)
		mockProvider.On("Search", ctx, "shoes", 2, "newest", providers.RequestOptions{}).Return(payload, nil)

		svc := NewProductService(mockProvider)
		_, err := svc.Search(ctx, &models.SearchRequest{Query: "  shoes  ", Page: 2, Sort: "newest"})

		assert.NoError(t, err)
		mockProvider.AssertExpectations(t)
	})

	t.Run("EmptyTermRejected", func(t *testing.T) {
		svc := NewProductService(new(MockProductProvider))

		_, err := svc.Search(ctx, &models.SearchRequest{Query: "   "})

		assert.True(t, apperrors.IsValidationError(err))
	})
}

func TestProductService_HealthCheck(t *testing.T) {
	ctx := context.Background()

	t.Run("HealthyUpstream", func(t *testing.T) {
		mockProvider := new(MockProductProvider)
		mockProvider.On("GetProduct", ctx, healthCheckTCIN, providers.RequestOptions{ForceRefresh: true}).
			Return(models.ProductPayload(`{"product":{}}`), nil)

		svc := NewProductService(mockProvider)

		assert.True(t, svc.HealthCheck(ctx))
		mockProvider.AssertExpectations(t)
	})

	t.Run("AnyFailureIsUnhealthy", func(t *testing.T) {
		mockProvider := new(MockProductProvider)
		mockProvider.On("GetProduct", ctx, healthCheckTCIN, providers.RequestOptions{ForceRefresh: true}).
			Return(nil, apperrors.NewUnauthorizedError("bad key"))

		svc := NewProductService(mockProvider)

		assert.False(t, svc.HealthCheck(ctx))
	})
}

func TestProductService_BulkOperations(t *testing.T) {
	ctx := context.Background()

	mockProvider := new(MockProductProvider)
	mockProvider.On("GetProduct", mock.Anything, "78025470", providers.RequestOptions{}).
		Return(models.ProductPayload(`{"product":{"tcin":"78025470"}}`), nil)
	mockProvider.On("GetProduct", mock.Anything, "99999999", providers.RequestOptions{}).
		Return(nil, apperrors.NewNotFoundError("product not found"))

	svc := NewProductService(mockProvider)
	results := svc.GetProducts(ctx, []string{"78025470", "99999999"})

	assert.Contains(t, results, "78025470")
	assert.NotContains(t, results, "99999999")
}
