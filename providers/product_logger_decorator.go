package providers

import (
	"context"
	"time"

	"productapi.app/models"
)

// ProductLoggerDecorator records every upstream call with its duration to a
// structured request log.
type ProductLoggerDecorator struct {
	wrappedProvider ProductProvider
	logger          RequestLogger
}

func NewProductLoggerDecorator(provider ProductProvider, logger RequestLogger) ProductProvider {
	return &ProductLoggerDecorator{
		wrappedProvider: provider,
		logger:          logger,
	}
}

func (d *ProductLoggerDecorator) GetProduct(ctx context.Context, tcin string, opts RequestOptions) (models.ProductPayload, error) {
	return d.logged("getProduct", tcin, func() (models.ProductPayload, error) {
		return d.wrappedProvider.GetProduct(ctx, tcin, opts)
	})
}

func (d *ProductLoggerDecorator) GetProductByBarcode(ctx context.Context, gtin string, opts RequestOptions) (models.ProductPayload, error) {
	return d.logged("getProductByBarcode", gtin, func() (models.ProductPayload, error) {
		return d.wrappedProvider.GetProductByBarcode(ctx, gtin, opts)
	})
}

func (d *ProductLoggerDecorator) GetStoreStock(ctx context.Context, tcin, zipcode, storeID string, opts RequestOptions) (models.ProductPayload, error) {
	return d.logged("getStoreStock", tcin, func() (models.ProductPayload, error) {
		return d.wrappedProvider.GetStoreStock(ctx, tcin, zipcode, storeID, opts)
	})
}

func (d *ProductLoggerDecorator) Search(ctx context.Context, term string, page int, sortBy string, opts RequestOptions) (models.ProductPayload, error) {
	return d.logged("search", term, func() (models.ProductPayload, error) {
		return d.wrappedProvider.Search(ctx, term, page, sortBy, opts)
	})
}

func (d *ProductLoggerDecorator) logged(operation, identifier string, call func() (models.ProductPayload, error)) (models.ProductPayload, error) {
	d.logger.LogRequest(operation, identifier)
	startTime := time.Now()

	payload, err := call()
	duration := time.Since(startTime)

	if err != nil {
		d.logger.LogError(operation, identifier, err, duration)
		return nil, err
	}

	d.logger.LogResponse(operation, identifier, len(payload), duration)
	return payload, nil
}
