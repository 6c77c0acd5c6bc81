package providers

import (
	"context"
	"log/slog"
	"strconv"
	"sync"

	"productapi.app/models"
)

// BulkFetcher fans out single-item provider calls concurrently. Each item's
// failure is isolated: failing identifiers are logged and omitted from the
// result, the batch itself never fails.
type BulkFetcher struct {
	provider ProductProvider
}

func NewBulkFetcher(provider ProductProvider) *BulkFetcher {
	return &BulkFetcher{provider: provider}
}

// GetProducts fetches every TCIN concurrently and returns the successful
// payloads keyed by identifier.
func (b *BulkFetcher) GetProducts(ctx context.Context, tcins []string) map[string]models.ProductPayload {
	return b.fanOut(ctx, tcins, "getProducts", func(tcin string) (models.ProductPayload, error) {
		return b.provider.GetProduct(ctx, tcin, RequestOptions{})
	})
}

// GetStoreStocks fetches store stock for every TCIN concurrently near one
// zip code.
func (b *BulkFetcher) GetStoreStocks(ctx context.Context, tcins []string, zipcode string) map[string]models.ProductPayload {
	return b.fanOut(ctx, tcins, "getStoreStocks", func(tcin string) (models.ProductPayload, error) {
		return b.provider.GetStoreStock(ctx, tcin, zipcode, "", RequestOptions{})
	})
}

func (b *BulkFetcher) fanOut(ctx context.Context, identifiers []string, operation string, fetch func(string) (models.ProductPayload, error)) map[string]models.ProductPayload {
	results := make(map[string]models.ProductPayload)

	var wg sync.WaitGroup
	var mutex sync.Mutex

	for _, identifier := range identifiers {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()

			payload, err := fetch(id)
			if err != nil {
				slog.Warn("bulk item failed", "operation", operation, "identifier", id, "error", err)
				return
			}

			mutex.Lock()
			defer mutex.Unlock()

			// Store under the identifier as given and under its canonical
			// decimal form, so callers with inconsistent key formats
			// ("078025470" vs "78025470") still find their entry.
			results[id] = payload
			if canonical, parseErr := strconv.ParseUint(id, 10, 64); parseErr == nil {
				results[strconv.FormatUint(canonical, 10)] = payload
			}
		}(identifier)
	}

	wg.Wait()
	return results
}
