package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"productapi.app/config"
	"productapi.app/errors"
	"productapi.app/models"
)

// RedCircleProvider implements ProductProvider against the RedCircle API.
// All four operations go to the same base URL and are dispatched by the
// "type" query parameter.
type RedCircleProvider struct {
	apiKey         string
	baseURL        string
	client         *http.Client
	defaultTimeout time.Duration
}

// NewRedCircleProvider creates a new RedCircle API provider
func NewRedCircleProvider(config *config.RedCircleConfig) *RedCircleProvider {
	timeout := config.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &RedCircleProvider{
		apiKey:         config.APIKey,
		baseURL:        config.BaseURL,
		client:         &http.Client{},
		defaultTimeout: timeout,
	}
}

// GetProduct retrieves product detail by TCIN
func (p *RedCircleProvider) GetProduct(ctx context.Context, tcin string, opts RequestOptions) (models.ProductPayload, error) {
	params := url.Values{}
	params.Set("type", "product")
	params.Set("tcin", tcin)

	return p.doRequest(ctx, "getProduct", tcin, params, opts)
}

// GetProductByBarcode retrieves product detail by GTIN/UPC barcode.
// The response shape is identical to a TCIN lookup.
func (p *RedCircleProvider) GetProductByBarcode(ctx context.Context, gtin string, opts RequestOptions) (models.ProductPayload, error) {
	params := url.Values{}
	params.Set("type", "product")
	params.Set("gtin", gtin)

	return p.doRequest(ctx, "getProductByBarcode", gtin, params, opts)
}

// GetStoreStock retrieves per-store stock levels for a TCIN near a zip code.
// storeID is accepted for backward compatibility but never sent upstream:
// RedCircle ignores server-side store filtering and returns the same list
// regardless, so callers filter the result themselves.
func (p *RedCircleProvider) GetStoreStock(ctx context.Context, tcin, zipcode, storeID string, opts RequestOptions) (models.ProductPayload, error) {
	_ = storeID

	params := url.Values{}
	params.Set("type", "store_stock")
	params.Set("tcin", tcin)
	params.Set("zipcode", zipcode)

	return p.doRequest(ctx, "getStoreStock", tcin, params, opts)
}

// Search retrieves a page of search results for a free-text term
func (p *RedCircleProvider) Search(ctx context.Context, term string, page int, sortBy string, opts RequestOptions) (models.ProductPayload, error) {
	if page < 1 {
		page = 1
	}

	params := url.Values{}
	params.Set("type", "search")
	params.Set("search_term", term)
	params.Set("page", fmt.Sprintf("%d", page))
	if sortBy != "" {
		params.Set("sort_by", sortBy)
	}

	return p.doRequest(ctx, "search", term, params, opts)
}

func (p *RedCircleProvider) doRequest(ctx context.Context, operation, identifier string, params url.Values, opts RequestOptions) (models.ProductPayload, error) {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = p.defaultTimeout
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	params.Set("api_key", p.apiKey)
	requestURL := p.baseURL + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, errors.NewUnknownError("failed to build upstream request", err).
			WithContext(identifier, operation)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, errors.NewUnknownError("upstream request failed", err).
			WithContext(identifier, operation)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.NewUnknownError("failed to read upstream response", err).
			WithContext(identifier, operation)
	}

	if appErr := classifyResponse(resp, body); appErr != nil {
		return nil, appErr.WithContext(identifier, operation)
	}

	if !json.Valid(body) {
		return nil, errors.NewUnknownError("upstream returned malformed JSON", nil).
			WithContext(identifier, operation)
	}

	return models.ProductPayload(body), nil
}

// classifyResponse maps an upstream response onto the error taxonomy.
// Returns nil when the response is a success.
func classifyResponse(resp *http.Response, body []byte) *errors.AppError {
	var upstreamErr models.UpstreamError
	// Body inspection is best-effort: an unparseable body falls through to
	// status-based classification.
	_ = json.Unmarshal(body, &upstreamErr)
	code := upstreamErr.Code()

	switch {
	case resp.StatusCode == http.StatusNotFound || code == "PRODUCT_NOT_FOUND":
		return errors.NewNotFoundError("product not found")
	case resp.StatusCode == http.StatusTooManyRequests || code == "RATE_LIMIT_EXCEEDED":
		return errors.NewRateLimitError("rate limit exceeded", resp.Header.Get("Retry-After"))
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return errors.NewUnauthorizedError("upstream rejected API key")
	case resp.StatusCode >= 400:
		return errors.NewNetworkError(
			fmt.Sprintf("upstream returned status %d: %s", resp.StatusCode, resp.Status),
			resp.StatusCode,
		)
	}

	return nil
}
