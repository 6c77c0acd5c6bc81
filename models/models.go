// Package models defines data structures used throughout the application
package models

import "encoding/json"

// ProductPayload is the raw RedCircle response body for a product or stock
// lookup. The upstream shape is passed through to callers unchanged.
type ProductPayload = json.RawMessage

// UpstreamEnvelope mirrors the top-level fields RedCircle wraps every
// response in. Unknown fields are preserved by keeping the raw payload.
type UpstreamEnvelope struct {
	RequestInfo     json.RawMessage `json:"request_info,omitempty"`
	RequestMetadata json.RawMessage `json:"request_metadata,omitempty"`
	LocationInfo    json.RawMessage `json:"location_info,omitempty"`
	Product         json.RawMessage `json:"product,omitempty"`
	SearchResults   json.RawMessage `json:"search_results,omitempty"`
	InStoreStock    json.RawMessage `json:"in_store_stock,omitempty"`
	Pagination      *Pagination     `json:"pagination,omitempty"`
	Facets          json.RawMessage `json:"facets,omitempty"`
	Categories      json.RawMessage `json:"categories,omitempty"`
	RelatedQueries  json.RawMessage `json:"related_queries,omitempty"`
}

// Pagination describes the page window of a search result set.
type Pagination struct {
	CurrentPage  int `json:"current_page"`
	TotalPages   int `json:"total_pages"`
	TotalResults int `json:"total_results"`
}

// UpstreamError is the known RedCircle error body shape. Older responses put
// the code at the top level, newer ones nest it under "error".
type UpstreamError struct {
	ErrorCode string `json:"error_code,omitempty"`
	Message   string `json:"message,omitempty"`
	Error     *struct {
		Code    string `json:"code,omitempty"`
		Message string `json:"message,omitempty"`
	} `json:"error,omitempty"`
}

// Code returns the error code regardless of which shape the upstream used.
func (e *UpstreamError) Code() string {
	if e.Error != nil && e.Error.Code != "" {
		return e.Error.Code
	}
	return e.ErrorCode
}

// SearchRequest represents the validated query parameters of a search call
type SearchRequest struct {
	Query string `form:"q" binding:"required"`
	Page  int    `form:"page" binding:"omitempty,min=1"`
	Sort  string `form:"sort" binding:"omitempty,oneof=best_seller price_low_to_high price_high_to_low newest rating"`
}

// APIResponse is the success envelope served to frontend callers
type APIResponse struct {
	Success         bool            `json:"success"`
	Data            json.RawMessage `json:"data"`
	RequestInfo     json.RawMessage `json:"request_info,omitempty"`
	RequestMetadata json.RawMessage `json:"request_metadata,omitempty"`
	LocationInfo    json.RawMessage `json:"location_info,omitempty"`
}

// ErrorResponse is the error envelope served to frontend callers
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

// ErrorBody carries the machine-readable error code plus optional context
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
	Details string `json:"details,omitempty"`
}

// SearchData is the shaped search payload, including the explicit empty
// result set served when nothing matched.
type SearchData struct {
	Results        json.RawMessage `json:"results"`
	Pagination     Pagination      `json:"pagination"`
	Facets         json.RawMessage `json:"facets,omitempty"`
	Categories     json.RawMessage `json:"categories,omitempty"`
	RelatedQueries json.RawMessage `json:"related_queries,omitempty"`
}

// HealthResponse reports service and upstream health
type HealthResponse struct {
	Status   string `json:"status"`
	Upstream bool   `json:"upstream"`
}
