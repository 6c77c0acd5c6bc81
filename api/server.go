package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"productapi.app/config"
	apperrors "productapi.app/errors"
	"productapi.app/models"
	"productapi.app/pkg/validation"
	"productapi.app/service"
)

// Server represents the HTTP server and API handler
type Server struct {
	router         *gin.Engine
	config         *config.Config
	productService service.ProductServiceInterface
}

// NewServer creates and configures a new HTTP server
func NewServer(config *config.Config, productService service.ProductServiceInterface) *Server {
	router := gin.Default()
	router.Use(requestIDMiddleware())

	server := &Server{
		router:         router,
		config:         config,
		productService: productService,
	}

	server.setupRoutes()
	return server
}

func (s *Server) setupRoutes() {
	api := s.router.Group("/api")
	{
		api.GET("/products", s.getProductsBulk)
		api.GET("/products/stock", s.getStoreStocksBulk)
		api.GET("/products/search", s.searchProducts)
		api.GET("/products/upc/:gtin", s.getProductByBarcode)
		api.GET("/products/:tcin", s.getProduct)
		api.GET("/products/:tcin/stock", s.getStoreStock)
		api.GET("/health", s.healthCheck)
	}

	s.router.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

// Start begins the HTTP server
func (s *Server) Start() error {
	return s.router.Run(fmt.Sprintf(":%d", s.config.Server.Port))
}

// GetRouter returns the router for testing purposes
func (s *Server) GetRouter() *gin.Engine {
	return s.router
}

func requestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set("request_id", requestID)
		c.Header("X-Request-ID", requestID)
		c.Next()
	}
}

func (s *Server) getProduct(c *gin.Context) {
	tcin := c.Param("tcin")
	if !validation.IsValidTCIN(tcin) {
		s.handleValidationError(c, "tcin", tcin, "tcin must be 8-10 digits")
		return
	}

	slog.Debug("Getting product", "tcin", tcin)
	payload, err := s.productService.GetProduct(c.Request.Context(), tcin)
	if err != nil {
		slog.Error("Product service error", "error", err, "tcin", tcin)
		s.handleError(c, err)
		return
	}

	s.respondWithPayload(c, payload)
}

func (s *Server) getProductByBarcode(c *gin.Context) {
	gtin := c.Param("gtin")
	if !validation.IsValidGTIN(gtin) {
		s.handleValidationError(c, "gtin", gtin, "gtin must be 8-14 digits")
		return
	}

	slog.Debug("Getting product by barcode", "gtin", gtin)
	payload, err := s.productService.GetProductByBarcode(c.Request.Context(), gtin)
	if err != nil {
		slog.Error("Product service error", "error", err, "gtin", gtin)
		s.handleError(c, err)
		return
	}

	s.respondWithPayload(c, payload)
}

func (s *Server) getStoreStock(c *gin.Context) {
	tcin := c.Param("tcin")
	if !validation.IsValidTCIN(tcin) {
		s.handleValidationError(c, "tcin", tcin, "tcin must be 8-10 digits")
		return
	}

	zipcode := c.Query("zipcode")
	if !validation.IsValidZipcode(zipcode) {
		s.handleValidationError(c, "zipcode", zipcode, "zipcode must be 5 digits")
		return
	}

	storeID := c.Query("store_id")

	slog.Debug("Getting store stock", "tcin", tcin, "zipcode", zipcode)
	payload, err := s.productService.GetStoreStock(c.Request.Context(), tcin, zipcode, storeID)
	if err != nil {
		slog.Error("Stock service error", "error", err, "tcin", tcin, "zipcode", zipcode)
		s.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.APIResponse{Success: true, Data: json.RawMessage(payload)})
}

func (s *Server) searchProducts(c *gin.Context) {
	var req models.SearchRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		slog.Debug("Search binding error", "error", err)
		s.handleValidationError(c, "q", c.Query("q"), "invalid search parameters")
		return
	}

	if _, ok := validation.TrimAndValidate(req.Query); !ok {
		s.handleValidationError(c, "q", req.Query, "search term cannot be empty")
		return
	}

	slog.Debug("Searching products", "q", req.Query, "page", req.Page, "sort", req.Sort)
	data, err := s.productService.Search(c.Request.Context(), &req)
	if err != nil {
		slog.Error("Search service error", "error", err, "q", req.Query)
		s.handleError(c, err)
		return
	}

	encoded, err := json.Marshal(data)
	if err != nil {
		s.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.APIResponse{Success: true, Data: encoded})
}

func (s *Server) getProductsBulk(c *gin.Context) {
	raw := c.Query("tcins")
	if raw == "" {
		s.handleValidationError(c, "tcins", raw, "tcins parameter is required")
		return
	}

	tcins := strings.Split(raw, ",")
	for i, tcin := range tcins {
		tcins[i] = strings.TrimSpace(tcin)
		if !validation.IsValidTCIN(tcins[i]) {
			s.handleValidationError(c, "tcins", tcins[i], "each tcin must be 8-10 digits")
			return
		}
	}

	slog.Debug("Bulk product lookup", "count", len(tcins))
	results := s.productService.GetProducts(c.Request.Context(), tcins)

	encoded, err := json.Marshal(results)
	if err != nil {
		s.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.APIResponse{Success: true, Data: encoded})
}

func (s *Server) getStoreStocksBulk(c *gin.Context) {
	raw := c.Query("tcins")
	if raw == "" {
		s.handleValidationError(c, "tcins", raw, "tcins parameter is required")
		return
	}

	zipcode := c.Query("zipcode")
	if !validation.IsValidZipcode(zipcode) {
		s.handleValidationError(c, "zipcode", zipcode, "zipcode must be 5 digits")
		return
	}

	tcins := strings.Split(raw, ",")
	for i, tcin := range tcins {
		tcins[i] = strings.TrimSpace(tcin)
		if !validation.IsValidTCIN(tcins[i]) {
			s.handleValidationError(c, "tcins", tcins[i], "each tcin must be 8-10 digits")
			return
		}
	}

	slog.Debug("Bulk stock lookup", "count", len(tcins), "zipcode", zipcode)
	results := s.productService.GetStoreStocks(c.Request.Context(), tcins, zipcode)

	encoded, err := json.Marshal(results)
	if err != nil {
		s.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.APIResponse{Success: true, Data: encoded})
}

func (s *Server) healthCheck(c *gin.Context) {
	upstream := s.productService.HealthCheck(c.Request.Context())

	status := http.StatusOK
	response := models.HealthResponse{Status: "ok", Upstream: upstream}
	if !upstream {
		status = http.StatusServiceUnavailable
		response.Status = "degraded"
	}

	c.JSON(status, response)
}

// respondWithPayload unwraps the upstream envelope so data carries the product
// object while request metadata stays at the top level.
func (s *Server) respondWithPayload(c *gin.Context, payload models.ProductPayload) {
	var envelope models.UpstreamEnvelope
	if err := json.Unmarshal(payload, &envelope); err != nil || envelope.Product == nil {
		c.JSON(http.StatusOK, models.APIResponse{Success: true, Data: json.RawMessage(payload)})
		return
	}

	c.JSON(http.StatusOK, models.APIResponse{
		Success:         true,
		Data:            envelope.Product,
		RequestInfo:     envelope.RequestInfo,
		RequestMetadata: envelope.RequestMetadata,
		LocationInfo:    envelope.LocationInfo,
	})
}

func (s *Server) handleValidationError(c *gin.Context, field, value, message string) {
	c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: models.ErrorBody{
		Code:    string(apperrors.ValidationError),
		Message: message,
		Field:   field,
		Details: value,
	}})
}

// handleError translates typed application errors into HTTP responses. This is
// the only layer mapping the error taxonomy onto status codes.
func (s *Server) handleError(c *gin.Context, err error) {
	var appErr *apperrors.AppError
	var statusCode int
	var body models.ErrorBody

	if errors.As(err, &appErr) {
		switch appErr.Type {
		case apperrors.ValidationError:
			statusCode = http.StatusBadRequest
			body = models.ErrorBody{Code: string(appErr.Type), Message: appErr.Message, Details: appErr.Identifier}
		case apperrors.NotFoundError:
			statusCode = http.StatusNotFound
			body = models.ErrorBody{Code: string(appErr.Type), Message: appErr.Message}
		case apperrors.RateLimitError:
			statusCode = http.StatusTooManyRequests
			if appErr.RetryAfter != "" {
				c.Header("Retry-After", appErr.RetryAfter)
			}
			body = models.ErrorBody{Code: string(appErr.Type), Message: appErr.Message}
		case apperrors.UnauthorizedError:
			statusCode = http.StatusBadGateway
			body = models.ErrorBody{Code: string(appErr.Type), Message: "Upstream rejected the API key"}
		case apperrors.NetworkError:
			statusCode = http.StatusBadGateway
			body = models.ErrorBody{Code: string(appErr.Type), Message: s.redacted(appErr.Message)}
		default:
			statusCode = http.StatusInternalServerError
			body = models.ErrorBody{Code: "INTERNAL_ERROR", Message: s.redacted(appErr.Message)}
		}
	} else {
		statusCode = http.StatusInternalServerError
		body = models.ErrorBody{Code: "INTERNAL_ERROR", Message: s.redacted(err.Error())}
	}

	c.JSON(statusCode, models.ErrorResponse{Error: body})
}

// redacted hides upstream detail from callers in production
func (s *Server) redacted(message string) string {
	if s.config.IsProduction() {
		return "Internal server error"
	}
	return message
}
