package errors

import "fmt"

// Application error types organized by category for better error handling

type ErrorType string

// Domain/Business Logic Errors - errors related to input validation and lookups
const (
	ValidationError ErrorType = "VALIDATION_ERROR"
	NotFoundError   ErrorType = "PRODUCT_NOT_FOUND"
)

// Upstream Errors - errors surfaced by the RedCircle API
const (
	RateLimitError    ErrorType = "RATE_LIMIT_EXCEEDED"
	UnauthorizedError ErrorType = "UNAUTHORIZED"
	NetworkError      ErrorType = "NETWORK_ERROR"
	UnknownError      ErrorType = "UNKNOWN_ERROR"
)

// System/Configuration Errors - errors related to system setup and configuration
const (
	ConfigurationError ErrorType = "CONFIGURATION_ERROR"
)

// AppError carries the classified error type plus enough request context
// (identifier, operation, upstream status) for diagnostics at the call site.
type AppError struct {
	Type       ErrorType
	Message    string
	Cause      error
	Identifier string
	Operation  string
	StatusCode int
	RetryAfter string
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// WithContext attaches the original identifier and operation name to the error.
func (e *AppError) WithContext(identifier, operation string) *AppError {
	e.Identifier = identifier
	e.Operation = operation
	return e
}

func New(errorType ErrorType, message string) *AppError {
	return &AppError{
		Type:    errorType,
		Message: message,
	}
}

func Wrap(errorType ErrorType, message string, cause error) *AppError {
	return &AppError{
		Type:    errorType,
		Message: message,
		Cause:   cause,
	}
}

// Domain/Business Logic Error Constructors
func NewValidationError(message string) *AppError {
	return New(ValidationError, message)
}

func NewNotFoundError(message string) *AppError {
	return New(NotFoundError, message)
}

// Upstream Error Constructors
func NewRateLimitError(message, retryAfter string) *AppError {
	err := New(RateLimitError, message)
	err.RetryAfter = retryAfter
	return err
}

func NewUnauthorizedError(message string) *AppError {
	return New(UnauthorizedError, message)
}

func NewNetworkError(message string, statusCode int) *AppError {
	err := New(NetworkError, message)
	err.StatusCode = statusCode
	return err
}

func NewUnknownError(message string, cause error) *AppError {
	return Wrap(UnknownError, message, cause)
}

// System/Configuration Error Constructors
func NewConfigurationError(message string, cause error) *AppError {
	return Wrap(ConfigurationError, message, cause)
}

// Helper functions for error type checking
func IsValidationError(err error) bool {
	return hasType(err, ValidationError)
}

func IsNotFoundError(err error) bool {
	return hasType(err, NotFoundError)
}

func IsRateLimitError(err error) bool {
	return hasType(err, RateLimitError)
}

func IsUnauthorizedError(err error) bool {
	return hasType(err, UnauthorizedError)
}

func IsNetworkError(err error) bool {
	return hasType(err, NetworkError)
}

func hasType(err error, errorType ErrorType) bool {
	if appErr, ok := err.(*AppError); ok {
		return appErr.Type == errorType
	}
	return false
}
