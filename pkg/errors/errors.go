// Package errors provides structured error handling for the application.
// Errors carry a stable code, an HTTP mapping and optional metadata; user
// facing messages stay short and never expose internal state.
package errors

import (
	"fmt"
	"net/http"
	"time"
)

// ErrorCode represents an error code.
type ErrorCode string

// Error codes surfaced by the API.
const (
	// Client errors (4xx)
	CodeBadRequest       ErrorCode = "BAD_REQUEST"
	CodeValidationFailed ErrorCode = "VALIDATION_FAILED"
	CodeNotFound         ErrorCode = "NOT_FOUND"
	CodePayloadTooLarge  ErrorCode = "PAYLOAD_TOO_LARGE"
	CodeUnsupportedMedia ErrorCode = "UNSUPPORTED_MEDIA_TYPE"

	// Server errors (5xx)
	CodeInternal             ErrorCode = "INTERNAL_ERROR"
	CodeServiceUnavailable   ErrorCode = "SERVICE_UNAVAILABLE"
	CodeExternalServiceError ErrorCode = "EXTERNAL_SERVICE_ERROR"

	// Business errors
	CodeProductNotFound ErrorCode = "PRODUCT_NOT_FOUND"
	CodeVisionDisabled  ErrorCode = "VISION_DISABLED"
	CodeCatalogDisabled ErrorCode = "CATALOG_DISABLED"
	CodeAnalysisFailed  ErrorCode = "ANALYSIS_FAILED"
)

// AppError represents an application error with structured information.
type AppError struct {
	Code     ErrorCode              `json:"code"`
	Message  string                 `json:"message"`
	Details  string                 `json:"details,omitempty"`
	Metadata map[string]interface{} `json:"metadata,omitempty"`
	Cause    error                  `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause error.
func (e *AppError) Unwrap() error {
	return e.Cause
}

// StatusCode returns the appropriate HTTP status code.
func (e *AppError) StatusCode() int {
	switch e.Code {
	case CodeBadRequest, CodeValidationFailed:
		return http.StatusBadRequest
	case CodeNotFound, CodeProductNotFound:
		return http.StatusNotFound
	case CodePayloadTooLarge:
		return http.StatusRequestEntityTooLarge
	case CodeUnsupportedMedia:
		return http.StatusUnsupportedMediaType
	case CodeServiceUnavailable, CodeVisionDisabled, CodeCatalogDisabled:
		return http.StatusServiceUnavailable
	case CodeExternalServiceError, CodeAnalysisFailed:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// WithMetadata adds metadata to the error.
func (e *AppError) WithMetadata(key string, value interface{}) *AppError {
	if e.Metadata == nil {
		e.Metadata = make(map[string]interface{})
	}
	e.Metadata[key] = value
	return e
}

// WithCause adds a cause error.
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// New creates a new application error.
func New(code ErrorCode, message, details string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Details: details,
	}
}

// NewBadRequestError creates a bad request error.
func NewBadRequestError(message string) *AppError {
	return New(CodeBadRequest, message, "")
}

// NewValidationError creates a validation error.
func NewValidationError(details string) *AppError {
	return New(CodeValidationFailed, "Validation failed", details)
}

// NewNotFoundError creates a not found error.
func NewNotFoundError(resource string) *AppError {
	message := "Resource not found"
	if resource != "" {
		message = resource + " not found"
	}
	return New(CodeNotFound, message, "")
}

// NewInternalError creates an internal server error.
func NewInternalError(message string) *AppError {
	if message == "" {
		message = "An unexpected error occurred"
	}
	return New(CodeInternal, message, "")
}

// NewExternalServiceError creates an external service error.
func NewExternalServiceError(service string, cause error) *AppError {
	return New(
		CodeExternalServiceError,
		"External service error",
		fmt.Sprintf("Failed to communicate with %s", service),
	).WithCause(cause)
}

// NewProductNotFoundError creates a product not found error.
func NewProductNotFoundError(productID string) *AppError {
	return New(
		CodeProductNotFound,
		"Product not found",
		fmt.Sprintf("Product with ID %s does not exist", productID),
	).WithMetadata("product_id", productID)
}

// NewVisionDisabledError indicates image analysis is not configured.
func NewVisionDisabledError() *AppError {
	return New(
		CodeVisionDisabled,
		"Image analysis is disabled",
		"No vision model API key is configured",
	)
}

// NewAnalysisFailedError wraps a failed primary analysis call. The analysis
// call has no fallback, so the failure surfaces with no partial result.
func NewAnalysisFailedError(cause error) *AppError {
	return New(
		CodeAnalysisFailed,
		"Image analysis failed",
		"The vision model could not analyze the image",
	).WithCause(cause)
}

// Wrap wraps an error as an internal error if it's not already an AppError.
func Wrap(err error, message string) *AppError {
	if err == nil {
		return nil
	}
	if appErr, ok := err.(*AppError); ok {
		return appErr
	}
	return NewInternalError(message).WithCause(err)
}

// Is checks if an error is of a specific error code.
func Is(err error, code ErrorCode) bool {
	if appErr, ok := err.(*AppError); ok {
		return appErr.Code == code
	}
	return false
}

// GetCode extracts the error code from an error.
func GetCode(err error) ErrorCode {
	if appErr, ok := err.(*AppError); ok {
		return appErr.Code
	}
	return CodeInternal
}

// ErrorResponse represents an API error response.
type ErrorResponse struct {
	Error ErrorDetails `json:"error"`
}

// ErrorDetails represents the error details in API responses.
type ErrorDetails struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	RequestID string                 `json:"request_id,omitempty"`
	Timestamp string                 `json:"timestamp"`
}

// ToErrorResponse converts an AppError to an API error response.
func ToErrorResponse(err *AppError, requestID string) ErrorResponse {
	return ErrorResponse{
		Error: ErrorDetails{
			Code:      err.Code,
			Message:   err.Message,
			Details:   err.Details,
			Metadata:  err.Metadata,
			RequestID: requestID,
			Timestamp: fmt.Sprintf("%d", time.Now().Unix()),
		},
	}
}
