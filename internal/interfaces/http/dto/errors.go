package dto

import (
	"net/http"
	"strings"
)

// Error codes surfaced by the API. Domain errors carry these codes
// verbatim; the map below decides the HTTP status they travel with.
const (
	// ErrCodeInternal is used for internal server errors
	ErrCodeInternal = "INTERNAL_ERROR"
	// ErrCodeBadRequest is used for malformed requests
	ErrCodeBadRequest = "BAD_REQUEST"
	// ErrCodeInvalidJSON is used when the request body cannot be parsed
	ErrCodeInvalidJSON = "INVALID_JSON"
	// ErrCodeValidation is used when request validation fails
	ErrCodeValidation = "VALIDATION_ERROR"
	// ErrCodeUnauthorized is used when authentication is required but missing
	ErrCodeUnauthorized = "UNAUTHORIZED"
	// ErrCodeForbidden is used when the caller lacks permission
	ErrCodeForbidden = "FORBIDDEN"
	// ErrCodeNotFound is used when a resource is not found
	ErrCodeNotFound = "NOT_FOUND"
	// ErrCodeRateLimited is used when the rate limit is exceeded
	ErrCodeRateLimited = "RATE_LIMITED"
)

// errorCodeHTTPStatus maps error codes to HTTP status codes. State and
// business-rule violations travel as 422 so clients can tell them apart
// from malformed input.
var errorCodeHTTPStatus = map[string]int{
	ErrCodeInternal:    http.StatusInternalServerError,
	ErrCodeBadRequest:  http.StatusBadRequest,
	ErrCodeInvalidJSON: http.StatusBadRequest,
	ErrCodeValidation:  http.StatusBadRequest,

	ErrCodeUnauthorized: http.StatusUnauthorized,
	ErrCodeForbidden:    http.StatusForbidden,
	ErrCodeNotFound:     http.StatusNotFound,
	ErrCodeRateLimited:  http.StatusTooManyRequests,

	"ALREADY_EXISTS":       http.StatusConflict,
	"CONCURRENCY_CONFLICT": http.StatusConflict,

	"INVALID_STATE":          http.StatusUnprocessableEntity,
	"INVALID_REFUND_STATE":   http.StatusUnprocessableEntity,
	"EMPTY_CART":             http.StatusUnprocessableEntity,
	"INSUFFICIENT_STOCK":     http.StatusUnprocessableEntity,
	"NOT_PURCHASED":          http.StatusUnprocessableEntity,
	"GATEWAY_NOT_CONFIGURED": http.StatusServiceUnavailable,
}

// GetHTTPStatus returns the HTTP status code for an error code. Codes
// of the INVALID_* family default to 400 Bad Request; anything else
// unknown is treated as an internal error.
func GetHTTPStatus(code string) int {
	if status, ok := errorCodeHTTPStatus[code]; ok {
		return status
	}
	if strings.HasPrefix(code, "INVALID_") {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
