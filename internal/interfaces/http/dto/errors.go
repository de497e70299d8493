package dto

import (
	"errors"
	"net/http"

	"github.com/tiendafacil/backend/internal/domain/shared"
)

// General error codes
const (
	// ErrCodeInternal is used for internal server errors
	ErrCodeInternal = "ERR_INTERNAL"
	// ErrCodeBadRequest is used for malformed requests
	ErrCodeBadRequest = "ERR_BAD_REQUEST"
	// ErrCodeNotFound is used when a resource is not found
	ErrCodeNotFound = "ERR_NOT_FOUND"
)

// domainCodeHTTPStatus maps domain error codes to HTTP status codes.
// Codes not listed default to 400: domain errors are caller mistakes
// unless stated otherwise.
var domainCodeHTTPStatus = map[string]int{
	"NOT_FOUND":            http.StatusNotFound,
	"CONCURRENCY_CONFLICT": http.StatusConflict,
	"INSUFFICIENT_STOCK":   http.StatusConflict,
	"SNAPSHOT_DISABLED":    http.StatusServiceUnavailable,
}

// HTTPStatusForDomainCode returns the HTTP status for a domain error code
func HTTPStatusForDomainCode(code string) int {
	if status, ok := domainCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusBadRequest
}

// FromError converts any error into an HTTP status plus error payload.
// Domain errors keep their code and user-facing message; anything else is
// an internal error with a generic message.
func FromError(err error) (int, Response) {
	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		return HTTPStatusForDomainCode(domainErr.Code), NewErrorResponse(domainErr.Code, domainErr.Message)
	}
	return http.StatusInternalServerError, NewErrorResponse(ErrCodeInternal, "Internal server error")
}
