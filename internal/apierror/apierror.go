// Package apierror provides standardized error response structures for the
// API. All errors returned to clients go through this package to ensure
// consistency and to prevent leaking internal details (stack traces, DB
// errors, etc.).
package apierror

import (
	"net/http"

	"napos/internal/domainerr"
)

// APIError is the canonical error envelope for all 4xx/5xx HTTP responses.
type APIError struct {
	Detail string `json:"detail"`
}

func New(msg string) *APIError {
	return &APIError{Detail: msg}
}

// ValidationError wraps multiple field errors.
type ValidationError struct {
	Detail string            `json:"detail"`
	Fields map[string]string `json:"fields"`
}

func NewValidation(fields map[string]string) *ValidationError {
	return &ValidationError{Detail: "Error de validacion", Fields: fields}
}

// FromDomain maps a domain error to an HTTP status plus envelope. Business
// failures travel verbatim to the client; anything unclassified is a bug
// and surfaces as a 500 with a generic message.
func FromDomain(err error) (int, *APIError) {
	switch domainerr.KindOf(err) {
	case domainerr.KindNotFound:
		return http.StatusNotFound, New(err.Error())
	case domainerr.KindValidation:
		return http.StatusUnprocessableEntity, New(err.Error())
	case domainerr.KindStateConflict, domainerr.KindResourceExhausted:
		return http.StatusConflict, New(err.Error())
	default:
		return http.StatusInternalServerError, New("Error interno del servidor")
	}
}
