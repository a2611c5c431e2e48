package domain

import (
	"errors"
	"fmt"
	"net/http"
)

var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrUnauthenticated = errors.New("not authenticated")
var ErrForbidden = errors.New("access forbidden")
var ErrTooManyAttempts = errors.New("too many sign-in attempts")

// ErrSignupUnsupported marks the one operation that must fail loudly: the
// member backend has no signup endpoint, and a silent no-op would leave the
// user believing an account was created.
var ErrSignupUnsupported = errors.New("signup is not supported by the member backend")

// APIError carries a backend failure across the gateway boundary as a value.
// Callers receive either data or one of these; raw transport errors never
// leave the gateway.
type APIError struct {
	// Status is the upstream HTTP status, or 0 for transport-level failures.
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return e.Message
}

// NewAPIError builds an APIError for an HTTP status, preferring the message
// extracted from the response body and falling back to a fixed per-status
// message.
func NewAPIError(status int, message string) *APIError {
	if message == "" {
		message = statusMessage(status)
	}
	return &APIError{Status: status, Message: message}
}

// NewTransportError wraps a network-level failure in the same shape, hiding
// the underlying error detail from callers.
func NewTransportError() *APIError {
	return &APIError{Status: 0, Message: "network error, please check your connection and try again"}
}

func statusMessage(status int) string {
	switch status {
	case http.StatusBadRequest:
		return "the request could not be understood"
	case http.StatusUnauthorized:
		return "your session has expired, please sign in again"
	case http.StatusForbidden:
		return "you do not have permission to do that"
	case http.StatusNotFound:
		return "the requested resource was not found"
	case http.StatusRequestEntityTooLarge:
		return "the submitted data is too large"
	case http.StatusInternalServerError, http.StatusServiceUnavailable:
		return "the service is temporarily unavailable, please try again later"
	default:
		return fmt.Sprintf("request failed (HTTP %d)", status)
	}
}
