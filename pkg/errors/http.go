package errors

import (
	"fmt"
	"net/http"
)

// HTTPError is a domain error already translated for the HTTP layer.
type HTTPError struct {
	Code       int    `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%d: %s", e.Code, e.Message)
}

// NewHTTPError builds an HTTPError answered with 400 Bad Request.
func NewHTTPError(code int, msg string) *HTTPError {
	return &HTTPError{Code: code, Message: msg, StatusCode: http.StatusBadRequest}
}

// NewHTTPErrorWithStatus builds an HTTPError with an explicit HTTP status.
func NewHTTPErrorWithStatus(status, code int, msg string) *HTTPError {
	return &HTTPError{Code: code, Message: msg, StatusCode: status}
}

var (
	ErrUnauthorized = NewHTTPErrorWithStatus(http.StatusUnauthorized, 401, "Unauthorized")
	ErrForbidden    = NewHTTPErrorWithStatus(http.StatusForbidden, 403, "Forbidden")
	ErrNotFound     = NewHTTPErrorWithStatus(http.StatusNotFound, 404, "Not found")

	// ErrInternalServerError hides unexpected failures from clients.
	ErrInternalServerError = NewHTTPErrorWithStatus(http.StatusInternalServerError, 500, "Something went wrong")
)
