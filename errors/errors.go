// Package errors defines the API error type handlers and services pass
// around instead of exception-style control flow.
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Error carries a caller-safe message and the HTTP status it maps to.
type Error struct {
	Message string `json:"message"`
	Status  int    `json:"status"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

// New creates a new Error
func New(message string, status int) *Error {
	return &Error{
		Message: message,
		Status:  status,
	}
}

var (
	ErrNotFound            = New("resource not found", http.StatusNotFound)
	ErrBadRequest          = New("bad request", http.StatusBadRequest)
	ErrUnauthorized        = New("unauthorized", http.StatusUnauthorized)
	ErrForbidden           = New("forbidden", http.StatusForbidden)
	ErrInvalidPassword     = New("invalid email or password", http.StatusUnauthorized)
	ErrInternalServerError = New("internal server error", http.StatusInternalServerError)
)

// ErrEmailExists flags a duplicate signup email.
var ErrEmailExists = New("email already exists", http.StatusBadRequest)

// StatusOf extracts the HTTP status from err, falling back to 500 for
// anything that is not an *Error.
func StatusOf(err error) int {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return http.StatusInternalServerError
}
