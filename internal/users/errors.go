package users

import (
	"errors"
	"net/http"
)

// Domain errors for user operations.
var (
	ErrNotFound     = errors.New("user not found")
	ErrDuplicate    = errors.New("user already exists")
	ErrInvalidEmail = errors.New("email is required")
)

// MapHTTPStatus maps user domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrDuplicate) {
		return http.StatusConflict
	}
	if errors.Is(err, ErrInvalidEmail) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
