package accounts

import (
	"errors"
	"net/http"

	"github.com/megaphone-app/megaphone/pkg/social"
)

// Domain errors for account operations.
var (
	ErrNotFound           = errors.New("account not found")
	ErrDuplicate          = errors.New("account already exists")
	ErrNoUser             = errors.New("requesting user is required")
	ErrMissingCredentials = errors.New("account credentials are required")
)

// MapHTTPStatus maps account domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrDuplicate):
		return http.StatusConflict
	case errors.Is(err, ErrNoUser),
		errors.Is(err, ErrMissingCredentials),
		errors.Is(err, social.ErrInvalidPlatform):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
