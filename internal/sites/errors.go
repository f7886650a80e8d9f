package sites

import (
	"errors"
	"net/http"
)

// Domain errors for site operations.
var (
	ErrNotFound   = errors.New("site not found")
	ErrDuplicate  = errors.New("site already exists")
	ErrInvalidURL = errors.New("site url is required")
	ErrNoUser     = errors.New("requesting user is required")
)

// MapHTTPStatus maps site domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrDuplicate) {
		return http.StatusConflict
	}
	if errors.Is(err, ErrInvalidURL) || errors.Is(err, ErrNoUser) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
