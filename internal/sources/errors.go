package sources

import (
	"errors"
	"net/http"

	"github.com/megaphone-app/megaphone/internal/sites"
)

// Domain errors for source operations.
var (
	ErrNotFound     = errors.New("source not found")
	ErrDuplicate    = errors.New("source already exists")
	ErrSiteInactive = errors.New("site is not active")
	ErrFetchFailed  = errors.New("page fetch failed")
)

// MapHTTPStatus maps source domain errors to appropriate HTTP status codes.
// Crawl surfaces site lookup errors, so those map through as well.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound), errors.Is(err, sites.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrDuplicate):
		return http.StatusConflict
	case errors.Is(err, ErrSiteInactive):
		return http.StatusConflict
	case errors.Is(err, ErrFetchFailed):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
