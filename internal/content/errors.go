package content

import (
	"errors"
	"net/http"

	"github.com/megaphone-app/megaphone/internal/accounts"
	"github.com/megaphone-app/megaphone/internal/generation"
)

// Domain errors for content operations.
var (
	ErrNotFound        = errors.New("content unit not found")
	ErrDuplicate       = errors.New("content unit already exists")
	ErrInvalidStatus   = errors.New("invalid content status")
	ErrNotPublishable  = errors.New("content unit is not in a publishable status")
	ErrNotFailed       = errors.New("content unit is not in failed status")
	ErrNotPublished    = errors.New("content unit has no published post")
	ErrAccountInactive = errors.New("platform account is not active")
	ErrRemoteDelete    = errors.New("platform post removal failed")
	ErrNoUser          = errors.New("requesting user is required")
)

// MapHTTPStatus maps content domain errors to appropriate HTTP status codes.
// Publish-path operations surface account lookup errors, so those map
// through as well.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound),
		errors.Is(err, ErrNotPublished),
		errors.Is(err, accounts.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrDuplicate),
		errors.Is(err, ErrNotPublishable),
		errors.Is(err, ErrNotFailed),
		errors.Is(err, ErrAccountInactive):
		return http.StatusConflict
	case errors.Is(err, ErrInvalidStatus),
		errors.Is(err, ErrNoUser),
		errors.Is(err, generation.ErrInvalidTone):
		return http.StatusBadRequest
	case errors.Is(err, ErrRemoteDelete):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
