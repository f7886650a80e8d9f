package social

import "errors"

// Sentinel errors for platform resolution.
var (
	ErrInvalidPlatform = errors.New("invalid platform")
)
