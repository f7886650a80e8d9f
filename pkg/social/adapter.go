// Package social provides publishing clients for social platforms behind a
// uniform Adapter interface. Remote failures are reported as structured
// results rather than errors so callers can persist the outcome and decide
// whether to retry.
package social

import (
	"context"
	"encoding/json"
	"slices"
)

// Platform identifies a supported social network.
type Platform string

// Supported platforms.
const (
	PlatformTwitter  Platform = "twitter"
	PlatformLinkedIn Platform = "linkedin"
	PlatformBluesky  Platform = "bluesky"
)

var platforms = []Platform{
	PlatformTwitter,
	PlatformLinkedIn,
	PlatformBluesky,
}

// Platforms returns the list of supported platforms.
func Platforms() []Platform {
	return platforms
}

// UnmarshalJSON validates that the decoded string is a known platform value.
func (p *Platform) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	v := Platform(raw)
	if !slices.Contains(platforms, v) {
		return ErrInvalidPlatform
	}
	*p = v
	return nil
}

// ParsePlatform validates a string as a known platform.
// Returns ErrInvalidPlatform if the value is not recognized.
func ParsePlatform(s string) (Platform, error) {
	v := Platform(s)
	if !slices.Contains(platforms, v) {
		return "", ErrInvalidPlatform
	}
	return v, nil
}

// CharacterLimit returns the maximum post length for the platform.
func (p Platform) CharacterLimit() int {
	switch p {
	case PlatformLinkedIn:
		return 3000
	default:
		return 280
	}
}

// Adapter publishes to and removes posts from a single platform account.
// Operations never return an error for remote failures; inspect the result.
type Adapter interface {
	// Platform returns the platform this adapter targets.
	Platform() Platform
	// Post publishes text and reports the created post's id and URL.
	Post(ctx context.Context, text string) PostResult
	// Delete removes a previously created post by its platform post id.
	Delete(ctx context.Context, postID string) DeleteResult
	// Verify checks that the account credentials are usable.
	Verify(ctx context.Context) VerifyResult
}
