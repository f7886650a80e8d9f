package social

import (
	"github.com/megaphone-app/megaphone/pkg/secrets"
)

// Registry constructs adapters for platform accounts. Adapters are built
// per call because each carries account-specific credentials.
type Registry struct {
	cfg Config
}

// NewRegistry creates an adapter registry from platform configuration.
func NewRegistry(cfg Config) *Registry {
	return &Registry{cfg: cfg}
}

// Adapter returns an adapter for the platform bound to the given credentials.
// Returns ErrInvalidPlatform for unrecognized platforms.
func (r *Registry) Adapter(platform Platform, creds secrets.Credentials) (Adapter, error) {
	switch platform {
	case PlatformTwitter:
		return NewTwitterAdapter(r.cfg, creds), nil
	case PlatformLinkedIn:
		return NewLinkedInAdapter(r.cfg, creds), nil
	case PlatformBluesky:
		return NewBlueskyAdapter(r.cfg, creds), nil
	default:
		return nil, ErrInvalidPlatform
	}
}
