package content

import (
	"context"

	"github.com/google/uuid"

	"github.com/megaphone-app/megaphone/internal/generation"
	"github.com/megaphone-app/megaphone/pkg/pagination"
	"github.com/megaphone-app/megaphone/pkg/secrets"
	"github.com/megaphone-app/megaphone/pkg/social"
)

// AdapterSource builds platform adapters from decrypted credentials.
// Satisfied by social.Registry.
type AdapterSource interface {
	Adapter(platform social.Platform, creds secrets.Credentials) (social.Adapter, error)
}

// System defines the public contract for content domain operations.
type System interface {
	Handler() *Handler

	List(
		ctx context.Context,
		page pagination.PageRequest,
		filters Filters,
	) (*pagination.PageResult[ContentUnit], error)

	Find(ctx context.Context, id uuid.UUID) (*ContentUnit, error)
	Delete(ctx context.Context, id uuid.UUID) error

	// Generate runs the full pipeline for every active account of the user:
	// generate variations from the source, persist drafts, and publish them.
	// Per-account failures are isolated into their results.
	Generate(ctx context.Context, userID uuid.UUID, cmd GenerateCommand) ([]GenerateResult, error)

	// Publish posts a draft or previously failed unit to its account's
	// platform. The returned unit reflects the outcome; a remote failure is
	// recorded on the unit, not returned as an error.
	Publish(ctx context.Context, id uuid.UUID) (*ContentUnit, error)

	// Retry republishes a unit that previously failed. Returns ErrNotFailed
	// without mutation for units in any other status.
	Retry(ctx context.Context, id uuid.UUID) (*ContentUnit, error)

	// Unpublish removes the platform post and returns the unit to draft,
	// stripping platform metadata. Returns ErrNotPublished for units without
	// a published post. The unit is unchanged when removal fails.
	Unpublish(ctx context.Context, id uuid.UUID) (*ContentUnit, error)

	// Generators describes the enabled AI generators.
	Generators() []generation.GeneratorInfo
}
