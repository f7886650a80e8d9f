package accounts

import (
	"context"

	"github.com/google/uuid"

	"github.com/megaphone-app/megaphone/pkg/pagination"
	"github.com/megaphone-app/megaphone/pkg/secrets"
	"github.com/megaphone-app/megaphone/pkg/social"
)

// AdapterSource builds platform adapters from decrypted credentials.
// Satisfied by social.Registry.
type AdapterSource interface {
	Adapter(platform social.Platform, creds secrets.Credentials) (social.Adapter, error)
}

// System defines the public contract for account domain operations.
type System interface {
	Handler() *Handler

	List(
		ctx context.Context,
		page pagination.PageRequest,
		filters Filters,
	) (*pagination.PageResult[Account], error)

	Find(ctx context.Context, id uuid.UUID) (*Account, error)
	ListActive(ctx context.Context, userID uuid.UUID) ([]Account, error)
	Create(ctx context.Context, userID uuid.UUID, cmd CreateCommand) (*Account, error)
	Update(ctx context.Context, id uuid.UUID, cmd UpdateCommand) (*Account, error)
	Delete(ctx context.Context, id uuid.UUID) error

	// Credentials returns the account's decrypted credential set.
	Credentials(ctx context.Context, id uuid.UUID) (secrets.Credentials, error)
	// Verify checks the account's credentials against its platform.
	Verify(ctx context.Context, id uuid.UUID) (*social.VerifyResult, error)
	Activate(ctx context.Context, id uuid.UUID) (*Account, error)
	Deactivate(ctx context.Context, id uuid.UUID) (*Account, error)
}
