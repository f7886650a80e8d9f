package sites

import (
	"context"

	"github.com/google/uuid"

	"github.com/megaphone-app/megaphone/pkg/pagination"
)

// System defines the public contract for site domain operations.
type System interface {
	Handler() *Handler

	List(
		ctx context.Context,
		page pagination.PageRequest,
		filters Filters,
	) (*pagination.PageResult[Site], error)

	Find(ctx context.Context, id uuid.UUID) (*Site, error)
	Create(ctx context.Context, userID uuid.UUID, cmd CreateCommand) (*Site, error)
	Update(ctx context.Context, id uuid.UUID, cmd UpdateCommand) (*Site, error)
	Delete(ctx context.Context, id uuid.UUID) error
	MarkCrawled(ctx context.Context, id uuid.UUID) error
}
