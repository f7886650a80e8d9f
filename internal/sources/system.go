package sources

import (
	"context"

	"github.com/google/uuid"

	"github.com/megaphone-app/megaphone/pkg/pagination"
)

// System defines the public contract for source domain operations.
type System interface {
	Handler() *Handler

	List(
		ctx context.Context,
		page pagination.PageRequest,
		filters Filters,
	) (*pagination.PageResult[Source], error)

	Find(ctx context.Context, id uuid.UUID) (*Source, error)
	Crawl(ctx context.Context, cmd CrawlCommand) (*Source, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
