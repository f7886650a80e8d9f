package users

import (
	"context"

	"github.com/google/uuid"

	"github.com/megaphone-app/megaphone/pkg/pagination"
)

// System defines the public contract for user domain operations.
type System interface {
	Handler() *Handler

	List(ctx context.Context, page pagination.PageRequest) (*pagination.PageResult[User], error)
	Find(ctx context.Context, id uuid.UUID) (*User, error)
	Create(ctx context.Context, cmd CreateCommand) (*User, error)
}
