// Package users implements the user domain for Megaphone. Users own sites,
// platform accounts, and content units. Authentication is out of scope;
// ownership is resolved from the X-User-ID request header.
package users

import (
	"time"

	"github.com/google/uuid"
)

// User represents an owner of sites, accounts, and content.
type User struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateCommand carries the data needed to register a user.
type CreateCommand struct {
	Email string `json:"email"`
}
