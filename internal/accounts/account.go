// Package accounts implements the platform-account domain for Megaphone.
// An account binds a user to one social platform with encrypted credentials.
// Credentials are sealed at rest and only decrypted to construct a platform
// adapter; they never appear in API responses.
package accounts

import (
	"time"

	"github.com/google/uuid"

	"github.com/megaphone-app/megaphone/pkg/secrets"
	"github.com/megaphone-app/megaphone/pkg/social"
)

// Account represents a user's publishing identity on one platform.
type Account struct {
	ID        uuid.UUID       `json:"id"`
	UserID    uuid.UUID       `json:"user_id"`
	Platform  social.Platform `json:"platform"`
	Name      string          `json:"name"`
	Username  string          `json:"username"`
	Active    bool            `json:"active"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// CreateCommand carries the data needed to register a platform account.
type CreateCommand struct {
	Platform    social.Platform     `json:"platform"`
	Name        string              `json:"name"`
	Username    string              `json:"username"`
	Credentials secrets.Credentials `json:"credentials"`
}

// UpdateCommand carries the fields that may be changed on an account.
// Empty fields are left unchanged; non-empty Credentials replace the
// stored set wholesale.
type UpdateCommand struct {
	Name        string              `json:"name"`
	Username    string              `json:"username"`
	Credentials secrets.Credentials `json:"credentials,omitempty"`
}
