package accounts

import (
	"net/url"

	"github.com/google/uuid"

	"github.com/megaphone-app/megaphone/pkg/query"
	"github.com/megaphone-app/megaphone/pkg/repository"
	"github.com/megaphone-app/megaphone/pkg/social"
)

var projection = query.
	NewProjectionMap("public", "platform_accounts", "a").
	Project("id", "ID").
	Project("user_id", "UserID").
	Project("platform", "Platform").
	Project("name", "Name").
	Project("username", "Username").
	Project("active", "Active").
	Project("created_at", "CreatedAt").
	Project("updated_at", "UpdatedAt")

var defaultSort = query.SortField{
	Field: "Name",
}

// Filters contains optional filtering criteria for account queries.
// Nil fields are ignored.
type Filters struct {
	UserID   *uuid.UUID       `json:"user_id,omitempty"`
	Platform *social.Platform `json:"platform,omitempty"`
	Active   *bool            `json:"active,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	return b.
		WhereEquals("UserID", f.UserID).
		WhereEquals("Platform", f.Platform).
		WhereEquals("Active", f.Active)
}

// FiltersFromQuery extracts filter values from URL query parameters.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if u := values.Get("user_id"); u != "" {
		if id, err := uuid.Parse(u); err == nil {
			f.UserID = &id
		}
	}

	if p := values.Get("platform"); p != "" {
		if platform, err := social.ParsePlatform(p); err == nil {
			f.Platform = &platform
		}
	}

	if a := values.Get("active"); a == "true" || a == "false" {
		active := a == "true"
		f.Active = &active
	}

	return f
}

func scanAccount(s repository.Scanner) (Account, error) {
	var a Account
	err := s.Scan(
		&a.ID,
		&a.UserID,
		&a.Platform,
		&a.Name,
		&a.Username,
		&a.Active,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	return a, err
}
