package sites

import (
	"net/url"

	"github.com/google/uuid"

	"github.com/megaphone-app/megaphone/pkg/query"
	"github.com/megaphone-app/megaphone/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "sites", "s").
	Project("id", "ID").
	Project("user_id", "UserID").
	Project("url", "URL").
	Project("name", "Name").
	Project("description", "Description").
	Project("crawl_frequency", "CrawlFrequency").
	Project("last_crawled_at", "LastCrawledAt").
	Project("active", "Active").
	Project("created_at", "CreatedAt").
	Project("updated_at", "UpdatedAt")

var defaultSort = query.SortField{
	Field: "Name",
}

// Filters contains optional filtering criteria for site queries.
// Nil fields are ignored.
type Filters struct {
	UserID *uuid.UUID `json:"user_id,omitempty"`
	Active *bool      `json:"active,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	return b.
		WhereEquals("UserID", f.UserID).
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

	if a := values.Get("active"); a == "true" || a == "false" {
		active := a == "true"
		f.Active = &active
	}

	return f
}

func scanSite(s repository.Scanner) (Site, error) {
	var site Site
	err := s.Scan(
		&site.ID,
		&site.UserID,
		&site.URL,
		&site.Name,
		&site.Description,
		&site.CrawlFrequency,
		&site.LastCrawledAt,
		&site.Active,
		&site.CreatedAt,
		&site.UpdatedAt,
	)
	return site, err
}
