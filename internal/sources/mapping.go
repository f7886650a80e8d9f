package sources

import (
	"net/url"

	"github.com/google/uuid"

	"github.com/megaphone-app/megaphone/pkg/query"
	"github.com/megaphone-app/megaphone/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "sources", "s").
	Project("id", "ID").
	Project("site_id", "SiteID").
	Project("url", "URL").
	Project("title", "Title").
	Project("body", "Body").
	Project("snapshot_key", "SnapshotKey").
	Project("crawled_at", "CrawledAt").
	Project("created_at", "CreatedAt")

var defaultSort = query.SortField{
	Field:      "CrawledAt",
	Descending: true,
}

// Filters contains optional filtering criteria for source queries.
// Nil fields are ignored.
type Filters struct {
	SiteID *uuid.UUID `json:"site_id,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	return b.WhereEquals("SiteID", f.SiteID)
}

// FiltersFromQuery extracts filter values from URL query parameters.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if s := values.Get("site_id"); s != "" {
		if id, err := uuid.Parse(s); err == nil {
			f.SiteID = &id
		}
	}

	return f
}

func scanSource(s repository.Scanner) (Source, error) {
	var src Source
	err := s.Scan(
		&src.ID,
		&src.SiteID,
		&src.URL,
		&src.Title,
		&src.Body,
		&src.SnapshotKey,
		&src.CrawledAt,
		&src.CreatedAt,
	)
	return src, err
}
