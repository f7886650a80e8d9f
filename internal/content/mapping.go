package content

import (
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/google/uuid"

	"github.com/megaphone-app/megaphone/internal/generation"
	"github.com/megaphone-app/megaphone/pkg/query"
	"github.com/megaphone-app/megaphone/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "content_units", "c").
	Project("id", "ID").
	Project("user_id", "UserID").
	Project("source_id", "SourceID").
	Project("account_id", "AccountID").
	Project("body", "Body").
	Project("status", "Status").
	Project("tone", "Tone").
	Project("scheduled_for", "ScheduledFor").
	Project("published_at", "PublishedAt").
	Project("metadata", "Metadata").
	Project("created_at", "CreatedAt").
	Project("updated_at", "UpdatedAt")

var defaultSort = query.SortField{
	Field:      "CreatedAt",
	Descending: true,
}

// Filters contains optional filtering criteria for content queries.
// Nil fields are ignored.
type Filters struct {
	UserID    *uuid.UUID       `json:"user_id,omitempty"`
	SourceID  *uuid.UUID       `json:"source_id,omitempty"`
	AccountID *uuid.UUID       `json:"account_id,omitempty"`
	Status    *Status          `json:"status,omitempty"`
	Tone      *generation.Tone `json:"tone,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	return b.
		WhereEquals("UserID", f.UserID).
		WhereEquals("SourceID", f.SourceID).
		WhereEquals("AccountID", f.AccountID).
		WhereEquals("Status", f.Status).
		WhereEquals("Tone", f.Tone)
}

// FiltersFromQuery extracts filter values from URL query parameters.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if u := values.Get("user_id"); u != "" {
		if id, err := uuid.Parse(u); err == nil {
			f.UserID = &id
		}
	}

	if s := values.Get("source_id"); s != "" {
		if id, err := uuid.Parse(s); err == nil {
			f.SourceID = &id
		}
	}

	if a := values.Get("account_id"); a != "" {
		if id, err := uuid.Parse(a); err == nil {
			f.AccountID = &id
		}
	}

	if s := values.Get("status"); s != "" {
		if status, err := ParseStatus(s); err == nil {
			f.Status = &status
		}
	}

	if t := values.Get("tone"); t != "" {
		if tone, err := generation.ParseTone(t); err == nil {
			f.Tone = &tone
		}
	}

	return f
}

func scanUnit(s repository.Scanner) (ContentUnit, error) {
	var u ContentUnit
	var metadataRaw []byte

	err := s.Scan(
		&u.ID,
		&u.UserID,
		&u.SourceID,
		&u.AccountID,
		&u.Body,
		&u.Status,
		&u.Tone,
		&u.ScheduledFor,
		&u.PublishedAt,
		&metadataRaw,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		return u, err
	}

	if len(metadataRaw) > 0 {
		if err := json.Unmarshal(metadataRaw, &u.Metadata); err != nil {
			return u, fmt.Errorf("unmarshal metadata: %w", err)
		}
	}
	if u.Metadata == nil {
		u.Metadata = map[string]any{}
	}

	return u, nil
}
