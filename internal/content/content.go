// Package content implements the content-unit domain for Megaphone: the
// generated post variations, their lifecycle state, and the publish
// operations that move them between states.
//
// A unit moves draft -> published or draft -> failed on publish, failed ->
// published on retry, and published -> draft on unpublish. The scheduled
// state is reserved for future scheduling support and takes part in no
// transition. Platform-specific results are kept in metadata under keys
// namespaced by platform, such as "twitter:post_id", so unpublish can strip
// them by prefix.
package content

import (
	"encoding/json"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/megaphone-app/megaphone/internal/generation"
	"github.com/megaphone-app/megaphone/pkg/social"
)

// Status represents a content unit's lifecycle state.
type Status string

// Valid lifecycle states.
const (
	StatusDraft     Status = "draft"
	StatusScheduled Status = "scheduled"
	StatusPublished Status = "published"
	StatusFailed    Status = "failed"
)

var statuses = []Status{
	StatusDraft,
	StatusScheduled,
	StatusPublished,
	StatusFailed,
}

// Statuses returns the list of valid lifecycle states.
func Statuses() []Status {
	return statuses
}

// UnmarshalJSON validates that the decoded string is a known status value.
func (s *Status) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	v := Status(raw)
	if !slices.Contains(statuses, v) {
		return ErrInvalidStatus
	}
	*s = v
	return nil
}

// ParseStatus validates a string as a known lifecycle state.
// Returns ErrInvalidStatus if the value is not recognized.
func ParseStatus(s string) (Status, error) {
	v := Status(s)
	if !slices.Contains(statuses, v) {
		return "", ErrInvalidStatus
	}
	return v, nil
}

// Metadata keys. Platform-specific keys are derived with PostIDKey and
// PostURLKey.
const (
	MetaHashtags  = "hashtags"
	MetaSourceURL = "source_url"
	MetaGenerator = "ai_generator"
	MetaLastError = "last_error"
)

// PostIDKey returns the metadata key holding the platform's post id.
func PostIDKey(p social.Platform) string {
	return string(p) + ":post_id"
}

// PostURLKey returns the metadata key holding the platform's post URL.
func PostURLKey(p social.Platform) string {
	return string(p) + ":url"
}

// ContentUnit represents one generated post variation bound to a platform
// account.
type ContentUnit struct {
	ID           uuid.UUID       `json:"id"`
	UserID       uuid.UUID       `json:"user_id"`
	SourceID     uuid.UUID       `json:"source_id"`
	AccountID    uuid.UUID       `json:"account_id"`
	Body         string          `json:"body"`
	Status       Status          `json:"status"`
	Tone         generation.Tone `json:"tone"`
	ScheduledFor *time.Time      `json:"scheduled_for"`
	PublishedAt  *time.Time      `json:"published_at"`
	Metadata     map[string]any  `json:"metadata"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// GenerateCommand carries the inputs for a generation fan-out run.
type GenerateCommand struct {
	SourceID uuid.UUID       `json:"source_id"`
	Tone     generation.Tone `json:"tone"`
}

// GenerateResult reports one outcome of a fan-out run: a persisted unit,
// or an account-level failure when no unit could be produced.
type GenerateResult struct {
	AccountID uuid.UUID       `json:"account_id"`
	Platform  social.Platform `json:"platform"`
	Unit      *ContentUnit    `json:"unit,omitempty"`
	Error     string          `json:"error,omitempty"`
}
