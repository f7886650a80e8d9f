// Package sites implements the site domain for Megaphone. A site is a
// crawl target owned by a user: its URL, crawl cadence, and activity flag.
package sites

import (
	"time"

	"github.com/google/uuid"
)

// Site represents a registered crawl target.
type Site struct {
	ID             uuid.UUID  `json:"id"`
	UserID         uuid.UUID  `json:"user_id"`
	URL            string     `json:"url"`
	Name           string     `json:"name"`
	Description    string     `json:"description"`
	CrawlFrequency string     `json:"crawl_frequency"`
	LastCrawledAt  *time.Time `json:"last_crawled_at"`
	Active         bool       `json:"active"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// CreateCommand carries the data needed to register a site.
type CreateCommand struct {
	URL            string `json:"url"`
	Name           string `json:"name"`
	Description    string `json:"description"`
	CrawlFrequency string `json:"crawl_frequency"`
}

// UpdateCommand carries the fields that may be changed on a site.
// Empty fields are left unchanged.
type UpdateCommand struct {
	URL            string `json:"url"`
	Name           string `json:"name"`
	Description    string `json:"description"`
	CrawlFrequency string `json:"crawl_frequency"`
}
