// Package sources implements the crawled-content domain for Megaphone.
// A source is a single page fetched from a registered site: its extracted
// title and text, plus a raw HTML snapshot retained in blob storage.
package sources

import (
	"time"

	"github.com/google/uuid"
)

// Source represents one crawled page.
type Source struct {
	ID          uuid.UUID `json:"id"`
	SiteID      uuid.UUID `json:"site_id"`
	URL         string    `json:"url"`
	Title       string    `json:"title"`
	Body        string    `json:"body"`
	SnapshotKey string    `json:"snapshot_key"`
	CrawledAt   time.Time `json:"crawled_at"`
	CreatedAt   time.Time `json:"created_at"`
}

// CrawlCommand identifies the site to crawl.
type CrawlCommand struct {
	SiteID uuid.UUID `json:"site_id"`
}
