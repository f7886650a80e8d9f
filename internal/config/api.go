package config

import (
	"fmt"
	"os"

	"github.com/megaphone-app/megaphone/pkg/formatting"
	"github.com/megaphone-app/megaphone/pkg/middleware"
	"github.com/megaphone-app/megaphone/pkg/pagination"
)

var corsEnv = &middleware.CORSEnv{
	Enabled:          "MEGAPHONE_CORS_ENABLED",
	Origins:          "MEGAPHONE_CORS_ORIGINS",
	AllowedMethods:   "MEGAPHONE_CORS_ALLOWED_METHODS",
	AllowedHeaders:   "MEGAPHONE_CORS_ALLOWED_HEADERS",
	AllowCredentials: "MEGAPHONE_CORS_ALLOW_CREDENTIALS",
	MaxAge:           "MEGAPHONE_CORS_MAX_AGE",
}

var paginationEnv = &pagination.ConfigEnv{
	DefaultPageSize: "MEGAPHONE_PAGINATION_DEFAULT_PAGE_SIZE",
	MaxPageSize:     "MEGAPHONE_PAGINATION_MAX_PAGE_SIZE",
}

// APIConfig holds API routing, CORS, and pagination settings.
type APIConfig struct {
	BasePath      string                `toml:"base_path"`
	MaxFetchSize  string                `toml:"max_fetch_size"`
	CORS          middleware.CORSConfig `toml:"cors"`
	Pagination    pagination.Config     `toml:"pagination"`
}

// MaxFetchSizeBytes returns the crawl fetch cap in bytes.
func (c *APIConfig) MaxFetchSizeBytes() int64 {
	size, err := formatting.ParseBytes(c.MaxFetchSize)
	if err != nil {
		return 5 * 1024 * 1024 // 5MB fallback
	}
	return size
}

// Finalize applies defaults, environment variable overrides, and validation
// for the API config and its nested CORS and pagination configs.
func (c *APIConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()

	if err := c.CORS.Finalize(corsEnv); err != nil {
		return fmt.Errorf("cors: %w", err)
	}
	if err := c.Pagination.Finalize(paginationEnv); err != nil {
		return fmt.Errorf("pagination: %w", err)
	}
	return nil
}

// Merge overwrites non-zero fields from overlay across nested configs.
func (c *APIConfig) Merge(overlay *APIConfig) {
	if overlay.BasePath != "" {
		c.BasePath = overlay.BasePath
	}
	if overlay.MaxFetchSize != "" {
		c.MaxFetchSize = overlay.MaxFetchSize
	}

	c.CORS.Merge(&overlay.CORS)
	c.Pagination.Merge(&overlay.Pagination)
}

func (c *APIConfig) loadDefaults() {
	if c.BasePath == "" {
		c.BasePath = "/api"
	}
	if c.MaxFetchSize == "" {
		c.MaxFetchSize = "5MB"
	}
}

func (c *APIConfig) loadEnv() {
	if v := os.Getenv("MEGAPHONE_API_BASE_PATH"); v != "" {
		c.BasePath = v
	}
	if v := os.Getenv("MEGAPHONE_API_MAX_FETCH_SIZE"); v != "" {
		c.MaxFetchSize = v
	}
}
