package social

import (
	"fmt"
	"os"
	"time"
)

// Config holds platform API endpoints and the shared request timeout.
// Base URLs are overridable for testing against local stand-ins.
type Config struct {
	TwitterBaseURL  string `toml:"twitter_base_url"`
	LinkedInBaseURL string `toml:"linkedin_base_url"`
	BlueskyBaseURL  string `toml:"bluesky_base_url"`
	Timeout         string `toml:"timeout"`
}

// Env maps config fields to environment variable names for override injection.
type Env struct {
	TwitterBaseURL  string
	LinkedInBaseURL string
	BlueskyBaseURL  string
	Timeout         string
}

// TimeoutDuration returns Timeout as a time.Duration.
func (c *Config) TimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.Timeout)
	return d
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *Config) Finalize(env *Env) error {
	c.loadDefaults()
	if env != nil {
		c.loadEnv(env)
	}
	return c.validate()
}

// Merge overwrites non-zero fields from overlay.
func (c *Config) Merge(overlay *Config) {
	if overlay.TwitterBaseURL != "" {
		c.TwitterBaseURL = overlay.TwitterBaseURL
	}
	if overlay.LinkedInBaseURL != "" {
		c.LinkedInBaseURL = overlay.LinkedInBaseURL
	}
	if overlay.BlueskyBaseURL != "" {
		c.BlueskyBaseURL = overlay.BlueskyBaseURL
	}
	if overlay.Timeout != "" {
		c.Timeout = overlay.Timeout
	}
}

func (c *Config) loadDefaults() {
	if c.TwitterBaseURL == "" {
		c.TwitterBaseURL = "https://api.twitter.com"
	}
	if c.LinkedInBaseURL == "" {
		c.LinkedInBaseURL = "https://api.linkedin.com"
	}
	if c.BlueskyBaseURL == "" {
		c.BlueskyBaseURL = "https://bsky.social"
	}
	if c.Timeout == "" {
		c.Timeout = "30s"
	}
}

func (c *Config) loadEnv(env *Env) {
	if env.TwitterBaseURL != "" {
		if v := os.Getenv(env.TwitterBaseURL); v != "" {
			c.TwitterBaseURL = v
		}
	}
	if env.LinkedInBaseURL != "" {
		if v := os.Getenv(env.LinkedInBaseURL); v != "" {
			c.LinkedInBaseURL = v
		}
	}
	if env.BlueskyBaseURL != "" {
		if v := os.Getenv(env.BlueskyBaseURL); v != "" {
			c.BlueskyBaseURL = v
		}
	}
	if env.Timeout != "" {
		if v := os.Getenv(env.Timeout); v != "" {
			c.Timeout = v
		}
	}
}

func (c *Config) validate() error {
	if _, err := time.ParseDuration(c.Timeout); err != nil {
		return fmt.Errorf("invalid timeout: %w", err)
	}
	return nil
}
