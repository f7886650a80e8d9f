package secrets

import (
	"fmt"
	"os"
)

// Config holds credential encryption parameters. The passphrase is never
// written to config files in production; it is injected via environment.
type Config struct {
	Passphrase string `toml:"passphrase"`
	Salt       string `toml:"salt"`
}

// Env maps config fields to environment variable names for override injection.
type Env struct {
	Passphrase string
	Salt       string
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
	if overlay.Passphrase != "" {
		c.Passphrase = overlay.Passphrase
	}
	if overlay.Salt != "" {
		c.Salt = overlay.Salt
	}
}

func (c *Config) loadDefaults() {
	if c.Salt == "" {
		c.Salt = "megaphone-credentials"
	}
}

func (c *Config) loadEnv(env *Env) {
	if env.Passphrase != "" {
		if v := os.Getenv(env.Passphrase); v != "" {
			c.Passphrase = v
		}
	}
	if env.Salt != "" {
		if v := os.Getenv(env.Salt); v != "" {
			c.Salt = v
		}
	}
}

func (c *Config) validate() error {
	if c.Passphrase == "" {
		return fmt.Errorf("passphrase required")
	}
	return nil
}
