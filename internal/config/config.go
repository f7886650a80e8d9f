package config

import (
	"fmt"
	"os"
	"time"

	"github.com/megaphone-app/megaphone/internal/generation"
	"github.com/megaphone-app/megaphone/pkg/database"
	"github.com/megaphone-app/megaphone/pkg/secrets"
	"github.com/megaphone-app/megaphone/pkg/social"
	"github.com/megaphone-app/megaphone/pkg/storage"
	"github.com/pelletier/go-toml/v2"
)

const (
	BaseConfigFile       = "config.toml"
	OverlayConfigPattern = "config.%s.toml"

	EnvMegaphoneEnv             = "MEGAPHONE_ENV"
	EnvMegaphoneShutdownTimeout = "MEGAPHONE_SHUTDOWN_TIMEOUT"
	EnvMegaphoneVersion         = "MEGAPHONE_VERSION"
)

var databaseEnv = &database.Env{
	Host:            "MEGAPHONE_DB_HOST",
	Port:            "MEGAPHONE_DB_PORT",
	Name:            "MEGAPHONE_DB_NAME",
	User:            "MEGAPHONE_DB_USER",
	Password:        "MEGAPHONE_DB_PASSWORD",
	SSLMode:         "MEGAPHONE_DB_SSL_MODE",
	MaxOpenConns:    "MEGAPHONE_DB_MAX_OPEN_CONNS",
	MaxIdleConns:    "MEGAPHONE_DB_MAX_IDLE_CONNS",
	ConnMaxLifetime: "MEGAPHONE_DB_CONN_MAX_LIFETIME",
	ConnTimeout:     "MEGAPHONE_DB_CONN_TIMEOUT",
}

var storageEnv = &storage.Env{
	ContainerName:    "MEGAPHONE_STORAGE_CONTAINER_NAME",
	ConnectionString: "MEGAPHONE_STORAGE_CONNECTION_STRING",
}

// Config is the root configuration for the Megaphone service.
type Config struct {
	Server          ServerConfig      `toml:"server"`
	Database        database.Config   `toml:"database"`
	Storage         storage.Config    `toml:"storage"`
	Generation      generation.Config `toml:"generation"`
	Secrets         secrets.Config    `toml:"secrets"`
	Social          social.Config     `toml:"social"`
	API             APIConfig         `toml:"api"`
	ShutdownTimeout string            `toml:"shutdown_timeout"`
	Version         string            `toml:"version"`
}

// Env returns the MEGAPHONE_ENV value, defaulting to "local".
func (c *Config) Env() string {
	if env := os.Getenv(EnvMegaphoneEnv); env != "" {
		return env
	}
	return "local"
}

// ShutdownTimeoutDuration returns ShutdownTimeout as a time.Duration.
func (c *Config) ShutdownTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.ShutdownTimeout)
	return d
}

// Load reads the base config (if present), applies any environment overlay,
// and finalizes all values. If no config.toml exists, defaults and environment
// variables provide all configuration.
func Load() (*Config, error) {
	cfg := &Config{}

	if _, err := os.Stat(BaseConfigFile); err == nil {
		loaded, err := load(BaseConfigFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if path := overlayPath(); path != "" {
		overlay, err := load(path)
		if err != nil {
			return nil, fmt.Errorf("load overlay %s: %w", path, err)
		}
		cfg.Merge(overlay)
	}

	if err := cfg.finalize(); err != nil {
		return nil, fmt.Errorf("finalize config: %w", err)
	}

	return cfg, nil
}

// Merge overwrites non-zero fields from overlay across all sub-configs.
func (c *Config) Merge(overlay *Config) {
	if overlay.ShutdownTimeout != "" {
		c.ShutdownTimeout = overlay.ShutdownTimeout
	}
	if overlay.Version != "" {
		c.Version = overlay.Version
	}
	c.Server.Merge(&overlay.Server)
	c.Database.Merge(&overlay.Database)
	c.Storage.Merge(&overlay.Storage)
	c.Generation.Merge(&overlay.Generation)
	c.Secrets.Merge(&overlay.Secrets)
	c.Social.Merge(&overlay.Social)
	c.API.Merge(&overlay.API)
}

func (c *Config) finalize() error {
	c.loadDefaults()
	c.loadEnv()

	if err := c.validate(); err != nil {
		return err
	}
	if err := c.Server.Finalize(); err != nil {
		return fmt.Errorf("server: %w", err)
	}
	if err := c.Database.Finalize(databaseEnv); err != nil {
		return fmt.Errorf("database: %w", err)
	}
	if err := c.Storage.Finalize(storageEnv); err != nil {
		return fmt.Errorf("storage: %w", err)
	}
	if err := c.Generation.Finalize(generationEnv); err != nil {
		return fmt.Errorf("generation: %w", err)
	}
	if err := c.Secrets.Finalize(secretsEnv); err != nil {
		return fmt.Errorf("secrets: %w", err)
	}
	if err := c.Social.Finalize(socialEnv); err != nil {
		return fmt.Errorf("social: %w", err)
	}
	if err := c.API.Finalize(); err != nil {
		return fmt.Errorf("api: %w", err)
	}
	return nil
}

func (c *Config) loadDefaults() {
	if c.ShutdownTimeout == "" {
		c.ShutdownTimeout = "30s"
	}
	if c.Version == "" {
		c.Version = "0.1.0"
	}
}

func (c *Config) loadEnv() {
	if v := os.Getenv(EnvMegaphoneShutdownTimeout); v != "" {
		c.ShutdownTimeout = v
	}
	if v := os.Getenv(EnvMegaphoneVersion); v != "" {
		c.Version = v
	}
}

func (c *Config) validate() error {
	if _, err := time.ParseDuration(c.ShutdownTimeout); err != nil {
		return fmt.Errorf("invalid shutdown_timeout: %w", err)
	}
	return nil
}

func load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	return &cfg, nil
}

func overlayPath() string {
	if env := os.Getenv(EnvMegaphoneEnv); env != "" {
		path := fmt.Sprintf(OverlayConfigPattern, env)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}
