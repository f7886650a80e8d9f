package generation

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/megaphone-app/megaphone/pkg/llm"
)

// GeneratorConfig configures one AI generator: its mixing weight plus the
// provider connection settings.
type GeneratorConfig struct {
	Name   string  `toml:"name"`
	Weight float64 `toml:"weight"`
	llm.Config
}

// Config configures the generation pipeline.
type Config struct {
	Variations int               `toml:"variations"`
	Generators []GeneratorConfig `toml:"generators"`
}

// Env maps config fields to environment variable names for override
// injection. Per-generator provider settings resolve from variables derived
// from the env prefix and the generator name, such as
// MEGAPHONE_GENERATION_OPENAI_API_KEY.
type Env struct {
	Prefix     string
	Variations string
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *Config) Finalize(env *Env) error {
	if c.Variations == 0 {
		c.Variations = 2
	}
	if env != nil {
		c.loadEnv(env)
	}
	return c.validate(env)
}

// Merge overwrites non-zero fields from overlay. Generator lists replace
// wholesale; per-generator merging is not supported.
func (c *Config) Merge(overlay *Config) {
	if overlay.Variations != 0 {
		c.Variations = overlay.Variations
	}
	if len(overlay.Generators) > 0 {
		c.Generators = overlay.Generators
	}
}

func (c *Config) loadEnv(env *Env) {
	if env.Variations != "" {
		if v := os.Getenv(env.Variations); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				c.Variations = n
			}
		}
	}
}

func (c *Config) validate(env *Env) error {
	if c.Variations < 1 {
		return fmt.Errorf("variations must be positive")
	}
	if len(c.Generators) == 0 {
		return ErrNoGenerators
	}

	seen := make(map[string]bool, len(c.Generators))
	for i := range c.Generators {
		gc := &c.Generators[i]
		if gc.Name == "" {
			gc.Name = gc.Provider
		}
		if seen[gc.Name] {
			return fmt.Errorf("duplicate generator name: %s", gc.Name)
		}
		seen[gc.Name] = true

		if gc.Weight < 0 {
			return fmt.Errorf("generator %s: weight must be non-negative", gc.Name)
		}
		if err := gc.Config.Finalize(generatorEnv(env, gc.Name)); err != nil {
			return fmt.Errorf("generator %s: %w", gc.Name, err)
		}
	}
	return nil
}

func generatorEnv(env *Env, name string) *llm.Env {
	if env == nil || env.Prefix == "" {
		return nil
	}
	prefix := env.Prefix + "_" + strings.ToUpper(strings.ReplaceAll(name, "-", "_"))
	return &llm.Env{
		Model:       prefix + "_MODEL",
		APIKey:      prefix + "_API_KEY",
		BaseURL:     prefix + "_BASE_URL",
		Temperature: prefix + "_TEMPERATURE",
		MaxTokens:   prefix + "_MAX_TOKENS",
		Timeout:     prefix + "_TIMEOUT",
	}
}
