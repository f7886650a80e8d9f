package generation

import (
	"context"
	"log/slog"

	"github.com/megaphone-app/megaphone/pkg/llm"
)

// Generator produces post variations through a single AI provider. Provider
// failures are logged and yield whatever completed, never an error, so one
// failing provider cannot sink a mixed generation run.
type Generator struct {
	name        string
	weight      float64
	temperature float64
	provider    llm.Provider
	logger      *slog.Logger
}

// NewGenerator creates a generator from its configuration.
func NewGenerator(cfg GeneratorConfig, logger *slog.Logger) (*Generator, error) {
	provider, err := llm.NewProvider(cfg.Config)
	if err != nil {
		return nil, err
	}
	return &Generator{
		name:        cfg.Name,
		weight:      cfg.Weight,
		temperature: cfg.Temperature,
		provider:    provider,
		logger:      logger.With("generator", cfg.Name),
	}, nil
}

// Name returns the generator's configured identifier.
func (g *Generator) Name() string {
	return g.name
}

// Weight returns the generator's configured mixing weight.
func (g *Generator) Weight() float64 {
	return g.weight
}

// Generate requests count variations for the prompt. Returns the variations
// that completed, which may be fewer than count or none at all.
func (g *Generator) Generate(ctx context.Context, prompt string, count int) []string {
	bodies, err := g.provider.Complete(ctx, llm.Request{
		System:      systemMessage,
		Prompt:      prompt,
		Count:       count,
		Temperature: g.temperature,
	})
	if err != nil {
		g.logger.Warn("generation failed", "error", err, "completed", len(bodies))
	}
	return bodies
}
