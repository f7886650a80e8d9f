// Package generation produces social post variations from source content.
// Multiple AI generators run in parallel and their outputs are interleaved
// by weighted random draw, so configured providers share the variation mix
// in proportion to their weights.
package generation

import (
	"context"
	"log/slog"
	"math/rand/v2"
	"sync"

	"golang.org/x/sync/errgroup"
)

// Request carries the source content for one generation run.
type Request struct {
	Title string
	Body  string
	URL   string
	Tone  Tone
}

// GeneratorInfo describes an enabled generator for catalog responses.
type GeneratorInfo struct {
	Name       string  `json:"name"`
	Provider   string  `json:"provider"`
	Model      string  `json:"model"`
	Weight     float64 `json:"weight"`
	Variations int     `json:"variations"`
}

// System generates mixed post variations.
type System interface {
	// Generate runs every enabled generator against the request and returns
	// the weighted interleaving of their variations.
	Generate(ctx context.Context, req Request) ([]Variation, error)
	// Generators describes the enabled generators and their normalized weights.
	Generators() []GeneratorInfo
}

type system struct {
	generators []*Generator
	info       []GeneratorInfo
	weights    map[string]float64
	variations int
	rng        *rand.Rand
	mu         sync.Mutex
	logger     *slog.Logger
}

// NewSystem creates the generation system from finalized configuration.
// A nil rng falls back to a randomly seeded source; tests inject a seeded
// one for deterministic mixing.
func NewSystem(cfg Config, rng *rand.Rand, logger *slog.Logger) (System, error) {
	logger = logger.With("system", "generation")

	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	raw := make(map[string]float64, len(cfg.Generators))
	generators := make([]*Generator, 0, len(cfg.Generators))
	for _, gc := range cfg.Generators {
		g, err := NewGenerator(gc, logger)
		if err != nil {
			return nil, err
		}
		generators = append(generators, g)
		raw[gc.Name] = gc.Weight
	}
	weights := NormalizeWeights(raw)

	info := make([]GeneratorInfo, 0, len(cfg.Generators))
	for _, gc := range cfg.Generators {
		info = append(info, GeneratorInfo{
			Name:       gc.Name,
			Provider:   gc.Provider,
			Model:      gc.Model,
			Weight:     weights[gc.Name],
			Variations: cfg.Variations,
		})
	}

	return &system{
		generators: generators,
		info:       info,
		weights:    weights,
		variations: cfg.Variations,
		rng:        rng,
		logger:     logger,
	}, nil
}

func (s *system) Generate(ctx context.Context, req Request) ([]Variation, error) {
	prompt, err := BuildPrompt(req.Tone, req.Title, req.Body, req.URL)
	if err != nil {
		return nil, err
	}

	batches := make([]Batch, len(s.generators))
	group, gctx := errgroup.WithContext(ctx)
	for i, g := range s.generators {
		group.Go(func() error {
			batches[i] = Batch{Generator: g.Name(), Bodies: g.Generate(gctx, prompt, s.variations)}
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}

	// The random source is not safe for concurrent draws.
	s.mu.Lock()
	mixed := Mix(batches, s.weights, s.rng)
	s.mu.Unlock()

	s.logger.Debug("generated variations", "tone", req.Tone, "count", len(mixed))
	return mixed, nil
}

func (s *system) Generators() []GeneratorInfo {
	return s.info
}
