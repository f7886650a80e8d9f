package generation

import (
	"math/rand/v2"
)

// Variation is a single generated post body attributed to the generator
// that produced it.
type Variation struct {
	Body      string `json:"body"`
	Generator string `json:"generator"`
}

// Batch holds the ordered variations produced by one generator.
type Batch struct {
	Generator string
	Bodies    []string
}

// Mix interleaves generator batches by weighted random draw. Each draw
// selects a generator from the normalized weight distribution restricted to
// generators with variations remaining, then takes that generator's next
// variation. The output contains every input variation exactly once and
// preserves per-generator ordering. Empty input yields an empty slice.
func Mix(batches []Batch, weights map[string]float64, rng *rand.Rand) []Variation {
	total := 0
	for _, b := range batches {
		total += len(b.Bodies)
	}

	mixed := make([]Variation, 0, total)
	remaining := make([]int, len(batches))

	for len(mixed) < total {
		mass := 0.0
		for i, b := range batches {
			if remaining[i] < len(b.Bodies) {
				mass += weights[b.Generator]
			}
		}

		idx := -1
		if mass > 0 {
			draw := rng.Float64() * mass
			acc := 0.0
			for i, b := range batches {
				if remaining[i] >= len(b.Bodies) {
					continue
				}
				acc += weights[b.Generator]
				if draw < acc {
					idx = i
					break
				}
			}
		}
		if idx < 0 {
			// Remaining generators carry no weight mass; drain in order.
			for i, b := range batches {
				if remaining[i] < len(b.Bodies) {
					idx = i
					break
				}
			}
		}

		b := batches[idx]
		mixed = append(mixed, Variation{
			Body:      b.Bodies[remaining[idx]],
			Generator: b.Generator,
		})
		remaining[idx]++
	}

	return mixed
}
