package generation_test

import (
	"math/rand/v2"
	"testing"

	"github.com/megaphone-app/megaphone/internal/generation"
)

func testBatches() []generation.Batch {
	return []generation.Batch{
		{Generator: "openai", Bodies: []string{"o1", "o2", "o3"}},
		{Generator: "anthropic", Bodies: []string{"a1", "a2"}},
		{Generator: "ollama", Bodies: []string{"l1"}},
	}
}

func TestMix(t *testing.T) {
	weights := map[string]float64{
		"openai":    0.5,
		"anthropic": 0.3,
		"ollama":    0.2,
	}

	t.Run("contains every variation exactly once", func(t *testing.T) {
		rng := rand.New(rand.NewPCG(1, 2))
		mixed := generation.Mix(testBatches(), weights, rng)

		if len(mixed) != 6 {
			t.Fatalf("Mix returned %d variations, want 6", len(mixed))
		}

		seen := map[string]int{}
		for _, v := range mixed {
			seen[v.Body]++
		}
		for _, body := range []string{"o1", "o2", "o3", "a1", "a2", "l1"} {
			if seen[body] != 1 {
				t.Errorf("body %q appeared %d times, want 1", body, seen[body])
			}
		}
	})

	t.Run("preserves per-generator order", func(t *testing.T) {
		rng := rand.New(rand.NewPCG(7, 11))
		mixed := generation.Mix(testBatches(), weights, rng)

		for _, batch := range testBatches() {
			var got []string
			for _, v := range mixed {
				if v.Generator == batch.Generator {
					got = append(got, v.Body)
				}
			}
			if len(got) != len(batch.Bodies) {
				t.Fatalf("%s: got %d variations, want %d", batch.Generator, len(got), len(batch.Bodies))
			}
			for i, body := range batch.Bodies {
				if got[i] != body {
					t.Errorf("%s[%d] = %q, want %q", batch.Generator, i, got[i], body)
				}
			}
		}
	})

	t.Run("deterministic for a fixed seed", func(t *testing.T) {
		first := generation.Mix(testBatches(), weights, rand.New(rand.NewPCG(3, 5)))
		second := generation.Mix(testBatches(), weights, rand.New(rand.NewPCG(3, 5)))

		for i := range first {
			if first[i] != second[i] {
				t.Fatalf("draw %d differs: %v vs %v", i, first[i], second[i])
			}
		}
	})

	t.Run("zero weight mass drains in batch order", func(t *testing.T) {
		rng := rand.New(rand.NewPCG(1, 1))
		mixed := generation.Mix(testBatches(), map[string]float64{}, rng)

		want := []string{"o1", "o2", "o3", "a1", "a2", "l1"}
		for i, body := range want {
			if mixed[i].Body != body {
				t.Errorf("mixed[%d].Body = %q, want %q", i, mixed[i].Body, body)
			}
		}
	})

	t.Run("weight concentrated on short batch still terminates", func(t *testing.T) {
		rng := rand.New(rand.NewPCG(9, 9))
		heavy := map[string]float64{"ollama": 1.0}
		mixed := generation.Mix(testBatches(), heavy, rng)

		if len(mixed) != 6 {
			t.Fatalf("Mix returned %d variations, want 6", len(mixed))
		}
		if mixed[0].Body != "l1" {
			t.Errorf("mixed[0].Body = %q, want l1", mixed[0].Body)
		}
	})

	t.Run("empty input yields empty output", func(t *testing.T) {
		rng := rand.New(rand.NewPCG(1, 1))
		mixed := generation.Mix(nil, weights, rng)
		if len(mixed) != 0 {
			t.Errorf("Mix(nil) returned %d variations, want 0", len(mixed))
		}
	})
}

func TestNormalizeWeights(t *testing.T) {
	t.Run("scales to unit sum", func(t *testing.T) {
		got := generation.NormalizeWeights(map[string]float64{"a": 2, "b": 2})
		if got["a"] != 0.5 || got["b"] != 0.5 {
			t.Errorf("NormalizeWeights = %v, want equal halves", got)
		}
	})

	t.Run("negative weights treated as zero", func(t *testing.T) {
		got := generation.NormalizeWeights(map[string]float64{"a": -1, "b": 1})
		if got["a"] != 0 {
			t.Errorf("a = %v, want 0", got["a"])
		}
		if got["b"] != 1 {
			t.Errorf("b = %v, want 1", got["b"])
		}
	})

	t.Run("no positive mass yields equal shares", func(t *testing.T) {
		got := generation.NormalizeWeights(map[string]float64{"a": 0, "b": 0, "c": 0, "d": 0})
		for name, w := range got {
			if w != 0.25 {
				t.Errorf("%s = %v, want 0.25", name, w)
			}
		}
	})
}
