package generation

// NormalizeWeights scales the given weights to sum to 1. Negative weights
// are treated as zero. If no positive weight remains, every generator
// receives an equal share.
func NormalizeWeights(weights map[string]float64) map[string]float64 {
	normalized := make(map[string]float64, len(weights))

	sum := 0.0
	for name, w := range weights {
		if w < 0 {
			w = 0
		}
		normalized[name] = w
		sum += w
	}

	if sum <= 0 {
		share := 1.0 / float64(len(weights))
		for name := range normalized {
			normalized[name] = share
		}
		return normalized
	}

	for name, w := range normalized {
		normalized[name] = w / sum
	}
	return normalized
}
