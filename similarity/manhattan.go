package similarity

import "math"

// ManhattanSimilarity computes similarity based on Manhattan (L1) distance
// between the shared ratings. Returns 1 / (1 + distance).
func ManhattanSimilarity(a, b map[string]float64) float64 {
	xs, ys := sharedRatings(a, b)
	if len(xs) == 0 {
		return 0
	}

	var sum float64
	for i := range xs {
		sum += math.Abs(xs[i] - ys[i])
	}

	return 1 / (1 + sum)
}
