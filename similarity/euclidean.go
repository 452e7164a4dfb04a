package similarity

import "math"

// EuclideanSimilarity computes similarity based on Euclidean distance between
// the shared ratings. Returns 1 / (1 + distance) so the result lies in (0, 1],
// where 1 means identical ratings. No shared items gives 0.
func EuclideanSimilarity(a, b map[string]float64) float64 {
	xs, ys := sharedRatings(a, b)
	if len(xs) == 0 {
		return 0
	}

	var sum float64
	for i := range xs {
		diff := xs[i] - ys[i]
		sum += diff * diff
	}

	return 1 / (1 + math.Sqrt(sum))
}
