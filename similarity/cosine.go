package similarity

import "gonum.org/v1/gonum/floats"

// CosineSimilarity computes the cosine of the angle between the shared
// ratings. A zero norm on either side gives 0.
func CosineSimilarity(a, b map[string]float64) float64 {
	xs, ys := sharedRatings(a, b)
	if len(xs) == 0 {
		return 0
	}

	normA := floats.Norm(xs, 2)
	normB := floats.Norm(ys, 2)
	if normA == 0 || normB == 0 {
		return 0
	}

	return floats.Dot(xs, ys) / (normA * normB)
}
