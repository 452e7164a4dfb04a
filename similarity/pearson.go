package similarity

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// PearsonSimilarity computes the Pearson correlation coefficient over the
// shared items. Returns a value between -1 and 1; no shared items or zero
// variance on either side gives 0.
func PearsonSimilarity(a, b map[string]float64) float64 {
	xs, ys := sharedRatings(a, b)
	if len(xs) == 0 {
		return 0
	}

	r := stat.Correlation(xs, ys, nil)
	if math.IsNaN(r) || math.IsInf(r, 0) {
		return 0
	}
	return r
}
