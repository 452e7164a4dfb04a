package similarity

import "sort"

// sharedRatings returns the aligned ratings of the items present in both rows.
// Items are visited in sorted order so sums are reproducible between calls.
func sharedRatings(a, b map[string]float64) (xs, ys []float64) {
	if len(b) < len(a) {
		ys, xs = sharedRatings(b, a)
		return xs, ys
	}

	items := make([]string, 0, len(a))
	for item := range a {
		if _, ok := b[item]; ok {
			items = append(items, item)
		}
	}
	if len(items) == 0 {
		return nil, nil
	}
	sort.Strings(items)

	xs = make([]float64, len(items))
	ys = make([]float64, len(items))
	for i, item := range items {
		xs[i] = a[item]
		ys[i] = b[item]
	}
	return xs, ys
}
