// Package tastematch scores how alike the raters of a sparse ratings matrix
// are and predicts ratings for the items a rater has not seen yet.
//
// The package-level functions are pure and safe for concurrent use on a
// matrix nobody mutates. Engine wraps them with result caching, logging and
// metrics.
package tastematch

import (
	"sort"

	"github.com/botirk38/tastematch/options"
	"github.com/botirk38/tastematch/similarity"
	"github.com/botirk38/tastematch/types"
)

// DefaultMatches is the number of matches returned when no count is given.
const DefaultMatches = options.DefaultMatchCount

// Similarity scores how alike entities a and b are, using only the items both
// have rated. Entities without shared items score 0.
func Similarity(m types.Ratings, a, b string, method similarity.Method) (float64, error) {
	rowA, ok := m[a]
	if !ok {
		return 0, unknownEntity(a)
	}
	rowB, ok := m[b]
	if !ok {
		return 0, unknownEntity(b)
	}

	fn, err := method.Func()
	if err != nil {
		return 0, err
	}
	return fn(rowA, rowB), nil
}

// TopMatches returns the n entities most similar to entity, best first. Equal
// scores are ordered by descending identifier. n <= 0 selects DefaultMatches.
//
// An empty matrix yields no matches rather than an error, since there is
// nobody to compare against.
func TopMatches(m types.Ratings, entity string, n int, method similarity.Method) ([]types.Scored, error) {
	fn, err := method.Func()
	if err != nil {
		return nil, err
	}
	if len(m) == 0 {
		return []types.Scored{}, nil
	}
	row, ok := m[entity]
	if !ok {
		return nil, unknownEntity(entity)
	}
	if n <= 0 {
		n = DefaultMatches
	}

	scores := make([]types.Scored, 0, len(m)-1)
	for other, otherRow := range m {
		if other == entity {
			continue
		}
		scores = append(scores, types.Scored{Score: fn(row, otherRow), ID: other})
	}

	sortScored(scores)
	if len(scores) > n {
		scores = scores[:n]
	}
	return scores, nil
}

// Recommend predicts ratings for the items entity has not rated, best first.
//
// Every other entity with a positive similarity contributes its ratings
// weighted by that similarity; each prediction is the weighted sum divided by
// the total weight of the entities that rated the item. Items the target rated
// with 0 are still eligible. Equal scores are ordered by descending item
// identifier.
func Recommend(m types.Ratings, entity string, method similarity.Method) ([]types.Scored, error) {
	fn, err := method.Func()
	if err != nil {
		return nil, err
	}
	if len(m) == 0 {
		return []types.Scored{}, nil
	}
	row, ok := m[entity]
	if !ok {
		return nil, unknownEntity(entity)
	}

	weighted := make(map[string]float64)
	totals := make(map[string]float64)

	for _, other := range Entities(m) {
		if other == entity {
			continue
		}

		sim := fn(row, m[other])
		if sim <= 0 {
			continue
		}

		for item, rating := range m[other] {
			if seen, ok := row[item]; ok && seen != 0 {
				continue
			}
			weighted[item] += sim * rating
			totals[item] += sim
		}
	}

	rankings := make([]types.Scored, 0, len(weighted))
	for item, sum := range weighted {
		rankings = append(rankings, types.Scored{Score: sum / totals[item], ID: item})
	}

	sortScored(rankings)
	return rankings, nil
}

// Transpose swaps the roles of entities and items, so that the functions of
// this package compute item-based similarities and recommendations. The input
// is left untouched.
func Transpose(m types.Ratings) types.Ratings {
	out := make(types.Ratings)
	for entity, row := range m {
		for item, rating := range row {
			col, ok := out[item]
			if !ok {
				col = make(map[string]float64)
				out[item] = col
			}
			col[entity] = rating
		}
	}
	return out
}

// Entities returns the entity identifiers of m in ascending order.
func Entities(m types.Ratings) []string {
	ids := make([]string, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// sortScored orders by descending score, then descending identifier.
func sortScored(s []types.Scored) {
	sort.Slice(s, func(i, j int) bool {
		if s[i].Score != s[j].Score {
			return s[i].Score > s[j].Score
		}
		return s[i].ID > s[j].ID
	})
}
