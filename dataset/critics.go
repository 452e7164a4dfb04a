// Package dataset provides ratings matrices for the engine: the built-in
// critics sample and a JSON loader for user supplied data.
package dataset

import "github.com/botirk38/tastematch/types"

// critics holds movie critics and their ratings of a small set of films.
var critics = types.Ratings{
	"Lisa Rose": {
		"Lady in the Water":  2.5,
		"Snakes on a Plane":  3.5,
		"Just My Luck":       3.0,
		"Superman Returns":   3.5,
		"You, Me and Dupree": 2.5,
		"The Night Listener": 3.0,
	},
	"Gene Seymour": {
		"Lady in the Water":  3.0,
		"Snakes on a Plane":  3.5,
		"Just My Luck":       1.5,
		"Superman Returns":   5.0,
		"You, Me and Dupree": 3.5,
		"The Night Listener": 3.0,
	},
	"Michael Phillips": {
		"Lady in the Water":  2.5,
		"Snakes on a Plane":  3.0,
		"Superman Returns":   3.5,
		"The Night Listener": 4.0,
	},
	"Claudia Puig": {
		"Snakes on a Plane":  3.5,
		"Just My Luck":       3.0,
		"Superman Returns":   4.0,
		"You, Me and Dupree": 2.5,
		"The Night Listener": 4.5,
	},
	"Mick LaSalle": {
		"Lady in the Water":  3.0,
		"Snakes on a Plane":  4.0,
		"Just My Luck":       2.0,
		"Superman Returns":   3.0,
		"You, Me and Dupree": 2.0,
		"The Night Listener": 3.0,
	},
	"Jack Matthews": {
		"Lady in the Water":  3.0,
		"Snakes on a Plane":  4.0,
		"Superman Returns":   5.0,
		"You, Me and Dupree": 3.5,
		"The Night Listener": 3.0,
	},
	"Toby": {
		"Snakes on a Plane":  4.5,
		"Superman Returns":   4.0,
		"You, Me and Dupree": 1.0,
	},
}

// Critics returns a fresh copy of the sample critics matrix. Callers may
// modify the result freely.
func Critics() types.Ratings {
	return Clone(critics)
}

// Clone returns a deep copy of m.
func Clone(m types.Ratings) types.Ratings {
	out := make(types.Ratings, len(m))
	for entity, row := range m {
		copied := make(map[string]float64, len(row))
		for item, rating := range row {
			copied[item] = rating
		}
		out[entity] = copied
	}
	return out
}
