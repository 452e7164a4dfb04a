package remote

import (
	"strconv"

	"github.com/goccy/go-json"
)

// decodeKey converts a stored key string back into K. String keys are quoted
// first; anything else (numbers, booleans) is decoded as a bare JSON literal.
func decodeKey[K comparable](raw string) (K, bool) {
	var key K
	if raw == "" {
		return key, false
	}
	if err := json.Unmarshal([]byte(strconv.Quote(raw)), &key); err == nil {
		return key, true
	}
	if err := json.Unmarshal([]byte(raw), &key); err == nil {
		return key, true
	}
	return key, false
}
