package dataset

import (
	"fmt"
	"io"
	"os"

	"github.com/botirk38/tastematch/types"
	"github.com/goccy/go-json"
)

// Load decodes a ratings matrix from a JSON object of the form
// {"entity": {"item": rating, ...}, ...}.
func Load(r io.Reader) (types.Ratings, error) {
	var m types.Ratings
	if err := json.NewDecoder(r).Decode(&m); err != nil {
		return nil, fmt.Errorf("failed to decode ratings: %w", err)
	}
	if m == nil {
		m = types.Ratings{}
	}
	return m, nil
}

// LoadFile reads a JSON ratings matrix from path.
func LoadFile(path string) (types.Ratings, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open ratings file: %w", err)
	}
	defer func() { _ = f.Close() }()

	return Load(f)
}
