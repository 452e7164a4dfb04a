// Package similarity provides the metrics used to compare two entities of a
// ratings matrix. Every metric only looks at the items both entities rated.
package similarity

import (
	"fmt"
	"strings"
)

// Func computes similarity between two sparse rating rows (item -> rating).
// Higher values indicate greater similarity.
type Func func(a, b map[string]float64) float64

// Method selects a similarity metric.
type Method int

const (
	// Pearson is the correlation of the shared ratings, in [-1, 1].
	Pearson Method = iota
	// Euclidean is 1 / (1 + euclidean distance), in (0, 1].
	Euclidean
	// Cosine is the cosine of the angle between the shared ratings.
	Cosine
	// Manhattan is 1 / (1 + L1 distance), in (0, 1].
	Manhattan
)

var methodNames = map[Method]string{
	Pearson:   "pearson",
	Euclidean: "euclidean",
	Cosine:    "cosine",
	Manhattan: "manhattan",
}

// Methods lists every supported method in declaration order.
func Methods() []Method {
	return []Method{Pearson, Euclidean, Cosine, Manhattan}
}

// String returns the lower-case name of the method.
func (m Method) String() string {
	if name, ok := methodNames[m]; ok {
		return name
	}
	return fmt.Sprintf("method(%d)", int(m))
}

// Valid reports whether m is one of the declared methods.
func (m Method) Valid() bool {
	_, ok := methodNames[m]
	return ok
}

// Func returns the metric implementing m.
func (m Method) Func() (Func, error) {
	switch m {
	case Pearson:
		return PearsonSimilarity, nil
	case Euclidean:
		return EuclideanSimilarity, nil
	case Cosine:
		return CosineSimilarity, nil
	case Manhattan:
		return ManhattanSimilarity, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownMethod, m)
	}
}

// ParseMethod maps a method name such as "pearson" to its Method.
func ParseMethod(name string) (Method, error) {
	normalized := strings.ToLower(strings.TrimSpace(name))
	for m, n := range methodNames {
		if n == normalized {
			return m, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownMethod, name)
}

// MarshalText implements encoding.TextMarshaler.
func (m Method) MarshalText() ([]byte, error) {
	if !m.Valid() {
		return nil, fmt.Errorf("%w: %s", ErrUnknownMethod, m)
	}
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *Method) UnmarshalText(text []byte) error {
	parsed, err := ParseMethod(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
