package tastematch

import (
	"errors"
	"fmt"
)

// ErrUnknownEntity indicates that a requested identifier is not a key of the
// ratings matrix.
var ErrUnknownEntity = errors.New("unknown entity")

func unknownEntity(id string) error {
	return fmt.Errorf("%w: %q", ErrUnknownEntity, id)
}
