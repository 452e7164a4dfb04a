package similarity

import "errors"

// ErrUnknownMethod indicates a method value or name outside the supported set.
var ErrUnknownMethod = errors.New("unknown similarity method")
