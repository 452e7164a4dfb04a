package inmemory

import "errors"

// ErrNegativeCapacity is returned when a backend is created with a capacity below zero.
var ErrNegativeCapacity = errors.New("capacity must be non-negative")
