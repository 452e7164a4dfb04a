package inmemory

import (
	"context"
	"sync"
)

// FIFOBackend keeps computed results with first-in, first-out eviction.
type FIFOBackend[K comparable, V any] struct {
	mu       *sync.RWMutex
	entries  map[K]V
	queue    []K
	capacity int
}

// NewFIFOBackend creates a new FIFO backend. A capacity of zero means unbounded.
func NewFIFOBackend[K comparable, V any](capacity int) (*FIFOBackend[K, V], error) {
	if capacity < 0 {
		return nil, ErrNegativeCapacity
	}
	return &FIFOBackend[K, V]{
		mu:       &sync.RWMutex{},
		entries:  make(map[K]V),
		queue:    make([]K, 0, capacity),
		capacity: capacity,
	}, nil
}

// Set stores a value in the FIFO cache
func (b *FIFOBackend[K, V]) Set(ctx context.Context, key K, value V) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	// Updating an existing key keeps its place in the queue
	if _, exists := b.entries[key]; exists {
		b.entries[key] = value
		return nil
	}

	if len(b.entries) >= b.capacity && b.capacity > 0 {
		oldestKey := b.queue[0]
		b.queue = b.queue[1:]
		delete(b.entries, oldestKey)
	}

	b.entries[key] = value
	b.queue = append(b.queue, key)
	return nil
}

// Get retrieves a value from the FIFO cache
func (b *FIFOBackend[K, V]) Get(ctx context.Context, key K) (V, bool, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	value, ok := b.entries[key]
	return value, ok, nil
}

// Delete removes a value from the FIFO cache
func (b *FIFOBackend[K, V]) Delete(ctx context.Context, key K) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, exists := b.entries[key]; !exists {
		return nil
	}

	delete(b.entries, key)
	for i, qKey := range b.queue {
		if qKey == key {
			b.queue = append(b.queue[:i], b.queue[i+1:]...)
			break
		}
	}
	return nil
}

// Contains checks if a key exists in the FIFO cache
func (b *FIFOBackend[K, V]) Contains(ctx context.Context, key K) (bool, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	_, exists := b.entries[key]
	return exists, nil
}

// Flush clears all entries from the FIFO cache
func (b *FIFOBackend[K, V]) Flush(ctx context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.entries = make(map[K]V)
	b.queue = make([]K, 0, b.capacity)
	return nil
}

// Len returns the number of entries in the FIFO cache
func (b *FIFOBackend[K, V]) Len(ctx context.Context) (int, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return len(b.entries), nil
}

// Keys returns the cached keys in insertion order
func (b *FIFOBackend[K, V]) Keys(ctx context.Context) ([]K, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	keys := make([]K, len(b.queue))
	copy(keys, b.queue)
	return keys, nil
}

// Close closes the FIFO backend (no-op for in-memory)
func (b *FIFOBackend[K, V]) Close() error {
	return nil
}
