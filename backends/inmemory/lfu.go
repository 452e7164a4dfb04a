package inmemory

import (
	"context"
	"sync"
)

// lfuEntry wraps a value with frequency tracking. seq orders entries by
// insertion so that eviction among equally frequent entries is deterministic.
type lfuEntry[V any] struct {
	value     V
	frequency int
	seq       uint64
}

// LFUBackend keeps computed results with least-frequently-used eviction.
type LFUBackend[K comparable, V any] struct {
	mu       *sync.Mutex
	entries  map[K]*lfuEntry[V]
	capacity int
	nextSeq  uint64
}

// NewLFUBackend creates a new LFU backend. A capacity of zero means unbounded.
func NewLFUBackend[K comparable, V any](capacity int) (*LFUBackend[K, V], error) {
	if capacity < 0 {
		return nil, ErrNegativeCapacity
	}
	return &LFUBackend[K, V]{
		mu:       &sync.Mutex{},
		entries:  make(map[K]*lfuEntry[V]),
		capacity: capacity,
	}, nil
}

// Set stores a value in the LFU cache
func (b *LFUBackend[K, V]) Set(ctx context.Context, key K, value V) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if existing, exists := b.entries[key]; exists {
		existing.value = value
		existing.frequency++
		return nil
	}

	if len(b.entries) >= b.capacity && b.capacity > 0 {
		b.evictLFU()
	}

	b.nextSeq++
	b.entries[key] = &lfuEntry[V]{
		value:     value,
		frequency: 1,
		seq:       b.nextSeq,
	}
	return nil
}

// evictLFU removes the least frequently used entry, oldest first on ties.
func (b *LFUBackend[K, V]) evictLFU() {
	var victim K
	var found *lfuEntry[V]

	for key, entry := range b.entries {
		if found == nil ||
			entry.frequency < found.frequency ||
			(entry.frequency == found.frequency && entry.seq < found.seq) {
			victim = key
			found = entry
		}
	}

	if found != nil {
		delete(b.entries, victim)
	}
}

// Get retrieves a value from the LFU cache and increments its frequency
func (b *LFUBackend[K, V]) Get(ctx context.Context, key K) (V, bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if entry, ok := b.entries[key]; ok {
		entry.frequency++
		return entry.value, true, nil
	}
	var zero V
	return zero, false, nil
}

// Delete removes a value from the LFU cache
func (b *LFUBackend[K, V]) Delete(ctx context.Context, key K) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	delete(b.entries, key)
	return nil
}

// Contains checks if a key exists in the LFU cache (without incrementing frequency)
func (b *LFUBackend[K, V]) Contains(ctx context.Context, key K) (bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	_, exists := b.entries[key]
	return exists, nil
}

// Flush clears all entries from the LFU cache
func (b *LFUBackend[K, V]) Flush(ctx context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.entries = make(map[K]*lfuEntry[V])
	return nil
}

// Len returns the number of entries in the LFU cache
func (b *LFUBackend[K, V]) Len(ctx context.Context) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	return len(b.entries), nil
}

// Keys returns all keys in the LFU cache
func (b *LFUBackend[K, V]) Keys(ctx context.Context) ([]K, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	keys := make([]K, 0, len(b.entries))
	for key := range b.entries {
		keys = append(keys, key)
	}
	return keys, nil
}

// Close closes the LFU backend (no-op for in-memory)
func (b *LFUBackend[K, V]) Close() error {
	return nil
}
