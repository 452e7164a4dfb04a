package inmemory

import (
	"context"
	"errors"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/hashicorp/golang-lru/v2/expirable"
)

// ErrNonPositiveCapacity is returned when an LRU backend is created without room for any entry.
var ErrNonPositiveCapacity = errors.New("lru capacity must be positive")

// lruCache is the method set shared by lru.Cache and expirable.LRU.
type lruCache[K comparable, V any] interface {
	Add(key K, value V) bool
	Get(key K) (V, bool)
	Remove(key K) bool
	Contains(key K) bool
	Purge()
	Len() int
	Keys() []K
}

// LRUBackend keeps computed results with least-recently-used eviction.
type LRUBackend[K comparable, V any] struct {
	mu    *sync.RWMutex
	cache lruCache[K, V]
}

// NewLRUBackend creates a new LRU backend holding at most capacity results.
func NewLRUBackend[K comparable, V any](capacity int) (*LRUBackend[K, V], error) {
	return NewExpirableLRUBackend[K, V](capacity, 0)
}

// NewExpirableLRUBackend creates an LRU backend whose entries also expire ttl
// after they were stored. A ttl of zero disables expiry.
func NewExpirableLRUBackend[K comparable, V any](capacity int, ttl time.Duration) (*LRUBackend[K, V], error) {
	if capacity <= 0 {
		return nil, ErrNonPositiveCapacity
	}

	var cache lruCache[K, V]
	if ttl > 0 {
		cache = expirable.NewLRU[K, V](capacity, nil, ttl)
	} else {
		c, err := lru.New[K, V](capacity)
		if err != nil {
			return nil, err
		}
		cache = c
	}

	return &LRUBackend[K, V]{
		mu:    &sync.RWMutex{},
		cache: cache,
	}, nil
}

// Set stores a value in the LRU cache
func (b *LRUBackend[K, V]) Set(ctx context.Context, key K, value V) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.cache.Add(key, value)
	return nil
}

// Get retrieves a value and marks it as recently used
func (b *LRUBackend[K, V]) Get(ctx context.Context, key K) (V, bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	value, ok := b.cache.Get(key)
	return value, ok, nil
}

// Delete removes a value from the LRU cache
func (b *LRUBackend[K, V]) Delete(ctx context.Context, key K) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.cache.Remove(key)
	return nil
}

// Contains checks for a key without updating recency
func (b *LRUBackend[K, V]) Contains(ctx context.Context, key K) (bool, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return b.cache.Contains(key), nil
}

// Flush clears all entries from the LRU cache
func (b *LRUBackend[K, V]) Flush(ctx context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.cache.Purge()
	return nil
}

// Len returns the number of entries in the LRU cache
func (b *LRUBackend[K, V]) Len(ctx context.Context) (int, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return b.cache.Len(), nil
}

// Keys returns the cached keys from oldest to newest
func (b *LRUBackend[K, V]) Keys(ctx context.Context) ([]K, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return b.cache.Keys(), nil
}

// Close closes the LRU backend (no-op for in-memory)
func (b *LRUBackend[K, V]) Close() error {
	return nil
}
