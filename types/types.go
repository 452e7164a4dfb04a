package types

import (
	"context"
	"time"
)

// Ratings is a sparse ratings matrix: entity -> item -> rating.
// An absent key means the entity has not rated the item.
type Ratings map[string]map[string]float64

// Scored pairs a score with the identifier it belongs to. Match lists carry
// entity identifiers, recommendation lists carry item identifiers.
type Scored struct {
	Score float64 `json:"score" bson:"score"`
	ID    string  `json:"id" bson:"id"`
}

// CacheBackend defines the interface for the stores that hold computed results.
// This allows for pluggable storage systems including in-memory, Redis and MongoDB.
type CacheBackend[K comparable, V any] interface {
	// Set stores a value in the cache
	Set(ctx context.Context, key K, value V) error

	// Get retrieves a value by key
	Get(ctx context.Context, key K) (V, bool, error)

	// Delete removes a value by key
	Delete(ctx context.Context, key K) error

	// Contains checks if a key exists without retrieving the value
	Contains(ctx context.Context, key K) (bool, error)

	// Flush clears all entries from the cache
	Flush(ctx context.Context) error

	// Len returns the number of entries in the cache
	Len(ctx context.Context) (int, error)

	// Keys returns all keys in the cache
	Keys(ctx context.Context) ([]K, error)

	// Close closes the backend and releases resources
	Close() error
}

// BackendConfig provides configuration options for backends
type BackendConfig struct {
	// For in-memory caches. LRU needs a positive capacity; FIFO and LFU
	// treat zero as unbounded.
	Capacity int

	// TTL expires entries after they were stored. Honoured by the LRU and
	// Redis backends; FIFO, LFU and MongoDB keep entries until evicted.
	TTL time.Duration

	// For Redis and MongoDB
	ConnectionString string
	Username         string
	Password         string
	Database         int

	// Additional options
	Options map[string]any
}

// BackendType represents the type of cache backend
type BackendType string

const (
	BackendLRU   BackendType = "lru"
	BackendFIFO  BackendType = "fifo"
	BackendLFU   BackendType = "lfu"
	BackendRedis BackendType = "redis"
	BackendMongo BackendType = "mongo"
)
