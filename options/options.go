// Package options provides functional options for configuring Engine instances.
package options

import (
	"errors"
	"fmt"

	"github.com/botirk38/tastematch/backends"
	"github.com/botirk38/tastematch/metrics"
	"github.com/botirk38/tastematch/similarity"
	"github.com/botirk38/tastematch/types"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
)

// DefaultMatchCount is the number of matches returned when no count is given.
const DefaultMatchCount = 5

// Option represents a configuration option for an Engine
type Option func(*Config) error

// Config holds the configuration for building an Engine
type Config struct {
	// Backend caches computed match and recommendation lists. Nil disables caching.
	Backend types.CacheBackend[string, []types.Scored]
	Method  similarity.Method
	// Matches is the default number of results for TopMatches.
	Matches int
	Logger  zerolog.Logger
	Metrics *metrics.Recorder
}

// NewConfig creates a new configuration with default values
func NewConfig() *Config {
	return &Config{
		Method:  similarity.Pearson,
		Matches: DefaultMatchCount,
		Logger:  zerolog.Nop(),
	}
}

// Apply applies all the given options to the config
func (c *Config) Apply(opts ...Option) error {
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return err
		}
	}
	return nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if !c.Method.Valid() {
		return fmt.Errorf("%w: %s", similarity.ErrUnknownMethod, c.Method)
	}
	if c.Matches <= 0 {
		return errors.New("match count must be positive")
	}
	return nil
}

// WithLRUBackend caches results in memory with LRU eviction
func WithLRUBackend(capacity int) Option {
	return withBackend(types.BackendLRU, types.BackendConfig{Capacity: capacity})
}

// WithFIFOBackend caches results in memory with FIFO eviction
func WithFIFOBackend(capacity int) Option {
	return withBackend(types.BackendFIFO, types.BackendConfig{Capacity: capacity})
}

// WithLFUBackend caches results in memory with LFU eviction
func WithLFUBackend(capacity int) Option {
	return withBackend(types.BackendLFU, types.BackendConfig{Capacity: capacity})
}

// WithRedisBackend caches results in Redis
func WithRedisBackend(addr string, db int) Option {
	return withBackend(types.BackendRedis, types.BackendConfig{
		ConnectionString: addr,
		Database:         db,
	})
}

// WithMongoBackend caches results in a MongoDB collection
func WithMongoBackend(uri, database, collection string) Option {
	return withBackend(types.BackendMongo, types.BackendConfig{
		ConnectionString: uri,
		Options: map[string]any{
			"database":   database,
			"collection": collection,
		},
	})
}

// WithBackend builds a backend of any supported type from a raw config
func WithBackend(backendType types.BackendType, config types.BackendConfig) Option {
	return withBackend(backendType, config)
}

func withBackend(backendType types.BackendType, config types.BackendConfig) Option {
	return func(cfg *Config) error {
		factory := &backends.BackendFactory[string, []types.Scored]{}
		backend, err := factory.NewBackend(backendType, config)
		if err != nil {
			return err
		}
		cfg.Backend = backend
		return nil
	}
}

// WithCustomBackend allows using a pre-configured backend
func WithCustomBackend(backend types.CacheBackend[string, []types.Scored]) Option {
	return func(cfg *Config) error {
		if backend == nil {
			return errors.New("backend cannot be nil")
		}
		cfg.Backend = backend
		return nil
	}
}

// WithMethod sets the similarity method
func WithMethod(method similarity.Method) Option {
	return func(cfg *Config) error {
		if !method.Valid() {
			return fmt.Errorf("%w: %s", similarity.ErrUnknownMethod, method)
		}
		cfg.Method = method
		return nil
	}
}

// WithMatchCount sets how many matches TopMatches returns by default
func WithMatchCount(n int) Option {
	return func(cfg *Config) error {
		if n <= 0 {
			return errors.New("match count must be positive")
		}
		cfg.Matches = n
		return nil
	}
}

// WithLogger sets the logger
func WithLogger(logger zerolog.Logger) Option {
	return func(cfg *Config) error {
		cfg.Logger = logger
		return nil
	}
}

// WithMetrics registers the engine collectors with reg
func WithMetrics(reg prometheus.Registerer) Option {
	return func(cfg *Config) error {
		if reg == nil {
			return errors.New("registerer cannot be nil")
		}
		cfg.Metrics = metrics.NewRecorder(reg)
		return nil
	}
}

// WithRecorder shares an existing metrics recorder
func WithRecorder(recorder *metrics.Recorder) Option {
	return func(cfg *Config) error {
		if recorder == nil {
			return errors.New("recorder cannot be nil")
		}
		cfg.Metrics = recorder
		return nil
	}
}
