// Package config loads the tastematch CLI configuration.
//
// Values are layered: struct defaults, then an optional YAML file, then
// TASTEMATCH_* environment variables. The result translates into engine
// options and a logging config.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/botirk38/tastematch/logging"
	"github.com/botirk38/tastematch/options"
	"github.com/botirk38/tastematch/similarity"
	"github.com/botirk38/tastematch/types"
)

// BackendNone disables result caching.
const BackendNone = "none"

var (
	ErrInvalidBackend  = errors.New("invalid cache backend")
	ErrInvalidMatches  = errors.New("engine.matches must be positive")
	ErrInvalidCapacity = errors.New("cache.capacity must be non-negative")
	ErrUnsupportedTTL  = errors.New("cache.ttl is only supported by the lru and redis backends")
)

// Config holds all CLI settings.
type Config struct {
	Engine  EngineConfig  `koanf:"engine"`
	Cache   CacheConfig   `koanf:"cache"`
	Logging LoggingConfig `koanf:"logging"`
	Data    DataConfig    `koanf:"data"`
}

// EngineConfig selects the similarity method and default match count.
type EngineConfig struct {
	Method  string `koanf:"method"`
	Matches int    `koanf:"matches"`
}

// CacheConfig selects the result cache backend.
type CacheConfig struct {
	// Backend is one of none, lru, fifo, lfu, redis, mongo.
	Backend string `koanf:"backend"`
	// Capacity bounds the in-memory backends. lru needs a positive value;
	// fifo and lfu treat 0 as unbounded.
	Capacity int `koanf:"capacity"`
	// TTL expires cached results. Only lru and redis support it; 0 keeps
	// entries until evicted.
	TTL time.Duration `koanf:"ttl"`

	RedisURL string `koanf:"redis_url"`
	RedisDB  int    `koanf:"redis_db"`

	MongoURI        string `koanf:"mongo_uri"`
	MongoDatabase   string `koanf:"mongo_database"`
	MongoCollection string `koanf:"mongo_collection"`
}

// LoggingConfig mirrors logging.Config for file and env loading.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// DataConfig points at a JSON ratings file. Empty uses the built-in critics sample.
type DataConfig struct {
	Path string `koanf:"path"`
}

// Validate checks enumerated and numeric settings.
func (c *Config) Validate() error {
	if _, err := similarity.ParseMethod(c.Engine.Method); err != nil {
		return fmt.Errorf("engine.method: %w", err)
	}
	if c.Engine.Matches <= 0 {
		return ErrInvalidMatches
	}

	if c.Cache.Capacity < 0 {
		return ErrInvalidCapacity
	}

	backend := strings.ToLower(c.Cache.Backend)
	switch backend {
	case BackendNone, string(types.BackendFIFO), string(types.BackendLFU):
	case string(types.BackendLRU):
		if c.Cache.Capacity == 0 {
			return fmt.Errorf("%w: lru needs a positive capacity", ErrInvalidCapacity)
		}
	case string(types.BackendRedis):
		if c.Cache.RedisURL == "" {
			return fmt.Errorf("%w: cache.redis_url is required for redis", ErrInvalidBackend)
		}
	case string(types.BackendMongo):
		if c.Cache.MongoURI == "" {
			return fmt.Errorf("%w: cache.mongo_uri is required for mongo", ErrInvalidBackend)
		}
	default:
		return fmt.Errorf("%w: %q", ErrInvalidBackend, c.Cache.Backend)
	}

	if c.Cache.TTL < 0 {
		return fmt.Errorf("%w: negative ttl", ErrUnsupportedTTL)
	}
	if c.Cache.TTL > 0 && backend != string(types.BackendLRU) && backend != string(types.BackendRedis) {
		return fmt.Errorf("%w: got %s", ErrUnsupportedTTL, backend)
	}
	return nil
}

// Method returns the parsed similarity method.
func (c *Config) Method() similarity.Method {
	m, err := similarity.ParseMethod(c.Engine.Method)
	if err != nil {
		return similarity.Pearson
	}
	return m
}

// EngineOptions translates the configuration into engine options.
func (c *Config) EngineOptions() []options.Option {
	opts := []options.Option{
		options.WithMethod(c.Method()),
		options.WithMatchCount(c.Engine.Matches),
	}

	backend := types.BackendType(strings.ToLower(c.Cache.Backend))
	switch backend {
	case BackendNone:
	case types.BackendRedis:
		opts = append(opts, options.WithBackend(backend, types.BackendConfig{
			ConnectionString: c.Cache.RedisURL,
			Database:         c.Cache.RedisDB,
			TTL:              c.Cache.TTL,
		}))
	case types.BackendMongo:
		opts = append(opts, options.WithMongoBackend(c.Cache.MongoURI, c.Cache.MongoDatabase, c.Cache.MongoCollection))
	default:
		opts = append(opts, options.WithBackend(backend, types.BackendConfig{
			Capacity: c.Cache.Capacity,
			TTL:      c.Cache.TTL,
		}))
	}

	return opts
}

// LoggerConfig returns the logging configuration, writing to stderr.
func (c *Config) LoggerConfig() logging.Config {
	cfg := logging.DefaultConfig()
	cfg.Level = c.Logging.Level
	cfg.Format = c.Logging.Format
	cfg.Caller = c.Logging.Caller
	cfg.Output = os.Stderr
	return cfg
}
