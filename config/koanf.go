package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

const (
	// EnvPrefix prefixes every environment override.
	EnvPrefix = "TASTEMATCH_"

	// ConfigPathEnvVar names the config file when no path is passed to Load.
	ConfigPathEnvVar = "TASTEMATCH_CONFIG"
)

// defaultConfig returns the values applied before file and env layers.
func defaultConfig() *Config {
	return &Config{
		Engine: EngineConfig{
			Method:  "pearson",
			Matches: 5,
		},
		Cache: CacheConfig{
			Backend:         "lru",
			Capacity:        128,
			TTL:             0, // no expiry
			MongoDatabase:   "tastematch",
			MongoCollection: "results",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Load builds the configuration with precedence ENV > file > defaults.
// path may be empty; then TASTEMATCH_CONFIG is consulted, and without it no
// file is read.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	// Layer 1: defaults
	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// Layer 2: config file (optional)
	if path == "" {
		path = os.Getenv(ConfigPathEnvVar)
	}
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	// Layer 3: environment
	// TASTEMATCH_CACHE_REDIS_URL -> cache.redis_url
	if err := k.Load(env.Provider(EnvPrefix, ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// envTransformFunc maps TASTEMATCH_<SECTION>_<KEY> to section.key. The
// config file variable and names without a section are skipped.
func envTransformFunc(key string) string {
	if key == ConfigPathEnvVar {
		return ""
	}

	key = strings.ToLower(strings.TrimPrefix(key, EnvPrefix))
	section, name, ok := strings.Cut(key, "_")
	if !ok || name == "" {
		return ""
	}
	return section + "." + name
}
