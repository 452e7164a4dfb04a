package options

import (
	"context"
	"errors"
	"testing"

	"github.com/botirk38/tastematch/similarity"
	"github.com/botirk38/tastematch/types"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
)

func TestConfigCreation(t *testing.T) {
	t.Run("DefaultConfig", func(t *testing.T) {
		cfg := NewConfig()
		if cfg.Method != similarity.Pearson {
			t.Errorf("Expected pearson by default, got %s", cfg.Method)
		}
		if cfg.Matches != DefaultMatchCount {
			t.Errorf("Expected %d matches, got %d", DefaultMatchCount, cfg.Matches)
		}
		if cfg.Backend != nil {
			t.Error("Expected backend to be nil initially")
		}
		if cfg.Metrics != nil {
			t.Error("Expected metrics to be nil initially")
		}
		if err := cfg.Validate(); err != nil {
			t.Errorf("Expected default config to be valid, got: %v", err)
		}
	})

	t.Run("Validation", func(t *testing.T) {
		cfg := NewConfig()
		cfg.Method = similarity.Method(99)
		if err := cfg.Validate(); !errors.Is(err, similarity.ErrUnknownMethod) {
			t.Errorf("Expected ErrUnknownMethod, got %v", err)
		}

		cfg = NewConfig()
		cfg.Matches = 0
		if err := cfg.Validate(); err == nil {
			t.Error("Expected validation error for zero matches")
		}
	})

	t.Run("ApplyStopsAtFirstError", func(t *testing.T) {
		cfg := NewConfig()
		err := cfg.Apply(
			WithMatchCount(-1),
			WithMethod(similarity.Euclidean),
		)
		if err == nil {
			t.Fatal("Expected error from WithMatchCount")
		}
		if cfg.Method != similarity.Pearson {
			t.Error("Expected later options to be skipped")
		}
	})
}

func TestBackendOptions(t *testing.T) {
	t.Run("LRUBackend", func(t *testing.T) {
		cfg := NewConfig()
		if err := cfg.Apply(WithLRUBackend(100)); err != nil {
			t.Fatalf("Failed to set LRU backend: %v", err)
		}
		if cfg.Backend == nil {
			t.Error("Expected backend to be set")
		}
	})

	t.Run("LRUBackendZeroCapacity", func(t *testing.T) {
		cfg := NewConfig()
		if err := cfg.Apply(WithLRUBackend(0)); err == nil {
			t.Error("Expected error for zero LRU capacity")
		}
	})

	t.Run("FIFOBackend", func(t *testing.T) {
		cfg := NewConfig()
		if err := cfg.Apply(WithFIFOBackend(100)); err != nil {
			t.Fatalf("Failed to set FIFO backend: %v", err)
		}
		if cfg.Backend == nil {
			t.Error("Expected backend to be set")
		}
	})

	t.Run("LFUBackend", func(t *testing.T) {
		cfg := NewConfig()
		if err := cfg.Apply(WithLFUBackend(100)); err != nil {
			t.Fatalf("Failed to set LFU backend: %v", err)
		}
		if cfg.Backend == nil {
			t.Error("Expected backend to be set")
		}
	})

	t.Run("UnsupportedBackend", func(t *testing.T) {
		cfg := NewConfig()
		if err := cfg.Apply(WithBackend(types.BackendType("memcached"), types.BackendConfig{})); err == nil {
			t.Error("Expected error for unsupported backend")
		}
	})

	t.Run("CustomBackend", func(t *testing.T) {
		cfg := NewConfig()
		backend := &mockBackend{}

		if err := cfg.Apply(WithCustomBackend(backend)); err != nil {
			t.Fatalf("Failed to set custom backend: %v", err)
		}
		if cfg.Backend != backend {
			t.Error("Expected custom backend to be set")
		}
	})

	t.Run("NilBackend", func(t *testing.T) {
		cfg := NewConfig()
		if err := cfg.Apply(WithCustomBackend(nil)); err == nil {
			t.Error("Expected error for nil backend")
		}
	})
}

func TestEngineOptions(t *testing.T) {
	t.Run("Method", func(t *testing.T) {
		cfg := NewConfig()
		if err := cfg.Apply(WithMethod(similarity.Manhattan)); err != nil {
			t.Fatalf("Failed to set method: %v", err)
		}
		if cfg.Method != similarity.Manhattan {
			t.Errorf("Expected manhattan, got %s", cfg.Method)
		}

		if err := cfg.Apply(WithMethod(similarity.Method(-1))); err == nil {
			t.Error("Expected error for invalid method")
		}
	})

	t.Run("MatchCount", func(t *testing.T) {
		cfg := NewConfig()
		if err := cfg.Apply(WithMatchCount(3)); err != nil {
			t.Fatalf("Failed to set match count: %v", err)
		}
		if cfg.Matches != 3 {
			t.Errorf("Expected 3, got %d", cfg.Matches)
		}
	})

	t.Run("Logger", func(t *testing.T) {
		cfg := NewConfig()
		logger := zerolog.New(nil).With().Str("component", "test").Logger()
		if err := cfg.Apply(WithLogger(logger)); err != nil {
			t.Fatalf("Failed to set logger: %v", err)
		}
	})

	t.Run("Metrics", func(t *testing.T) {
		cfg := NewConfig()
		if err := cfg.Apply(WithMetrics(prometheus.NewRegistry())); err != nil {
			t.Fatalf("Failed to set metrics: %v", err)
		}
		if cfg.Metrics == nil {
			t.Error("Expected metrics recorder to be set")
		}

		if err := cfg.Apply(WithMetrics(nil)); err == nil {
			t.Error("Expected error for nil registerer")
		}
		if err := cfg.Apply(WithRecorder(nil)); err == nil {
			t.Error("Expected error for nil recorder")
		}
	})
}

// Mock backend for testing
type mockBackend struct{}

func (m *mockBackend) Set(ctx context.Context, key string, value []types.Scored) error {
	return nil
}

func (m *mockBackend) Get(ctx context.Context, key string) ([]types.Scored, bool, error) {
	return nil, false, nil
}

func (m *mockBackend) Delete(ctx context.Context, key string) error {
	return nil
}

func (m *mockBackend) Contains(ctx context.Context, key string) (bool, error) {
	return false, nil
}

func (m *mockBackend) Keys(ctx context.Context) ([]string, error) {
	return nil, nil
}

func (m *mockBackend) Len(ctx context.Context) (int, error) {
	return 0, nil
}

func (m *mockBackend) Flush(ctx context.Context) error {
	return nil
}

func (m *mockBackend) Close() error {
	return nil
}
