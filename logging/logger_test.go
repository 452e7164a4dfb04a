package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
)

func TestNew(t *testing.T) {
	t.Run("JSONOutput", func(t *testing.T) {
		var buf bytes.Buffer
		logger := New(Config{Level: "debug", Format: "json", Output: &buf})

		logger.Debug().Str("entity", "Toby").Msg("recommending")

		var line map[string]any
		if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
			t.Fatalf("Expected JSON log line, got %q: %v", buf.String(), err)
		}
		if line["entity"] != "Toby" {
			t.Errorf("Expected entity field, got %v", line)
		}
		if line["message"] != "recommending" {
			t.Errorf("Expected message field, got %v", line)
		}
	})

	t.Run("LevelFiltering", func(t *testing.T) {
		var buf bytes.Buffer
		logger := New(Config{Level: "warn", Output: &buf})

		logger.Info().Msg("hidden")
		if buf.Len() != 0 {
			t.Errorf("Expected info to be filtered, got %q", buf.String())
		}

		logger.Warn().Msg("shown")
		if !strings.Contains(buf.String(), "shown") {
			t.Errorf("Expected warn line, got %q", buf.String())
		}
	})

	t.Run("ConsoleOutput", func(t *testing.T) {
		var buf bytes.Buffer
		logger := New(Config{Format: "console", Output: &buf})

		logger.Info().Msg("hello")
		if !strings.Contains(buf.String(), "hello") {
			t.Errorf("Expected console line, got %q", buf.String())
		}
	})
}

func TestParseLevel(t *testing.T) {
	cases := map[string]zerolog.Level{
		"trace":    zerolog.TraceLevel,
		"DEBUG":    zerolog.DebugLevel,
		"warning":  zerolog.WarnLevel,
		"error":    zerolog.ErrorLevel,
		"disabled": zerolog.Disabled,
		"bogus":    zerolog.InfoLevel,
	}
	for name, want := range cases {
		if got := ParseLevel(name); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", name, got, want)
		}
	}
}
