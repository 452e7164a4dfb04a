package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/botirk38/tastematch"
)

func TestRun(t *testing.T) {
	t.Setenv("TASTEMATCH_CONFIG", "")
	t.Setenv("TASTEMATCH_LOGGING_LEVEL", "disabled")

	t.Run("Report", func(t *testing.T) {
		var out bytes.Buffer
		if err := run([]string{"-entity", "Toby", "-n", "3"}, &out); err != nil {
			t.Fatalf("run failed: %v", err)
		}
		text := out.String()
		for _, want := range []string{"Closest to Toby (pearson)", "Lisa Rose", "Recommended for Toby", "The Night Listener", "3.3478"} {
			if !strings.Contains(text, want) {
				t.Errorf("Expected output to contain %q, got:\n%s", want, text)
			}
		}
		if strings.Contains(text, "Gene Seymour") {
			t.Errorf("Expected only 3 matches, got:\n%s", text)
		}
	})

	t.Run("Pair", func(t *testing.T) {
		var out bytes.Buffer
		err := run([]string{"-entity", "Lisa Rose", "-other", "Gene Seymour"}, &out)
		if err != nil {
			t.Fatalf("run failed: %v", err)
		}
		if !strings.Contains(out.String(), "0.3961") {
			t.Errorf("Unexpected output:\n%s", out.String())
		}
	})

	t.Run("ItemBased", func(t *testing.T) {
		var out bytes.Buffer
		err := run([]string{"-items", "-entity", "Just My Luck", "-method", "pearson"}, &out)
		if err != nil {
			t.Fatalf("run failed: %v", err)
		}
		if !strings.Contains(out.String(), "Michael Phillips") {
			t.Errorf("Unexpected output:\n%s", out.String())
		}
	})

	t.Run("ListEntities", func(t *testing.T) {
		var out bytes.Buffer
		if err := run(nil, &out); err != nil {
			t.Fatalf("run failed: %v", err)
		}
		lines := strings.Split(strings.TrimSpace(out.String()), "\n")
		if len(lines) != 7 || lines[0] != "Claudia Puig" {
			t.Errorf("Unexpected entity list: %v", lines)
		}
	})

	t.Run("DataFile", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "ratings.json")
		data := `{"ann": {"a": 5, "b": 3}, "bob": {"a": 5, "b": 3, "c": 4}}`
		if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
			t.Fatalf("Failed to write data: %v", err)
		}

		var out bytes.Buffer
		if err := run([]string{"-data", path, "-method", "euclidean", "-entity", "ann"}, &out); err != nil {
			t.Fatalf("run failed: %v", err)
		}
		if !strings.Contains(out.String(), "c") || !strings.Contains(out.String(), "4.0000") {
			t.Errorf("Unexpected output:\n%s", out.String())
		}
	})

	t.Run("UnknownEntity", func(t *testing.T) {
		var out bytes.Buffer
		err := run([]string{"-entity", "Nobody"}, &out)
		if !errors.Is(err, tastematch.ErrUnknownEntity) {
			t.Errorf("Expected ErrUnknownEntity, got %v", err)
		}
	})

	t.Run("BadMethod", func(t *testing.T) {
		var out bytes.Buffer
		if err := run([]string{"-entity", "Toby", "-method", "jaccard"}, &out); err == nil {
			t.Error("Expected error for unknown method")
		}
	})
}
