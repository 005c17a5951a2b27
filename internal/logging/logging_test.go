package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewWithoutPathIsDisabled(t *testing.T) {
	logger, closer, err := New("", "debug")
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	defer closer.Close()
	if logger.GetLevel().String() != "disabled" {
		t.Fatalf("expected disabled logger, got %s", logger.GetLevel())
	}
}

func TestNewRejectsBadLevel(t *testing.T) {
	if _, _, err := New("", "loud"); err == nil {
		t.Fatalf("expected error for bad level")
	}
}

func TestNewWritesJSONLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "game.log")
	logger, closer, err := New(path, "info")
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	logger.Debug().Msg("hidden")
	logger.Info().Int("level_id", 2).Msg("session started")
	if err := closer.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	out := string(data)
	if strings.Contains(out, "hidden") {
		t.Fatalf("debug line should be filtered: %s", out)
	}
	if !strings.Contains(out, `"message":"session started"`) || !strings.Contains(out, `"level_id":2`) {
		t.Fatalf("unexpected log output: %s", out)
	}
}
