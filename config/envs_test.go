package config

import (
	"os"
	"path/filepath"
	"testing"
)

func unsetAll(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"MAZE_ECHO_PLAYER", "MAZE_ECHO_DEBUG", "MAZE_ECHO_SEED",
		"MAZE_ECHO_START_SCORE", "MAZE_ECHO_MAP_PENALTY", "MAZE_ECHO_MAX_VOLUME",
	} {
		// Register restore, then clear for this test
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

// TestLoadDefaults verifies defaults when no file or variables exist
func TestLoadDefaults(t *testing.T) {
	unsetAll(t)

	cfg := Load(filepath.Join(t.TempDir(), "missing.env"))

	if cfg.PlayerName != "player" || cfg.Debug || cfg.Seed != 0 || cfg.StartScore != 0 || !cfg.MapPenalty {
		t.Errorf("Unexpected defaults: %+v", cfg)
	}
	if cfg.Audio == nil || cfg.Audio.MaxVolume != 0.8 {
		t.Error("Expected default audio config")
	}
}

// TestLoadDotEnv verifies values are read from a .env file
func TestLoadDotEnv(t *testing.T) {
	unsetAll(t)

	path := filepath.Join(t.TempDir(), ".env")
	content := "MAZE_ECHO_PLAYER=theseus\nMAZE_ECHO_SEED=42\nMAZE_ECHO_START_SCORE=25\nMAZE_ECHO_MAP_PENALTY=false\nMAZE_ECHO_MAX_VOLUME=50\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg := Load(path)

	if cfg.PlayerName != "theseus" {
		t.Errorf("Expected player theseus, got %q", cfg.PlayerName)
	}
	if cfg.Seed != 42 || cfg.StartScore != 25 || cfg.MapPenalty {
		t.Errorf("Unexpected values: %+v", cfg)
	}
	if cfg.Audio.MaxVolume != 0.5 {
		t.Errorf("Expected audio max volume 0.5 from file, got %f", cfg.Audio.MaxVolume)
	}
}

// TestEnvironmentOverridesFile verifies existing variables win over the file
func TestEnvironmentOverridesFile(t *testing.T) {
	unsetAll(t)
	t.Setenv("MAZE_ECHO_SEED", "7")

	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte("MAZE_ECHO_SEED=99\n"), 0644); err != nil {
		t.Fatal(err)
	}

	if cfg := Load(path); cfg.Seed != 7 {
		t.Errorf("Expected seed 7 from environment, got %d", cfg.Seed)
	}
}

// TestLoadInvalidValues verifies malformed values fall back
func TestLoadInvalidValues(t *testing.T) {
	unsetAll(t)
	t.Setenv("MAZE_ECHO_SEED", "abc")
	t.Setenv("MAZE_ECHO_START_SCORE", "-5")
	t.Setenv("MAZE_ECHO_DEBUG", "sometimes")

	cfg := Load(filepath.Join(t.TempDir(), "missing.env"))
	if cfg.Seed != 0 || cfg.StartScore != 0 || cfg.Debug {
		t.Errorf("Expected fallbacks, got %+v", cfg)
	}
}
