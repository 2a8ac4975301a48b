package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/lixenwraith/maze-echo/audio"
)

// Config holds the application's configuration values.
type Config struct {
	PlayerName string // Name recorded in session stats
	Debug      bool   // Write logs to logs/ instead of discarding them

	Seed       int64 // Maze and track rng seed, 0 = time-seeded
	StartScore int   // Score of the first level
	MapPenalty bool  // Opening the full map costs points

	Audio *audio.AudioConfig
}

// Load reads .env files (default ".env") into the environment without
// overriding variables already set, then builds the configuration.
// Missing files are not an error.
func Load(files ...string) Config {
	if err := godotenv.Load(files...); err != nil {
		log.Printf("[APP] [INFO] .env file not found or could not be loaded: %v", err)
	}

	return Config{
		PlayerName: getEnv("MAZE_ECHO_PLAYER", "player"),
		Debug:      getEnvAsBool("MAZE_ECHO_DEBUG", false),

		Seed:       int64(getEnvAsInt("MAZE_ECHO_SEED", 0)),
		StartScore: max(getEnvAsInt("MAZE_ECHO_START_SCORE", 0), 0),
		MapPenalty: getEnvAsBool("MAZE_ECHO_MAP_PENALTY", true),

		Audio: audio.LoadAudioConfig(),
	}
}

// getEnv retrieves an environment variable or returns fallback when unset or empty.
func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

// getEnvAsInt retrieves an integer environment variable, logging and falling back on parse errors.
func getEnvAsInt(key string, fallback int) int {
	valueStr, ok := os.LookupEnv(key)
	if !ok || valueStr == "" {
		return fallback
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("[APP] [WARN] Environment variable %s must be an integer: %v", key, err)
		return fallback
	}
	return value
}

// getEnvAsBool retrieves a boolean environment variable, logging and falling back on parse errors.
func getEnvAsBool(key string, fallback bool) bool {
	valueStr, ok := os.LookupEnv(key)
	if !ok || valueStr == "" {
		return fallback
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		log.Printf("[APP] [WARN] Environment variable %s must be a boolean: %v", key, err)
		return fallback
	}
	return value
}
