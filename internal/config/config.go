// Package config provides centralized configuration management.
// This is the SINGLE SOURCE OF TRUTH for all simulation and server
// settings. Environment variables override the defaults.
package config

import (
	"os"
	"strconv"
)

// =============================================================================
// SIMULATION CONFIGURATION
// =============================================================================

// GameConfig holds the simulation core settings.
type GameConfig struct {
	TickRate    int     // Simulation ticks per second
	ArenaRadius float64 // Playable circle radius in world units
	Seed        int64   // RNG seed for deterministic replay; 0 = time-based
}

// DefaultGame returns the default simulation configuration.
func DefaultGame() GameConfig {
	return GameConfig{
		TickRate:    30,
		ArenaRadius: 40.0,
		Seed:        0,
	}
}

// GameFromEnv returns simulation configuration with environment
// variable overrides.
func GameFromEnv() GameConfig {
	cfg := DefaultGame()

	if tr := getEnvInt("TICK_RATE", 0); tr > 0 {
		cfg.TickRate = tr
	}
	if r := getEnvFloat("ARENA_RADIUS", 0); r > 0 {
		cfg.ArenaRadius = r
	}
	if s := getEnvInt64("RNG_SEED", 0); s != 0 {
		cfg.Seed = s
	}

	return cfg
}

// =============================================================================
// WAVE TUNING
// =============================================================================

// WaveConfig holds wave-progression tuning. Mirrors the game package's
// scheduler knobs so operators can rebalance without a rebuild.
type WaveConfig struct {
	StartInterval    float64 // Seconds between spawns on wave 1
	MinInterval      float64 // Spawn interval floor
	IntervalDecay    float64 // Interval multiplier applied per wave
	StartMaxActive   int     // Concurrent enemy cap on wave 1
	MaxActiveCap     int     // Concurrent enemy ceiling
	SpawnInnerRadius float64 // Inner edge of the spawn ring
	SpawnBandWidth   float64 // Random extra spawn distance
}

// DefaultWave returns the default wave tuning.
func DefaultWave() WaveConfig {
	return WaveConfig{
		StartInterval:    2.0,
		MinInterval:      0.9,
		IntervalDecay:    0.92,
		StartMaxActive:   8,
		MaxActiveCap:     24,
		SpawnInnerRadius: 12.0,
		SpawnBandWidth:   8.0,
	}
}

// WaveFromEnv returns wave tuning with environment variable overrides.
func WaveFromEnv() WaveConfig {
	cfg := DefaultWave()

	if v := getEnvFloat("WAVE_START_INTERVAL", 0); v > 0 {
		cfg.StartInterval = v
	}
	if v := getEnvFloat("WAVE_MIN_INTERVAL", 0); v > 0 {
		cfg.MinInterval = v
	}
	if v := getEnvInt("WAVE_START_MAX_ACTIVE", 0); v > 0 {
		cfg.StartMaxActive = v
	}
	if v := getEnvInt("WAVE_MAX_ACTIVE_CAP", 0); v > 0 {
		cfg.MaxActiveCap = v
	}

	return cfg
}

// =============================================================================
// SERVER CONFIGURATION
// =============================================================================

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         int
	EventLogPath string
}

// DefaultServer returns the default server configuration.
func DefaultServer() ServerConfig {
	return ServerConfig{
		Port:         3000,
		EventLogPath: "events.jsonl",
	}
}

// ServerFromEnv returns server configuration with environment variable
// overrides.
func ServerFromEnv() ServerConfig {
	cfg := DefaultServer()

	if p := getEnvInt("PORT", 0); p > 0 {
		cfg.Port = p
	}
	if path := os.Getenv("EVENT_LOG_PATH"); path != "" {
		cfg.EventLogPath = path
	}

	return cfg
}

// =============================================================================
// COMPLETE APP CONFIGURATION
// =============================================================================

// AppConfig holds the complete application configuration.
type AppConfig struct {
	Game   GameConfig
	Wave   WaveConfig
	Server ServerConfig
}

// Load returns the complete configuration with environment overrides.
func Load() AppConfig {
	return AppConfig{
		Game:   GameFromEnv(),
		Wave:   WaveFromEnv(),
		Server: ServerFromEnv(),
	}
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

func getEnvInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvInt64(key string, defaultVal int64) int64 {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.ParseInt(v, 10, 64); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvFloat(key string, defaultVal float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return defaultVal
}
