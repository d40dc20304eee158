package config

import (
	"log"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// Config holds all server settings in correct types
type Config struct {
	Port           string
	TempDir        string
	CleanupGrace   time.Duration
	JanitorSweep   time.Duration
	JanitorMaxAge  time.Duration
	YouTubeAPIKey  string
	AllowedOrigins string
}

// Load: The only way to get config in the app
func Load() *Config {
	cfg := &Config{
		Port:           getEnv("PORT", ":8080"),
		TempDir:        getEnv("TEMP_DIR", filepath.Join(os.TempDir(), "ytgrab")),
		CleanupGrace:   time.Duration(getEnvAsInt("CLEANUP_GRACE_SECONDS", 2)) * time.Second,
		JanitorSweep:   time.Duration(getEnvAsInt("JANITOR_SWEEP_MINUTES", 5)) * time.Minute,
		JanitorMaxAge:  time.Duration(getEnvAsInt("JANITOR_MAX_AGE_MINUTES", 60)) * time.Minute,
		YouTubeAPIKey:  getEnv("YOUTUBE_API_KEY", ""),
		AllowedOrigins: getEnv("ALLOWED_ORIGINS", "*"),
	}

	// 🛡️ Post-load Validation
	validate(cfg)

	return cfg
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	str := getEnv(key, "")
	if val, err := strconv.Atoi(str); err == nil {
		return val
	}
	return fallback
}

// validate ensures the server won't crash due to misconfiguration
func validate(cfg *Config) {
	if cfg.CleanupGrace < 0 {
		log.Println("⚠️ Warning: CLEANUP_GRACE_SECONDS cannot be negative. Resetting to 2.")
		cfg.CleanupGrace = 2 * time.Second
	}
	if cfg.JanitorSweep < time.Minute {
		log.Println("⚠️ Warning: JANITOR_SWEEP_MINUTES must be at least 1. Resetting to 5.")
		cfg.JanitorSweep = 5 * time.Minute
	}
	if cfg.JanitorMaxAge < cfg.JanitorSweep {
		log.Println("⚠️ Warning: JANITOR_MAX_AGE_MINUTES below sweep interval. Resetting to 60.")
		cfg.JanitorMaxAge = 60 * time.Minute
	}
}
