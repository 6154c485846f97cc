package config

import (
	"os"
	"strconv"

	"github.com/rs/zerolog/log"
)

// Config holds server configuration read from the environment.
type Config struct {
	// Port is the HTTP listen port.
	Port string
	// JWTSecret signs auth cookies. A dev default is used when unset.
	JWTSecret string
	// AllowedOrigins is a comma-separated CORS allowlist; empty disables CORS.
	AllowedOrigins string
	// DatabaseURL selects the postgres store when set; otherwise the server
	// runs on the in-memory store.
	DatabaseURL string
}

// Load reads configuration from environment variables with dev defaults.
func Load() Config {
	cfg := Config{
		Port:           envOr("SERVER_PORT", "8080"),
		JWTSecret:      os.Getenv("JWT_SECRET"),
		AllowedOrigins: os.Getenv("ALLOWED_ORIGINS"),
		DatabaseURL:    os.Getenv("DATABASE_URL"),
	}

	if cfg.JWTSecret == "" {
		log.Warn().Msg("JWT_SECRET not set, using dev secret")
		cfg.JWTSecret = "dev-secret"
	}
	if _, err := strconv.Atoi(cfg.Port); err != nil {
		log.Warn().Str("port", cfg.Port).Msg("invalid SERVER_PORT, defaulting to 8080")
		cfg.Port = "8080"
	}
	return cfg
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
