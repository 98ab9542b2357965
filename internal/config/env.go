package config

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"
)

// Environment variables overriding configuration values.
const (
	EnvContentDir = "CURRICULUMGEN_CONTENT_DIR"
	EnvOutput     = "CURRICULUMGEN_OUTPUT"
	EnvLogLevel   = "CURRICULUMGEN_LOG_LEVEL"
)

var envFiles = []string{".env", ".env.local"}

// loadEnvFiles loads the .env files that exist. Existing process variables win.
func loadEnvFiles() {
	for _, path := range envFiles {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			slog.Warn("Failed to load env file", "path", path, "error", err)
			continue
		}
		slog.Debug("Loaded environment variables", "path", path)
	}
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv(EnvContentDir); v != "" {
		cfg.Content.Dir = v
	}
	if v := os.Getenv(EnvOutput); v != "" {
		cfg.Output.Path = v
	}
}
