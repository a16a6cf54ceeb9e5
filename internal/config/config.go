// Package config loads service configuration from the environment, with an
// optional .env file for local development.
package config

import (
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	ListenAddr    string
	DBPath        string
	SessionSecret string
	BaseURL       string
}

// Load reads the configuration. A .env file in the working directory is
// loaded first if present; real environment variables win.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		ListenAddr:    getEnv("CRICHECK_ADDR", ":8080"),
		DBPath:        getEnv("CRICHECK_DB", "cricheck.sqlite3"),
		SessionSecret: getEnv("CRICHECK_SESSION_SECRET", ""),
		BaseURL:       getEnv("CRICHECK_BASE_URL", "http://localhost:8080"),
	}
}

func getEnv(key, defaultVal string) string {
	if val, exists := os.LookupEnv(key); exists {
		return val
	}
	return defaultVal
}
