// Package config loads application configuration from the environment, with
// optional .env file support for local development.
package config

import (
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type AppConfig struct {
	Port               string
	LogLevel           string
	CORSAllowedOrigins []string
}

// Load reads configuration from a .env file (if present) and the OS
// environment, falling back to defaults.
func Load() *AppConfig {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on OS environment and defaults")
	}

	cfg := &AppConfig{
		Port:     getEnv("PORT", "8080"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
		CORSAllowedOrigins: splitAndTrim(
			getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173,http://localhost:8080")),
	}
	return cfg
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func splitAndTrim(s string) []string {
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
