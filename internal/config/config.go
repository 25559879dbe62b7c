package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Config holds the runtime settings for the server. Values come from the
// environment, optionally seeded from a .env file.
type Config struct {
	Port        string
	DBPath      string
	LogFile     string
	CompanyName string
	CompanyCode string
}

// Load reads .env if present and resolves all settings with defaults
// suitable for local development.
func Load() Config {
	// Missing .env is fine; plain environment variables still apply
	_ = godotenv.Load()

	return Config{
		Port:        getEnv("PORT", "8080"),
		DBPath:      getEnv("DB_PATH", "taskhive.db"),
		LogFile:     getEnv("LOG_FILE", "logs/taskhive.log"),
		CompanyName: getEnv("COMPANY_NAME", "TaskHive Demo"),
		CompanyCode: getEnv("COMPANY_CODE", "EMP"),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
