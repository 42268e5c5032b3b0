package config

import "os"

type Config struct {
	AppEnv       string
	DatabasePath string
	LogLevel     string
	LogFormat    string
}

func Load() Config {
	return Config{
		AppEnv:       getEnv("APP_ENV", "development"),
		DatabasePath: getEnv("DATABASE_PATH", "bank_data.db"),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
		LogFormat:    getEnv("LOG_FORMAT", "text"),
	}
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}
