package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	// Server configuration
	Port string
	Mode string

	// Redis configuration (primary key-value store)
	RedisURL string

	// Database configuration (fallback key-value store when Redis is not set)
	DatabaseURL string

	// Quota configuration
	FreeRequests int

	ServiceName string
}

var AppConfig *Config

func InitConfig() error {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		// Ignore error if .env file doesn't exist
	}

	AppConfig = &Config{
		Port:         getEnv("PORT", "8080"),
		Mode:         getEnv("GIN_MODE", "debug"),
		RedisURL:     getEnv("REDIS_URL", ""),
		DatabaseURL:  getEnv("DATABASE_URL", ""),
		FreeRequests: getEnvInt("FREE_REQUESTS", 10),
		ServiceName:  getEnv("SERVICE_NAME", "Recipe Quota Service"),
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
