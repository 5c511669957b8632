package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"proforma-tool/repository"
	"proforma-tool/service"
)

// Config holds application configuration
type Config struct {
	Port                string
	APIBase             string
	Offline             bool
	RedisAddr           string
	ExportFormat        string
	ExportTTL           time.Duration
	ExportRatePerMinute int
}

// Load reads a .env file when present, then the environment.
func Load() *Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Warning: failed to read .env: %v", err)
	}
	return FromEnv()
}

// FromEnv builds the config from environment variables only.
func FromEnv() *Config {
	return &Config{
		Port:                getEnv("PORT", "8080"),
		APIBase:             getEnv("PROFORMA_API_BASE", repository.DefaultAPIBase),
		Offline:             getEnvBool("PROFORMA_OFFLINE", false),
		RedisAddr:           getEnv("REDIS_ADDR", ""),
		ExportFormat:        strings.ToLower(getEnv("EXPORT_FORMAT", service.FormatHTML)),
		ExportTTL:           getEnvDuration("EXPORT_TTL", 10*time.Minute),
		ExportRatePerMinute: getEnvInt("EXPORT_RATE_PER_MINUTE", 5),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	v, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}

func getEnvInt(key string, fallback int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	v, err := time.ParseDuration(os.Getenv(key))
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}
