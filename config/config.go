package config

import (
	"os"
	"strconv"
	"time"
)

// AppConfig holds everything the service reads from the environment.
type AppConfig struct {
	Port        string
	Environment string

	// GeminiAPIKey keys the generativelanguage REST API. When empty, the
	// client falls back to Application Default Credentials.
	GeminiAPIKey string
	GeminiModel  string

	// AppliedFilePath is where the applied-internship list is persisted
	// when no DATABASE_URL is configured.
	AppliedFilePath string
	DatabaseURL     string

	// MaxListings caps how many listings one run will process.
	MaxListings int

	Headless bool
}

func GetAppConfig() AppConfig {
	maxListings, _ := strconv.Atoi(getEnv("MAX_LISTINGS", "5"))
	if maxListings <= 0 {
		maxListings = 5
	}

	headless, _ := strconv.ParseBool(getEnv("HEADLESS", "true"))

	return AppConfig{
		Port:            getEnv("PORT", "3000"),
		Environment:     getEnv("ENVIRONMENT", "development"),
		GeminiAPIKey:    getEnv("GEMINI_API_KEY", ""),
		GeminiModel:     getEnv("GEMINI_MODEL", "gemini-1.5-flash"),
		AppliedFilePath: getEnv("APPLIED_FILE", "applied_internships.json"),
		DatabaseURL:     getEnv("DATABASE_URL", ""),
		MaxListings:     maxListings,
		Headless:        headless,
	}
}

// IsDevelopment reports whether debug details (stack traces) may be
// returned to callers.
func (c AppConfig) IsDevelopment() bool {
	return c.Environment == "development"
}

// RateLimitWindow is how long one client IP's request count is tracked.
const RateLimitWindow = 1 * time.Minute

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
