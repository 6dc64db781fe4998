package config

import (
	"log"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Port         string
	SecretKey    string
	DatabasePath string
	CookieSecure bool

	AppBaseURL       string
	StorageRoot      string
	StoragePublicURL string

	GoogleClientID     string
	GoogleClientSecret string
	GoogleRedirectURL  string
}

// Load reads an optional .env file and resolves the runtime configuration
// from the environment.
func Load() Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("skipping .env: %v", err)
	}

	appBaseURL := getEnv("APP_BASE_URL", "http://localhost:8080")
	return Config{
		Port:         getEnv("PORT", "8080"),
		SecretKey:    getEnv("SECRET_KEY", "change_me_in_production"),
		DatabasePath: getEnv("DB_PATH", filepath.Join("data", "wizards.db")),
		CookieSecure: getEnvBool("COOKIE_SECURE", false),

		AppBaseURL:       appBaseURL,
		StorageRoot:      getEnv("STORAGE_ROOT", filepath.Join("data", "uploads")),
		StoragePublicURL: getEnv("STORAGE_PUBLIC_URL", appBaseURL+"/uploads"),

		GoogleClientID:     getEnv("GOOGLE_CLIENT_ID", ""),
		GoogleClientSecret: getEnv("GOOGLE_CLIENT_SECRET", ""),
		GoogleRedirectURL:  getEnv("GOOGLE_REDIRECT_URL", appBaseURL+"/api/auth/google/callback"),
	}
}

func getEnv(key string, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}

func getEnvBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		log.Printf("invalid boolean for %s: %q, using default", key, value)
		return fallback
	}
	return parsed
}
