package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv         string
	Port           string
	AllowedOrigins string

	DatabaseURL string
	DBHost      string
	DBPort      string
	DBUser      string
	DBPassword  string
	DBName      string

	RedisURL string

	MeiliSearchHost string
	MeiliMasterKey  string

	UploadFolder string

	SessionCookieName   string
	SessionCookieSecure bool
	SessionTTL          time.Duration

	// When false (the default) a user keeps a single review per course and
	// resubmission replaces it. When true resubmissions create new rows, as
	// the platform originally behaved.
	ReviewsAllowMultiple bool

	ContactRateLimit time.Duration
}

func Load() (*Config, error) {
	// Don't fail if .env doesn't exist (might be prod env vars)
	_ = godotenv.Load()

	cfg := &Config{
		AppEnv:         getEnv("APP_ENV", "development"),
		Port:           getEnv("PORT", "8080"),
		AllowedOrigins: getEnv("ALLOWED_ORIGINS", "http://localhost:3000"),

		DatabaseURL: os.Getenv("DATABASE_URL"),
		DBHost:      getEnv("DB_HOST", "localhost"),
		DBPort:      getEnv("DB_PORT", "5432"),
		DBUser:      getEnv("DB_USER", "postgres"),
		DBPassword:  os.Getenv("DB_PASS"),
		DBName:      getEnv("DB_NAME", "unlocked_coding"),

		RedisURL: os.Getenv("REDIS_URL"),

		MeiliSearchHost: os.Getenv("MEILISEARCH_HOST"),
		MeiliMasterKey:  os.Getenv("MEILI_MASTER_KEY"),

		UploadFolder: getEnv("CLOUDINARY_UPLOAD_FOLDER", "unlocked_coding"),

		SessionCookieName:   getEnv("SESSION_COOKIE_NAME", "session_token"),
		SessionCookieSecure: getEnv("SESSION_COOKIE_SECURE", "false") == "true",

		ReviewsAllowMultiple: getEnv("REVIEWS_ALLOW_MULTIPLE", "false") == "true",
	}

	var err error
	cfg.SessionTTL, err = time.ParseDuration(getEnv("SESSION_TTL", "168h"))
	if err != nil {
		return nil, fmt.Errorf("invalid SESSION_TTL: %w", err)
	}
	cfg.ContactRateLimit, err = time.ParseDuration(getEnv("CONTACT_RATE_LIMIT", "1m"))
	if err != nil {
		return nil, fmt.Errorf("invalid CONTACT_RATE_LIMIT: %w", err)
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
