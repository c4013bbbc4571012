package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config carries all runtime settings. Values come from the environment with
// development defaults; a local .env file is loaded first when present.
type Config struct {
	Port        string
	Environment string
	LogLevel    string
	CORSOrigins string

	// Optional persistent store. Empty means in-memory only.
	DatabaseURL string
	// Optional cache. Empty disables caching.
	RedisURL string

	// Upload staging.
	UploadDir     string
	MaxUploadSize int64

	// Metadata extraction collaborator (yt-dlp style sidecar). Empty
	// disables URL metadata extraction.
	MetadataAPIURL string
	ExtractTimeout time.Duration

	// Content search collaborator (video-understanding API). Empty disables
	// frame-level search.
	SearchAPIURL  string
	SearchAPIKey  string
	SearchIndexID string
	SearchTimeout time.Duration

	// Optional mob presentation overrides (YAML).
	MobConfigFile string

	// Salt for IP hashing in request logs.
	LogIPSalt string
}

func Load() *Config {
	// .env is a development convenience; missing file is fine.
	_ = godotenv.Load()

	return &Config{
		Port:        getEnv("PORT", "8080"),
		Environment: getEnv("ENVIRONMENT", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		CORSOrigins: getEnv("CORS_ORIGINS", "*"),

		DatabaseURL: getEnv("DATABASE_URL", ""),
		RedisURL:    getEnv("REDIS_URL", ""),

		UploadDir:     getEnv("UPLOAD_DIR", "uploads"),
		MaxUploadSize: getEnvInt64("MAX_UPLOAD_SIZE", 100*1024*1024),

		MetadataAPIURL: getEnv("METADATA_API_URL", ""),
		ExtractTimeout: getEnvDuration("EXTRACT_TIMEOUT", 15*time.Second),

		SearchAPIURL:  getEnv("SEARCH_API_URL", ""),
		SearchAPIKey:  getEnv("SEARCH_API_KEY", ""),
		SearchIndexID: getEnv("SEARCH_INDEX_ID", ""),
		SearchTimeout: getEnvDuration("SEARCH_TIMEOUT", 30*time.Second),

		MobConfigFile: getEnv("MOB_CONFIG_FILE", ""),

		LogIPSalt: getEnv("LOG_IP_SALT", "dev-salt"),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
