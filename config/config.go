package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

type AppConfig struct {
	Port            string
	DBPath          string
	CatalogPath     string
	CacheTTL        time.Duration
	ProcessingDelay time.Duration
	LogLevel        string
	LogFormat       string
	EnableMetrics   bool
}

// Load reads the environment, after a best-effort .env load. The second result
// lists problems that fell back to defaults; the caller logs them once a
// logger exists.
func Load() (AppConfig, []string) {
	var warns []string
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		warns = append(warns, fmt.Sprintf("load .env: %v", err))
	}

	get := func(k, def string) string {
		if v := os.Getenv(k); v != "" {
			return v
		}
		return def
	}
	dur := func(k string, def time.Duration) time.Duration {
		v := os.Getenv(k)
		if v == "" {
			return def
		}
		d, err := time.ParseDuration(v)
		if err != nil || d < 0 {
			warns = append(warns, fmt.Sprintf("%s=%q is not a valid duration, using %s", k, v, def))
			return def
		}
		return d
	}

	cfg := AppConfig{
		Port:            get("PORT", "8080"),
		DBPath:          get("DB_PATH", "cropadvisor.db"),
		CatalogPath:     get("CATALOG_PATH", ""),
		CacheTTL:        dur("CACHE_TTL", 24*time.Hour),
		ProcessingDelay: dur("PROCESSING_DELAY", 0),
		LogLevel:        get("LOG_LEVEL", "info"),
		LogFormat:       get("LOG_FORMAT", "json"),
		EnableMetrics:   get("ENABLE_METRICS", "true") == "true",
	}
	return cfg, warns
}
