package config

import (
	"os"
	"sync"

	"github.com/joho/godotenv"
)

// Config carries process-level settings sourced from the environment.
// Flags override these per invocation.
type Config struct {
	DBDSN        string
	HistogramDir string
	LogLevel     string
}

var (
	config *Config
	once   sync.Once
)

// GetConfig loads the configuration once. A missing .env file is fine;
// plain environment variables still apply.
func GetConfig() *Config {
	once.Do(func() {
		_ = godotenv.Load()

		config = &Config{
			DBDSN:        os.Getenv("FIELDPROFILER_DB_DSN"),
			HistogramDir: os.Getenv("FIELDPROFILER_HISTOGRAM_DIR"),
			LogLevel:     envOr("FIELDPROFILER_LOG_LEVEL", "info"),
		}
	})
	return config
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
