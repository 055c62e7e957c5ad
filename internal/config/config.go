package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr             string
	DBPath           string
	LogLevel         string
	ResetWorkerCount int
	ResetQueueSize   int
	DueBatchLimit    int
	WebhookURL       string
}

// Load reads configuration from a .env file (if present) and environment
// variables, applying defaults when values are missing or invalid.
func Load() Config {
	// Ignore error so the app still starts when .env is absent in production.
	_ = godotenv.Load()

	return Config{
		Addr:             envOr("ADDR", ":8080"),
		DBPath:           envOr("DB_PATH", "file:cardbox.db"),
		LogLevel:         envOr("LOG_LEVEL", "INFO"),
		ResetWorkerCount: envIntOr("RESET_WORKER_COUNT", 1),
		ResetQueueSize:   envIntOr("RESET_QUEUE_SIZE", 16),
		DueBatchLimit:    envIntOr("DUE_BATCH_LIMIT", 50),
		WebhookURL:       envOr("WEBHOOK_URL", ""),
	}
}

// Validate checks the configuration for values the server cannot run with.
func (c Config) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("ADDR cannot be empty")
	}
	if c.DBPath == "" {
		return fmt.Errorf("DB_PATH cannot be empty")
	}
	if c.ResetWorkerCount < 1 {
		return fmt.Errorf("RESET_WORKER_COUNT must be at least 1, got %d", c.ResetWorkerCount)
	}
	if c.ResetQueueSize < 1 {
		return fmt.Errorf("RESET_QUEUE_SIZE must be at least 1, got %d", c.ResetQueueSize)
	}
	if c.DueBatchLimit < 1 {
		return fmt.Errorf("DUE_BATCH_LIMIT must be at least 1, got %d", c.DueBatchLimit)
	}
	return nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envIntOr(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
		log.Printf("invalid value for %s=%q, using default %d", key, v, def)
	}
	return def
}
