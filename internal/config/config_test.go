package config_test

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avieira/cardbox/internal/config"
)

func validConfig() config.Config {
	return config.Config{
		Addr:             ":8080",
		DBPath:           "test.db",
		LogLevel:         "INFO",
		ResetWorkerCount: 1,
		ResetQueueSize:   16,
		DueBatchLimit:    50,
	}
}

func TestValidate_ValidConfig(t *testing.T) {
	err := validConfig().Validate()
	assert.NoError(t, err)
}

func TestValidate_EmptyAddr(t *testing.T) {
	cfg := validConfig()
	cfg.Addr = ""

	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "ADDR cannot be empty")
}

func TestValidate_EmptyDBPath(t *testing.T) {
	cfg := validConfig()
	cfg.DBPath = ""

	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "DB_PATH cannot be empty")
}

func TestValidate_InvalidCounts(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*config.Config)
		expected string
	}{
		{
			name:     "zero reset workers",
			mutate:   func(c *config.Config) { c.ResetWorkerCount = 0 },
			expected: "RESET_WORKER_COUNT",
		},
		{
			name:     "negative reset workers",
			mutate:   func(c *config.Config) { c.ResetWorkerCount = -1 },
			expected: "RESET_WORKER_COUNT",
		},
		{
			name:     "zero queue size",
			mutate:   func(c *config.Config) { c.ResetQueueSize = 0 },
			expected: "RESET_QUEUE_SIZE",
		},
		{
			name:     "zero due batch limit",
			mutate:   func(c *config.Config) { c.DueBatchLimit = 0 },
			expected: "DUE_BATCH_LIMIT",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)

			err := cfg.Validate()
			assert.Error(t, err)
			assert.Contains(t, err.Error(), tt.expected)
		})
	}
}

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"ADDR", "DB_PATH", "LOG_LEVEL", "RESET_WORKER_COUNT", "RESET_QUEUE_SIZE", "DUE_BATCH_LIMIT", "WEBHOOK_URL"} {
		require.NoError(t, os.Unsetenv(key))
	}

	cfg := config.Load()

	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, "file:cardbox.db", cfg.DBPath)
	assert.Equal(t, "INFO", cfg.LogLevel)
	assert.Equal(t, 1, cfg.ResetWorkerCount)
	assert.Equal(t, 16, cfg.ResetQueueSize)
	assert.Equal(t, 50, cfg.DueBatchLimit)
	assert.Equal(t, "", cfg.WebhookURL)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("ADDR", ":9999")
	t.Setenv("RESET_WORKER_COUNT", "4")
	t.Setenv("DUE_BATCH_LIMIT", "not-a-number")

	cfg := config.Load()

	assert.Equal(t, ":9999", cfg.Addr)
	assert.Equal(t, 4, cfg.ResetWorkerCount)
	assert.Equal(t, 50, cfg.DueBatchLimit, "invalid int should fall back to default")
}
