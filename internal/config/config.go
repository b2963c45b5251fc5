package config

import (
	"fmt"
	"os"
	"strconv"

	"facture/internal/logger"
)

// Config carries the environment-backed settings for the pipeline.
// Google Cloud credentials are read directly by the Vision client and are
// not duplicated here.
type Config struct {
	// OCR Configuration
	OCRTimeoutSeconds int

	// Batch Configuration
	BatchWorkers int

	// Structuring Configuration
	BlockYGap int

	// Logging Configuration
	LogLevel      string
	LogFormat     string
	LogTimeFormat string
	LogOutput     string
}

func Load() (*Config, error) {
	config := &Config{
		OCRTimeoutSeconds: getEnvInt("OCR_TIMEOUT_SECONDS", 300),
		BatchWorkers:      getEnvInt("BATCH_WORKERS", 4),
		BlockYGap:         getEnvInt("BLOCK_Y_GAP", 40),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		LogFormat:         getEnv("LOG_FORMAT", "console"),
		LogTimeFormat:     getEnv("LOG_TIME_FORMAT", "2006-01-02T15:04:05Z07:00"),
		LogOutput:         getEnv("LOG_OUTPUT", "stderr"),
	}

	if err := config.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return config, nil
}

func (c *Config) validate() error {
	if c.OCRTimeoutSeconds <= 0 {
		return fmt.Errorf("OCR_TIMEOUT_SECONDS must be positive, got %d", c.OCRTimeoutSeconds)
	}
	if c.BatchWorkers <= 0 {
		return fmt.Errorf("BATCH_WORKERS must be positive, got %d", c.BatchWorkers)
	}
	if c.BlockYGap <= 0 {
		return fmt.Errorf("BLOCK_Y_GAP must be positive, got %d", c.BlockYGap)
	}
	return nil
}

// GetLoggerConfig returns a logger configuration from the main config
func (c *Config) GetLoggerConfig() logger.LogConfig {
	return logger.LogConfig{
		Level:      c.LogLevel,
		Format:     c.LogFormat,
		TimeFormat: c.LogTimeFormat,
		Output:     c.LogOutput,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}
