package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// ErrDatabaseURLMissing is returned by Load when DATABASE_URL is unset or blank
var ErrDatabaseURLMissing = errors.New("DATABASE_URL is not set")

// EnvFiles are loaded in order; earlier files and the real environment win
var EnvFiles = []string{".env.local", ".env"}

// Config holds all report configuration
type Config struct {
	Database DatabaseConfig
	Timeout  time.Duration
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	URL      string
	ReadOnly bool
	Verbose  bool
}

// Error reports an environment variable that is present but unusable
type Error struct {
	Key string
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("invalid %s: %v", e.Key, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load dotenv files if they exist
	for _, file := range EnvFiles {
		_ = godotenv.Load(file)
	}

	databaseURL := strings.TrimSpace(os.Getenv("DATABASE_URL"))
	if databaseURL == "" {
		return nil, ErrDatabaseURLMissing
	}

	timeout, err := getDuration("GLUE_REPORT_TIMEOUT", 0)
	if err != nil {
		return nil, err
	}

	return &Config{
		Database: DatabaseConfig{
			URL:      databaseURL,
			ReadOnly: true,
			Verbose:  getEnv("GLUE_REPORT_VERBOSE", "false") == "true",
		},
		Timeout: timeout,
	}, nil
}

// getEnv gets environment variable with default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	raw := getEnv(key, "")
	if raw == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, &Error{Key: key, Err: err}
	}
	if d < 0 {
		return 0, &Error{Key: key, Err: fmt.Errorf("negative duration %s", raw)}
	}
	return d, nil
}
