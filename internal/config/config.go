package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Config holds everything the engine reads from the environment. Defaults
// live here in code; a .env file may override them in development.
type Config struct {
	// DocumentPath is the location of the workbook document.
	DocumentPath string

	// Lock marker tuning for the durable store.
	LockTimeout       time.Duration
	LockStaleAfter    time.Duration
	LockRetryInterval time.Duration
}

func Load() *Config {
	return &Config{
		DocumentPath:      getEnv("FINANCEIRO_DOC_PATH", "./data/dados.xlsx"),
		LockTimeout:       getEnvDuration("FINANCEIRO_LOCK_TIMEOUT", 5*time.Second),
		LockStaleAfter:    getEnvDuration("FINANCEIRO_LOCK_STALE_AFTER", 10*time.Minute),
		LockRetryInterval: getEnvDuration("FINANCEIRO_LOCK_RETRY_INTERVAL", 100*time.Millisecond),
	}
}

// Validate validates the configuration and returns an error if invalid.
func (c *Config) Validate() error {
	var errors []string

	if c.DocumentPath == "" {
		errors = append(errors, "document path cannot be empty")
	} else {
		dir := filepath.Dir(c.DocumentPath)
		if dir != "." && dir != "" {
			if _, err := os.Stat(dir); os.IsNotExist(err) {
				if err := os.MkdirAll(dir, 0755); err != nil {
					errors = append(errors, fmt.Sprintf("cannot create document directory '%s': %v", dir, err))
				}
			}
		}
	}

	if c.LockTimeout < time.Second {
		errors = append(errors, fmt.Sprintf("invalid lock timeout %v: must be at least 1 second", c.LockTimeout))
	} else if c.LockTimeout > time.Minute {
		errors = append(errors, fmt.Sprintf("invalid lock timeout %v: must be at most 1 minute", c.LockTimeout))
	}

	if c.LockStaleAfter < time.Minute {
		errors = append(errors, fmt.Sprintf("invalid lock staleness threshold %v: must be at least 1 minute", c.LockStaleAfter))
	} else if c.LockStaleAfter > 24*time.Hour {
		errors = append(errors, fmt.Sprintf("invalid lock staleness threshold %v: must be at most 24 hours", c.LockStaleAfter))
	}

	if c.LockRetryInterval < 10*time.Millisecond {
		errors = append(errors, fmt.Sprintf("invalid lock retry interval %v: must be at least 10ms", c.LockRetryInterval))
	} else if c.LockRetryInterval > c.LockTimeout {
		errors = append(errors, fmt.Sprintf("invalid lock retry interval %v: must not exceed the lock timeout", c.LockRetryInterval))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
