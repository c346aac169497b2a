package config

import (
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func validConfig(t *testing.T) Config {
	t.Helper()
	return Config{
		DocumentPath:      filepath.Join(t.TempDir(), "dados.xlsx"),
		LockTimeout:       5 * time.Second,
		LockStaleAfter:    10 * time.Minute,
		LockRetryInterval: 100 * time.Millisecond,
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*Config)
		wantErr     bool
		errorString string
	}{
		{
			name:   "valid config",
			mutate: func(c *Config) {},
		},
		{
			name:        "empty document path",
			mutate:      func(c *Config) { c.DocumentPath = "" },
			wantErr:     true,
			errorString: "document path cannot be empty",
		},
		{
			name:        "lock timeout too small",
			mutate:      func(c *Config) { c.LockTimeout = 100 * time.Millisecond },
			wantErr:     true,
			errorString: "lock timeout",
		},
		{
			name:        "lock timeout too large",
			mutate:      func(c *Config) { c.LockTimeout = 2 * time.Minute },
			wantErr:     true,
			errorString: "lock timeout",
		},
		{
			name:        "staleness threshold too small",
			mutate:      func(c *Config) { c.LockStaleAfter = time.Second },
			wantErr:     true,
			errorString: "staleness threshold",
		},
		{
			name:        "retry interval exceeds timeout",
			mutate:      func(c *Config) { c.LockRetryInterval = 10 * time.Second },
			wantErr:     true,
			errorString: "retry interval",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig(t)
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected validation error")
				}
				if !strings.Contains(err.Error(), tt.errorString) {
					t.Errorf("error %q does not mention %q", err, tt.errorString)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected validation error: %v", err)
			}
		})
	}
}

func TestLoadDefaults(t *testing.T) {
	cfg := Load()
	if cfg.DocumentPath != "./data/dados.xlsx" {
		t.Errorf("default document path = %q", cfg.DocumentPath)
	}
	if cfg.LockTimeout != 5*time.Second {
		t.Errorf("default lock timeout = %v", cfg.LockTimeout)
	}
	if cfg.LockStaleAfter != 10*time.Minute {
		t.Errorf("default staleness threshold = %v", cfg.LockStaleAfter)
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("FINANCEIRO_DOC_PATH", "/tmp/other.xlsx")
	t.Setenv("FINANCEIRO_LOCK_TIMEOUT", "2s")
	cfg := Load()
	if cfg.DocumentPath != "/tmp/other.xlsx" {
		t.Errorf("document path = %q, want override", cfg.DocumentPath)
	}
	if cfg.LockTimeout != 2*time.Second {
		t.Errorf("lock timeout = %v, want 2s", cfg.LockTimeout)
	}
}
