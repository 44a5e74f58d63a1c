package config

import (
	"strings"
	"testing"
	"time"
)

func TestConfig_Validate(t *testing.T) {
	valid := Config{
		Port:          "8080",
		DBPath:        "./data/ledger.db",
		AuthEnabled:   true,
		JWTSecret:     "0123456789abcdef0123",
		TokenDuration: time.Hour,
	}

	tests := []struct {
		name        string
		mutate      func(c *Config)
		wantErr     bool
		errorString string
	}{
		{
			name:   "valid config",
			mutate: func(c *Config) {},
		},
		{
			name:        "invalid port - non-numeric",
			mutate:      func(c *Config) { c.Port = "abc" },
			wantErr:     true,
			errorString: "invalid port 'abc': must be a number",
		},
		{
			name:        "invalid port - out of range",
			mutate:      func(c *Config) { c.Port = "70000" },
			wantErr:     true,
			errorString: "invalid port 70000: must be between 1 and 65535",
		},
		{
			name:        "empty database path",
			mutate:      func(c *Config) { c.DBPath = "" },
			wantErr:     true,
			errorString: "database path cannot be empty",
		},
		{
			name:        "short secret with auth enabled",
			mutate:      func(c *Config) { c.JWTSecret = "short" },
			wantErr:     true,
			errorString: "JWT_SECRET must be at least 16 characters",
		},
		{
			name: "short secret with auth disabled",
			mutate: func(c *Config) {
				c.AuthEnabled = false
				c.JWTSecret = ""
			},
		},
		{
			name:        "non-positive token duration",
			mutate:      func(c *Config) { c.TokenDuration = 0 },
			wantErr:     true,
			errorString: "invalid token duration 0s",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)

			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr && !strings.Contains(err.Error(), tt.errorString) {
				t.Errorf("Validate() error = %q, want it to contain %q", err, tt.errorString)
			}
		})
	}
}

func TestConfig_ValidateCollectsAllErrors(t *testing.T) {
	cfg := Config{Port: "0", AuthEnabled: true}
	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected an error")
	}
	for _, want := range []string{"invalid port 0", "database path", "JWT_SECRET", "token duration"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q is missing %q", err, want)
		}
	}
}

func TestLoad(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DB_PATH", "/tmp/ledger-test.db")
	t.Setenv("AUTH_ENABLED", "false")
	t.Setenv("TOKEN_DURATION", "2h")
	t.Setenv("CORS_ORIGIN", "")
	t.Setenv("LOG_LEVEL", "debug")

	cfg := Load()
	if cfg.Port != "9090" || cfg.Addr() != ":9090" {
		t.Errorf("port = %q, addr = %q", cfg.Port, cfg.Addr())
	}
	if cfg.DBPath != "/tmp/ledger-test.db" {
		t.Errorf("DBPath = %q", cfg.DBPath)
	}
	if cfg.AuthEnabled {
		t.Error("expected auth to be disabled")
	}
	if cfg.TokenDuration != 2*time.Hour {
		t.Errorf("TokenDuration = %v, want 2h", cfg.TokenDuration)
	}
	if cfg.CORSOrigin != "*" {
		t.Errorf("CORSOrigin = %q, want default *", cfg.CORSOrigin)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want debug", cfg.LogLevel)
	}
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("AUTH_ENABLED", "maybe")
	t.Setenv("TOKEN_DURATION", "forever")

	cfg := Load()
	if !cfg.AuthEnabled {
		t.Error("expected default auth enabled")
	}
	if cfg.TokenDuration != 24*time.Hour {
		t.Errorf("TokenDuration = %v, want 24h default", cfg.TokenDuration)
	}
}
