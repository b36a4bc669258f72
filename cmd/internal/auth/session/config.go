package session

import (
	"os"
	"strings"
	"time"
)

// Config defines all runtime configuration for the session subsystem.
//
// It controls token lifetimes and the two signing secrets. The secrets are
// required and independent; deployments failing to provide them must not
// start.
type Config struct {
	// Issuer is the value set in the "iss" claim of both token kinds.
	Issuer string

	// AccessTTL defines the lifetime of access tokens.
	AccessTTL time.Duration

	// RefreshTTL defines the lifetime of refresh tokens.
	RefreshTTL time.Duration

	// AccessSecret and RefreshSecret sign their respective contexts.
	// They MUST differ.
	AccessSecret  string
	RefreshSecret string
}

// DefaultConfig returns a configuration suitable for development,
// minus the secrets, which have no default on purpose.
func DefaultConfig() Config {
	return Config{
		Issuer:     "recipehub",
		AccessTTL:  15 * time.Minute,
		RefreshTTL: 7 * 24 * time.Hour,
	}
}

// LoadConfigFromEnv loads session configuration from environment variables.
//
// Required:
//   - RECIPEHUB_AUTH_ACCESS_SECRET
//   - RECIPEHUB_AUTH_REFRESH_SECRET
//
// Optional (durations must be valid Go duration strings):
//   - RECIPEHUB_AUTH_ISSUER
//   - RECIPEHUB_AUTH_ACCESS_TTL
//   - RECIPEHUB_AUTH_REFRESH_TTL
//
// Returns ErrConfig if configuration is missing or invalid.
func LoadConfigFromEnv() (Config, error) {
	cfg := DefaultConfig()

	if v := os.Getenv("RECIPEHUB_AUTH_ISSUER"); v != "" {
		cfg.Issuer = v
	}

	if v := os.Getenv("RECIPEHUB_AUTH_ACCESS_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			return Config{}, ErrConfig
		}
		cfg.AccessTTL = d
	}

	if v := os.Getenv("RECIPEHUB_AUTH_REFRESH_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			return Config{}, ErrConfig
		}
		cfg.RefreshTTL = d
	}

	cfg.AccessSecret = strings.TrimSpace(os.Getenv("RECIPEHUB_AUTH_ACCESS_SECRET"))
	cfg.RefreshSecret = strings.TrimSpace(os.Getenv("RECIPEHUB_AUTH_REFRESH_SECRET"))
	if cfg.AccessSecret == "" || cfg.RefreshSecret == "" {
		return Config{}, ErrConfig
	}
	if cfg.AccessSecret == cfg.RefreshSecret {
		return Config{}, ErrConfig
	}
	if cfg.AccessTTL >= cfg.RefreshTTL {
		return Config{}, ErrConfig
	}

	return cfg, nil
}
