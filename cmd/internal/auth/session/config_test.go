package session

import (
	"errors"
	"testing"
	"time"
)

func setSecrets(t *testing.T) {
	t.Helper()
	t.Setenv("RECIPEHUB_AUTH_ACCESS_SECRET", "cfg-test-access-secret-000000001")
	t.Setenv("RECIPEHUB_AUTH_REFRESH_SECRET", "cfg-test-refresh-secret-00000001")
}

func TestLoadConfigFromEnv_Defaults(t *testing.T) {
	setSecrets(t)

	cfg, err := LoadConfigFromEnv()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Issuer != "recipehub" {
		t.Errorf("issuer = %q", cfg.Issuer)
	}
	if cfg.AccessTTL != 15*time.Minute || cfg.RefreshTTL != 7*24*time.Hour {
		t.Errorf("ttls = %v/%v", cfg.AccessTTL, cfg.RefreshTTL)
	}
}

func TestLoadConfigFromEnv_Overrides(t *testing.T) {
	setSecrets(t)
	t.Setenv("RECIPEHUB_AUTH_ISSUER", "kitchen")
	t.Setenv("RECIPEHUB_AUTH_ACCESS_TTL", "5m")
	t.Setenv("RECIPEHUB_AUTH_REFRESH_TTL", "48h")

	cfg, err := LoadConfigFromEnv()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Issuer != "kitchen" || cfg.AccessTTL != 5*time.Minute || cfg.RefreshTTL != 48*time.Hour {
		t.Errorf("overrides not applied: %+v", cfg)
	}
}

func TestLoadConfigFromEnv_Invalid(t *testing.T) {
	cases := []struct {
		name string
		env  map[string]string
	}{
		{"missing secrets", map[string]string{}},
		{"missing refresh secret", map[string]string{
			"RECIPEHUB_AUTH_ACCESS_SECRET": "only-one-secret-is-present-00001",
		}},
		{"identical secrets", map[string]string{
			"RECIPEHUB_AUTH_ACCESS_SECRET":  "the-same-secret-on-both-sides-01",
			"RECIPEHUB_AUTH_REFRESH_SECRET": "the-same-secret-on-both-sides-01",
		}},
		{"bad access ttl", map[string]string{
			"RECIPEHUB_AUTH_ACCESS_SECRET":  "cfg-test-access-secret-000000001",
			"RECIPEHUB_AUTH_REFRESH_SECRET": "cfg-test-refresh-secret-00000001",
			"RECIPEHUB_AUTH_ACCESS_TTL":     "soon",
		}},
		{"access ttl not shorter", map[string]string{
			"RECIPEHUB_AUTH_ACCESS_SECRET":  "cfg-test-access-secret-000000001",
			"RECIPEHUB_AUTH_REFRESH_SECRET": "cfg-test-refresh-secret-00000001",
			"RECIPEHUB_AUTH_ACCESS_TTL":     "48h",
			"RECIPEHUB_AUTH_REFRESH_TTL":    "24h",
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv("RECIPEHUB_AUTH_ACCESS_SECRET", "")
			t.Setenv("RECIPEHUB_AUTH_REFRESH_SECRET", "")
			for k, v := range tc.env {
				t.Setenv(k, v)
			}
			if _, err := LoadConfigFromEnv(); !errors.Is(err, ErrConfig) {
				t.Fatalf("err = %v, want ErrConfig", err)
			}
		})
	}
}
