package api

import (
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"
)

// Cookie names shared by login, refresh and the auth middleware.
const (
	AccessCookieName  = "accessToken"
	RefreshCookieName = "refreshToken"
)

// Config controls transport behavior and security defaults.
type Config struct {
	// MaxBodyBytes caps JSON request bodies.
	MaxBodyBytes int64

	// MaxUploadBytes caps multipart uploads (avatar and recipe images).
	MaxUploadBytes int64

	// Cookie attributes for the two session cookies.
	CookiePath     string
	CookieDomain   string
	CookieSecure   bool
	CookieSameSite http.SameSite

	// TrustProxy enables X-Forwarded-For when resolving the client IP.
	TrustProxy bool

	// Login throttling: at most LoginIPMax failed attempts per client IP
	// within LoginIPWindow before the endpoint answers 429.
	LoginIPMax    int
	LoginIPWindow time.Duration
}

// LoadConfigFromEnv loads transport config from the environment with safe
// defaults. Unset or malformed values fall back silently.
func LoadConfigFromEnv() Config {
	cfg := Config{
		MaxBodyBytes:   envInt64("RECIPEHUB_API_MAX_BODY_BYTES", 1<<20),
		MaxUploadBytes: envInt64("RECIPEHUB_API_MAX_UPLOAD_BYTES", 8<<20),
		CookiePath:     "/",
		CookieDomain:   strings.TrimSpace(os.Getenv("RECIPEHUB_API_COOKIE_DOMAIN")),
		CookieSecure:   envBool("RECIPEHUB_API_COOKIE_SECURE", true),
		CookieSameSite: envSameSite("RECIPEHUB_API_COOKIE_SAMESITE", http.SameSiteLaxMode),
		TrustProxy:     envBool("RECIPEHUB_API_TRUST_PROXY", false),
		LoginIPMax:     envInt("RECIPEHUB_API_LOGIN_IP_MAX", 20),
		LoginIPWindow:  envDuration("RECIPEHUB_API_LOGIN_IP_WINDOW", 5*time.Minute),
	}
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = 1 << 20
	}
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = 8 << 20
	}
	return cfg
}

func envBool(key string, def bool) bool {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

func envInt(key string, def int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return def
	}
	return n
}

func envInt64(key string, def int64) int64 {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil || n <= 0 {
		return def
	}
	return n
}

func envDuration(key string, def time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return def
	}
	return d
}

func envSameSite(key string, def http.SameSite) http.SameSite {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(key))) {
	case "strict":
		return http.SameSiteStrictMode
	case "lax":
		return http.SameSiteLaxMode
	case "none":
		return http.SameSiteNoneMode
	default:
		return def
	}
}
