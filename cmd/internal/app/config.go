package app

import (
	"time"

	"github.com/DibuBaj/Backend/cmd/internal/images"
)

// Config contains all runtime configuration loaded from environment variables.
type Config struct {
	HTTPAddr  string
	LogLevel  string
	LogFormat string

	ReadHeaderTimeout time.Duration
	ReadTimeout       time.Duration
	WriteTimeout      time.Duration
	IdleTimeout       time.Duration
	MaxHeaderBytes    int

	// DatabaseURL selects the persistence mode: empty runs everything on
	// in-memory stores (development), anything else is a Postgres DSN.
	DatabaseURL string
	DBMaxConns  int32
	DBMinConns  int32

	// MigrateOnStart applies the embedded schema migrations before serving.
	MigrateOnStart bool

	// If true, /readyz returns 503 unless the DB is configured and reachable.
	ReadinessRequireDB bool

	// If true, RECIPEHUB_TOKEN_HMAC_KEY MUST be set (>= 32 bytes) so
	// refresh-token hashing is keyed.
	RequireTokenHMAC bool

	// Image host. An empty bucket selects the in-memory image store.
	S3 images.S3Config
}

// LoadConfig loads Config from environment variables with defaults.
func LoadConfig() Config {
	return Config{
		HTTPAddr:  EnvString("RECIPEHUB_HTTP_ADDR", "0.0.0.0:8080"),
		LogLevel:  EnvString("RECIPEHUB_LOG_LEVEL", "info"),
		LogFormat: EnvString("RECIPEHUB_LOG_FORMAT", "json"),

		ReadHeaderTimeout: EnvDuration("RECIPEHUB_HTTP_READ_HEADER_TIMEOUT", 5*time.Second),
		ReadTimeout:       EnvDuration("RECIPEHUB_HTTP_READ_TIMEOUT", 15*time.Second),
		WriteTimeout:      EnvDuration("RECIPEHUB_HTTP_WRITE_TIMEOUT", 15*time.Second),
		IdleTimeout:       EnvDuration("RECIPEHUB_HTTP_IDLE_TIMEOUT", 60*time.Second),
		MaxHeaderBytes:    EnvInt("RECIPEHUB_HTTP_MAX_HEADER_BYTES", 1<<20),

		DatabaseURL: EnvString("RECIPEHUB_DATABASE_URL", ""),
		DBMaxConns:  EnvInt32("RECIPEHUB_DB_MAX_CONNS", 10),
		DBMinConns:  EnvInt32("RECIPEHUB_DB_MIN_CONNS", 0),

		MigrateOnStart:     EnvBool("RECIPEHUB_DB_MIGRATE", true),
		ReadinessRequireDB: EnvBool("RECIPEHUB_READINESS_REQUIRE_DB", false),
		RequireTokenHMAC:   EnvBool("RECIPEHUB_REQUIRE_TOKEN_HMAC", false),

		S3: images.S3Config{
			Region:        EnvString("RECIPEHUB_S3_REGION", ""),
			Bucket:        EnvString("RECIPEHUB_S3_BUCKET", ""),
			AccessKey:     EnvString("RECIPEHUB_S3_ACCESS_KEY", ""),
			SecretKey:     EnvString("RECIPEHUB_S3_SECRET_KEY", ""),
			BaseEndpoint:  EnvString("RECIPEHUB_S3_ENDPOINT", ""),
			PublicBaseURL: EnvString("RECIPEHUB_S3_PUBLIC_URL", ""),
		},
	}
}
