package config

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"

	BlobLocal = "local"
	BlobGCS   = "gcs"
)

// Config holds the runtime configuration of the API server.
type Config struct {
	Env            string
	Port           string
	DatabaseDriver string
	DatabaseURL    string
	SQLitePath     string
	SessionSecret  string
	JWTSecret      string
	TokenTTL       time.Duration
	BlobBackend    string
	UploadDir      string
	UploadBaseURL  string
	GCSBucket      string
	LogLevel       slog.Level
	LoginRateLimit int
	// TrustProxy makes the server take the client address from
	// X-Forwarded-For and X-Real-IP. Only enable it behind a proxy that
	// overwrites those headers.
	TrustProxy bool
}

// Load reads an optional .env file and then the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	ttl, err := time.ParseDuration(getEnv("TOKEN_TTL", "24h"))
	if err != nil {
		return nil, fmt.Errorf("TOKEN_TTL: %w", err)
	}
	rateLimit, err := strconv.Atoi(getEnv("LOGIN_RATE_PER_MINUTE", "10"))
	if err != nil {
		return nil, fmt.Errorf("LOGIN_RATE_PER_MINUTE: %w", err)
	}
	trustProxy, err := strconv.ParseBool(getEnv("TRUST_PROXY", "false"))
	if err != nil {
		return nil, fmt.Errorf("TRUST_PROXY: %w", err)
	}

	cfg := &Config{
		Env:            getEnv("APP_ENV", "production"),
		Port:           getEnv("PORT", "5000"),
		DatabaseDriver: strings.ToLower(getEnv("DB_DRIVER", DriverPostgres)),
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		SQLitePath:     getEnv("SQLITE_PATH", "protesthub.db"),
		SessionSecret:  os.Getenv("SESSION_SECRET"),
		JWTSecret:      os.Getenv("JWT_SECRET"),
		TokenTTL:       ttl,
		BlobBackend:    strings.ToLower(getEnv("BLOB_BACKEND", BlobLocal)),
		UploadDir:      getEnv("UPLOAD_DIR", "uploads"),
		UploadBaseURL:  strings.TrimRight(getEnv("UPLOAD_BASE_URL", "/uploads"), "/"),
		GCSBucket:      os.Getenv("GCS_BUCKET"),
		LogLevel:       parseLevel(os.Getenv("LOG_LEVEL")),
		LoginRateLimit: rateLimit,
		TrustProxy:     trustProxy,
	}

	if cfg.Development() {
		if cfg.SessionSecret == "" {
			slog.Warn("SESSION_SECRET is not set, using an insecure development default")
			cfg.SessionSecret = "development-session-secret-change-me"
		}
		if cfg.JWTSecret == "" {
			slog.Warn("JWT_SECRET is not set, using an insecure development default")
			cfg.JWTSecret = "development-jwt-secret-change-me"
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Development reports whether insecure defaults are allowed.
func (c *Config) Development() bool {
	return c.Env == "development"
}

func (c *Config) Validate() error {
	switch c.DatabaseDriver {
	case DriverPostgres:
		if c.DatabaseURL == "" {
			return errors.New("DATABASE_URL is not set")
		}
	case DriverSQLite:
		if c.SQLitePath == "" {
			return errors.New("SQLITE_PATH is empty")
		}
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DatabaseDriver)
	}

	switch c.BlobBackend {
	case BlobLocal:
		if p := c.UploadPath(); p == "" || p == "/" {
			return fmt.Errorf("UPLOAD_BASE_URL %q has no path to serve local uploads under", c.UploadBaseURL)
		}
	case BlobGCS:
		if c.GCSBucket == "" {
			return errors.New("GCS_BUCKET is required for the gcs blob backend")
		}
	default:
		return fmt.Errorf("unsupported BLOB_BACKEND %q", c.BlobBackend)
	}

	if c.SessionSecret == "" {
		return errors.New("SESSION_SECRET is not set")
	}
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET is not set")
	}
	if c.TokenTTL <= 0 {
		return errors.New("TOKEN_TTL must be positive")
	}
	if c.LoginRateLimit <= 0 {
		return errors.New("LOGIN_RATE_PER_MINUTE must be positive")
	}
	return nil
}

// UploadPath is the URL path of UploadBaseURL, where local uploads are
// served. UploadBaseURL may be a bare path or an absolute URL.
func (c *Config) UploadPath() string {
	u, err := url.Parse(c.UploadBaseURL)
	if err != nil {
		return ""
	}
	return strings.TrimRight(u.Path, "/")
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return defaultValue
}

func parseLevel(s string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo
	}
	return level
}
