package config

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setEnv(t *testing.T, env map[string]string) {
	t.Helper()
	for _, key := range []string{"APP_ENV", "PORT", "DB_DRIVER", "DATABASE_URL", "SQLITE_PATH",
		"SESSION_SECRET", "JWT_SECRET", "TOKEN_TTL", "BLOB_BACKEND", "UPLOAD_DIR",
		"UPLOAD_BASE_URL", "GCS_BUCKET", "LOG_LEVEL", "LOGIN_RATE_PER_MINUTE", "TRUST_PROXY"} {
		t.Setenv(key, "")
	}
	for k, v := range env {
		t.Setenv(k, v)
	}
}

func TestLoad_Defaults(t *testing.T) {
	setEnv(t, map[string]string{
		"DATABASE_URL":   "postgres://localhost/protesthub",
		"SESSION_SECRET": "s",
		"JWT_SECRET":     "j",
	})

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "5000", cfg.Port)
	assert.Equal(t, DriverPostgres, cfg.DatabaseDriver)
	assert.Equal(t, BlobLocal, cfg.BlobBackend)
	assert.Equal(t, "/uploads", cfg.UploadBaseURL)
	assert.Equal(t, 24*time.Hour, cfg.TokenTTL)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
	assert.Equal(t, 10, cfg.LoginRateLimit)
	assert.False(t, cfg.TrustProxy)
	assert.Equal(t, "/uploads", cfg.UploadPath())
}

func TestUploadPath(t *testing.T) {
	tests := []struct {
		base string
		want string
	}{
		{"/uploads", "/uploads"},
		{"/media/", "/media"},
		{"https://cdn.example.com/files/protesthub", "/files/protesthub"},
		{"https://cdn.example.com", ""},
	}
	for _, tt := range tests {
		cfg := &Config{UploadBaseURL: tt.base}
		assert.Equal(t, tt.want, cfg.UploadPath(), tt.base)
	}
}

func TestLoad_DevelopmentSecrets(t *testing.T) {
	setEnv(t, map[string]string{"APP_ENV": "development", "DB_DRIVER": "sqlite", "LOG_LEVEL": "debug"})

	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.Development())
	assert.NotEmpty(t, cfg.SessionSecret)
	assert.NotEmpty(t, cfg.JWTSecret)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"missing secrets in production", map[string]string{"DB_DRIVER": "sqlite"}},
		{"postgres without url", map[string]string{"SESSION_SECRET": "s", "JWT_SECRET": "j"}},
		{"gcs without bucket", map[string]string{"DB_DRIVER": "sqlite", "SESSION_SECRET": "s", "JWT_SECRET": "j", "BLOB_BACKEND": "gcs"}},
		{"unknown driver", map[string]string{"DB_DRIVER": "oracle", "SESSION_SECRET": "s", "JWT_SECRET": "j"}},
		{"bad trust proxy", map[string]string{"DB_DRIVER": "sqlite", "SESSION_SECRET": "s", "JWT_SECRET": "j", "TRUST_PROXY": "maybe"}},
		{"local uploads without path", map[string]string{"DB_DRIVER": "sqlite", "SESSION_SECRET": "s", "JWT_SECRET": "j", "UPLOAD_BASE_URL": "https://cdn.example.com"}},
		{"bad ttl", map[string]string{"DB_DRIVER": "sqlite", "SESSION_SECRET": "s", "JWT_SECRET": "j", "TOKEN_TTL": "soon"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setEnv(t, tt.env)
			_, err := Load()
			assert.Error(t, err)
		})
	}
}
