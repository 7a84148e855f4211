// Package app builds the runtime dependencies selected by the configuration.
package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/MomnaShafqaat/DigitalPakistanMovement/internal/config"
	"github.com/MomnaShafqaat/DigitalPakistanMovement/internal/db"
	"github.com/MomnaShafqaat/DigitalPakistanMovement/internal/db/postgres"
	"github.com/MomnaShafqaat/DigitalPakistanMovement/internal/db/sqlite"
	"github.com/MomnaShafqaat/DigitalPakistanMovement/internal/storage"
)

// OpenStore connects to the configured database and migrates it.
func OpenStore(ctx context.Context, cfg *config.Config) (db.Store, error) {
	var (
		store db.Store
		err   error
	)
	switch cfg.DatabaseDriver {
	case config.DriverPostgres:
		store, err = postgres.New(ctx, cfg.DatabaseURL)
	case config.DriverSQLite:
		store, err = sqlite.New(cfg.SQLitePath)
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DatabaseDriver)
	}
	if err != nil {
		return nil, err
	}

	if err := store.Migrate(ctx); err != nil {
		store.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	slog.Info("database ready", "driver", cfg.DatabaseDriver)
	return store, nil
}

// OpenBlob returns the upload backend and, for local storage, the directory
// to serve under /uploads/. The close func releases backend clients.
func OpenBlob(ctx context.Context, cfg *config.Config) (storage.Blob, string, func() error, error) {
	switch cfg.BlobBackend {
	case config.BlobLocal:
		return storage.NewLocal(cfg.UploadDir, cfg.UploadBaseURL), cfg.UploadDir, func() error { return nil }, nil
	case config.BlobGCS:
		g, err := storage.NewGCS(ctx, cfg.GCSBucket)
		if err != nil {
			return nil, "", nil, err
		}
		return g, "", g.Close, nil
	default:
		return nil, "", nil, fmt.Errorf("unsupported BLOB_BACKEND %q", cfg.BlobBackend)
	}
}
