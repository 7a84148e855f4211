package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/sessions"

	"github.com/MomnaShafqaat/DigitalPakistanMovement/internal/app"
	"github.com/MomnaShafqaat/DigitalPakistanMovement/internal/auth"
	"github.com/MomnaShafqaat/DigitalPakistanMovement/internal/config"
	"github.com/MomnaShafqaat/DigitalPakistanMovement/internal/observability"
	"github.com/MomnaShafqaat/DigitalPakistanMovement/internal/server"
)

func main() {
	if err := run(); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := app.OpenStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	blob, uploadDir, closeBlob, err := app.OpenBlob(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeBlob()

	cookies := sessions.NewCookieStore([]byte(cfg.SessionSecret))
	cookies.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   int(cfg.TokenTTL.Seconds()),
		HttpOnly: true,
		Secure:   !cfg.Development(),
		SameSite: http.SameSiteLaxMode,
	}

	handler, _ := server.New(server.Deps{
		Store:          store,
		Sessions:       cookies,
		Tokens:         auth.NewTokens(cfg.JWTSecret, cfg.TokenTTL),
		Blob:           blob,
		Metrics:        observability.NewMetrics(),
		UploadDir:      uploadDir,
		UploadPath:     cfg.UploadPath(),
		LoginRateLimit: cfg.LoginRateLimit,
		TrustProxy:     cfg.TrustProxy,
		RequestLogging: true,
	})

	srv := &http.Server{
		Addr:              "0.0.0.0:" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server starting", "addr", srv.Addr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	slog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
