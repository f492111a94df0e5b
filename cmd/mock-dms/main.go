// Command mock-dms runs an in-memory stand-in for the document-management
// backend: the five API endpoints plus file downloads and metrics. Issued
// one-time codes appear in its log, never in responses.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"docvault/internal/config"
	"docvault/internal/devserver"

	_ "github.com/joho/godotenv/autoload"
)

const (
	envDev   = "dev"
	envProd  = "prod"
	envLocal = "local"
)

func main() {
	cfg := config.MustLoadServer()

	log := setupLogger(os.Getenv("MOCK_DMS_ENV"))

	log.Info("starting mock backend", "address", cfg.Address)

	if cfg.FixedOTP != "" {
		log.Info("accepting a fixed one-time code", "code", cfg.FixedOTP)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	store := devserver.NewStore(cfg.FixedOTP)

	if err := devserver.StartServer(ctx, cfg, log, store); err != nil {
		log.Error("failed to start server", "error", err)
		os.Exit(1)
	}
}

func setupLogger(env string) *slog.Logger {
	var log *slog.Logger

	switch env {
	case envProd:
		log = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
	case envDev:
		log = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	case envLocal:
		log = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	default:
		log = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	}

	return log
}
