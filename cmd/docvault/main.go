package main

import (
	"log/slog"
	"os"

	"docvault/internal/app"
	"docvault/internal/cli"
	"docvault/internal/config"

	_ "github.com/joho/godotenv/autoload"
)

const (
	envDev   = "dev"
	envProd  = "prod"
	envLocal = "local"
)

func main() {
	cfg := config.MustLoad()

	log := setupLogger(cfg.Env)

	log.Debug("starting client", "env", cfg.Env, "api", cfg.API.BaseURL)

	if err := cli.Execute(app.New(log, cfg)); err != nil {
		os.Exit(1)
	}
}

// setupLogger writes to stderr so command output stays clean on stdout.
// The prod default keeps the CLI quiet; DOCVAULT_ENV=local turns on debug
// text logs.
func setupLogger(env string) *slog.Logger {
	var log *slog.Logger

	switch env {
	case envLocal:
		log = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	case envDev:
		log = slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	case envProd:
		log = slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	default:
		log = slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	}

	return log
}
