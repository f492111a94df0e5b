package app

import (
	"log/slog"

	"docvault/internal/api"
	"docvault/internal/config"
	"docvault/internal/session"
	"docvault/internal/storage/tokenfile"
)

// App wires the client-side dependency graph: the token file, the session
// manager on top of it, and the API clients that draw their bearer token
// from the session.
type App struct {
	Cfg       *config.Config
	Log       *slog.Logger
	Session   *session.Manager
	Auth      *api.AuthClient
	Documents *api.DocumentClient
}

func New(log *slog.Logger, cfg *config.Config) *App {
	tokens := tokenfile.New(cfg.Session.Path)

	sess := session.NewManager(log, tokens)

	base := api.NewClient(api.Config{
		BaseURL: cfg.API.BaseURL,
		Timeout: cfg.API.Timeout,
	}, sess)

	return &App{
		Cfg:       cfg,
		Log:       log,
		Session:   sess,
		Auth:      api.NewAuthClient(log, base),
		Documents: api.NewDocumentClient(log, base),
	}
}
