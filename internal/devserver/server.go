package devserver

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"docvault/internal/config"
	"docvault/internal/models"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter wires the five API endpoints, the file download route and the
// metrics endpoint over the given store.
func NewRouter(log *slog.Logger, store *Store, reg *prometheus.Registry) (*mux.Router, error) {
	r := mux.NewRouter()

	metrics, err := NewMetrics(reg)
	if err != nil {
		return nil, err
	}

	r.Use(Logger(log))
	r.Use(metrics.Middleware())

	r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{})).Methods(http.MethodGet)

	r.HandleFunc("/generateOTP", func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		GenerateOTP(ctx, log, w, r, store)
	}).Methods(http.MethodPost)

	r.HandleFunc("/validateOTP", func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		ValidateOTP(ctx, log, w, r, store)
	}).Methods(http.MethodPost)

	protected := r.NewRoute().Subrouter()

	protected.Use(Auth(log, store))

	protected.HandleFunc("/saveDocumentEntry", func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		SaveDocumentEntry(ctx, log, w, r, store)
	}).Methods(http.MethodPost)

	protected.HandleFunc("/documentTags", func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		DocumentTags(ctx, log, w, r, store)
	}).Methods(http.MethodPost)

	protected.HandleFunc("/searchDocumentEntry", func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		SearchDocumentEntry(ctx, log, w, r, store)
	}).Methods(http.MethodPost)

	protected.HandleFunc("/file/{id}", func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		vars := mux.Vars(r)
		FileByID(ctx, log, w, r, vars["id"], store)
	}).Methods(http.MethodGet)

	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(log, w, http.StatusMethodNotAllowed, models.ErrMethodNotAllowed.Error())
	})

	return r, nil
}

// StartServer runs the mock backend until ctx is cancelled, then shuts it
// down gracefully.
func StartServer(ctx context.Context, cfg *config.HTTPServer, log *slog.Logger, store *Store) error {
	r, err := NewRouter(log, store, prometheus.NewRegistry())
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:         cfg.Address,
		ReadTimeout:  cfg.Timeout,
		WriteTimeout: cfg.Timeout,
		IdleTimeout:  cfg.IdleTimeout,
		Handler:      r,
	}

	errChan := make(chan error, 1)

	go func() {
		log.Info("server started", slog.String("address", cfg.Address))
		if err := srv.ListenAndServe(); err != nil {
			if errors.Is(err, http.ErrServerClosed) {
				log.Info("server closed gracefully")
			} else {
				log.Error("could not start server:", "error", err)
				errChan <- err
			}
		}
	}()

	select {
	case <-ctx.Done():
		log.Info("shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("error shutting down server", "error", err)
			return err
		}

		log.Info("server exited gracefully")

		return nil
	case err := <-errChan:
		return err
	}
}
