package devserver

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"docvault/internal/dto"
)

type ctxKey int

const phoneCtxKey ctxKey = iota

// PhoneFrom returns the phone identity the auth middleware bound to the
// request context.
func PhoneFrom(ctx context.Context) (string, bool) {
	phone, ok := ctx.Value(phoneCtxKey).(string)
	return phone, ok
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func Logger(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(rec, r)

			log.Info("request handled",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", rec.status),
				slog.Duration("duration", time.Since(start)),
			)
		})
	}
}

// Auth resolves the token header to a phone identity and rejects requests
// without a live session.
func Auth(log *slog.Logger, sessions SessionProvider) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			op := pkg + "Auth"

			log := log.With(slog.String("op", op))

			token := r.Header.Get(dto.TokenHeader)

			phone, err := sessions.PhoneByToken(token)
			if err != nil {
				log.Warn("failed to resolve token", slog.String("error", err.Error()))
				writeError(log, w, http.StatusForbidden, "token is invalid")
				return
			}

			ctx := context.WithValue(r.Context(), phoneCtxKey, phone)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
