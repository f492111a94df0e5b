package devserver

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"docvault/internal/dto"
)

func writeJSON(log *slog.Logger, w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("failed to write response", slog.String("error", err.Error()))
	}
}

// writeRejection reports a domain-level refusal inside a 200 envelope,
// the way the real backend does.
func writeRejection(log *slog.Logger, w http.ResponseWriter, message string) {
	writeJSON(log, w, http.StatusOK, dto.StatusResponse{Success: false, Message: message})
}

func writeError(log *slog.Logger, w http.ResponseWriter, status int, message string) {
	writeJSON(log, w, status, dto.StatusResponse{Success: false, Message: message})
}
