package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/MrSnakeDoc/learnwords/internal/logger"
)

// maxBodyBytes caps JSON request bodies.
const maxBodyBytes = 64 << 10

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, log logger.Logger, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Debug("failed to write response", logger.Error(err))
	}
}

func writeError(w http.ResponseWriter, log logger.Logger, status int, msg string) {
	writeJSON(w, log, status, errorResponse{Error: msg})
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}
