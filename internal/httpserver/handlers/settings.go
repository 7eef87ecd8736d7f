package handlers

import (
	"net/http"

	"github.com/MrSnakeDoc/learnwords/internal/httpserver/deps"
	"github.com/MrSnakeDoc/learnwords/internal/logger"
	"github.com/MrSnakeDoc/learnwords/internal/scheduler"
)

type settingsPayload struct {
	SourceURL string `json:"source_url"`
}

type settingsResponse struct {
	SourceURL       string `json:"source_url"`
	ReloadTriggered bool   `json:"reload_triggered,omitempty"`
}

func GetSettings(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, d.Logger, http.StatusOK, settingsResponse{
			SourceURL: d.Settings.Get(r.Context()),
		})
	}
}

// PutSettings saves the source URL verbatim and schedules a reload.
// A bad URL is reported by the load, not here.
func PutSettings(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req settingsPayload
		if err := decodeJSON(w, r, &req); err != nil {
			writeError(w, d.Logger, http.StatusBadRequest, "invalid request body")
			return
		}

		if err := d.Settings.Set(r.Context(), req.SourceURL); err != nil {
			d.Logger.Error("failed to save settings", logger.Error(err))
			writeError(w, d.Logger, http.StatusInternalServerError, "failed to save settings")
			return
		}

		triggered := scheduler.Trigger(d.ReloadTrigger)
		writeJSON(w, d.Logger, http.StatusOK, settingsResponse{
			SourceURL:       req.SourceURL,
			ReloadTriggered: triggered,
		})
	}
}
