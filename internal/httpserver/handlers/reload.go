package handlers

import (
	"net/http"

	"github.com/MrSnakeDoc/learnwords/internal/httpserver/deps"
	"github.com/MrSnakeDoc/learnwords/internal/logger"
	"github.com/MrSnakeDoc/learnwords/internal/scheduler"
)

// Reload triggers a manual reload of the word list
func Reload(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if scheduler.Trigger(d.ReloadTrigger) {
			d.Logger.Info("manual word list reload triggered via endpoint",
				logger.String("remote_ip", r.RemoteAddr))
			w.WriteHeader(http.StatusAccepted)
			if _, err := w.Write([]byte("✅ Reload triggered successfully\n")); err != nil {
				d.Logger.Debug("failed to write response", logger.Error(err))
			}
			return
		}

		d.Logger.Warn("word list reload already pending",
			logger.String("remote_ip", r.RemoteAddr))
		w.WriteHeader(http.StatusTooManyRequests)
		if _, err := w.Write([]byte("⏳ Reload already in progress, please wait\n")); err != nil {
			d.Logger.Debug("failed to write response", logger.Error(err))
		}
	}
}
