package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/MrSnakeDoc/learnwords/internal/domain"
	"github.com/MrSnakeDoc/learnwords/internal/httpserver/deps"
)

type componentStatus struct {
	OK          bool          `json:"ok"`
	Status      domain.Status `json:"status,omitempty"`
	WordsLoaded *int          `json:"words_loaded,omitempty"`
	LastReload  string        `json:"last_reload,omitempty"`
	Mode        string        `json:"mode,omitempty"`
	Impact      string        `json:"impact,omitempty"`
	Error       string        `json:"error,omitempty"`
}

type infraResponse struct {
	Mode       string                     `json:"mode"`
	Components map[string]componentStatus `json:"components"`
}

func Infra(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		components := map[string]componentStatus{
			"word_list": checkWordList(d),
			"settings":  checkSettings(r.Context(), d),
			"speech": {
				OK:   true,
				Mode: d.SpeechMode,
			},
		}

		writeJSON(w, d.Logger, http.StatusOK, infraResponse{
			Mode:       determineMode(components),
			Components: components,
		})
	}
}

func checkWordList(d deps.Deps) componentStatus {
	st := d.Words.State()
	count := d.Words.Count()

	lastReload := d.Words.LastReload()
	lastReloadStr := "never"
	if !lastReload.IsZero() {
		lastReloadStr = lastReload.Format("2006-01-02 15:04:05")
	}

	return componentStatus{
		OK:          st.Status == domain.StatusReady,
		Status:      st.Status,
		WordsLoaded: &count,
		LastReload:  lastReloadStr,
		Error:       st.Message(),
	}
}

func checkSettings(ctx context.Context, d deps.Deps) componentStatus {
	if d.SettingsBackend == nil {
		return componentStatus{
			OK:     false,
			Mode:   "degraded",
			Impact: "default-source-only",
			Error:  "backend not initialized",
		}
	}

	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if err := d.SettingsBackend.Ping(ctx); err != nil {
		return componentStatus{
			OK:     false,
			Mode:   d.SettingsBackend.Backend(),
			Impact: "default-source-only",
			Error:  "timeout",
		}
	}

	return componentStatus{
		OK:   true,
		Mode: d.SettingsBackend.Backend(),
	}
}

func determineMode(components map[string]componentStatus) string {
	if wl, exists := components["word_list"]; exists {
		if !wl.OK && wl.Status != domain.StatusLoading {
			return "critical" // last load failed
		}
	}

	if s, exists := components["settings"]; exists && !s.OK {
		return "degraded" // saved URL unreadable, default is used
	}

	if wl := components["word_list"]; wl.Status == domain.StatusLoading {
		return "loading"
	}
	return "operational"
}
