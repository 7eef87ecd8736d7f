package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MrSnakeDoc/learnwords/internal/domain"
	"github.com/MrSnakeDoc/learnwords/internal/httpserver/deps"
	"github.com/MrSnakeDoc/learnwords/internal/logger"
	"github.com/MrSnakeDoc/learnwords/internal/words"
)

type wordJSON struct {
	ID                string `json:"id"`
	Text              string `json:"text"`
	OriginalDisplayed bool   `json:"original_displayed"`
}

type wordsResponse struct {
	Status  domain.Status `json:"status"`
	Error   string        `json:"error,omitempty"`
	Reason  string        `json:"reason,omitempty"`
	Query   string        `json:"query"`
	Count   int           `json:"count"`
	Total   int           `json:"total"`
	Entries *[]wordJSON   `json:"entries,omitempty"` // absent while loading
}

func newWordsResponse(v words.View) wordsResponse {
	resp := wordsResponse{
		Status: v.State.Status,
		Error:  v.State.Message(),
		Reason: v.State.Reason(),
		Query:  v.Query,
		Total:  v.Total,
	}
	if v.State.Status == domain.StatusLoading {
		return resp
	}

	entries := make([]wordJSON, 0, len(v.Entries))
	for _, e := range v.Entries {
		entries = append(entries, wordJSON{
			ID:                e.ID.String(),
			Text:              e.DisplayText(),
			OriginalDisplayed: e.IsOriginalDisplayed,
		})
	}
	resp.Count = len(entries)
	resp.Entries = &entries
	return resp
}

// Words renders the list. ?q= filters without touching the stored query.
func Words(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var v words.View
		if q, ok := r.URL.Query()["q"]; ok {
			v = d.Words.ViewFor(q[0])
		} else {
			v = d.Words.View()
		}
		writeJSON(w, d.Logger, http.StatusOK, newWordsResponse(v))
	}
}

type searchRequest struct {
	Query string `json:"query"`
}

// SetSearch stores the search query and returns the filtered list.
func SetSearch(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req searchRequest
		if err := decodeJSON(w, r, &req); err != nil {
			writeError(w, d.Logger, http.StatusBadRequest, "invalid request body")
			return
		}
		d.Words.SetQuery(req.Query)
		writeJSON(w, d.Logger, http.StatusOK, newWordsResponse(d.Words.View()))
	}
}

type toggleResponse struct {
	ID                string `json:"id"`
	Text              string `json:"text"`
	OriginalDisplayed bool   `json:"original_displayed"`
	Found             bool   `json:"found"`
}

// Toggle flips the shown side of an entry. Unknown IDs answer 200 with empty text.
func Toggle(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseID(w, r, d)
		if !ok {
			return
		}

		e, found := d.Words.ToggleDisplay(id)
		if !found {
			d.Logger.Debug("toggle on unknown entry", logger.String("id", id.String()))
		}
		writeJSON(w, d.Logger, http.StatusOK, toggleResponse{
			ID:                id.String(),
			Text:              e.DisplayText(),
			OriginalDisplayed: e.IsOriginalDisplayed,
			Found:             found,
		})
	}
}

type speakResponse struct {
	Spoken bool   `json:"spoken"`
	Error  string `json:"error,omitempty"`
}

// Speak pronounces the original side of an entry.
func Speak(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseID(w, r, d)
		if !ok {
			return
		}

		spoken, err := d.Words.Speak(r.Context(), id)
		if err != nil {
			d.Logger.Warn("speech failed",
				logger.String("id", id.String()),
				logger.Error(err))
			writeJSON(w, d.Logger, http.StatusInternalServerError, speakResponse{Error: "speech failed"})
			return
		}
		writeJSON(w, d.Logger, http.StatusOK, speakResponse{Spoken: spoken})
	}
}

func parseID(w http.ResponseWriter, r *http.Request, d deps.Deps) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, d.Logger, http.StatusBadRequest, "invalid entry id")
		return uuid.Nil, false
	}
	return id, true
}
