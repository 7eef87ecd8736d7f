package handlers

import (
	"net/http"

	"github.com/MrSnakeDoc/learnwords/internal/domain"
	"github.com/MrSnakeDoc/learnwords/internal/httpserver/deps"
)

type readyzResponse struct {
	Ready  bool          `json:"ready"`
	Status domain.Status `json:"status"`
	Reason string        `json:"reason,omitempty"`
}

// Readyz answers 200 only once a word list has been loaded successfully.
func Readyz(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		st := d.Words.State()
		ready := st.Status == domain.StatusReady

		code := http.StatusOK
		if !ready {
			code = http.StatusServiceUnavailable
		}
		writeJSON(w, d.Logger, code, readyzResponse{
			Ready:  ready,
			Status: st.Status,
			Reason: st.Reason(),
		})
	}
}
