package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/learnwords/internal/httpserver/deps"
	"github.com/MrSnakeDoc/learnwords/internal/httpserver/handlers"
	"github.com/MrSnakeDoc/learnwords/internal/httpserver/mw"
)

func init() { Register(registerReload) }

func registerReload(r chi.Router, d deps.Deps) {
	r.With(mw.AllowOnlyCIDRS(d.AllowedCIDRS, d.TrustProxy, d.Logger)).Post("/reload", handlers.Reload(d))
}
