package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/learnwords/internal/httpserver/deps"
	"github.com/MrSnakeDoc/learnwords/internal/httpserver/handlers"
)

func init() { Register(registerHealth) }

// Health endpoints stay open so orchestrators can reach them.
func registerHealth(r chi.Router, d deps.Deps) {
	r.Get("/healthz", handlers.Healthz(d))
	r.Get("/readyz", handlers.Readyz(d))
}
