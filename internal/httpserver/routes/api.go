package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/learnwords/internal/httpserver/deps"
	"github.com/MrSnakeDoc/learnwords/internal/httpserver/handlers"
	"github.com/MrSnakeDoc/learnwords/internal/httpserver/mw"
)

func init() { Register(registerAPI) }

func registerAPI(r chi.Router, d deps.Deps) {
	r.Route("/api", func(api chi.Router) {
		api.Use(mw.EnforceHost(d.AllowedHosts, d.Logger))
		api.Use(mw.RateLimit(mw.RateLimitConfig{
			Burst:             d.RateLimitBurst,
			RefillPerIPPerMin: d.RateLimitPerMin,
			MaxEntries:        10000,
			TrustProxy:        d.TrustProxy,
		}))

		api.Get("/words", handlers.Words(d))
		api.Put("/search", handlers.SetSearch(d))
		api.Post("/words/{id}/toggle", handlers.Toggle(d))
		api.Post("/words/{id}/speak", handlers.Speak(d))

		api.Get("/settings", handlers.GetSettings(d))
		api.Put("/settings", handlers.PutSettings(d))
	})
}
