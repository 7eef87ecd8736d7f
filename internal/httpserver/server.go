// internal/httpserver/server.go
package httpserver

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/MrSnakeDoc/learnwords/internal/config"
	"github.com/MrSnakeDoc/learnwords/internal/httpserver/deps"
	"github.com/MrSnakeDoc/learnwords/internal/httpserver/mw"
	"github.com/MrSnakeDoc/learnwords/internal/httpserver/routes"
	"github.com/MrSnakeDoc/learnwords/internal/logger"
)

// Server wraps the HTTP server and its dependencies.
type Server struct {
	http    *http.Server
	logger  logger.Logger
	started time.Time
}

// NewRouter builds the router with global middlewares and every registered route.
func NewRouter(cfg *config.Config, loggerClient logger.Logger, d deps.Deps) http.Handler {
	requestTimeout := cfg.RequestTimeout
	if requestTimeout <= 0 {
		requestTimeout = 10 * time.Second
	}

	r := chi.NewRouter()

	// --- Global middlewares
	r.Use(middleware.GetHead)
	r.Use(middleware.RequestID)                 // X-Request-ID on each request
	r.Use(middleware.Recoverer)                 // never crash the process on panic
	r.Use(middleware.Timeout(requestTimeout))   // per-request timeout
	r.Use(mw.Log(loggerClient, cfg.TrustProxy)) // structured access logs
	r.Use(mw.CORS(cfg.CORSAllowedOrigins))

	routes.RegisterAll(r, d)

	return r
}

// New builds the HTTP server (router, middlewares, route registration).
func New(cfg *config.Config, loggerClient logger.Logger, d deps.Deps) *Server {
	writeTimeout := 30 * time.Second
	if cfg.RequestTimeout+5*time.Second > writeTimeout {
		writeTimeout = cfg.RequestTimeout + 5*time.Second
	}

	s := &http.Server{
		Addr:              cfg.ListenPort,
		Handler:           NewRouter(cfg, loggerClient, d),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	return &Server{
		http:    s,
		logger:  loggerClient,
		started: d.StartTime,
	}
}

// Start runs the HTTP server (blocks until error or shutdown).
func (s *Server) Start() error {
	s.logger.Infof("HTTP server listening on %s", s.http.Addr)
	err := s.http.ListenAndServe()
	// http.ErrServerClosed is expected on graceful shutdown.
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Stop gracefully shuts down the server with the provided context deadline.
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("HTTP server shutting down...")
	return s.http.Shutdown(ctx)
}
