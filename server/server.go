// Package server provides HTTP server management and lifecycle handling:
// setup, middleware configuration, routes, and graceful shutdown.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/pillsync/pillsync-api/config"
	"github.com/pillsync/pillsync-api/handlers"
	"github.com/pillsync/pillsync-api/logging"
	"github.com/pillsync/pillsync-api/metrics"
)

// Server wraps the HTTP server with its router and configuration.
type Server struct {
	server  *http.Server
	router  chi.Router
	handler *handlers.Handler
	config  *config.Config
}

// NewServer creates a configured server instance.
func NewServer(cfg *config.Config, handler *handlers.Handler) *Server {
	router := chi.NewRouter()

	s := &Server{
		server: &http.Server{
			Handler:      router,
			Addr:         cfg.Address + ":" + cfg.Port,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		router:  router,
		handler: handler,
		config:  cfg,
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// setupMiddleware configures the middleware chain.
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(RealIPMiddleware)
	s.router.Use(logging.Middleware)
	s.router.Use(middleware.RedirectSlashes)
	s.router.Use(middleware.Recoverer)
	s.router.Use(RequestSizeMiddleware(s.config))
	s.router.Use(metrics.Middleware)

	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	s.router.Use(RateLimitHandler)
}

// setupRoutes configures all routes.
func (s *Server) setupRoutes() {
	s.router.Get("/health", s.handler.HealthCheck)
	s.router.Method(http.MethodGet, "/metrics", promhttp.Handler())

	s.router.Route("/api", func(r chi.Router) {
		r.Get("/cycle", s.handler.Cycle)
		r.Get("/side-effects", s.handler.SideEffects)
		r.Post("/interactions/check", s.handler.CheckInteractions)
		r.Post("/interactions/assistant", s.handler.Assistant)
		r.Post("/triage", s.handler.Triage)
	})

	s.router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		handlers.RespondWithError(w, http.StatusNotFound, "Not found", map[string]string{"path": r.URL.Path})
	})
}

// Start starts the server.
func (s *Server) Start() error {
	logging.Info(fmt.Sprintf("Starting server at: %s:%s", s.config.Address, s.config.Port))
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	logging.Info("Shutting down server...")

	if err := s.server.Shutdown(ctx); err != nil {
		logging.Error("Server forced to shutdown", "error", err)
		// If graceful shutdown fails, force close
		if err := s.server.Close(); err != nil {
			logging.Error("Server close error", "error", err)
			return err
		}
	}

	logging.Info("Server shutdown complete")
	return nil
}
