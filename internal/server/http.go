// Package server exposes the chat pipeline over HTTP with SSE streaming.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/medassist/medassist/internal/auth"
	"github.com/medassist/medassist/internal/pipeline"
	"github.com/medassist/medassist/internal/validation"
)

// QueryPipeline is the pipeline surface the HTTP handlers depend on.
type QueryPipeline interface {
	Query(ctx context.Context, req pipeline.Request) (*pipeline.Response, error)
	QueryStream(ctx context.Context, req pipeline.Request) <-chan pipeline.Event
}

// Config holds configuration for the HTTP server
type Config struct {
	Port               int
	AllowedOrigins     []string
	RateLimitPerMinute int
	Production         bool
	Logger             *slog.Logger
}

// Server wraps an HTTP server around the query pipeline
type Server struct {
	server    *http.Server
	router    *chi.Mux
	logger    *slog.Logger
	pipeline  QueryPipeline
	validator *validation.Validator
	modelName string
}

// New creates a new HTTP server with routes and middleware mounted.
func New(cfg Config, qp QueryPipeline, validator *validation.Validator, jwtManager *auth.JWTManager, modelName string) *Server {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{
		logger:    logger,
		pipeline:  qp,
		validator: validator,
		modelName: modelName,
	}

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(requestLoggingMiddleware(logger))
	router.Use(middleware.Recoverer)
	router.Use(securityHeadersMiddleware(cfg.Production))
	router.Use(corsMiddleware(cfg.AllowedOrigins))

	router.Get("/healthz", s.handleHealth)
	router.Get("/readyz", s.handleReady)

	limiter := newRateLimiter(cfg.RateLimitPerMinute, time.Minute)

	router.Route("/api/v1", func(r chi.Router) {
		r.Use(auth.OptionalMiddleware(jwtManager))
		r.Use(limiter.middleware)
		r.Post("/chat", s.handleChat)
		r.Post("/chat/stream", s.handleChatStream)
		r.Get("/chat/suggestions", s.handleSuggestions)
	})

	s.router = router
	s.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 5 * time.Minute, // streaming LLM responses
		IdleTimeout:  120 * time.Second,
	}

	return s
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.logger.Info("starting HTTP server", "address", s.server.Addr)

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("HTTP server error: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down HTTP server")

	if err := s.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("HTTP server shutdown error: %w", err)
	}

	s.logger.Info("HTTP server stopped")
	return nil
}

// Router returns the underlying chi router for additional route registration
func (s *Server) Router() *chi.Mux {
	return s.router
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status": "ready",
		"model":  s.modelName,
	})
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Default().Warn("failed to encode response", "error", err)
	}
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
