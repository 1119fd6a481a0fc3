// Package server provides the JSON API HTTP server.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/stylelens/v1/internal/infrastructure/config"
	"github.com/stylelens/v1/internal/infrastructure/http/handlers"
	"github.com/stylelens/v1/internal/infrastructure/http/middleware"
	"github.com/stylelens/v1/internal/ports/inbound"
	"github.com/stylelens/v1/pkg/healthcheck"
	"go.uber.org/zap"
)

// Server is the API HTTP server.
type Server struct {
	config         *config.Config
	logger         *zap.Logger
	server         *http.Server
	router         *chi.Mux
	stylistService inbound.StylistService
	checker        *healthcheck.Checker
}

// NewServer creates the API server.
func NewServer(
	cfg *config.Config,
	logger *zap.Logger,
	stylistService inbound.StylistService,
	checker *healthcheck.Checker,
) *Server {
	s := &Server{
		config:         cfg,
		logger:         logger,
		stylistService: stylistService,
		checker:        checker,
	}

	s.router = s.setupRoutes()
	s.server = &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           s.router,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
		ReadHeaderTimeout: 5 * time.Second,
	}

	return s
}

// setupRoutes configures the API routes.
func (s *Server) setupRoutes() *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger(s.logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.Security())
	if s.config.Server.EnableCORS {
		r.Use(middleware.CORS())
	}
	// The analyze endpoint waits on the vision model, so the request
	// timeout stays well above the model timeout.
	r.Use(chimiddleware.Timeout(2 * time.Minute))
	r.Use(chimiddleware.Compress(5))
	if s.config.Features.EnableMetrics {
		r.Use(middleware.Metrics())
	}

	r.Get("/health", s.handleHealth)
	r.Get("/ready", s.handleReady)
	if s.config.Features.EnableMetrics {
		r.Handle("/metrics", promhttp.Handler())
	}

	r.Route("/api/v1", func(r chi.Router) {
		h := handlers.NewStylistAPIHandlers(s.stylistService, s.config.Upload, s.logger)

		r.Post("/analyze", h.Analyze)
		r.Get("/preferences", h.Preferences)

		r.Route("/products", func(r chi.Router) {
			r.Get("/search", h.SearchProducts)
			r.Get("/{id}/recommendations", h.Recommendations)
		})

		r.Get("/social/{username}/hints", h.StyleHints)
	})

	return r
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	s.logger.Info("Starting API server",
		zap.String("address", s.server.Addr),
		zap.String("environment", s.config.App.Environment),
	)
	return s.server.ListenAndServe()
}

// Server returns the underlying HTTP server instance.
func (s *Server) Server() *http.Server {
	return s.server
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down API server")
	return s.server.Shutdown(ctx)
}

// handleHealth reports liveness plus the app identity.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"status":    "healthy",
		"service":   s.config.App.Name,
		"version":   s.config.App.Version,
		"timestamp": time.Now().Unix(),
	})
}

// handleReady runs the registered dependency probes. Optional probe
// failures degrade the report without failing readiness.
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	report := s.checker.Run(r.Context())

	status := http.StatusOK
	if report.Status == healthcheck.StatusUnhealthy {
		status = http.StatusServiceUnavailable
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(report)
}
