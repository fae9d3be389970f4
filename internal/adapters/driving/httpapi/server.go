package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/NevroHelios/Bong-Lore-Backend/internal/core/ports/driving"
	"github.com/NevroHelios/Bong-Lore-Backend/internal/logger"
)

// Default server settings.
const (
	DefaultAddr              = ":8080"
	DefaultRateLimitRequests = 60
	DefaultRateLimitWindow   = time.Minute
	defaultReadHeaderTimeout = 10 * time.Second
	defaultShutdownTimeout   = 10 * time.Second
)

// ErrMissingPorts is returned when a required driving port is nil.
var ErrMissingPorts = errors.New("httpapi: enrichment and suggestion services are required")

// Ports aggregates the driving ports served over HTTP.
type Ports struct {
	Enrichment driving.EnrichmentService
	Suggest    driving.TagSuggestionService
	// Media is optional; without it GET /api/media/{id} is not routed.
	Media driving.MediaService
}

// Config holds HTTP server settings.
type Config struct {
	Addr string

	// JWTSecret verifies bearer tokens on protected routes. Empty disables
	// authentication.
	JWTSecret string

	// CORSOrigins lists allowed origins. Empty allows none.
	CORSOrigins []string

	// RateLimitRequests per RateLimitWindow per client IP on /api routes.
	// Negative disables rate limiting.
	RateLimitRequests int
	RateLimitWindow   time.Duration
}

// Server serves the REST surface.
type Server struct {
	ports   Ports
	cfg     Config
	handler http.Handler
}

// NewServer creates a new HTTP server for ports.
func NewServer(ports Ports, cfg Config) (*Server, error) {
	if ports.Enrichment == nil || ports.Suggest == nil {
		return nil, ErrMissingPorts
	}
	if cfg.Addr == "" {
		cfg.Addr = DefaultAddr
	}
	if cfg.RateLimitRequests == 0 {
		cfg.RateLimitRequests = DefaultRateLimitRequests
	}
	if cfg.RateLimitWindow <= 0 {
		cfg.RateLimitWindow = DefaultRateLimitWindow
	}
	if cfg.JWTSecret == "" {
		logger.Warn("server.jwt_secret is not set: processing routes are unauthenticated")
	}

	s := &Server{ports: ports, cfg: cfg}
	s.handler = s.routes()
	return s, nil
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Addr returns the listen address.
func (s *Server) Addr() string {
	return s.cfg.Addr
}

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()

	r.Use(requestID)
	r.Use(chimiddleware.RealIP)
	r.Use(requestLogger)
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.cfg.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "Authorization", requestIDHeader},
		ExposedHeaders: []string{requestIDHeader},
		MaxAge:         86400,
	}))

	r.Get("/health", s.handleHealth)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Use(recordMetrics)
		if s.cfg.RateLimitRequests > 0 {
			r.Use(httprate.LimitByIP(s.cfg.RateLimitRequests, s.cfg.RateLimitWindow))
		}

		r.Get("/tags/suggest", s.handleSuggest)

		r.Group(func(r chi.Router) {
			r.Use(authenticate(s.cfg.JWTSecret))
			r.Post("/processing/media/{id}", s.handleEnrich)
			if s.ports.Media != nil {
				r.Get("/media/{id}", s.handleGetMedia)
			}
		})
	})

	return r
}

// Run listens on the configured address until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	httpServer := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.handler,
		ReadHeaderTimeout: defaultReadHeaderTimeout,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), defaultShutdownTimeout)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Warn("http shutdown: %v", err)
		}
	}()

	logger.Info("listening on %s", s.cfg.Addr)
	err := httpServer.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.cfg.Addr, err)
	}
	return nil
}
