package http

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/custodia-labs/ght-core/internal/core/ports/driving"
)

// Pinger is a simple health check interface
type Pinger interface {
	Ping(ctx context.Context) error
}

// Server represents the HTTP server
type Server struct {
	httpServer    *http.Server
	router        *http.ServeMux
	version       string
	lookupTimeout time.Duration
	logger        *slog.Logger

	// Services
	lookupService driving.LookupService
	authService   driving.AuthService // nil disables bearer auth

	// Infrastructure
	cache Pinger // Redis health check (optional)
}

// Config holds server configuration
type Config struct {
	Host           string
	Port           int
	Version        string
	LookupTimeout  time.Duration
	AllowedOrigins []string
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Host:           "0.0.0.0",
		Port:           3000,
		Version:        "dev",
		LookupTimeout:  5 * time.Second,
		AllowedOrigins: []string{"*"},
	}
}

// NewServer creates a new HTTP server
func NewServer(
	cfg Config,
	lookupService driving.LookupService,
	authService driving.AuthService, // can be nil
	cache Pinger, // can be nil
	logger *slog.Logger,
) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.LookupTimeout <= 0 {
		cfg.LookupTimeout = DefaultConfig().LookupTimeout
	}

	s := &Server{
		router:        http.NewServeMux(),
		version:       cfg.Version,
		lookupTimeout: cfg.LookupTimeout,
		logger:        logger,
		lookupService: lookupService,
		authService:   authService,
		cache:         cache,
	}

	s.setupRoutes()

	handler := NewRecoveryMiddleware(logger).Handler(
		NewLoggingMiddleware(logger).Handler(
			NewCORSMiddleware(cfg.AllowedOrigins).Handler(s.router)))

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler:      handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// Handler returns the fully wrapped handler
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes() {
	// Health endpoints (no auth)
	s.router.HandleFunc("GET /{$}", s.handleRoot)
	s.router.HandleFunc("GET /health", s.handleHealth)
	s.router.HandleFunc("GET /ready", s.handleReady)
	s.router.HandleFunc("GET /version", s.handleVersion)

	// Auth endpoints (public)
	if s.authService != nil {
		s.router.HandleFunc("POST /api/v1/auth/token", s.handleIssueToken)
	}

	// Catalog endpoints
	s.router.Handle("GET /api/v1/tracks", s.protect(s.handleListTracks))
	s.router.Handle("GET /api/v1/books", s.protect(s.handleListBooks))
	s.router.Handle("GET /api/v1/commands", s.protect(s.handleListCommands))

	// Lookup endpoints
	s.router.Handle("POST /api/v1/lookup", s.protect(s.handleLookup))
	s.router.Handle("POST /api/v1/commands/{name}", s.protect(s.handleCommand))
	s.router.Handle("POST /api/v1/messages", s.protect(s.handleMessage))
}

// protect applies bearer auth when an AuthService is configured
func (s *Server) protect(h http.HandlerFunc) http.Handler {
	if s.authService == nil {
		return h
	}
	return NewAuthMiddleware(s.authService).Authenticate(h)
}

// Start starts the HTTP server with graceful shutdown
func (s *Server) Start() error {
	// Channel to listen for OS signals
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	// Start server in goroutine
	go func() {
		log.Printf("Starting server on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	// Wait for shutdown signal
	<-stop
	log.Println("Shutting down server...")

	// Create shutdown context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Attempt graceful shutdown
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	log.Println("Server stopped")
	return nil
}

// Stop stops the server
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
