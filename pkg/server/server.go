package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"portal-hq/chronicle/pkg/actions"
	"portal-hq/chronicle/pkg/actions/query"
	"portal-hq/chronicle/pkg/actions/retention"
	"portal-hq/chronicle/pkg/api/handlers"
	"portal-hq/chronicle/pkg/api/middleware"
	"portal-hq/chronicle/pkg/auth"
	"portal-hq/chronicle/pkg/config"
	"portal-hq/chronicle/pkg/telemetry/metrics"
)

// Server is the HTTP server for the action history API.
type Server struct {
	config       *config.Config
	storage      actions.Storage
	engine       *query.Engine
	sweeper      *retention.Sweeper
	guard        *auth.Guard
	collector    *metrics.Collector
	httpServer   *http.Server
	shutdownChan chan struct{}
	shutdownOnce sync.Once
	mu           sync.RWMutex
	isRunning    bool
}

// NewServer creates a new API server over the given components.
func NewServer(
	cfg *config.Config,
	storage actions.Storage,
	engine *query.Engine,
	sweeper *retention.Sweeper,
	guard *auth.Guard,
	collector *metrics.Collector,
) *Server {
	return &Server{
		config:       cfg,
		storage:      storage,
		engine:       engine,
		sweeper:      sweeper,
		guard:        guard,
		collector:    collector,
		shutdownChan: make(chan struct{}),
	}
}

// Start starts the HTTP server and blocks until shutdown.
func (s *Server) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.isRunning {
		s.mu.Unlock()
		return fmt.Errorf("server is already running")
	}
	s.isRunning = true
	s.mu.Unlock()

	handler := s.setupRoutes()

	s.httpServer = &http.Server{
		Addr:           s.config.Server.ListenAddress,
		Handler:        handler,
		ReadTimeout:    s.config.Server.ReadTimeout,
		WriteTimeout:   s.config.Server.WriteTimeout,
		IdleTimeout:    s.config.Server.IdleTimeout,
		MaxHeaderBytes: s.config.Server.MaxHeaderBytes,
	}

	errChan := make(chan error, 1)
	go func() {
		slog.Info("starting server", "address", s.config.Server.ListenAddress)

		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- fmt.Errorf("server error: %w", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case <-ctx.Done():
		slog.Info("context cancelled, initiating shutdown")
		return s.Shutdown(context.Background())
	case sig := <-sigChan:
		slog.Info("received shutdown signal", "signal", sig.String())
		return s.Shutdown(context.Background())
	case err := <-errChan:
		return err
	case <-s.shutdownChan:
		slog.Info("shutdown requested")
		return s.Shutdown(context.Background())
	}
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error

	s.shutdownOnce.Do(func() {
		s.mu.Lock()
		if !s.isRunning {
			s.mu.Unlock()
			return
		}
		s.mu.Unlock()

		slog.Info("initiating graceful shutdown", "timeout", s.config.Server.ShutdownTimeout.String())

		shutdownCtx, cancel := context.WithTimeout(ctx, s.config.Server.ShutdownTimeout)
		defer cancel()

		if s.httpServer != nil {
			if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
				slog.Error("error during server shutdown", "error", err)
				shutdownErr = fmt.Errorf("server shutdown error: %w", err)
			}
		}

		s.mu.Lock()
		s.isRunning = false
		s.mu.Unlock()

		slog.Info("server stopped")
	})

	return shutdownErr
}

// setupRoutes configures HTTP routes and the middleware chain.
func (s *Server) setupRoutes() http.Handler {
	mux := http.NewServeMux()

	actionsHandler := handlers.NewActionsHandler(
		s.storage,
		s.engine,
		s.sweeper,
		s.guard,
		s.collector,
		s.config.History.SaveIntervalHours,
	)

	mux.HandleFunc("POST /v1/actions/{userId}", actionsHandler.Create)
	mux.HandleFunc("GET /v1/actions/{userId}", actionsHandler.ListForUser)
	mux.HandleFunc("DELETE /v1/actions/{userId}", actionsHandler.DeleteForUser)
	mux.HandleFunc("GET /v1/actions", actionsHandler.ListAll)

	mux.Handle("GET /health", handlers.NewHealthHandler())
	mux.Handle("GET /ready", handlers.NewReadyHandler(s.storage))

	if s.config.Telemetry.Metrics.Enabled {
		mux.Handle("GET "+s.config.Telemetry.Metrics.Path, s.collector.Handler())
	}

	// Apply middleware chain
	var handler http.Handler = mux

	handler = middleware.MetricsMiddleware(s.collector)(handler)
	handler = middleware.LoggingMiddleware(handler)
	handler = middleware.RequestIDMiddleware(handler)

	// Recovery middleware (outermost)
	handler = middleware.RecoveryMiddleware(handler)

	return handler
}

// IsRunning returns true if the server is running.
func (s *Server) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// Handler returns the configured HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.setupRoutes()
}
