// Package server exposes the dashboard panels over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/xkilldash9x/prahari/internal/config"
	"github.com/xkilldash9x/prahari/internal/observability"
)

const defaultShutdownTimeout = 10 * time.Second

// Server hosts the HTTP API.
type Server struct {
	cfg      config.ServerConfig
	logger   *zap.Logger
	metrics  *observability.Metrics
	handlers *Handlers

	httpServer *http.Server
}

// New wires a Server around already constructed handlers. metrics may be nil,
// in which case /metrics is not served.
func New(cfg config.ServerConfig, handlers *Handlers, metrics *observability.Metrics, logger *zap.Logger) *Server {
	return &Server{
		cfg:      cfg,
		logger:   logger.Named("server"),
		metrics:  metrics,
		handlers: handlers,
	}
}

// Router builds the full middleware stack and route table.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(s.logger))
	if s.metrics != nil {
		r.Use(requestMetrics(s.metrics))
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   s.cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.NotFound(s.handlers.notFound)
	r.MethodNotAllowed(s.handlers.methodNotAllowed)

	s.handlers.RegisterRoutes(r)
	if s.cfg.MetricsEnabled && s.metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.metrics.Handler())
	}
	return r
}

// Start listens on the configured address and serves until ctx is cancelled,
// then shuts down gracefully. A clean shutdown returns nil.
func (s *Server) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.cfg.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve is Start on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	s.httpServer = &http.Server{
		Handler:      s.Router(),
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
	}

	s.logger.Info("HTTP server starting", zap.String("address", ln.Addr().String()))

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.httpServer.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("http server failed: %w", err)
	case <-ctx.Done():
	}

	timeout := s.cfg.ShutdownTimeout
	if timeout <= 0 {
		timeout = defaultShutdownTimeout
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	s.logger.Info("Shutting down HTTP server", zap.Duration("timeout", timeout))
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http server shutdown: %w", err)
	}
	<-errCh
	return nil
}
