// Package server exposes the lexer over HTTP: an index page with an editor,
// POST /analyze returning tokens as JSON, and health and metrics endpoints.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync/atomic"

	apperr "sqlcompiler/pkg/error"
	"sqlcompiler/pkg/logging"

	"golang.org/x/sync/errgroup"
)

// Server owns the routes and shared state of the HTTP service. Requests are
// served concurrently; MetricsCollector is the only state they share.
type Server struct {
	cfg       Config
	mux       *http.ServeMux
	metrics   *MetricsCollector
	log       *slog.Logger
	requestID atomic.Uint64
}

func New(cfg Config) *Server {
	s := &Server{
		cfg:     cfg.withDefaults(),
		mux:     http.NewServeMux(),
		metrics: NewMetricsCollector(),
		log:     logging.WithComponent("server"),
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.mux.HandleFunc("GET /{$}", s.handleIndex)
	s.mux.HandleFunc("POST /analyze", s.handleAnalyze)
	s.mux.HandleFunc("GET /health", s.handleHealth)
	s.mux.HandleFunc("GET /metrics", s.handleMetrics)
}

// Handler returns the root handler, for use with httptest or a custom server.
func (s *Server) Handler() http.Handler {
	return s.mux
}

// Metrics returns the collector backing /metrics.
func (s *Server) Metrics() *MetricsCollector {
	return s.metrics
}

func (s *Server) nextRequestID() string {
	return fmt.Sprintf("req-%06d", s.requestID.Add(1))
}

// Run serves until ctx is cancelled, then shuts down gracefully within
// Config.ShutdownTimeout. It returns nil after a clean shutdown.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.cfg.Addr,
		Handler:      s.mux,
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
		IdleTimeout:  s.cfg.IdleTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.log.Info("server listening", "addr", s.cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return apperr.Wrap(err, apperr.CodeServerStart, "ListenAndServe", "Server")
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
		defer cancel()

		s.log.Info("server shutting down")
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutting down server: %w", err)
		}
		return nil
	})

	return g.Wait()
}
