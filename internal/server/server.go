// Package server exposes the dashboard views as a JSON API. It owns the
// navigation context: views read their defaults from it and write updates
// back, so consecutive requests see each other's selections the way tabs
// of a dashboard would.
package server

import (
	"context"
	"log"
	"net/http"
	"sync"
	"time"

	"MarketLens/internal/dashboard"
)

// Server serves the dashboard API over HTTP.
type Server struct {
	svc *dashboard.Service

	mu  sync.Mutex
	nav *dashboard.NavContext

	http *http.Server
}

// New creates a server listening on addr.
func New(addr string, svc *dashboard.Service, nav *dashboard.NavContext) *Server {
	s := &Server{svc: svc, nav: nav}
	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /api/benchmarks", s.handleBenchmarks)
	mux.HandleFunc("GET /api/timeline", s.handleTimeline)
	mux.HandleFunc("GET /api/statistics", s.handleStatistics)
	mux.HandleFunc("GET /api/comparison", s.handleComparison)
	mux.HandleFunc("GET /api/technical", s.handleTechnical)
	mux.HandleFunc("GET /api/explorer", s.handleExplorer)
	s.http = &http.Server{
		Addr:              addr,
		Handler:           withRequestID(mux),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Handler returns the routed handler, for tests and embedding.
func (s *Server) Handler() http.Handler { return s.http.Handler }

// ListenAndServe blocks serving requests until Shutdown.
func (s *Server) ListenAndServe() error {
	log.Printf("[INFO] http server listening on %s", s.http.Addr)
	err := s.http.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// Shutdown drains in-flight requests and stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}
