// Package server exposes release-name lookups over HTTP.
package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/rcliao/git-release-name/internal/phrase"
)

const shutdownTimeout = 5 * time.Second

// Server serves the release-name API.
type Server struct {
	resolver *phrase.Resolver
	logger   *zap.Logger
	metrics  *metrics
	router   *mux.Router
}

// New builds a Server. A nil logger discards logs.
func New(resolver *phrase.Resolver, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	reg := prometheus.NewRegistry()
	s := &Server{
		resolver: resolver,
		logger:   logger,
		metrics:  newMetrics(reg),
		router:   mux.NewRouter(),
	}
	s.routes(reg)
	return s
}

func (s *Server) routes(reg *prometheus.Registry) {
	s.router.Use(s.recoverPanics, requestID, s.logRequests)

	// /random must be registered before /{sha}.
	s.router.HandleFunc("/api/release-name", s.handleBulk).Methods(http.MethodGet)
	s.router.HandleFunc("/api/release-name/random", s.handleRandom).Methods(http.MethodGet)
	s.router.HandleFunc("/api/release-name/{sha}", s.handleShow).Methods(http.MethodGet)

	s.router.HandleFunc("/healthz", handleHealth).Methods(http.MethodGet)
	s.router.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{})).Methods(http.MethodGet)
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Run listens on addr and serves until ctx is cancelled.
func (s *Server) Run(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		errc <- srv.Serve(ln)
	}()
	s.logger.Info("Serving release names", zap.String("addr", ln.Addr().String()))

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	s.logger.Info("Server stopped")
	return nil
}
