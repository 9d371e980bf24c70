// Package web serves a live preview of the static site and a small JSON
// API over the result catalog.
package web

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/inovacc/roundboard/internal/clock"
	"github.com/inovacc/roundboard/internal/posts"
	"github.com/inovacc/roundboard/internal/render"
	"github.com/inovacc/roundboard/internal/results"
)

// Config holds the preview server configuration
type Config struct {
	Port int
	Host string
}

// DefaultConfig returns the default preview server configuration
func DefaultConfig() Config {
	return Config{
		Port: 8080,
		Host: "127.0.0.1",
	}
}

// Server renders pages from the store on every request, so edits and syncs
// show up without an export.
type Server struct {
	httpServer *http.Server
	config     Config
	results    *results.Store
	posts      *posts.Manager
	renderer   *render.Renderer
	clock      clock.Clock
	logger     *slog.Logger
}

// New creates a preview server.
func New(config Config, rs *results.Store, pm *posts.Manager, r *render.Renderer, c clock.Clock) *Server {
	if c == nil {
		c = clock.System{}
	}

	return &Server{
		config:   config,
		results:  rs,
		posts:    pm,
		renderer: r,
		clock:    c,
		logger:   slog.Default(),
	}
}

// WithLogger sets the request logger.
func (s *Server) WithLogger(l *slog.Logger) *Server {
	if l != nil {
		s.logger = l
	}

	return s
}

// Handler returns the routed handler wrapped in request logging.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	s.setupRoutes(mux)

	return s.loggingMiddleware(mux)
}

// Start serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	addr := net.JoinHostPort(s.config.Host, fmt.Sprint(s.config.Port))

	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}

	s.logger.Info("preview server starting", "url", "http://"+listener.Addr().String())

	errCh := make(chan error, 1)

	go func() {
		if err := s.httpServer.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}

		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	return s.Shutdown(context.Background()) //nolint:contextcheck // parent context cancelled, use background for shutdown
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	s.logger.Info("shutting down preview server")

	return s.httpServer.Shutdown(shutdownCtx)
}

// loggingMiddleware logs HTTP requests
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Debug("request", "method", r.Method, "path", r.URL.Path, "duration", time.Since(start))
	})
}
