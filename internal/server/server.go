// SPDX-License-Identifier: MIT

// Package server is the HTTP front end of planb: a plain-text form endpoint
// and a small JSON API over a planner.Planner.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/planb/altroute"
	"github.com/katalvlaran/planb/planner"
)

// Config holds what the server needs.
type Config struct {
	Planner           *planner.Planner
	Addr              string
	ReadHeaderTimeout time.Duration
	ShutdownTimeout   time.Duration
	// Alternatives are the defaults for /api/v1/alternatives.
	Alternatives altroute.Options
	Logger       *slog.Logger
}

// Server serves route queries.
type Server struct {
	p      *planner.Planner
	cfg    Config
	logger *slog.Logger
}

// New returns a Server; zero timeouts and options get defaults.
func New(cfg Config) *Server {
	if cfg.ReadHeaderTimeout == 0 {
		cfg.ReadHeaderTimeout = 5 * time.Second
	}
	if cfg.ShutdownTimeout == 0 {
		cfg.ShutdownTimeout = 10 * time.Second
	}
	if cfg.Alternatives == (altroute.Options{}) {
		cfg.Alternatives = altroute.DefaultOptions()
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.DiscardHandler)
	}

	return &Server{p: cfg.Planner, cfg: cfg, logger: cfg.Logger}
}

// Handler returns the routed handler with middleware.
func (s *Server) Handler() http.Handler {
	r := chi.NewMux()
	r.Use(
		requestID,
		s.observe,
		middleware.Recoverer,
	)

	r.Get("/", s.frontPage)
	r.Post("/route", s.formRoute)
	r.Get("/healthz", s.health)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/route", s.apiRoute)
		r.Get("/routes", s.apiRoutes)
		r.Get("/alternatives", s.apiAlternatives)
		r.Get("/diameter", s.apiDiameter)
		r.Get("/systems/{name}", s.apiSystem)
	})

	return r
}

// Serve listens on cfg.Addr and blocks until ctx is cancelled, then shuts
// down gracefully.
func (s *Server) Serve(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return fmt.Errorf("server: %w", err)
	}

	return s.ServeListener(ctx, ln)
}

// ServeListener is Serve on an existing listener.
func (s *Server) ServeListener(ctx context.Context, ln net.Listener) error {
	eg, egctx := errgroup.WithContext(ctx)
	srv := &http.Server{
		Handler: s.Handler(),
		BaseContext: func(_ net.Listener) context.Context {
			return egctx
		},
		ReadHeaderTimeout: s.cfg.ReadHeaderTimeout,
	}
	s.logger.Info("serving", "addr", ln.Addr().String())

	eg.Go(func() error {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server: %w", err)
		}
		return nil
	})

	eg.Go(func() error {
		<-egctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
		defer cancel()

		s.logger.Debug("shutting down server")
		return srv.Shutdown(shutdownCtx)
	})

	return eg.Wait()
}
