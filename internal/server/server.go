// Package server exposes the layout engine over HTTP.
//
// The API is a single compute endpoint plus a health probe. Layout requests
// are stateless: the full document travels in the request body and the
// computed layout in the response, so instances can be scaled and restarted
// freely. Only the precomputed-layout store is shared state, and it is
// read-only from here.
package server

import (
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"

	"github.com/riverlane-tools/riverlane/pkg/config"
	"github.com/riverlane-tools/riverlane/pkg/precomp"
)

// Config configures a Server.
type Config struct {
	// Addr is the listen address, e.g. ":8080".
	Addr string

	// Engine is the layout engine configuration applied to every request.
	Engine config.Config

	// Precomp, when non-nil, serves precomputed lane assignments.
	Precomp *precomp.Adapter

	// Logger receives request and error logs. Nil means discard.
	Logger *log.Logger

	// RequestTimeout bounds a single layout computation.
	RequestTimeout time.Duration
}

// Server is the HTTP front end of the layout engine.
type Server struct {
	cfg    Config
	logger *log.Logger
	router chi.Router
}

// New creates a server. The configuration is validated on first use, not
// here; pass a Config built from [config.Default] unless a request override
// is intended.
func New(cfg Config) *Server {
	if cfg.Logger == nil {
		cfg.Logger = log.New(io.Discard)
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = 30 * time.Second
	}

	s := &Server{cfg: cfg, logger: cfg.Logger}

	r := chi.NewRouter()
	r.Use(s.requestID)
	r.Use(s.requestLogger)
	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Post("/layout", s.handleLayout)
	})
	s.router = r
	return s
}

// Handler returns the server's HTTP handler, for mounting and for tests.
func (s *Server) Handler() http.Handler { return s.router }

// ListenAndServe runs the server until the listener fails.
func (s *Server) ListenAndServe() error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	s.logger.Info("listening", "addr", s.cfg.Addr)
	return srv.ListenAndServe()
}
