// Package server exposes conversion and table linting over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/yaklabco/gotexlint/internal/logging"
	"github.com/yaklabco/gotexlint/pkg/lint"
)

// DefaultMaxBodyBytes bounds the size of a submitted document.
const DefaultMaxBodyBytes int64 = 4 << 20

const (
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 10 * time.Second
)

// Options configures a Server.
type Options struct {
	// Pipeline parses, converts and lints submitted documents.
	Pipeline *lint.Pipeline

	// Logger receives one line per request. Defaults to logging.Default().
	Logger *log.Logger

	// MaxBodyBytes bounds request bodies. Values <= 0 use DefaultMaxBodyBytes.
	MaxBodyBytes int64

	// Version is reported by the health endpoint.
	Version string
}

// Server is the HTTP API for gotexlint.
type Server struct {
	router   chi.Router
	pipeline *lint.Pipeline
	log      *log.Logger
	maxBody  int64
	version  string
}

// New creates and configures the HTTP handler.
func New(opts Options) *Server {
	s := &Server{
		pipeline: opts.Pipeline,
		log:      opts.Logger,
		maxBody:  opts.MaxBodyBytes,
		version:  opts.Version,
	}
	if s.pipeline == nil {
		s.pipeline = lint.NewPipelineFromConfig(lint.DefaultRegistry, nil)
	}
	if s.log == nil {
		s.log = logging.Default()
	}
	if s.maxBody <= 0 {
		s.maxBody = DefaultMaxBodyBytes
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(requestLogger(s.log))

	r.Get("/healthz", s.handleHealth)

	r.Route("/v1", func(r chi.Router) {
		r.Post("/convert", s.handleConvert)
		r.Post("/lint", s.handleLint)
	})

	s.router = r
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", addr, err)
	}
	return s.Serve(ctx, listener)
}

// Serve accepts connections on listener until ctx is cancelled.
func (s *Server) Serve(ctx context.Context, listener net.Listener) error {
	srv := &http.Server{
		Handler:           s,
		ReadHeaderTimeout: readHeaderTimeout,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(listener)
	}()

	s.log.Info("listening", logging.FieldAddr, listener.Addr().String())

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()

	s.log.Info("shutting down", logging.FieldAddr, listener.Addr().String())
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("serve: %w", err)
	}
	return nil
}
