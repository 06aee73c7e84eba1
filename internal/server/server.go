// Package server serves the word colour frame, share images and JSON API.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/hashicorp/go-hclog"

	"github.com/jmylchreest/hexword/internal/cardcache"
	"github.com/jmylchreest/hexword/internal/colour"
	"github.com/jmylchreest/hexword/internal/frame"
	"github.com/jmylchreest/hexword/internal/namer"
	"github.com/jmylchreest/hexword/internal/render"
)

const defaultShutdownTimeout = 10 * time.Second

// Options configures a Server.
type Options struct {
	Addr            string
	DefaultWord     string
	Mode            colour.Mode
	Namer           namer.Namer
	NameTimeout     time.Duration
	Renderer        *render.Renderer
	// Cache stores rendered cards; nil renders every request.
	Cache           *cardcache.Cache
	Logger          hclog.Logger
	ShutdownTimeout time.Duration
	// Pick chooses the word for the Random frame button.
	Pick            func() string
}

// Server is the HTTP frame server.
type Server struct {
	httpServer *http.Server
	listener   net.Listener
	logger     hclog.Logger

	defaultWord     string
	mode            colour.Mode
	namer           namer.Namer
	renderer        *render.Renderer
	cache           *cardcache.Cache
	pick            func() string
	shutdownTimeout time.Duration
}

// New builds a Server. A nil Namer answers from the fallback table and a
// nil Renderer is created from the bundled fonts.
func New(opts Options) (*Server, error) {
	logger := opts.Logger
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	logger = logger.Named("server")

	renderer := opts.Renderer
	if renderer == nil {
		r, err := render.NewRenderer()
		if err != nil {
			return nil, fmt.Errorf("failed to create renderer: %w", err)
		}
		renderer = r
	}

	s := &Server{
		logger:          logger,
		defaultWord:     opts.DefaultWord,
		mode:            opts.Mode,
		namer:           namer.WithFallback(opts.Namer, opts.NameTimeout, logger),
		renderer:        renderer,
		cache:           opts.Cache,
		pick:            opts.Pick,
		shutdownTimeout: opts.ShutdownTimeout,
	}
	if s.defaultWord == "" {
		s.defaultWord = frame.DefaultWord
	}
	if s.mode == "" {
		s.mode = colour.ModeBasic
	}
	if s.pick == nil {
		s.pick = frame.RandomWord
	}
	if s.shutdownTimeout <= 0 {
		s.shutdownTimeout = defaultShutdownTimeout
	}

	s.httpServer = &http.Server{
		Addr:              opts.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	return s, nil
}

// Handler returns the routed handler with request middleware applied.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", s.handleLanding)
	mux.HandleFunc("GET /api/frame-image/{$}", s.handleFrameImage)
	mux.HandleFunc("GET /api/frame-image/{word}", s.handleFrameImage)
	mux.HandleFunc("POST /api/color-name", s.handleColorName)
	mux.HandleFunc("POST /api/frame", s.handleFrame)
	mux.HandleFunc("GET /api/color/{word}", s.handleColor)
	mux.HandleFunc("GET /healthz", s.handleHealth)

	return requestID(logRequests(s.logger, mux))
}

// Run listens on the configured address and serves until ctx is cancelled,
// then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	listener, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return fmt.Errorf("failed to create listener: %w", err)
	}
	return s.Serve(ctx, listener)
}

// Serve serves on listener until ctx is cancelled.
func (s *Server) Serve(ctx context.Context, listener net.Listener) error {
	s.listener = listener
	s.logger.Info("starting frame server", "addr", listener.Addr().String(), "mode", s.mode)

	errChan := make(chan error, 1)
	go func() {
		if err := s.httpServer.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
		close(errChan)
	}()

	select {
	case err := <-errChan:
		if err != nil {
			return fmt.Errorf("frame server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("shutting down frame server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down frame server: %w", err)
	}
	return nil
}

// Addr returns the bound listener address, or "" before Serve.
func (s *Server) Addr() string {
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}
