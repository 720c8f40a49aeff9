// Package server is the presentation layer of the launch dashboard.
//
// It serves an HTML page holding the site selector and payload range controls
// and re-fetches both charts whenever a control changes. Figures are exposed
// as JSON and as PNG images rendered on demand; every request recomputes its
// figure from the read-only dataset store.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/rewired-gh/launchdash/internal/dashboard"
	"github.com/rewired-gh/launchdash/internal/logger"
	"github.com/rewired-gh/launchdash/internal/render"
)

// Options configures the HTTP server
type Options struct {
	Addr              string
	ReadHeaderTimeout time.Duration
	ShutdownTimeout   time.Duration
	ChartSize         render.Size
}

// Server serves the dashboard over HTTP
type Server struct {
	dash       *dashboard.Dashboard
	opts       Options
	httpServer *http.Server
}

// New creates a new Server for d
func New(d *dashboard.Dashboard, opts Options) *Server {
	if opts.ChartSize.Width == 0 || opts.ChartSize.Height == 0 {
		opts.ChartSize = render.DefaultSize
	}
	if opts.ShutdownTimeout <= 0 {
		opts.ShutdownTimeout = 10 * time.Second
	}

	s := &Server{dash: d, opts: opts}
	s.httpServer = &http.Server{
		Addr:              opts.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: opts.ReadHeaderTimeout,
	}
	return s
}

// Handler returns the dashboard routes wrapped in request logging
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /api/controls", s.handleControls)
	mux.HandleFunc("GET /api/pie", s.handlePie)
	mux.HandleFunc("GET /api/scatter", s.handleScatter)
	mux.HandleFunc("GET /chart/pie.png", s.handlePieChart)
	mux.HandleFunc("GET /chart/scatter.png", s.handleScatterChart)
	return withRequestID(mux)
}

// ListenAndServe runs the HTTP server until the context ends.
//
// On cancellation, it performs a bounded shutdown so in-flight requests
// are drained before hard close.
func (s *Server) ListenAndServe(ctx context.Context) error {
	serveErr := make(chan error, 1)
	logger.Info("Dashboard listening on %s", s.opts.Addr)
	go func() {
		serveErr <- s.httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.opts.ShutdownTimeout)
		err := s.httpServer.Shutdown(shutdownCtx)
		cancel()
		if err != nil {
			return fmt.Errorf("failed to shut down http server: %w", err)
		}
		logger.Info("Dashboard stopped")
		return nil
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("failed to serve http: %w", err)
	}
}
