// Package server exposes the layout pipeline over HTTP.
//
// Routes:
//
//	POST /api/layout          lay out posted elements and return the result
//	POST /api/view            lay out and keep the result as the current view
//	GET  /api/view            the current view's layout
//	GET  /api/view/clusters   per-cluster summary of the current view
//	GET  /api/engines         available layout engines
//	GET  /healthz             liveness
//	GET  /metrics             Prometheus metrics, when enabled
package server

import (
	"context"
	stderrors "errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/rohith0110/Wikipedia-Graph/pkg/observability"
	"github.com/rohith0110/Wikipedia-Graph/pkg/pipeline"
)

const shutdownGrace = 10 * time.Second

// Options configures a Server.
type Options struct {
	// CORSOrigins lists allowed browser origins. Empty disables CORS
	// headers.
	CORSOrigins []string

	// Metrics enables /metrics. Nil leaves it unmounted.
	Metrics *observability.Prometheus

	// MaxBodyBytes bounds request bodies. Default: 64 MiB.
	MaxBodyBytes int64

	// Defaults fills request fields left empty.
	Defaults pipeline.Options

	ReadTimeout  time.Duration
	WriteTimeout time.Duration

	Logger *log.Logger
}

// Server serves layouts computed by a shared runner. The current view is
// held in a pipeline session, so replacing it releases the previous one.
type Server struct {
	runner  *pipeline.Runner
	session *pipeline.Session
	opts    Options
	logger  *log.Logger
}

// New returns a server backed by runner.
func New(runner *pipeline.Runner, opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = 64 << 20
	}
	return &Server{
		runner:  runner,
		session: pipeline.NewSession(runner, nil),
		opts:    opts,
		logger:  opts.Logger,
	}
}

// Handler builds the router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(requestLogger(s.logger))
	r.Use(observe)

	if len(s.opts.CORSOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: s.opts.CORSOrigins,
			AllowedMethods: []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
			ExposedHeaders: []string{"X-Request-ID"},
			MaxAge:         300,
		}))
	}

	r.Get("/healthz", s.health)
	if s.opts.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.opts.Metrics.Registry(), promhttp.HandlerOpts{}))
	}

	r.Route("/api", func(r chi.Router) {
		r.Get("/engines", s.engines)
		r.Post("/layout", s.layout)
		r.Route("/view", func(r chi.Router) {
			r.Post("/", s.showView)
			r.Get("/", s.getView)
			r.Get("/clusters", s.viewClusters)
		})
	})

	return r
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully and releases the current view.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.Handler(),
		ReadTimeout:  s.opts.ReadTimeout,
		WriteTimeout: s.opts.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		s.Close()
		if stderrors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	s.logger.Info("shutting down")
	err := srv.Shutdown(shutdownCtx)
	if cerr := s.Close(); err == nil {
		err = cerr
	}
	return err
}

// Close releases the current view.
func (s *Server) Close() error {
	return s.session.Close()
}
