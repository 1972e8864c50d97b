// Package httpserver wires the portal's HTTP surface: the canonical-default
// redirector, rendered documentation pages, the navigation API, health and
// metrics endpoints.
package httpserver

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"git.home.luguber.info/inful/docportal/internal/config"
	"git.home.luguber.info/inful/docportal/internal/docsconfig"
	derrors "git.home.luguber.info/inful/docportal/internal/errors"
	"git.home.luguber.info/inful/docportal/internal/events"
	"git.home.luguber.info/inful/docportal/internal/logfields"
	"git.home.luguber.info/inful/docportal/internal/metrics"
	"git.home.luguber.info/inful/docportal/internal/prefs"
	"git.home.luguber.info/inful/docportal/internal/render"
	"git.home.luguber.info/inful/docportal/internal/server/middleware"
	"git.home.luguber.info/inful/docportal/internal/version"
	"git.home.luguber.info/inful/docportal/internal/versioning"
)

// Options carries the injected collaborators. Nil fields get noop or default
// implementations.
type Options struct {
	Provider  docsconfig.Provider
	Renderer  *render.Renderer
	Prefs     prefs.Resolver
	PrefStore prefs.Store // optional persistent store for POST /api/preference
	Recorder  metrics.Recorder
	Publisher events.Publisher
	MetricsH  http.Handler // /metrics handler when metrics are enabled
	Logger    *slog.Logger
}

// snapshot bundles the state swapped atomically on config reload.
type snapshot struct {
	cfg      *config.Config
	registry *versioning.Registry
}

// Server serves the documentation portal.
type Server struct {
	state        atomic.Pointer[snapshot]
	opts         Options
	errorAdapter *derrors.HTTPErrorAdapter
	router       chi.Router
	httpServer   *http.Server
	logger       *slog.Logger
}

// New constructs the server wiring for the given configuration.
func New(cfg *config.Config, opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Recorder == nil {
		opts.Recorder = metrics.NoopRecorder{}
	}
	if opts.Publisher == nil {
		opts.Publisher = events.NoopPublisher{}
	}

	s := &Server{
		opts:         opts,
		errorAdapter: derrors.NewHTTPErrorAdapter(opts.Logger),
		logger:       opts.Logger,
	}
	s.state.Store(&snapshot{
		cfg:      cfg,
		registry: versioning.NewRegistry(cfg.Versions.Supported, cfg.Versions.Default),
	})
	s.router = s.routes(cfg)
	s.httpServer = &http.Server{
		Addr:         cfg.Server.Listen,
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return s
}

// Reload swaps in a new configuration. Route shape (base path) is fixed at
// startup; reload affects versions, frameworks, site metadata, menus and the
// canonical redirect target.
func (s *Server) Reload(cfg *config.Config) {
	s.state.Store(&snapshot{
		cfg:      cfg,
		registry: versioning.NewRegistry(cfg.Versions.Supported, cfg.Versions.Default),
	})
}

func (s *Server) current() *snapshot {
	return s.state.Load()
}

func (s *Server) routes(cfg *config.Config) chi.Router {
	base := cfg.Server.BasePath

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Chain(s.logger, s.errorAdapter))
	r.Use(chimw.Timeout(30 * time.Second))

	r.Get("/healthz", s.handleHealth)
	if s.opts.MetricsH != nil {
		r.Method(http.MethodGet, "/metrics", s.opts.MetricsH)
	}
	r.Post("/api/preference", s.handleSetPreference)

	rd := &Redirector{
		Marker:    base + "/",
		Canonical: func() string { return s.current().cfg.CanonicalDefaultPath() },
		Recorder:  s.opts.Recorder,
	}

	// The bare base path carries the marker but no version segment.
	r.Get(base+"/", rd.Redirect)
	r.Get(base+"/{version}/{framework}/nav.json", s.handleNav)
	r.Get(base+"/{version}/{framework}/*", s.handleDocs)

	// Everything else routes through the marker check: paths without a
	// version marker (including "/" and the slashless base path) get the
	// canonical redirect, marker-carrying misses stay plain 404s.
	r.NotFound(rd.Middleware(http.NotFoundHandler()).ServeHTTP)

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(`{"status":"ok","version":"` + version.Version + `"}`))
}

// Handler exposes the router for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start pre-binds the listener so address conflicts surface before serving,
// then serves until the context is canceled.
func (s *Server) Start(ctx context.Context) error {
	lc := net.ListenConfig{}
	ln, err := lc.Listen(ctx, "tcp", s.httpServer.Addr)
	if err != nil {
		return derrors.Wrap(err, derrors.CategoryRuntime, derrors.SeverityFatal, "failed to bind listener").
			WithContext("addr", s.httpServer.Addr)
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("HTTP server listening", "addr", s.httpServer.Addr)
		if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			s.logger.Error("HTTP server shutdown failed", logfields.Error(err))
			return err
		}
		s.logger.Info("HTTP server stopped")
		return nil
	case err := <-errCh:
		return err
	}
}
