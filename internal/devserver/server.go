package devserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vango-dev/toolbox/internal/catalog"
	"github.com/vango-dev/toolbox/internal/config"
	"github.com/vango-dev/toolbox/pkg/history"
	"github.com/vango-dev/toolbox/pkg/live"
	"github.com/vango-dev/toolbox/pkg/middleware"
	"github.com/vango-dev/toolbox/pkg/nav"
	"github.com/vango-dev/toolbox/pkg/router"
	"github.com/vango-dev/toolbox/pkg/view"
)

// Options configures a Server.
type Options struct {
	// Config is the loaded project configuration. Required.
	Config *config.Config

	// Table is the route table. Required.
	Table *router.Table

	// Registry resolves view keys. Defaults to the catalog registry for Table.
	Registry *router.Registry

	// Logger defaults to slog.Default().
	Logger *slog.Logger

	// Metrics receives the navigation collectors and is served on the
	// metrics path. Defaults to a fresh registry.
	Metrics *prometheus.Registry

	// Middleware runs inside the built-in logging, metrics and tracing
	// middleware for every navigation.
	Middleware []nav.Middleware
}

// Server is the development server.
type Server struct {
	cfg      *config.Config
	table    *router.Table
	registry *router.Registry
	logger   *slog.Logger
	metrics  *middleware.Metrics
	gatherer prometheus.Gatherer
	extra    []nav.Middleware
	router   chi.Router
}

// New wires the dev server routes.
func New(opts Options) (*Server, error) {
	if opts.Config == nil || opts.Table == nil {
		return nil, errors.New("devserver: config and table are required")
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Registry == nil {
		opts.Registry = catalog.NewRegistry(opts.Table, router.WithRegistryLogger(opts.Logger))
	}
	if opts.Metrics == nil {
		opts.Metrics = prometheus.NewRegistry()
	}
	if _, ok := opts.Table.Lookup(opts.Config.Navigation.Fallback); !ok {
		return nil, fmt.Errorf("devserver: fallback route %q is not in the route table", opts.Config.Navigation.Fallback)
	}

	s := &Server{
		cfg:      opts.Config,
		table:    opts.Table,
		registry: opts.Registry,
		logger:   opts.Logger,
		metrics:  middleware.NewMetrics(middleware.WithRegistry(opts.Metrics)),
		gatherer: opts.Metrics,
		extra:    opts.Middleware,
	}

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)

	for _, prefix := range s.cfg.ProxyPrefixes() {
		proxy, err := newProxy(prefix, s.cfg.Dev.Proxy[prefix], s.logger)
		if err != nil {
			return nil, err
		}
		r.Handle(prefix, proxy)
		r.Handle(prefix+"/*", proxy)
	}

	r.Get("/_nav", live.NewHandler(s.newSession, live.Config{
		Logger:  s.logger,
		Metrics: s.metrics,
	}).ServeHTTP)
	r.Get("/_routes", s.handleRoutes)
	if s.cfg.Metrics.Enabled {
		r.Handle(s.cfg.Metrics.Path, promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	}
	r.Get("/*", s.handleShell)

	s.router = r
	return s, nil
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe serves on the configured dev address until ctx is done.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.DevAddress(),
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("dev server listening", "url", s.cfg.DevURL(), "routes", s.table.Len())
		errCh <- srv.ListenAndServe()
	}()

	var err error
	select {
	case err = <-errCh:
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		err = srv.Shutdown(shutdownCtx)
	}
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func (s *Server) navMiddleware() []nav.Middleware {
	mw := []nav.Middleware{
		middleware.Logger(s.logger),
		s.metrics.Middleware(),
		middleware.OpenTelemetry(),
	}
	return append(mw, s.extra...)
}

func (s *Server) controller(h history.History, opts ...nav.Option) (*nav.Controller, error) {
	opts = append([]nav.Option{
		nav.WithFallback(s.cfg.Navigation.Fallback),
		nav.WithFallbackPolicy(s.cfg.FallbackPolicy()),
		nav.WithLogger(s.logger),
		nav.WithMiddleware(s.navMiddleware()...),
	}, opts...)
	return nav.New(s.table, s.registry, h, opts...)
}

func (s *Server) newSession(ctx context.Context, conn *live.Conn) (*nav.Controller, error) {
	return s.controller(conn, nav.WithSlotFactory(conn.Slot), nav.WithDetachedPopState())
}

// handleShell renders the first view server side so the page is usable
// before the live bridge connects.
func (s *Server) handleShell(w http.ResponseWriter, r *http.Request) {
	slot := &view.MemorySlot{}
	c, err := s.controller(history.NewMemory(r.URL.RequestURI()),
		nav.WithSlotFactory(func(t view.Target) view.Slot {
			slot = view.NewMemorySlot(t)
			return slot
		}))
	if err != nil {
		s.logger.Error("dev server: build controller", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	state, err := c.Start(r.Context())
	if err != nil {
		s.logger.Warn("dev server: initial navigation", "path", r.URL.Path, "error", err)
	}
	defer c.Close(context.Background())

	body, err := renderShell(s.cfg.Name, state.Route, slot.Content(), s.passthrough())
	if err != nil {
		s.logger.Error("dev server: render shell", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")
	_, _ = w.Write(body)
}

// passthrough lists the path prefixes the browser must load normally
// instead of navigating to.
func (s *Server) passthrough() []string {
	prefixes := append(s.cfg.ProxyPrefixes(), "/_routes", "/_nav")
	if s.cfg.Metrics.Enabled {
		prefixes = append(prefixes, s.cfg.Metrics.Path)
	}
	return prefixes
}

type routesResponse struct {
	Routes      []router.RouteDefinition `json:"routes"`
	Categories  []string                 `json:"categories"`
	Fallback    string                   `json:"fallback"`
	Diagnostics []string                 `json:"diagnostics"`
	MissingView []string                 `json:"missingViews"`
}

func (s *Server) handleRoutes(w http.ResponseWriter, r *http.Request) {
	resp := routesResponse{
		Routes:      s.table.AllRoutes(),
		Categories:  s.table.Categories(),
		Fallback:    s.cfg.Navigation.Fallback,
		Diagnostics: []string{},
		MissingView: s.registry.Missing(s.table),
	}
	for _, d := range s.table.Diagnostics() {
		resp.Diagnostics = append(resp.Diagnostics, d.String())
	}
	if resp.MissingView == nil {
		resp.MissingView = []string{}
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		s.logger.Error("dev server: encode routes", "error", err)
	}
}
