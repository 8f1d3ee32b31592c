package middleware

import (
	"context"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/vango-dev/toolbox/pkg/nav"
)

// MetricsConfig configures the Prometheus metrics middleware.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "toolbox").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for navigation duration.
	// Default: prometheus.DefBuckets
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// MetricsOption configures the Prometheus metrics middleware.
type MetricsOption func(*MetricsConfig)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Namespace = namespace
	}
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Subsystem = subsystem
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) MetricsOption {
	return func(c *MetricsConfig) {
		c.ConstLabels = labels
	}
}

// WithBuckets sets the histogram buckets.
func WithBuckets(buckets []float64) MetricsOption {
	return func(c *MetricsConfig) {
		c.Buckets = buckets
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) MetricsOption {
	return func(c *MetricsConfig) {
		c.Registry = registry
	}
}

func defaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Namespace: "toolbox",
		Buckets:   prometheus.DefBuckets,
		Registry:  prometheus.DefaultRegisterer,
	}
}

// Metrics holds the navigation collectors.
type Metrics struct {
	navigationsTotal   *prometheus.CounterVec
	navigationDuration *prometheus.HistogramVec
	viewFailures       *prometheus.CounterVec
	liveConnections    prometheus.Gauge
	wsErrors           *prometheus.CounterVec
}

// metrics on the default registerer are shared, since registering the
// same collector twice there panics.
var (
	defaultMetrics   *Metrics
	defaultMetricsMu sync.Mutex
)

// NewMetrics registers the navigation collectors with config.Registry.
func NewMetrics(opts ...MetricsOption) *Metrics {
	config := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&config)
	}

	if config.Registry == prometheus.DefaultRegisterer {
		defaultMetricsMu.Lock()
		defer defaultMetricsMu.Unlock()
		if defaultMetrics == nil {
			defaultMetrics = initMetrics(config)
		}
		return defaultMetrics
	}
	return initMetrics(config)
}

func initMetrics(config MetricsConfig) *Metrics {
	factory := promauto.With(config.Registry)

	return &Metrics{
		navigationsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "navigations_total",
			Help:        "Total number of navigations by mounted route and outcome",
			ConstLabels: config.ConstLabels,
		}, []string{"route", "outcome"}),

		navigationDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "navigation_duration_seconds",
			Help:        "Time from navigation request to mounted view in seconds",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}, []string{"route"}),

		viewFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "view_failures_total",
			Help:        "Total number of views that failed to load or mount",
			ConstLabels: config.ConstLabels,
		}, []string{"route"}),

		liveConnections: factory.NewGauge(prometheus.GaugeOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "live_connections",
			Help:        "Number of connected live navigation clients",
			ConstLabels: config.ConstLabels,
		}),

		wsErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "websocket_errors_total",
			Help:        "Total WebSocket errors by type",
			ConstLabels: config.ConstLabels,
		}, []string{"type"}),
	}
}

// Prometheus creates middleware that collects navigation metrics.
//
// Metrics collected:
//   - toolbox_navigations_total: Counter of navigations by route and outcome
//   - toolbox_navigation_duration_seconds: Histogram of navigation duration
//   - toolbox_view_failures_total: Counter of recovered view failures
//
// Example:
//
//	ctrl, err := nav.New(table, registry, hist,
//	    nav.WithMiddleware(middleware.Prometheus()),
//	)
//
//	// Expose metrics endpoint
//	http.Handle("/metrics", promhttp.Handler())
func Prometheus(opts ...MetricsOption) nav.Middleware {
	return NewMetrics(opts...).Middleware()
}

// Middleware returns navigation middleware recording into m.
func (m *Metrics) Middleware() nav.Middleware {
	return nav.MiddlewareFunc(func(ctx context.Context, req *nav.Request, next func() error) error {
		start := time.Now()
		err := next()

		route := req.Route
		if route == "" {
			route = "none"
		}
		outcome := string(req.Outcome)
		if outcome == "" {
			outcome = "aborted"
		}

		m.navigationsTotal.WithLabelValues(route, outcome).Inc()
		switch req.Outcome {
		case nav.OutcomeMounted, nav.OutcomeFallback, nav.OutcomeRecovered:
			m.navigationDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
		}
		if req.Outcome == nav.OutcomeRecovered {
			target := req.Target
			if target == "" {
				target = route
			}
			m.viewFailures.WithLabelValues(target).Inc()
		}
		return err
	})
}

// LiveConnected records a new live client.
func (m *Metrics) LiveConnected() {
	if m != nil {
		m.liveConnections.Inc()
	}
}

// LiveDisconnected records a live client going away.
func (m *Metrics) LiveDisconnected() {
	if m != nil {
		m.liveConnections.Dec()
	}
}

// WebSocketError records a WebSocket error by type.
func (m *Metrics) WebSocketError(errorType string) {
	if m != nil {
		m.wsErrors.WithLabelValues(errorType).Inc()
	}
}
