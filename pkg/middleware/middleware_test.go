package middleware

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/vango-dev/toolbox/internal/logging"
	"github.com/vango-dev/toolbox/pkg/history"
	"github.com/vango-dev/toolbox/pkg/nav"
	"github.com/vango-dev/toolbox/pkg/router"
	"github.com/vango-dev/toolbox/pkg/view"
)

func newController(t *testing.T, mw ...nav.Middleware) *nav.Controller {
	t.Helper()
	table := router.MustNewTable([]router.RouteDefinition{
		{Path: "/", Name: "Home"},
		{Path: "/oil-price", Name: "OilPrice"},
		{Path: "/broken", Name: "Broken"},
		{Path: "/not-found", Name: "NotFound"},
	}, router.WithTableLogger(logging.NewNop()))

	registry := router.NewRegistry(router.WithRegistryLogger(logging.NewNop()))
	registry.RegisterView("Home", func() view.View { return view.Static("home") })
	registry.RegisterView("OilPrice", func() view.View { return view.Static("oil") })
	registry.RegisterView("NotFound", func() view.View { return view.Static("404") })
	registry.Register("Broken", func(ctx context.Context) (view.View, error) {
		return nil, errors.New("load failed")
	})

	c, err := nav.New(table, registry, history.NewMemory("/"),
		nav.WithLogger(logging.NewNop()),
		nav.WithMiddleware(mw...),
	)
	if err != nil {
		t.Fatalf("nav.New: %v", err)
	}
	t.Cleanup(func() { _ = c.Close(context.Background()) })
	return c
}

func metricCounterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()
	var m dto.Metric
	if err := c.Write(&m); err != nil {
		t.Fatalf("counter Write() error: %v", err)
	}
	if m.Counter == nil {
		t.Fatal("expected counter metric to have Counter field")
	}
	return m.GetCounter().GetValue()
}

func metricGaugeValue(t *testing.T, g prometheus.Gauge) float64 {
	t.Helper()
	var m dto.Metric
	if err := g.Write(&m); err != nil {
		t.Fatalf("gauge Write() error: %v", err)
	}
	return m.GetGauge().GetValue()
}

func metricHistogramCount(t *testing.T, o prometheus.Observer) uint64 {
	t.Helper()
	metric, ok := o.(prometheus.Metric)
	if !ok {
		t.Fatalf("observer %T does not implement prometheus.Metric", o)
	}
	var m dto.Metric
	if err := metric.Write(&m); err != nil {
		t.Fatalf("histogram Write() error: %v", err)
	}
	if m.Histogram == nil {
		t.Fatal("expected histogram metric to have Histogram field")
	}
	return m.GetHistogram().GetSampleCount()
}

func TestPrometheusRecordsOutcomes(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(WithRegistry(reg))
	c := newController(t, m.Middleware())
	ctx := context.Background()

	if _, err := c.Start(ctx); err != nil {
		t.Fatal(err)
	}
	c.Navigate(ctx, "/oil-price")
	c.Navigate(ctx, "/oil-price/")
	c.Navigate(ctx, "/nope")
	c.Navigate(ctx, "/broken")
	c.Navigate(ctx, "https://example.com")

	tests := []struct {
		route, outcome string
		want           float64
	}{
		{"Home", "mounted", 1},
		{"OilPrice", "mounted", 1},
		{"OilPrice", "noop", 1},
		{"NotFound", "fallback", 1},
		{"NotFound", "recovered", 1},
		{"none", "rejected", 1},
	}
	for _, tt := range tests {
		got := metricCounterValue(t, m.navigationsTotal.WithLabelValues(tt.route, tt.outcome))
		if got != tt.want {
			t.Errorf("navigations_total{%s,%s} = %v, want %v", tt.route, tt.outcome, got, tt.want)
		}
	}

	if got := metricCounterValue(t, m.viewFailures.WithLabelValues("Broken")); got != 1 {
		t.Errorf("view_failures_total{Broken} = %v, want 1", got)
	}
	if got := metricHistogramCount(t, m.navigationDuration.WithLabelValues("OilPrice")); got != 1 {
		t.Errorf("duration samples for OilPrice = %d, want 1 (noop not observed)", got)
	}
}

func TestPrometheusMetricNames(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(WithRegistry(reg), WithConstLabels(prometheus.Labels{"app": "test"}))
	c := newController(t, m.Middleware())
	if _, err := c.Start(context.Background()); err != nil {
		t.Fatal(err)
	}
	m.LiveConnected()

	families, err := reg.Gather()
	if err != nil {
		t.Fatal(err)
	}
	names := make(map[string]bool)
	for _, f := range families {
		names[f.GetName()] = true
	}
	for _, want := range []string{
		"toolbox_navigations_total",
		"toolbox_navigation_duration_seconds",
		"toolbox_live_connections",
	} {
		if !names[want] {
			t.Errorf("missing metric %s in %v", want, names)
		}
	}
}

func TestLiveConnectionGauge(t *testing.T) {
	m := NewMetrics(WithRegistry(prometheus.NewRegistry()))
	m.LiveConnected()
	m.LiveConnected()
	m.LiveDisconnected()
	if got := metricGaugeValue(t, m.liveConnections); got != 1 {
		t.Errorf("live_connections = %v, want 1", got)
	}
	m.WebSocketError("read")
	if got := metricCounterValue(t, m.wsErrors.WithLabelValues("read")); got != 1 {
		t.Errorf("websocket_errors_total{read} = %v, want 1", got)
	}

	var nilMetrics *Metrics
	nilMetrics.LiveConnected()
	nilMetrics.WebSocketError("read")
}

func TestNewMetricsSharesDefaultRegistry(t *testing.T) {
	a := NewMetrics()
	b := NewMetrics()
	if a != b {
		t.Error("default-registry metrics should be shared")
	}
}

func TestLoggerMiddleware(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.New(slog.LevelDebug, &buf)
	c := newController(t, Logger(logger))
	ctx := context.Background()

	if _, err := c.Start(ctx); err != nil {
		t.Fatal(err)
	}
	c.Navigate(ctx, "/broken")

	out := buf.String()
	for _, want := range []string{
		"msg=navigation",
		"route=Home",
		"outcome=mounted",
		`msg="navigation recovered"`,
		"outcome=recovered",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q:\n%s", want, out)
		}
	}
}
