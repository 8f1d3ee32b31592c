// Package middleware provides observability middleware for the
// navigation controller.
//
// This package includes:
//   - OpenTelemetry tracing, one span per navigation
//   - Prometheus navigation metrics
//   - Structured navigation logging
//
// # OpenTelemetry Middleware
//
//	ctrl, err := nav.New(table, registry, hist,
//	    nav.WithMiddleware(middleware.OpenTelemetry()),
//	)
//
// The span is installed on the navigation context, so view loaders can
// propagate it to the upstream APIs they call.
//
// # Prometheus Metrics
//
//   - toolbox_navigations_total{route,outcome}
//   - toolbox_navigation_duration_seconds{route}
//   - toolbox_view_failures_total{route}
//   - toolbox_live_connections
//   - toolbox_websocket_errors_total{type}
//
// Expose them with promhttp:
//
//	http.Handle("/metrics", promhttp.Handler())
//
// # Ordering
//
// Middleware runs first to last. Put Logger outermost so its duration
// covers the others.
package middleware
