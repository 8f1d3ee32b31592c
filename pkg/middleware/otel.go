package middleware

import (
	"context"
	"fmt"
	"time"

	"github.com/vango-dev/toolbox/pkg/nav"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const defaultTracerName = "toolbox"

// OTelConfig configures the OpenTelemetry middleware.
type OTelConfig struct {
	// TracerName is the name of the tracer (default: "toolbox").
	TracerName string

	// TracerProvider overrides the global provider.
	TracerProvider trace.TracerProvider

	// Filter determines which navigations to trace.
	// If nil, all navigations are traced.
	Filter func(req *nav.Request) bool

	// AttributeExtractor adds custom attributes to each span.
	AttributeExtractor func(req *nav.Request) []attribute.KeyValue

	tracer trace.Tracer
}

// OTelOption configures the OpenTelemetry middleware.
type OTelOption func(*OTelConfig)

// WithTracerName sets the tracer name.
func WithTracerName(name string) OTelOption {
	return func(c *OTelConfig) {
		c.TracerName = name
	}
}

// WithTracerProvider sets the tracer provider.
func WithTracerProvider(tp trace.TracerProvider) OTelOption {
	return func(c *OTelConfig) {
		c.TracerProvider = tp
	}
}

// WithNavigationFilter sets a filter function for navigations.
func WithNavigationFilter(filter func(req *nav.Request) bool) OTelOption {
	return func(c *OTelConfig) {
		c.Filter = filter
	}
}

// WithAttributeExtractor sets a custom attribute extractor.
func WithAttributeExtractor(extractor func(req *nav.Request) []attribute.KeyValue) OTelOption {
	return func(c *OTelConfig) {
		c.AttributeExtractor = extractor
	}
}

// OpenTelemetry creates middleware that traces every navigation.
//
// The span starts before resolving and ends once the view is mounted (or
// the navigation is superseded). It is installed on the request context,
// so view loaders and views inherit the trace:
//
//	func(ctx context.Context) (view.View, error) {
//	    req, _ := http.NewRequestWithContext(ctx, "GET", upstream, nil)
//	    ...
//	}
//
// Without a configured provider the global one is used; set it in main():
//
//	otel.SetTracerProvider(tp)
func OpenTelemetry(opts ...OTelOption) nav.Middleware {
	config := OTelConfig{TracerName: defaultTracerName}
	for _, opt := range opts {
		opt(&config)
	}

	if config.TracerProvider != nil {
		config.tracer = config.TracerProvider.Tracer(config.TracerName)
	} else {
		config.tracer = otel.Tracer(config.TracerName)
	}

	return nav.MiddlewareFunc(func(ctx context.Context, req *nav.Request, next func() error) error {
		if config.Filter != nil && !config.Filter(req) {
			return next()
		}

		attrs := []attribute.KeyValue{
			attribute.String("toolbox.nav.raw_path", req.RawPath),
			attribute.Bool("toolbox.nav.replay", req.Replay),
		}
		if config.AttributeExtractor != nil {
			attrs = append(attrs, config.AttributeExtractor(req)...)
		}

		spanCtx, span := config.tracer.Start(
			req.Context(),
			formatSpanName(req),
			trace.WithSpanKind(trace.SpanKindInternal),
			trace.WithAttributes(attrs...),
			trace.WithTimestamp(time.Now()),
		)
		defer span.End()

		req.SetContext(spanCtx)

		err := next()

		span.SetAttributes(
			attribute.String("toolbox.nav.path", req.Path),
			attribute.String("toolbox.nav.route", req.Route),
			attribute.String("toolbox.nav.outcome", string(req.Outcome)),
		)
		if req.Err != nil {
			span.RecordError(req.Err)
		}
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		} else {
			span.SetStatus(codes.Ok, "")
		}
		return err
	})
}

// SpanFromContext retrieves the navigation span from a view context.
// Returns nil if the context carries no recording span.
func SpanFromContext(ctx context.Context) trace.Span {
	span := trace.SpanFromContext(ctx)
	if !span.SpanContext().IsValid() {
		return nil
	}
	return span
}

func formatSpanName(req *nav.Request) string {
	path := req.RawPath
	if path == "" {
		path = "/"
	}
	return fmt.Sprintf("navigate %s", path)
}
