package middleware

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/vango-dev/toolbox/pkg/nav"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// testProvider hands out spans with a valid span context so propagation
// can be observed without an SDK.
type testProvider struct {
	trace.TracerProvider
	tracer *testTracer
}

func newTestProvider() *testProvider {
	return &testProvider{tracer: &testTracer{}}
}

func (p *testProvider) Tracer(name string, opts ...trace.TracerOption) trace.Tracer {
	return p.tracer
}

type testTracer struct {
	trace.Tracer

	mu    sync.Mutex
	spans []*testSpan
}

func (tr *testTracer) Start(ctx context.Context, name string, opts ...trace.SpanStartOption) (context.Context, trace.Span) {
	cfg := trace.NewSpanStartConfig(opts...)
	tr.mu.Lock()
	defer tr.mu.Unlock()
	span := &testSpan{
		name:  name,
		attrs: cfg.Attributes(),
		sc: trace.NewSpanContext(trace.SpanContextConfig{
			TraceID: trace.TraceID{1},
			SpanID:  trace.SpanID{byte(len(tr.spans) + 1)},
		}),
	}
	tr.spans = append(tr.spans, span)
	return trace.ContextWithSpan(ctx, span), span
}

type testSpan struct {
	trace.Span

	name   string
	sc     trace.SpanContext
	attrs  []attribute.KeyValue
	errs   []error
	status codes.Code
	ended  bool
}

func (s *testSpan) SpanContext() trace.SpanContext                { return s.sc }
func (s *testSpan) IsRecording() bool                             { return !s.ended }
func (s *testSpan) End(...trace.SpanEndOption)                    { s.ended = true }
func (s *testSpan) SetAttributes(kv ...attribute.KeyValue)        { s.attrs = append(s.attrs, kv...) }
func (s *testSpan) SetStatus(code codes.Code, _ string)           { s.status = code }
func (s *testSpan) RecordError(err error, _ ...trace.EventOption) { s.errs = append(s.errs, err) }

func (s *testSpan) attr(key string) (attribute.Value, bool) {
	for _, kv := range s.attrs {
		if string(kv.Key) == key {
			return kv.Value, true
		}
	}
	return attribute.Value{}, false
}

func TestOpenTelemetryStartsSpanPerNavigation(t *testing.T) {
	tp := newTestProvider()
	c := newController(t, OpenTelemetry(
		WithTracerProvider(tp),
		WithAttributeExtractor(func(req *nav.Request) []attribute.KeyValue {
			return []attribute.KeyValue{attribute.String("test.attr", "ok")}
		}),
	))
	ctx := context.Background()

	if _, err := c.Start(ctx); err != nil {
		t.Fatal(err)
	}
	if _, err := c.Navigate(ctx, "/oil-price/"); err != nil {
		t.Fatal(err)
	}

	spans := tp.tracer.spans
	if len(spans) != 2 {
		t.Fatalf("spans = %d, want 2", len(spans))
	}
	s := spans[1]
	if s.name != "navigate /oil-price/" {
		t.Errorf("span name = %q", s.name)
	}
	if !s.ended || s.status != codes.Ok {
		t.Errorf("span ended=%v status=%v", s.ended, s.status)
	}
	if v, _ := s.attr("toolbox.nav.route"); v.AsString() != "OilPrice" {
		t.Errorf("route attr = %q", v.AsString())
	}
	if v, _ := s.attr("toolbox.nav.path"); v.AsString() != "/oil-price" {
		t.Errorf("path attr = %q", v.AsString())
	}
	if v, _ := s.attr("test.attr"); v.AsString() != "ok" {
		t.Errorf("custom attr = %q", v.AsString())
	}
	if v, _ := s.attr("toolbox.nav.replay"); v.AsBool() {
		t.Error("link navigation marked as replay")
	}
}

func TestOpenTelemetryRecordsErrors(t *testing.T) {
	tp := newTestProvider()
	c := newController(t, OpenTelemetry(WithTracerProvider(tp)))
	ctx := context.Background()

	c.Navigate(ctx, "/broken")
	if _, err := c.Navigate(ctx, "https://example.com/"); err == nil {
		t.Fatal("expected rejection")
	}

	spans := tp.tracer.spans
	if len(spans) != 2 {
		t.Fatalf("spans = %d, want 2", len(spans))
	}
	if len(spans[0].errs) != 1 || spans[0].status != codes.Ok {
		t.Errorf("recovered span errs=%v status=%v", spans[0].errs, spans[0].status)
	}
	if !errors.Is(spans[1].errs[0], nav.ErrInvalidTarget) || spans[1].status != codes.Error {
		t.Errorf("rejected span errs=%v status=%v", spans[1].errs, spans[1].status)
	}
}

func TestOpenTelemetryPropagatesToViews(t *testing.T) {
	tp := newTestProvider()
	var seen trace.Span
	capture := nav.MiddlewareFunc(func(ctx context.Context, req *nav.Request, next func() error) error {
		seen = SpanFromContext(req.Context())
		return next()
	})
	c := newController(t, OpenTelemetry(WithTracerProvider(tp)), capture)

	if _, err := c.Navigate(context.Background(), "/oil-price"); err != nil {
		t.Fatal(err)
	}
	if seen == nil || seen != trace.Span(tp.tracer.spans[0]) {
		t.Errorf("inner middleware saw span %v, want navigation span", seen)
	}

	if SpanFromContext(context.Background()) != nil {
		t.Error("SpanFromContext on a bare context should be nil")
	}
}

func TestOpenTelemetryFilter(t *testing.T) {
	tp := newTestProvider()
	c := newController(t, OpenTelemetry(
		WithTracerProvider(tp),
		WithNavigationFilter(func(req *nav.Request) bool { return !req.Replay }),
	))
	ctx := context.Background()

	c.Start(ctx)
	c.Navigate(ctx, "/oil-price")
	if len(tp.tracer.spans) != 1 {
		t.Errorf("spans = %d, want 1 (replay filtered)", len(tp.tracer.spans))
	}
}
