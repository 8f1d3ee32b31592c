package nav

import "context"

// Outcome describes how a navigation ended.
type Outcome string

const (
	OutcomeMounted    Outcome = "mounted"
	OutcomeNoop       Outcome = "noop"
	OutcomeFallback   Outcome = "fallback"
	OutcomeRecovered  Outcome = "recovered"
	OutcomeSuperseded Outcome = "superseded"
	OutcomeRejected   Outcome = "rejected"
)

// Request describes a navigation as it moves through the middleware chain.
// Path, Route, Outcome and Err are filled in by the controller and are
// only meaningful after next() returns.
type Request struct {
	// RawPath is the path as requested.
	RawPath string

	// Replace and Replay mirror the navigate options.
	Replace bool
	Replay  bool

	// Path is the canonical path that was recorded.
	Path string

	// Route is the name of the route whose view was mounted.
	Route string

	// Target is the name of the matched route, empty on a miss.
	Target string

	// Outcome is how the navigation ended.
	Outcome Outcome

	// Err is the recovered error (route miss or view failure), if any.
	Err error

	ctx   context.Context
	admit func()
}

// Context returns the context the navigation runs with.
func (r *Request) Context() context.Context {
	if r.ctx == nil {
		return context.Background()
	}
	return r.ctx
}

// SetContext replaces the context handed to view loaders and views.
// Middleware calls it before next to propagate values such as spans.
func (r *Request) SetContext(ctx context.Context) {
	r.ctx = ctx
}

// Middleware wraps navigations.
type Middleware interface {
	// Handle processes the navigation and calls next to run it.
	// Returning an error without calling next aborts the navigation.
	Handle(ctx context.Context, req *Request, next func() error) error
}

// MiddlewareFunc is a function adapter for Middleware.
type MiddlewareFunc func(ctx context.Context, req *Request, next func() error) error

// Handle implements Middleware.
func (f MiddlewareFunc) Handle(ctx context.Context, req *Request, next func() error) error {
	return f(ctx, req, next)
}

// ComposeMiddleware builds a chain from mw and a final handler.
// Middleware is executed in order (first to last), with the handler at the end.
func ComposeMiddleware(ctx context.Context, req *Request, mw []Middleware, handler func() error) error {
	chain := handler
	for i := len(mw) - 1; i >= 0; i-- {
		m := mw[i]
		next := chain
		chain = func() error {
			return m.Handle(ctx, req, next)
		}
	}
	return chain()
}

// Chain creates a middleware that combines multiple middleware in order.
func Chain(middleware ...Middleware) Middleware {
	return MiddlewareFunc(func(ctx context.Context, req *Request, next func() error) error {
		return ComposeMiddleware(ctx, req, middleware, next)
	})
}
