package nav

import (
	"log/slog"

	"github.com/vango-dev/toolbox/pkg/view"
)

// NavigateOptions configures a single navigation.
type NavigateOptions struct {
	// Replace overwrites the current history entry instead of pushing.
	Replace bool

	// Replay marks a navigation triggered by a back/forward gesture. The
	// history already points at the path, so nothing is pushed.
	Replay bool

	// Admitted runs once the navigation has taken its place in line,
	// before its view loads. Any Navigate started after that supersedes
	// it. It runs exactly once, also for navigations that end early.
	Admitted func()
}

// NavigateOption is a functional option for Navigate.
type NavigateOption func(*NavigateOptions)

// WithReplace replaces the current history entry instead of pushing.
func WithReplace() NavigateOption {
	return func(o *NavigateOptions) {
		o.Replace = true
	}
}

// WithHistoryReplay marks the navigation as a history traversal.
func WithHistoryReplay() NavigateOption {
	return func(o *NavigateOptions) {
		o.Replay = true
	}
}

// WithAdmitted sets NavigateOptions.Admitted.
func WithAdmitted(fn func()) NavigateOption {
	return func(o *NavigateOptions) {
		o.Admitted = fn
	}
}

// FallbackPolicy decides which path is recorded when the fallback view is
// mounted for an unmatched path.
type FallbackPolicy string

const (
	// FallbackReplace redirects to the fallback route's own path, so the
	// unmatched path is never recorded in history.
	FallbackReplace FallbackPolicy = "replace"

	// FallbackKeepPath keeps the unmatched path in the address bar and
	// renders the fallback view under it.
	FallbackKeepPath FallbackPolicy = "keep"
)

// ParseFallbackPolicy parses a policy name. An empty name means replace.
func ParseFallbackPolicy(s string) (FallbackPolicy, bool) {
	switch FallbackPolicy(s) {
	case "", FallbackReplace:
		return FallbackReplace, true
	case FallbackKeepPath:
		return FallbackKeepPath, true
	default:
		return FallbackReplace, false
	}
}

// Option configures a Controller.
type Option func(*Controller)

// DefaultFallback is the route name mounted when nothing matches.
const DefaultFallback = "NotFound"

// WithFallback sets the name of the fallback route.
func WithFallback(name string) Option {
	return func(c *Controller) {
		c.fallback = name
	}
}

// WithFallbackPolicy sets the fallback history policy.
func WithFallbackPolicy(p FallbackPolicy) Option {
	return func(c *Controller) {
		c.policy = p
	}
}

// WithLogger sets the controller logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Controller) {
		c.logger = l
	}
}

// WithMiddleware appends navigation middleware.
func WithMiddleware(mw ...Middleware) Option {
	return func(c *Controller) {
		c.middleware = append(c.middleware, mw...)
	}
}

// WithSlotFactory sets how slots are created for mounted views.
// The default keeps rendered content in a view.MemorySlot.
func WithSlotFactory(fn func(view.Target) view.Slot) Option {
	return func(c *Controller) {
		c.newSlot = fn
	}
}

// WithDetachedPopState runs history traversals on their own goroutine.
// The pop-state handler returns once the navigation is admitted, so an
// adapter that delivers events from a read loop keeps reading while a
// view loads, and a later request can supersede it.
func WithDetachedPopState() Option {
	return func(c *Controller) {
		c.detachPopState = true
	}
}
