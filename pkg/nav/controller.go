package nav

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	toolerrors "github.com/vango-dev/toolbox/internal/errors"
	"github.com/vango-dev/toolbox/pkg/history"
	"github.com/vango-dev/toolbox/pkg/routepath"
	"github.com/vango-dev/toolbox/pkg/router"
	"github.com/vango-dev/toolbox/pkg/view"
)

// Controller errors.
var (
	ErrSuperseded    = errors.New("navigation superseded")
	ErrClosed        = errors.New("navigation controller closed")
	ErrInvalidTarget = errors.New("invalid navigation target")
)

// Controller orchestrates navigations and owns the navigation state.
// All methods are safe for concurrent use; navigations are serialized.
//
// Views may call State, Phase and Slot while mounting. A view that
// redirects must call Navigate from another goroutine; the redirect then
// supersedes or follows the navigation that mounted it.
type Controller struct {
	table    *router.Table
	matcher  *router.Matcher
	registry *router.Registry
	history  history.History

	fallback   string
	policy     FallbackPolicy
	logger     *slog.Logger
	middleware []Middleware
	newSlot    func(view.Target) view.Slot

	detachPopState bool
	traversals     sync.WaitGroup

	// mountMu serializes view lifecycle calls and history writes. It is
	// taken before mu and never while mu is held.
	mountMu sync.Mutex

	// mu guards the fields below. View code never runs under it.
	mu          sync.Mutex
	phase       Phase
	seq         uint64
	cur         mounted
	cancelLoad  context.CancelFunc
	unsubscribe func()
	closed      bool

	obsMu     sync.Mutex
	nextObsID int
	observers map[int]func(State)
	listeners map[int]func(Event)
}

// mounted is the live state together with the view it describes.
type mounted struct {
	state State
	view  view.View
	slot  view.Slot
}

// plan is the outcome of the resolving phase.
type plan struct {
	route  router.RouteDefinition
	target string
	path   string
	query  string
	params map[string]string

	// miss is set when route is the fallback because nothing matched.
	miss error
}

type historyOp int

const (
	historyNone historyOp = iota
	historyPush
	historyReplace
)

// New creates a controller. The fallback route must exist in table.
func New(table *router.Table, registry *router.Registry, h history.History, opts ...Option) (*Controller, error) {
	c := &Controller{
		table:     table,
		matcher:   router.NewMatcher(table),
		registry:  registry,
		history:   h,
		fallback:  DefaultFallback,
		policy:    FallbackReplace,
		logger:    slog.Default(),
		observers: make(map[int]func(State)),
		listeners: make(map[int]func(Event)),
		newSlot: func(t view.Target) view.Slot {
			return view.NewMemorySlot(t)
		},
	}
	for _, opt := range opts {
		opt(c)
	}

	if _, ok := table.Lookup(c.fallback); !ok {
		return nil, toolerrors.New("N001").
			WithDetail("fallback route %q is not in the route table", c.fallback).
			Wrap(router.ErrRouteNotFound)
	}
	return c, nil
}

// Start subscribes to history traversals and mounts the view for the
// path history currently points at.
func (c *Controller) Start(ctx context.Context) (State, error) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return State{}, ErrClosed
	}
	subscribe := c.unsubscribe == nil
	c.mu.Unlock()

	if subscribe {
		unsub := c.history.OnPopState(func(path string) {
			c.onPopState(ctx, path)
		})
		c.mu.Lock()
		c.unsubscribe = unsub
		c.mu.Unlock()
	}

	return c.Navigate(ctx, c.history.CurrentPath(), WithHistoryReplay())
}

func (c *Controller) onPopState(ctx context.Context, path string) {
	if !c.detachPopState {
		c.traverse(ctx, path, nil)
		return
	}
	admitted := make(chan struct{})
	c.traversals.Add(1)
	go func() {
		defer c.traversals.Done()
		c.traverse(ctx, path, func() { close(admitted) })
	}()
	<-admitted
}

func (c *Controller) traverse(ctx context.Context, path string, admitted func()) {
	if _, err := c.Navigate(ctx, path, WithHistoryReplay(), WithAdmitted(admitted)); err != nil &&
		!errors.Is(err, ErrSuperseded) && !errors.Is(err, ErrClosed) {
		c.logger.Warn("navigation: history traversal failed", "path", path, "error", err)
	}
}

// Close unsubscribes from history, discards any in-flight navigation and
// unmounts the current view. It waits for detached history traversals.
func (c *Controller) Close(ctx context.Context) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	c.seq++
	if c.cancelLoad != nil {
		c.cancelLoad()
		c.cancelLoad = nil
	}
	unsub := c.unsubscribe
	c.unsubscribe = nil
	c.mu.Unlock()

	if unsub != nil {
		unsub()
	}
	c.traversals.Wait()

	c.mountMu.Lock()
	defer c.mountMu.Unlock()
	c.mu.Lock()
	old := c.cur.view
	c.cur.view = nil
	c.mu.Unlock()
	if old != nil {
		return protect(func() error { return old.Unmount(ctx) })
	}
	return nil
}

// Navigate moves the application to path.
//
// It returns the state after the navigation. A route miss or a failing
// view is recovered by mounting the fallback view and is not an error;
// errors are returned only for rejected targets, superseded
// navigations and a closed controller.
func (c *Controller) Navigate(ctx context.Context, path string, opts ...NavigateOption) (State, error) {
	var o NavigateOptions
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	var once sync.Once
	req := &Request{
		RawPath: path,
		Replace: o.Replace,
		Replay:  o.Replay,
		ctx:     ctx,
		admit: func() {
			if o.Admitted != nil {
				once.Do(o.Admitted)
			}
		},
	}
	defer req.admit()

	var st State
	err := ComposeMiddleware(ctx, req, c.middleware, func() error {
		var err error
		st, err = c.navigate(req.Context(), req)
		return err
	})
	if err != nil {
		return c.State(), err
	}
	return st, nil
}

// loaded carries the views fetched outside the locks.
type loaded struct {
	view view.View
	err  error

	// fallback is preloaded when the primary load failed.
	fallback    view.View
	fallbackErr error
	preloaded   bool
}

// navigate holds c.mu only for bookkeeping. View loads run without any
// lock; mounting runs under c.mountMu so commits never interleave, which
// lets views read the controller while they mount.
func (c *Controller) navigate(ctx context.Context, req *Request) (State, error) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		req.Outcome = OutcomeRejected
		return State{}, ErrClosed
	}

	c.seq++
	seq := c.seq
	if c.cancelLoad != nil {
		c.cancelLoad()
		c.cancelLoad = nil
	}
	c.phase = PhaseResolving

	p, err := c.resolve(req.RawPath)
	if err != nil {
		c.phase = PhaseIdle
		c.mu.Unlock()
		req.Outcome = OutcomeRejected
		req.Err = err
		return State{}, err
	}
	req.Path, req.Route, req.Target = p.path, p.route.Name, p.target

	if c.cur.view != nil && c.cur.state.Route == p.route.Name && c.cur.state.Path == p.path {
		st := c.cur.state.clone()
		c.phase = PhaseIdle
		c.mu.Unlock()
		req.Outcome = OutcomeNoop
		return st, nil
	}

	loadCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	c.cancelLoad = cancel
	c.phase = PhaseMounting
	c.mu.Unlock()
	req.admit()

	var l loaded
	l.view, l.err = c.load(loadCtx, p.route)
	if l.err != nil && p.route.Name != c.fallback && !c.stale(seq) {
		fb, _ := c.table.Lookup(c.fallback)
		l.fallback, l.fallbackErr = c.load(loadCtx, fb)
		l.preloaded = true
	}

	c.mountMu.Lock()
	c.mu.Lock()
	if seq != c.seq || c.closed {
		c.mu.Unlock()
		c.mountMu.Unlock()
		req.Outcome = OutcomeSuperseded
		c.logger.Debug("navigation: superseded before mount", "path", p.path, "route", p.route.Name)
		c.dispatch([]Event{{Kind: EventSuperseded, Path: p.path, Route: p.route.Name, Time: time.Now()}})
		return State{}, toolerrors.New("N006").WithDetail("navigation to %q", p.path).Wrap(ErrSuperseded)
	}
	old := c.cur
	c.cur.view = nil
	c.mu.Unlock()

	next, events := c.commit(ctx, loadCtx, req, seq, p, old, l)

	c.mu.Lock()
	c.cur = next
	if seq == c.seq {
		c.cancelLoad = nil
		c.phase = PhaseIdle
	}
	st := next.state.clone()
	c.mu.Unlock()
	c.mountMu.Unlock()

	c.dispatch(events)
	c.notify(st)
	return st, nil
}

func (c *Controller) stale(seq uint64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return seq != c.seq || c.closed
}

func (c *Controller) load(ctx context.Context, route router.RouteDefinition) (view.View, error) {
	var v view.View
	err := protect(func() error {
		var err error
		v, err = c.registry.Load(ctx, route.ViewKey())
		return err
	})
	return v, err
}

// resolve canonicalizes and matches raw, substituting the fallback on a miss.
// Must be called with c.mu held.
func (c *Controller) resolve(raw string) (plan, error) {
	if isAbsoluteURL(raw) {
		return plan{}, toolerrors.New("N007").WithDetail("%q", raw).Wrap(ErrInvalidTarget)
	}

	m, err := c.matcher.Match(raw)
	if err == nil {
		return plan{
			route:  m.Route,
			target: m.Route.Name,
			path:   m.Path,
			query:  m.Query,
			params: m.Params,
		}, nil
	}

	fb, _ := c.table.Lookup(c.fallback)
	p := plan{route: fb, path: fb.Path, miss: err}
	if res, cerr := routepath.CanonicalizePath(raw); cerr == nil {
		p.query = res.Query
		if c.policy == FallbackKeepPath {
			p.path = res.Path
		}
	}
	return p, nil
}

// commit unmounts old, mounts the loaded view and records history. It
// never returns without a mounted view. Must be called with c.mountMu
// held and c.mu released.
func (c *Controller) commit(ctx, loadCtx context.Context, req *Request, seq uint64, p plan, old mounted, l loaded) (mounted, []Event) {
	var events []Event
	emit := func(kind EventKind, route string, err error) {
		events = append(events, Event{Kind: kind, Path: p.path, Route: route, Err: err, Time: time.Now()})
	}

	outcome := OutcomeMounted
	if p.miss != nil {
		outcome = OutcomeFallback
		req.Err = p.miss
		emit(EventRouteNotFound, p.route.Name, p.miss)
		c.logger.Info("navigation: route not found, mounting fallback",
			"path", req.RawPath, "fallback", p.route.Name)
	}

	// Unmount first so two views are never interactive at the same time.
	if old.view != nil {
		if err := protect(func() error { return old.view.Unmount(ctx) }); err != nil {
			emit(EventUnmountFailure, old.state.Route, err)
			c.logger.Warn("navigation: unmount failed", "route", old.state.Route, "error", err)
		}
	}

	route := p.route
	v := l.view
	slot := c.newSlot(view.Target{Route: route.Name, Path: p.path, Query: p.query})
	err := l.err
	if err == nil {
		err = protect(func() error { return v.Mount(ctx, slot) })
	}

	degraded := false
	if err != nil {
		outcome = OutcomeRecovered
		req.Err = err
		emit(EventViewFailure, route.Name, err)
		c.logger.Error("navigation: view failed, mounting fallback",
			"path", p.path, "route", route.Name, "error", err)

		route, v, slot, degraded = c.mountFallback(ctx, loadCtx, p, route, l, emit)
	}

	switch c.historyOpFor(req, p) {
	case historyPush:
		if err := c.history.Push(p.path); err != nil {
			emit(EventHistoryFailure, route.Name, err)
			c.logger.Warn("navigation: history push failed", "path", p.path, "error", err)
		}
	case historyReplace:
		if err := c.history.Replace(p.path); err != nil {
			emit(EventHistoryFailure, route.Name, err)
			c.logger.Warn("navigation: history replace failed", "path", p.path, "error", err)
		}
	}

	req.Route = route.Name
	req.Outcome = outcome

	c.logger.Debug("navigation: committed",
		"path", p.path, "route", route.Name, "outcome", outcome, "replay", req.Replay)
	return mounted{
		state: State{
			Route:    route.Name,
			Path:     p.path,
			Query:    p.query,
			Params:   p.params,
			Target:   p.target,
			Degraded: degraded,
			Seq:      seq,
		},
		view: v,
		slot: slot,
	}, events
}

// mountFallback mounts the fallback view after failed, and the built-in
// error view if the fallback fails too. The fallback is loaded with
// loadCtx unless it was preloaded, so a newer navigation can cancel it.
func (c *Controller) mountFallback(ctx, loadCtx context.Context, p plan, failed router.RouteDefinition, l loaded, emit func(EventKind, string, error)) (router.RouteDefinition, view.View, view.Slot, bool) {
	fb, _ := c.table.Lookup(c.fallback)
	slot := c.newSlot(view.Target{Route: fb.Name, Path: p.path, Query: p.query})

	if failed.Name != fb.Name {
		v, err := l.fallback, l.fallbackErr
		if !l.preloaded {
			v, err = c.load(loadCtx, fb)
		}
		if err == nil {
			err = protect(func() error { return v.Mount(ctx, slot) })
		}
		if err == nil {
			return fb, v, slot, false
		}
		emit(EventFallbackFailure, fb.Name, err)
		c.logger.Error("navigation: fallback view failed", "route", fb.Name, "error", err)
	}

	v := lastResortView()
	if err := protect(func() error { return v.Mount(ctx, slot) }); err != nil {
		c.logger.Error("navigation: error view could not render", "error", err)
	}
	return fb, v, slot, true
}

// historyOpFor decides how p is recorded. A path already current in
// history is never pushed again, and a replay only corrects the entry it
// came from. Under FallbackReplace p.path is already the fallback path, so
// the unmatched path is never recorded.
func (c *Controller) historyOpFor(req *Request, p plan) historyOp {
	rest, _ := routepath.SplitFragment(c.history.CurrentPath())
	current, _ := routepath.SplitPathAndQuery(rest)
	if current == p.path {
		return historyNone
	}
	if req.Replay || req.Replace {
		return historyReplace
	}
	return historyPush
}

// State returns a snapshot of the navigation state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cur.state.clone()
}

// Phase returns the current phase.
func (c *Controller) Phase() Phase {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.phase
}

// Slot returns the slot of the mounted view, or nil before the first
// navigation.
func (c *Controller) Slot() view.Slot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cur.slot
}

// Table returns the route table the controller navigates.
func (c *Controller) Table() *router.Table {
	return c.table
}

// Subscribe registers fn to receive a snapshot after every committed
// navigation. The returned function removes it.
func (c *Controller) Subscribe(fn func(State)) func() {
	c.obsMu.Lock()
	defer c.obsMu.Unlock()
	id := c.nextObsID
	c.nextObsID++
	c.observers[id] = fn
	return func() {
		c.obsMu.Lock()
		defer c.obsMu.Unlock()
		delete(c.observers, id)
	}
}

// OnEvent registers fn to receive diagnostic events.
func (c *Controller) OnEvent(fn func(Event)) func() {
	c.obsMu.Lock()
	defer c.obsMu.Unlock()
	id := c.nextObsID
	c.nextObsID++
	c.listeners[id] = fn
	return func() {
		c.obsMu.Lock()
		defer c.obsMu.Unlock()
		delete(c.listeners, id)
	}
}

func (c *Controller) notify(st State) {
	c.obsMu.Lock()
	fns := make([]func(State), 0, len(c.observers))
	for id := 0; id < c.nextObsID; id++ {
		if fn, ok := c.observers[id]; ok {
			fns = append(fns, fn)
		}
	}
	c.obsMu.Unlock()
	for _, fn := range fns {
		fn(st.clone())
	}
}

func (c *Controller) dispatch(events []Event) {
	if len(events) == 0 {
		return
	}
	c.obsMu.Lock()
	fns := make([]func(Event), 0, len(c.listeners))
	for id := 0; id < c.nextObsID; id++ {
		if fn, ok := c.listeners[id]; ok {
			fns = append(fns, fn)
		}
	}
	c.obsMu.Unlock()
	for _, ev := range events {
		for _, fn := range fns {
			fn(ev)
		}
	}
}

func (s State) clone() State {
	if s.Params != nil {
		params := make(map[string]string, len(s.Params))
		for k, v := range s.Params {
			params[k] = v
		}
		s.Params = params
	}
	return s
}

// protect turns a panic in view code into an error.
func protect(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("view panic: %v", r)
		}
	}()
	return fn()
}

func isAbsoluteURL(p string) bool {
	return strings.HasPrefix(p, "http://") ||
		strings.HasPrefix(p, "https://") ||
		strings.HasPrefix(p, "//")
}
