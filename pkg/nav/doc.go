// Package nav implements the navigation controller: the single owner of
// the navigation state that turns a path into a mounted view and keeps
// session history in sync with it.
//
// A navigation runs through three phases:
//
//	Idle → Resolving → Mounting → Idle
//
// Resolving canonicalizes the path and matches it against the route table,
// substituting the fallback route when nothing matches. The view is then
// loaded from the registry; this is the only step that may block. Mounting
// unmounts the previous view, mounts the new one, records the path in
// history (unless the navigation replays a back/forward gesture) and
// replaces the state.
//
// A request that arrives while another is still loading its view
// supersedes it: the older request's view is discarded without being
// mounted and its Navigate call returns ErrSuperseded.
//
// # Usage
//
//	c, err := nav.New(table, registry, history.NewMemory("/"),
//	    nav.WithFallback("NotFound"),
//	    nav.WithMiddleware(middleware.Prometheus()),
//	)
//	if err := c.Start(ctx); err != nil {
//	    return err
//	}
//	defer c.Close(ctx)
//
//	state, err := c.Navigate(ctx, "/oil-price")
package nav
