// Package router holds the route table, the path matcher and the view
// registry of the toolbox navigation core.
//
// The route table is an ordered, immutable list of RouteDefinition values
// built once at startup. The matcher resolves a concrete path to the first
// definition (in declaration order) whose pattern matches. The registry
// binds view keys to lazy loaders so that no view is materialized until
// the navigation controller mounts it.
//
// # Usage
//
//	table, err := router.NewTable([]router.RouteDefinition{
//	    {Path: "/", Name: "Home"},
//	    {Path: "/oil-price", Name: "OilPrice", Category: "query"},
//	    {Path: "/not-found", Name: "NotFound"},
//	})
//
//	m := router.NewMatcher(table)
//	match, err := m.Match("/oil-price/")
//	if errors.Is(err, router.ErrRouteNotFound) {
//	    // mount the fallback view
//	}
//	// match.Route.Name == "OilPrice"
//
// # Duplicates
//
// Two definitions sharing a name are deduplicated (first wins) and
// reported as a Diagnostic. WithDuplicatePolicy(DuplicateReject) turns the
// condition into a construction error instead. Definitions sharing a path
// under different names are kept, but only the first is reachable.
package router
