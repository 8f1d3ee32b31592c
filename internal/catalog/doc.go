// Package catalog is the toolbox application itself: its route table,
// the category grouping shown on the menu pages, and the views bound to
// each route.
//
// Feature views are black boxes from the router's point of view. Each
// renders a card describing the tool and the upstream API prefix it
// talks to; the real widgets live in the browser bundle.
package catalog
