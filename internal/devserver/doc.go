// Package devserver serves the toolbox during development.
//
// Every path that is not an API prefix or an internal endpoint gets the
// application shell with a server-rendered first view; routing decisions
// are made by the navigation controller, so unmatched paths still answer
// 200 with the fallback page. After load the page talks to /_nav and
// navigation continues over the live bridge.
//
// Endpoints:
//
//	/_nav       live navigation WebSocket
//	/_routes    route table, categories and diagnostics as JSON
//	/metrics    Prometheus metrics (configurable)
//	<prefix>/*  reverse proxy to the configured upstream APIs
package devserver
