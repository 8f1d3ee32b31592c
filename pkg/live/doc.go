// Package live bridges a browser tab to a navigation controller over a
// WebSocket.
//
// The browser owns the real address bar. A Conn mirrors it on the
// server: it implements history.History by sending push and replace
// instructions, reports back/forward gestures as popstate, and hands out
// slots that stream rendered view content to the page.
//
// Wire format is one JSON object per text frame:
//
//	client → server  {"type":"hello","path":"/oil-price"}
//	                 {"type":"navigate","path":"/tools","replace":false}
//	                 {"type":"popstate","path":"/"}
//	server → client  {"type":"push","path":"/tools"}
//	                 {"type":"replace","path":"/not-found"}
//	                 {"type":"render","route":"ToolsPage","path":"/tools","content":{...}}
//	                 {"type":"error","error":"..."}
//
// The first client message must be hello; it carries the path the page
// was loaded at and becomes the initial history entry.
package live
