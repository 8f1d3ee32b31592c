// Package errors provides coded, structured errors for the toolbox.
//
// Each error has a unique code (e.g., "N001") that maps to a registered
// template with a short message, a category and a longer explanation.
// Errors wrap the sentinel values exported by the packages that raise
// them, so callers can use either errors.Is against the sentinel or
// compare codes.
//
// # Error Categories
//
//   - navigation: route resolution and view mounting
//   - config: toolbox.json loading and validation
//   - cli: command-line usage errors
//
// # Usage
//
//	err := errors.New("N001").
//	    WithDetail(`no route matches "/does-not-exist"`).
//	    Wrap(router.ErrRouteNotFound)
//
//	fmt.Println(err.Format())
//	// ERROR N001: Route not found
//	//
//	//   no route matches "/does-not-exist"
package errors
