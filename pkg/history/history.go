// Package history wraps session history behind a small interface.
//
// The navigation controller is the only caller of Push and Replace. The
// adapter records and reports path changes; it never matches routes.
// Back/forward gestures arrive through OnPopState handlers.
package history

// History is a session history adapter.
type History interface {
	// Push appends path as a new entry, discarding any forward entries.
	Push(path string) error

	// Replace overwrites the current entry without growing the stack.
	Replace(path string) error

	// CurrentPath returns the path of the current entry.
	CurrentPath() string

	// OnPopState registers handler for back/forward traversals. The
	// handler receives the path of the entry that became current.
	// The returned function removes the handler.
	OnPopState(handler func(path string)) (unsubscribe func())
}

// Entry is a single history entry.
type Entry struct {
	Path string
}
