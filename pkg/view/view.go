// Package view defines the contract between the navigation controller and
// the feature views it mounts.
//
// A view is opaque to the router. The only things the controller relies
// on are that a view renders into the Slot it is handed on Mount and that
// it releases whatever it holds on Unmount.
package view

import "context"

// View is a mountable unit bound to a route.
type View interface {
	// Mount activates the view inside slot.
	Mount(ctx context.Context, slot Slot) error

	// Unmount deactivates the view. It is called exactly once for every
	// successful Mount, before the next view is mounted.
	Unmount(ctx context.Context) error
}

// Slot is the designated display area a view renders into.
type Slot interface {
	// Path is the canonical path being displayed.
	Path() string

	// Route is the name of the route the view was mounted for.
	Route() string

	// Query is the raw query string of the navigation, without "?".
	Query() string

	// Render replaces the slot content. Content must be JSON-encodable
	// for slots that cross a wire.
	Render(content any) error
}

// Loader lazily produces a fresh View instance.
// It runs only when the controller is about to mount the view and may block.
type Loader func(ctx context.Context) (View, error)

// Factory adapts a plain constructor into a Loader.
func Factory(fn func() View) Loader {
	return func(ctx context.Context) (View, error) {
		return fn(), nil
	}
}

// Func is a View built from a mount function. Unmount is a no-op.
type Func func(ctx context.Context, slot Slot) error

// Mount implements View.
func (f Func) Mount(ctx context.Context, slot Slot) error {
	return f(ctx, slot)
}

// Unmount implements View.
func (f Func) Unmount(ctx context.Context) error {
	return nil
}

// Static returns a View that renders fixed content.
func Static(content any) View {
	return Func(func(ctx context.Context, slot Slot) error {
		return slot.Render(content)
	})
}
