package nav

import "time"

// Phase is the controller's position in the navigation state machine.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseResolving
	PhaseMounting
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseResolving:
		return "resolving"
	case PhaseMounting:
		return "mounting"
	default:
		return "unknown"
	}
}

// State is a read-only snapshot of the navigation state.
type State struct {
	// Route is the name of the route whose view is mounted.
	Route string

	// Path is the canonical path shown in the address bar.
	Path string

	// Query is the query string of the navigation, without "?".
	Query string

	// Params holds captured route parameters.
	Params map[string]string

	// Target is the name of the route that was requested. It differs from
	// Route when the fallback view was mounted instead.
	Target string

	// Degraded is set when even the fallback view failed and the built-in
	// error view is mounted.
	Degraded bool

	// Seq is the sequence number of the navigation that produced the state.
	Seq uint64
}

// IsZero reports whether no navigation has completed yet.
func (s State) IsZero() bool {
	return s.Seq == 0 && s.Route == ""
}

// EventKind classifies a diagnostic event.
type EventKind string

const (
	EventRouteNotFound   EventKind = "route-not-found"
	EventViewFailure     EventKind = "view-failure"
	EventFallbackFailure EventKind = "fallback-failure"
	EventUnmountFailure  EventKind = "unmount-failure"
	EventHistoryFailure  EventKind = "history-failure"
	EventSuperseded      EventKind = "superseded"
)

// Event is a diagnostic emitted by the controller. Events never signal a
// fatal condition; the controller has already recovered when they fire.
type Event struct {
	Kind  EventKind
	Path  string
	Route string
	Err   error
	Time  time.Time
}
