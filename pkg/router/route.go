package router

import "fmt"

// RouteDefinition binds a path pattern to a view under a unique name.
type RouteDefinition struct {
	// Path is the URL pattern (e.g., "/exchange-rate" or "/novel/:id").
	Path string `yaml:"path" json:"path"`

	// Name uniquely identifies the route within a table.
	// An empty name is replaced by the canonical path.
	Name string `yaml:"name,omitempty" json:"name,omitempty"`

	// View is the view registry key. Defaults to Name.
	View string `yaml:"view,omitempty" json:"view,omitempty"`

	// Category is presentation metadata used to build category menus.
	Category string `yaml:"category,omitempty" json:"category,omitempty"`

	// Title is the human readable label shown in menus.
	Title string `yaml:"title,omitempty" json:"title,omitempty"`
}

// ViewKey returns the registry key for this route.
func (d RouteDefinition) ViewKey() string {
	if d.View != "" {
		return d.View
	}
	return d.Name
}

// DiagnosticKind classifies a table construction diagnostic.
type DiagnosticKind string

const (
	// DiagnosticDuplicateName reports a definition dropped because an
	// earlier definition already uses its name.
	DiagnosticDuplicateName DiagnosticKind = "duplicate-name"

	// DiagnosticShadowedPath reports a definition whose path is identical
	// to an earlier one. It is kept but can never be matched.
	DiagnosticShadowedPath DiagnosticKind = "shadowed-path"

	// DiagnosticUnnamed reports a definition declared without a name.
	DiagnosticUnnamed DiagnosticKind = "unnamed"
)

// Diagnostic describes a latent problem found while building a table.
type Diagnostic struct {
	Kind DiagnosticKind
	Name string
	Path string

	// Index is the declaration index of the offending definition.
	Index int

	// FirstIndex is the declaration index of the definition that wins.
	// It is -1 for DiagnosticUnnamed.
	FirstIndex int
}

// String returns a one-line description.
func (d Diagnostic) String() string {
	switch d.Kind {
	case DiagnosticDuplicateName:
		return fmt.Sprintf("route #%d %q (%s) dropped: name already declared by route #%d", d.Index, d.Name, d.Path, d.FirstIndex)
	case DiagnosticShadowedPath:
		return fmt.Sprintf("route #%d %q (%s) unreachable: path shadowed by route #%d", d.Index, d.Name, d.Path, d.FirstIndex)
	case DiagnosticUnnamed:
		return fmt.Sprintf("route #%d (%s) has no name, using its path", d.Index, d.Path)
	default:
		return fmt.Sprintf("route #%d %q (%s): %s", d.Index, d.Name, d.Path, d.Kind)
	}
}
