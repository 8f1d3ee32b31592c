package router

import (
	"log/slog"
	"strings"

	toolerrors "github.com/vango-dev/toolbox/internal/errors"
	"github.com/vango-dev/toolbox/pkg/routepath"
)

// DuplicatePolicy controls what NewTable does with repeated route names.
type DuplicatePolicy string

const (
	// DuplicateKeepFirst keeps the first definition of a name and drops
	// later ones with a diagnostic.
	DuplicateKeepFirst DuplicatePolicy = "keep-first"

	// DuplicateReject makes NewTable fail on the first repeated name.
	DuplicateReject DuplicatePolicy = "reject"
)

// ParseDuplicatePolicy parses a policy name. An empty name means keep-first.
func ParseDuplicatePolicy(s string) (DuplicatePolicy, bool) {
	switch DuplicatePolicy(s) {
	case "", DuplicateKeepFirst:
		return DuplicateKeepFirst, true
	case DuplicateReject:
		return DuplicateReject, true
	default:
		return DuplicateKeepFirst, false
	}
}

// TableOption configures table construction.
type TableOption func(*tableOptions)

type tableOptions struct {
	policy DuplicatePolicy
	logger *slog.Logger
}

// WithDuplicatePolicy sets the duplicate-name policy.
func WithDuplicatePolicy(p DuplicatePolicy) TableOption {
	return func(o *tableOptions) {
		o.policy = p
	}
}

// WithTableLogger sets the logger diagnostics are reported to.
func WithTableLogger(l *slog.Logger) TableOption {
	return func(o *tableOptions) {
		o.logger = l
	}
}

// Table is an ordered, immutable collection of route definitions.
type Table struct {
	routes      []RouteDefinition
	byName      map[string]int
	diagnostics []Diagnostic
}

// NewTable validates defs and builds a table preserving declaration order.
func NewTable(defs []RouteDefinition, opts ...TableOption) (*Table, error) {
	o := tableOptions{
		policy: DuplicateKeepFirst,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(&o)
	}

	t := &Table{
		routes: make([]RouteDefinition, 0, len(defs)),
		byName: make(map[string]int, len(defs)),
	}
	byPath := make(map[string]int, len(defs))

	for i, def := range defs {
		canon, err := canonicalRoutePath(def.Path)
		if err != nil {
			return nil, toolerrors.New("N005").
				WithDetail("route #%d %q has path %q", i, def.Name, def.Path).
				Wrap(err)
		}
		def.Path = canon

		if def.Name == "" {
			def.Name = def.Path
			d := Diagnostic{Kind: DiagnosticUnnamed, Name: def.Name, Path: def.Path, Index: i, FirstIndex: -1}
			t.diagnostics = append(t.diagnostics, d)
			o.logger.Debug("route table: unnamed route", "index", i, "path", def.Path)
		}

		if first, exists := t.byName[def.Name]; exists {
			d := Diagnostic{Kind: DiagnosticDuplicateName, Name: def.Name, Path: def.Path, Index: i, FirstIndex: first}
			if o.policy == DuplicateReject {
				return nil, toolerrors.New("N002").WithDetail("%s", d.String()).Wrap(ErrDuplicateRouteName)
			}
			t.diagnostics = append(t.diagnostics, d)
			o.logger.Warn("route table: duplicate route name, keeping first",
				"name", def.Name, "path", def.Path, "index", i, "first", first)
			continue
		}

		if first, exists := byPath[def.Path]; exists {
			d := Diagnostic{Kind: DiagnosticShadowedPath, Name: def.Name, Path: def.Path, Index: i, FirstIndex: first}
			t.diagnostics = append(t.diagnostics, d)
			o.logger.Warn("route table: path shadowed by earlier route",
				"name", def.Name, "path", def.Path, "shadowed_by", t.routes[first].Name)
		} else {
			byPath[def.Path] = len(t.routes)
		}

		t.byName[def.Name] = len(t.routes)
		t.routes = append(t.routes, def)
	}

	return t, nil
}

// MustNewTable is like NewTable but panics on error.
// It is meant for package-level tables built from literals.
func MustNewTable(defs []RouteDefinition, opts ...TableOption) *Table {
	t, err := NewTable(defs, opts...)
	if err != nil {
		panic(err)
	}
	return t
}

// canonicalRoutePath validates and canonicalizes a route pattern.
func canonicalRoutePath(p string) (string, error) {
	if !strings.HasPrefix(p, "/") || strings.ContainsAny(p, "?#") {
		return "", ErrInvalidRoutePath
	}
	res, err := routepath.CanonicalizePath(p)
	if err != nil {
		return "", err
	}
	return res.Path, nil
}

// AllRoutes returns the definitions in declaration order.
// The returned slice is a copy.
func (t *Table) AllRoutes() []RouteDefinition {
	out := make([]RouteDefinition, len(t.routes))
	copy(out, t.routes)
	return out
}

// Len returns the number of definitions kept.
func (t *Table) Len() int {
	return len(t.routes)
}

// Lookup returns the definition registered under name.
func (t *Table) Lookup(name string) (RouteDefinition, bool) {
	i, ok := t.byName[name]
	if !ok {
		return RouteDefinition{}, false
	}
	return t.routes[i], true
}

// Diagnostics returns the problems found while building the table.
func (t *Table) Diagnostics() []Diagnostic {
	out := make([]Diagnostic, len(t.diagnostics))
	copy(out, t.diagnostics)
	return out
}

// Categories returns the distinct non-empty categories in order of first use.
func (t *Table) Categories() []string {
	seen := make(map[string]bool)
	var out []string
	for _, r := range t.routes {
		if r.Category == "" || seen[r.Category] {
			continue
		}
		seen[r.Category] = true
		out = append(out, r.Category)
	}
	return out
}

// InCategory returns the definitions tagged with category, in order.
func (t *Table) InCategory(category string) []RouteDefinition {
	var out []RouteDefinition
	for _, r := range t.routes {
		if r.Category == category {
			out = append(out, r)
		}
	}
	return out
}
