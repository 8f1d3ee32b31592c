package router

import (
	"net/url"
	"strings"

	toolerrors "github.com/vango-dev/toolbox/internal/errors"
	"github.com/vango-dev/toolbox/pkg/routepath"
)

// Match is the result of resolving a concrete path.
type Match struct {
	// Route is the winning definition.
	Route RouteDefinition

	// Path is the canonical path that was matched.
	Path string

	// Query is the stripped query string, without "?".
	Query string

	// Params holds captured ":name" segments. Nil for static routes.
	Params map[string]string

	// Index is the declaration index of Route in the table.
	Index int
}

// Matcher resolves paths against a table.
// It is safe for concurrent use; it never mutates after construction.
type Matcher struct {
	table *Table

	// static maps a static path to the first route declaring it.
	static map[string]int

	// dynamic lists parametrized routes in declaration order.
	dynamic []compiledRoute
}

type compiledRoute struct {
	index    int
	segments []patternSegment
}

type patternSegment struct {
	literal string
	param   string
}

// NewMatcher compiles the table's patterns.
func NewMatcher(t *Table) *Matcher {
	m := &Matcher{
		table:  t,
		static: make(map[string]int, len(t.routes)),
	}
	for i, r := range t.routes {
		segs := splitPath(r.Path)
		if !hasParam(segs) {
			if _, exists := m.static[r.Path]; !exists {
				m.static[r.Path] = i
			}
			continue
		}
		cr := compiledRoute{index: i, segments: make([]patternSegment, len(segs))}
		for j, s := range segs {
			if strings.HasPrefix(s, ":") {
				cr.segments[j] = patternSegment{param: s[1:]}
			} else {
				cr.segments[j] = patternSegment{literal: s}
			}
		}
		m.dynamic = append(m.dynamic, cr)
	}
	return m
}

// Table returns the table the matcher was built from.
func (m *Matcher) Table() *Table {
	return m.table
}

// Match canonicalizes path and returns the first route, in declaration
// order, whose pattern matches it. It returns an error wrapping
// ErrRouteNotFound when nothing matches.
func (m *Matcher) Match(path string) (Match, error) {
	res, err := routepath.CanonicalizePath(path)
	if err != nil {
		return Match{}, toolerrors.New("N001").
			WithDetail("path %q cannot be canonicalized", path).
			Wrap(err)
	}

	best := -1
	if i, ok := m.static[res.Path]; ok {
		best = i
	}

	// A parametrized route declared before the static hit still wins.
	if len(m.dynamic) > 0 {
		segs := splitPath(res.Path)
		for _, cr := range m.dynamic {
			if best >= 0 && cr.index > best {
				break
			}
			if params, ok := cr.match(segs); ok {
				return Match{
					Route:  m.table.routes[cr.index],
					Path:   res.Path,
					Query:  res.Query,
					Params: params,
					Index:  cr.index,
				}, nil
			}
		}
	}

	if best < 0 {
		return Match{}, toolerrors.New("N001").
			WithDetail("no route matches %q", res.Path).
			Wrap(ErrRouteNotFound)
	}

	return Match{
		Route: m.table.routes[best],
		Path:  res.Path,
		Query: res.Query,
		Index: best,
	}, nil
}

func (cr compiledRoute) match(segs []string) (map[string]string, bool) {
	if len(segs) != len(cr.segments) {
		return nil, false
	}
	var params map[string]string
	for i, ps := range cr.segments {
		if ps.param == "" {
			if ps.literal != segs[i] {
				return nil, false
			}
			continue
		}
		value, err := url.PathUnescape(segs[i])
		if err != nil || value == "" || strings.Contains(value, "/") {
			return nil, false
		}
		if params == nil {
			params = make(map[string]string, len(cr.segments))
		}
		params[ps.param] = value
	}
	return params, true
}

// splitPath splits a canonical path into segments. Root yields nil.
func splitPath(path string) []string {
	path = strings.Trim(path, "/")
	if path == "" {
		return nil
	}
	return strings.Split(path, "/")
}

func hasParam(segs []string) bool {
	for _, s := range segs {
		if strings.HasPrefix(s, ":") {
			return true
		}
	}
	return false
}
