// Package routepath normalizes navigation paths before they reach the matcher.
//
// Every component that compares paths (the route table, the matcher, the
// navigation controller and the history adapters) goes through
// CanonicalizePath so that "/oil-price", "/oil-price/" and
// "/oil-price/?from=menu#top" all compare equal.
package routepath

import (
	"errors"
	"strings"
)

// CanonicalizeResult contains the result of path canonicalization.
type CanonicalizeResult struct {
	// Path is the canonicalized path (without query string or fragment).
	Path string

	// Query is the query string (without leading "?").
	Query string

	// Fragment is the fragment (without leading "#").
	Fragment string

	// Changed indicates if the path part was modified during canonicalization.
	Changed bool
}

// Path canonicalization errors.
var (
	ErrInvalidPath          = errors.New("invalid path")
	ErrBackslashInPath      = errors.New("path contains backslash")
	ErrNullByteInPath       = errors.New("path contains null byte")
	ErrInvalidPercentEscape = errors.New("invalid percent escape sequence")
	ErrPathEscapesRoot      = errors.New("path escapes root via ..")
)

// CanonicalizePath normalizes a navigation path.
//
// The following transformations are applied:
//   - Strip the fragment ("#...") and the query string ("?...")
//   - Collapse multiple slashes (/tools//translate → /tools/translate)
//   - Remove "." segments and resolve ".." segments
//   - Remove trailing slash (except for root "/")
//
// The following inputs are rejected with an error:
//   - Paths containing backslash (\) or a NUL byte (literal or %00)
//   - Invalid percent-escapes (e.g., %GG, %2)
//   - ".." that would escape root (e.g., /../secret)
func CanonicalizePath(input string) (CanonicalizeResult, error) {
	rest, fragment := SplitFragment(input)
	path, query := SplitPathAndQuery(rest)

	if path == "" {
		return CanonicalizeResult{Path: "/", Query: query, Fragment: fragment, Changed: true}, nil
	}

	if strings.Contains(path, "\\") {
		return CanonicalizeResult{}, ErrBackslashInPath
	}
	if strings.Contains(path, "\x00") || strings.Contains(strings.ToUpper(path), "%00") {
		return CanonicalizeResult{}, ErrNullByteInPath
	}
	if strings.Contains(path, "%") {
		if err := validatePercentEscapes(path); err != nil {
			return CanonicalizeResult{}, err
		}
	}

	original := path

	segments := strings.Split(path, "/")
	result := make([]string, 0, len(segments))
	for _, seg := range segments {
		switch seg {
		case "", ".":
			continue
		case "..":
			if len(result) == 0 {
				return CanonicalizeResult{}, ErrPathEscapesRoot
			}
			result = result[:len(result)-1]
		default:
			result = append(result, seg)
		}
	}

	path = "/" + strings.Join(result, "/")

	return CanonicalizeResult{
		Path:     path,
		Query:    query,
		Fragment: fragment,
		Changed:  path != original,
	}, nil
}

// CanonicalizeAndValidateNavPath canonicalizes a path handed to the
// navigation layer by a link click or a programmatic navigation.
//
// Navigation targets MUST be application-relative:
//   - MUST start with "/"
//   - MUST NOT be a full URL (no "http://", "https://", "//")
//
// The returned path carries no query string or fragment.
func CanonicalizeAndValidateNavPath(path string) (string, error) {
	if strings.HasPrefix(path, "http://") ||
		strings.HasPrefix(path, "https://") ||
		strings.HasPrefix(path, "//") {
		return "", ErrInvalidPath
	}
	if !strings.HasPrefix(path, "/") {
		return "", ErrInvalidPath
	}

	result, err := CanonicalizePath(path)
	if err != nil {
		return "", err
	}
	return result.Path, nil
}

// SplitPathAndQuery splits a path into path and query components.
// The query is returned without the leading "?".
func SplitPathAndQuery(input string) (path, query string) {
	path, query, _ = strings.Cut(input, "?")
	return path, query
}

// SplitFragment splits off the fragment. The fragment is returned without "#".
func SplitFragment(input string) (rest, fragment string) {
	rest, fragment, _ = strings.Cut(input, "#")
	return rest, fragment
}

// validatePercentEscapes checks that all percent-escapes are valid.
func validatePercentEscapes(path string) error {
	for i := 0; i < len(path); i++ {
		if path[i] != '%' {
			continue
		}
		if i+2 >= len(path) || !isHexDigit(path[i+1]) || !isHexDigit(path[i+2]) {
			return ErrInvalidPercentEscape
		}
		i += 2
	}
	return nil
}

func isHexDigit(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}
