package router

import "errors"

// Sentinel errors. Errors returned by this package wrap one of these in a
// coded toolbox error, so errors.Is works against either.
var (
	ErrRouteNotFound      = errors.New("route not found")
	ErrDuplicateRouteName = errors.New("duplicate route name")
	ErrInvalidRoutePath   = errors.New("invalid route path")
	ErrViewNotFound       = errors.New("view not registered")
	ErrViewLoad           = errors.New("view load failed")
)
