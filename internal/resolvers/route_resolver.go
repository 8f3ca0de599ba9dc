package resolvers

import (
	"errors"
	"fmt"
)

// ErrNoRouteMatch is returned by a RouteResolver when no route serves the path.
var ErrNoRouteMatch = errors.New("no route matches path")

// Route describes the handler that serves a path. Module and Handler may be empty
// when the route table does not know them.
type Route struct {
	Pattern string
	Module  string
	Handler string
}

// RouteResolver maps a request path to the route serving it.
//
//go:generate mockgen -source=route_resolver.go -destination=./mocks/route_resolver_mock.go -package=mocks
type RouteResolver interface {
	ResolveRoute(path string) (*Route, error)
}

// UnroutableError is returned by the endpoint resolver for a path without a route.
// It unwraps to ErrNoRouteMatch.
type UnroutableError struct {
	Path string
}

func (e *UnroutableError) Error() string {
	return fmt.Sprintf("unroutable path %q", e.Path)
}

func (e *UnroutableError) Unwrap() error {
	return ErrNoRouteMatch
}
