package resolvers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
)

// routeTable resolves paths against a set of chi patterns ("/api/widgets/{id}",
// "/static/*"). Matching uses chi's radix tree, so precedence follows chi:
// static segments beat parameters, parameters beat catch-alls.
type routeTable struct {
	mux       *chi.Mux
	byPattern map[string]Route
}

var noopHandler = http.HandlerFunc(func(http.ResponseWriter, *http.Request) {})

// NewRouteTable builds a RouteResolver from route definitions. Duplicate or invalid
// patterns are rejected.
func NewRouteTable(routes []Route) (RouteResolver, error) {
	table := &routeTable{
		mux:       chi.NewRouter(),
		byPattern: make(map[string]Route, len(routes)),
	}
	for i, route := range routes {
		if _, exists := table.byPattern[route.Pattern]; exists {
			return nil, fmt.Errorf("route[%d]: duplicate pattern %q", i, route.Pattern)
		}
		if err := table.handle(route.Pattern); err != nil {
			return nil, fmt.Errorf("route[%d]: invalid pattern %q: %w", i, route.Pattern, err)
		}
		table.byPattern[route.Pattern] = route
	}
	return table, nil
}

// handle registers the pattern, turning chi's registration panics into errors.
func (t *routeTable) handle(pattern string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%v", r)
		}
	}()
	t.mux.Handle(pattern, noopHandler)
	return nil
}

func (t *routeTable) ResolveRoute(path string) (*Route, error) {
	// the query string is not part of the route
	path, _, _ = strings.Cut(path, "?")

	rctx := chi.NewRouteContext()
	if !t.mux.Match(rctx, http.MethodGet, path) || len(rctx.RoutePatterns) == 0 {
		return nil, ErrNoRouteMatch
	}

	route, ok := t.byPattern[rctx.RoutePatterns[len(rctx.RoutePatterns)-1]]
	if !ok {
		return nil, ErrNoRouteMatch
	}
	return &route, nil
}
