package resolvers

import (
	"errors"
	"fmt"
	"sync"
)

// EndpointResolver turns a raw request path into the logical endpoint name
// "<module>.<handler>".
//
//go:generate mockgen -source=endpoint_resolver.go -destination=./mocks/endpoint_resolver_mock.go -package=mocks
type EndpointResolver interface {
	// Resolve returns the endpoint name for path, or *UnroutableError.
	Resolve(path string) (string, error)
}

// endpointCache memoizes successful resolutions for its whole lifetime. Entries are
// never evicted: the key space is bounded by the route table, not by traffic.
// Failures are not cached, so an unroutable path is looked up on every occurrence.
// One instance may be shared by concurrent analysis runs.
type endpointCache struct {
	routeResolver RouteResolver

	mu        sync.RWMutex
	endpoints map[string]string
}

func NewEndpointResolver(routeResolver RouteResolver) EndpointResolver {
	return &endpointCache{
		routeResolver: routeResolver,
		endpoints:     make(map[string]string),
	}
}

func (c *endpointCache) Resolve(path string) (string, error) {
	c.mu.RLock()
	endpoint, ok := c.endpoints[path]
	c.mu.RUnlock()
	if ok {
		metricCacheLookupsTotal.WithLabelValues(outcomeHit).Inc()
		return endpoint, nil
	}

	route, err := c.routeResolver.ResolveRoute(path)
	if err != nil {
		if errors.Is(err, ErrNoRouteMatch) {
			metricCacheLookupsTotal.WithLabelValues(outcomeUnroutable).Inc()
			return "", &UnroutableError{Path: path}
		}
		return "", fmt.Errorf("resolve route for %q: %w", path, err)
	}
	metricCacheLookupsTotal.WithLabelValues(outcomeMiss).Inc()

	endpoint = endpointName(path, route)

	c.mu.Lock()
	defer c.mu.Unlock()
	// first resolution wins
	if existing, ok := c.endpoints[path]; ok {
		return existing, nil
	}
	c.endpoints[path] = endpoint
	return endpoint, nil
}

func endpointName(path string, route *Route) string {
	module, handler := route.Module, route.Handler
	if module == "" {
		module = path
	}
	if handler == "" {
		handler = path
	}
	return module + "." + handler
}
