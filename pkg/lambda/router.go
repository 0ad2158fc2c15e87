package lambda

import (
	"context"
	"fmt"
	"strings"
)

type route struct {
	method   string
	pattern  string
	segments []string
	handler  HandlerFunc
}

// Router dispatches requests to handlers by method and path pattern.
// Patterns are slash separated; a segment written as {name} matches any
// non-empty segment and is exposed as a path parameter. Routes are
// registered at startup and the table is read-only afterwards.
type Router struct {
	routes   []route
	notFound HandlerFunc
}

// NewRouter creates an empty router answering unmatched requests with NotFound
func NewRouter() *Router {
	return &Router{notFound: NotFound}
}

// Handle registers handler for method and pattern
func (r *Router) Handle(method, pattern string, handler HandlerFunc) {
	method = strings.ToUpper(method)
	for _, existing := range r.routes {
		if existing.method == method && existing.pattern == pattern {
			panic(fmt.Sprintf("lambda: route %s %s registered twice", method, pattern))
		}
	}
	r.routes = append(r.routes, route{
		method:   method,
		pattern:  pattern,
		segments: splitPath(pattern),
		handler:  handler,
	})
}

// GET registers a handler for GET requests
func (r *Router) GET(pattern string, handler HandlerFunc) {
	r.Handle("GET", pattern, handler)
}

// POST registers a handler for POST requests
func (r *Router) POST(pattern string, handler HandlerFunc) {
	r.Handle("POST", pattern, handler)
}

// Routes lists the registered routes as "METHOD pattern"
func (r *Router) Routes() []string {
	routes := make([]string, 0, len(r.routes))
	for _, rt := range r.routes {
		routes = append(routes, rt.method+" "+rt.pattern)
	}
	return routes
}

// Resolve finds the handler for req and invokes it. Handler errors are
// returned unchanged.
func (r *Router) Resolve(ctx context.Context, req *Request) (*Response, error) {
	segments := splitPath(req.Path)
	method := strings.ToUpper(req.Method)

	for _, rt := range r.routes {
		if rt.method != method {
			continue
		}
		params, ok := match(rt.segments, segments)
		if !ok {
			continue
		}

		if req.PathParams == nil {
			req.PathParams = make(map[string]string, len(params))
		}
		for name, value := range params {
			req.PathParams[name] = value
		}
		req.Route = rt.pattern
		return rt.handler(ctx, req)
	}

	return r.notFound(ctx, req)
}

func match(pattern, path []string) (map[string]string, bool) {
	if len(pattern) != len(path) {
		return nil, false
	}

	params := make(map[string]string)
	for i, seg := range pattern {
		if name, ok := paramName(seg); ok {
			if path[i] == "" {
				return nil, false
			}
			params[name] = path[i]
			continue
		}
		if seg != path[i] {
			return nil, false
		}
	}
	return params, true
}

func paramName(segment string) (string, bool) {
	if len(segment) > 2 && strings.HasPrefix(segment, "{") && strings.HasSuffix(segment, "}") {
		return segment[1 : len(segment)-1], true
	}
	return "", false
}

func splitPath(path string) []string {
	path = strings.Trim(path, "/")
	if path == "" {
		return nil
	}
	return strings.Split(path, "/")
}
