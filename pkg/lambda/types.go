package lambda

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// Request represents a generic HTTP request for serverless functions
type Request struct {
	Method        string            `json:"method"`
	Path          string            `json:"path"`
	Headers       map[string]string `json:"headers"`
	QueryParams   map[string]string `json:"query_params"`
	Body          []byte            `json:"body"`
	PathParams    map[string]string `json:"path_params"`
	CorrelationID string            `json:"correlation_id,omitempty"`

	// Route is the pattern of the matched route, set by the Router
	Route string `json:"route,omitempty"`
}

// PathParam returns the named path parameter, or "" when absent
func (r *Request) PathParam(name string) string {
	if r.PathParams == nil {
		return ""
	}
	return r.PathParams[name]
}

// Response represents a generic HTTP response for serverless functions
type Response struct {
	StatusCode int               `json:"status_code"`
	Headers    map[string]string `json:"headers"`
	Body       []byte            `json:"body"`
}

// JSON builds a response with v encoded as the JSON body
func JSON(statusCode int, v interface{}) (*Response, error) {
	body, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to encode response body: %w", err)
	}
	return &Response{
		StatusCode: statusCode,
		Headers:    map[string]string{"Content-Type": "application/json"},
		Body:       body,
	}, nil
}

// NotFound is the response for requests that match no route
func NotFound(ctx context.Context, req *Request) (*Response, error) {
	return JSON(http.StatusNotFound, map[string]string{"message": "Not found"})
}

// HandlerFunc is a framework-agnostic handler interface
type HandlerFunc func(ctx context.Context, req *Request) (*Response, error)
