package transport

import (
	"context"
	"net/http"
)

// Request is the wire-level description of one submission attempt. The
// orchestrator builds a single Request per Submit call and reuses it across
// retries.
type Request struct {
	Method string
	URL    string
	Header http.Header
	Body   []byte
}

// Response captures the collaborator's reply with the body fully read, so
// callers never manage stream lifetimes across retry boundaries.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// ContentType returns the response content type header, empty when absent.
func (r *Response) ContentType() string {
	if r == nil || r.Header == nil {
		return ""
	}
	return r.Header.Get("Content-Type")
}

// Transport issues one network attempt. Implementations must honor ctx
// cancellation and deadlines promptly; the orchestrator relies on that for
// both its timeout race and explicit cancellation.
type Transport interface {
	Do(ctx context.Context, req Request) (*Response, error)
}

// Func adapts a bare function to the Transport interface.
type Func func(ctx context.Context, req Request) (*Response, error)

// Do implements Transport.
func (f Func) Do(ctx context.Context, req Request) (*Response, error) {
	return f(ctx, req)
}
