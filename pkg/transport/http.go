package transport

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// Option customises the HTTP transport configuration.
type Option func(*HTTPTransport)

// WithClient injects a custom *http.Client. Passing nil keeps the default.
func WithClient(client *http.Client) Option {
	return func(t *HTTPTransport) {
		if client != nil {
			t.client = client
		}
	}
}

// WithMaxBodyBytes caps how much of a response body is read into memory.
// Zero or negative values keep the default cap.
func WithMaxBodyBytes(limit int64) Option {
	return func(t *HTTPTransport) {
		if limit > 0 {
			t.maxBodyBytes = limit
		}
	}
}

const defaultMaxBodyBytes = 4 << 20

// HTTPTransport implements Transport on top of net/http. Timeouts are driven
// by the caller's context rather than http.Client.Timeout so the orchestrator
// keeps a single source of truth for attempt deadlines.
type HTTPTransport struct {
	client       *http.Client
	maxBodyBytes int64
}

var _ Transport = (*HTTPTransport)(nil)

// NewHTTPTransport constructs an HTTPTransport applying any provided options.
func NewHTTPTransport(options ...Option) *HTTPTransport {
	t := &HTTPTransport{
		client:       http.DefaultClient,
		maxBodyBytes: defaultMaxBodyBytes,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(t)
	}
	return t
}

// Do performs the request and drains the response body. Non-2xx statuses are
// returned as responses, not errors; classification happens upstream.
func (t *HTTPTransport) Do(ctx context.Context, req Request) (*Response, error) {
	if ctx == nil {
		return nil, errors.New("transport: context is required")
	}
	if req.URL == "" {
		return nil, errors.New("transport: request url is required")
	}
	method := req.Method
	if method == "" {
		method = http.MethodPost
	}

	var body io.Reader
	if len(req.Body) > 0 {
		body = bytes.NewReader(req.Body)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, req.URL, body)
	if err != nil {
		return nil, fmt.Errorf("transport: build request: %w", err)
	}
	for key, values := range req.Header {
		for _, value := range values {
			httpReq.Header.Add(key, value)
		}
	}

	resp, err := t.client.Do(httpReq)
	if err != nil {
		// Surface the context error directly so callers can classify
		// cancellation and deadline outcomes without unwrapping url.Error.
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, err
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(io.LimitReader(resp.Body, t.maxBodyBytes))
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, fmt.Errorf("transport: read response body: %w", err)
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header.Clone(),
		Body:       payload,
	}, nil
}
