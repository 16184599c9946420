package submission

import (
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/goliatone/go-formsubmit/pkg/transport"
	"github.com/goliatone/go-formsubmit/pkg/validation"
)

// TransformFunc maps validated submission data to the payload actually sent
// to the collaborator. Must be pure.
type TransformFunc func(data map[string]any) map[string]any

// SuccessHandler observes a settled successful submission.
type SuccessHandler func(result *Result)

// ErrorHandler observes a settled failed submission.
type ErrorHandler func(err *Error)

// Option customises the client configuration.
type Option func(*Client)

// WithMethod sets the HTTP method (POST, PUT, or PATCH; default POST).
func WithMethod(method string) Option {
	return func(c *Client) {
		c.method = strings.ToUpper(strings.TrimSpace(method))
	}
}

// WithHeader adds a single request header. Setting Content-Type explicitly
// replaces the default application/json value.
func WithHeader(key, value string) Option {
	return func(c *Client) {
		key = strings.TrimSpace(key)
		if key == "" {
			return
		}
		if c.headers == nil {
			c.headers = make(map[string]string)
		}
		c.headers[key] = value
	}
}

// WithHeaders merges the provided headers into the request header set.
func WithHeaders(headers map[string]string) Option {
	return func(c *Client) {
		for key, value := range headers {
			WithHeader(key, value)(c)
		}
	}
}

// WithTimeout bounds each network attempt (default 10s).
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.timeout = timeout
		}
	}
}

// WithMaxRetries sets how many retries follow the initial attempt for 5xx
// and transport failures (default 0).
func WithMaxRetries(retries int) Option {
	return func(c *Client) {
		if retries >= 0 {
			c.maxRetries = retries
		}
	}
}

// WithRetryBaseDelay sets the backoff base delay doubled per retry
// (default 1s).
func WithRetryBaseDelay(delay time.Duration) Option {
	return func(c *Client) {
		if delay >= 0 {
			c.retryBaseDelay = delay
		}
	}
}

// WithTransport injects the network transport capability; defaults to the
// net/http implementation.
func WithTransport(t transport.Transport) Option {
	return func(c *Client) {
		if t != nil {
			c.transport = t
		}
	}
}

// WithValidator runs before any network attempt; an invalid result fails the
// submission locally. No validator means no validation.
func WithValidator(validate validation.Func) Option {
	return func(c *Client) {
		c.validate = validate
	}
}

// WithTransform maps the validated data before encoding.
func WithTransform(transform TransformFunc) Option {
	return func(c *Client) {
		c.transform = transform
	}
}

// WithOnSuccess registers a callback fired synchronously after the state
// transitions to success, before Submit returns.
func WithOnSuccess(handler SuccessHandler) Option {
	return func(c *Client) {
		c.onSuccess = handler
	}
}

// WithOnError registers a callback fired synchronously after the state
// transitions to failed, before Submit returns.
func WithOnError(handler ErrorHandler) Option {
	return func(c *Client) {
		c.onError = handler
	}
}

// WithLogger enables attempt-level debug logging; the default logger
// discards everything.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}
