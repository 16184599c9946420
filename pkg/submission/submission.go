// Package submission orchestrates a single form submission against a remote
// collaborator endpoint: validation, optional transform, one JSON network
// call raced against a timeout, retry with exponential backoff, and explicit
// cancellation. The client owns a last-write-wins lifecycle state observable
// through State and Subscribe.
package submission

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/goliatone/go-formsubmit/pkg/transport"
	"github.com/goliatone/go-formsubmit/pkg/validation"
)

const (
	defaultMethod         = http.MethodPost
	defaultTimeout        = 10 * time.Second
	defaultRetryBaseDelay = time.Second
)

// handle is the cancellation token bound to one attempt chain. The client
// tracks only the most recently created handle; explicit cancellation
// affects that one alone.
type handle struct {
	id     uuid.UUID
	cancel context.CancelFunc
}

// Client submits structured form data to a fixed collaborator endpoint.
// Configuration is immutable after construction; concurrent Submit calls are
// permitted and each runs its own independent attempt chain.
type Client struct {
	endpoint       string
	method         string
	headers        map[string]string
	timeout        time.Duration
	maxRetries     int
	retryBaseDelay time.Duration
	transport      transport.Transport
	validate       validation.Func
	transform      TransformFunc
	onSuccess      SuccessHandler
	onError        ErrorHandler
	logger         zerolog.Logger

	state    *stateStore
	inflight *handleSlot
}

// New constructs a Client for the given endpoint applying any provided
// options. Missing dependencies are initialised with the built-in
// implementations.
func New(endpoint string, options ...Option) (*Client, error) {
	if endpoint == "" {
		return nil, errors.New("submission: endpoint is required")
	}

	c := &Client{
		endpoint:       endpoint,
		method:         defaultMethod,
		timeout:        defaultTimeout,
		retryBaseDelay: defaultRetryBaseDelay,
		logger:         zerolog.Nop(),
		state:          newStateStore(),
		inflight:       &handleSlot{},
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(c)
	}

	switch c.method {
	case http.MethodPost, http.MethodPut, http.MethodPatch:
	case "":
		c.method = defaultMethod
	default:
		return nil, fmt.Errorf("submission: unsupported method %q", c.method)
	}

	if c.transport == nil {
		c.transport = transport.NewHTTPTransport()
	}

	return c, nil
}

// State returns a snapshot of the current lifecycle state.
func (c *Client) State() State {
	return c.state.get()
}

// Subscribe registers an observer notified synchronously on every state
// transition. The returned function removes the subscription.
func (c *Client) Subscribe(fn func(State)) func() {
	return c.state.subscribe(fn)
}

// Reset returns the state to idle. It does not cancel an in-flight attempt
// chain; a chain settling afterwards still fires its callbacks and its state
// write simply supersedes the reset.
func (c *Client) Reset() {
	c.state.set(State{})
}

// Cancel aborts the most recent in-flight attempt chain and clears the
// handle. It is a no-op when nothing is in flight.
func (c *Client) Cancel() {
	if h := c.inflight.take(); h != nil {
		c.logger.Debug().Str("submission_id", h.id.String()).Msg("submission cancelled")
		h.cancel()
	}
}

// Submit validates, transforms, and sends data to the collaborator,
// retrying server-side and transport failures up to the configured budget.
// It blocks until the attempt chain settles; run it in a goroutine for
// fire-and-forget semantics. Callbacks fire before Submit returns.
func (c *Client) Submit(ctx context.Context, data map[string]any) (*Result, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	if c.validate != nil {
		result := c.validate(data)
		if !result.Valid {
			subErr := newValidationError(result.FieldErrors)
			c.logger.Debug().Int("fields", len(subErr.FieldErrors)).Msg("submission rejected by validator")
			c.fail(subErr)
			return nil, subErr
		}
	}

	payload := data
	if c.transform != nil {
		payload = c.transform(data)
	}

	body, err := json.Marshal(payload)
	if err != nil {
		subErr := &Error{Message: fmt.Sprintf("Failed to encode request body: %v", err)}
		c.fail(subErr)
		return nil, subErr
	}

	c.state.set(State{Loading: true})

	req := transport.Request{
		Method: c.method,
		URL:    c.endpoint,
		Header: c.buildHeader(),
		Body:   body,
	}

	chainCtx, cancelChain := context.WithCancel(ctx)
	defer cancelChain()

	h := &handle{id: uuid.New(), cancel: cancelChain}
	c.inflight.replace(h)
	defer c.inflight.clear(h)

	logger := c.logger.With().Str("submission_id", h.id.String()).Logger()

	result, subErr := c.run(chainCtx, logger, req)
	if subErr != nil {
		c.fail(subErr)
		return nil, subErr
	}
	c.succeed(result)
	return result, nil
}

// run executes the attempt chain: one network attempt per loop iteration,
// each bounded by the configured timeout, with backoff sleeps between
// retries. Cancellation settles the chain immediately and is never retried.
func (c *Client) run(chainCtx context.Context, logger zerolog.Logger, req transport.Request) (*Result, *Error) {
	attempt := 0
	for {
		attemptCtx, cancelAttempt := context.WithTimeout(chainCtx, c.timeout)
		resp, err := c.transport.Do(attemptCtx, req)
		cancelAttempt()

		if err == nil && resp == nil {
			err = errors.New("transport returned no response")
		}

		if err == nil {
			if resp.StatusCode >= 200 && resp.StatusCode < 300 {
				logger.Debug().Int("status", resp.StatusCode).Int("attempt", attempt).Msg("submission succeeded")
				return parseResult(resp), nil
			}

			subErr := classifyResponse(resp)
			if resp.StatusCode >= 500 && attempt < c.maxRetries {
				if retryErr := c.waitRetry(chainCtx, logger, attempt, subErr.Message); retryErr != nil {
					return nil, retryErr
				}
				attempt++
				continue
			}
			logger.Debug().Int("status", resp.StatusCode).Int("attempt", attempt).Msg("submission failed")
			return nil, subErr
		}

		// Explicit cancellation (or a cancelled parent context) settles the
		// chain without consuming retry budget.
		if errors.Is(chainCtx.Err(), context.Canceled) {
			return nil, newCancelledError()
		}

		if attempt < c.maxRetries {
			if retryErr := c.waitRetry(chainCtx, logger, attempt, err.Error()); retryErr != nil {
				return nil, retryErr
			}
			attempt++
			continue
		}
		logger.Debug().Err(err).Int("attempt", attempt).Msg("submission failed")
		return nil, classifyNetworkError(err, c.timeout)
	}
}

// waitRetry sleeps the backoff delay for the given attempt, translating an
// interrupted sleep into a terminal cancellation error.
func (c *Client) waitRetry(chainCtx context.Context, logger zerolog.Logger, attempt int, reason string) *Error {
	delay := transport.Backoff(attempt, c.retryBaseDelay)
	logger.Debug().Int("attempt", attempt).Dur("delay", delay).Str("reason", reason).Msg("retrying submission")
	if err := transport.Sleep(chainCtx, delay); err != nil {
		return newCancelledError()
	}
	return nil
}

func (c *Client) buildHeader() http.Header {
	header := make(http.Header, len(c.headers)+1)
	header.Set("Content-Type", "application/json")
	for key, value := range c.headers {
		header.Set(key, value)
	}
	return header
}

func (c *Client) succeed(result *Result) {
	c.state.set(State{Success: true, Data: result})
	if c.onSuccess != nil {
		c.onSuccess(result)
	}
}

func (c *Client) fail(subErr *Error) {
	c.state.set(State{Err: subErr})
	if c.onError != nil {
		c.onError(subErr)
	}
}

// handleSlot guards the single in-flight handle. Replacing never cancels the
// previous handle; clearing is conditional so a settled chain can't drop a
// newer submission's token.
type handleSlot struct {
	mu      sync.Mutex
	current *handle
}

func (s *handleSlot) replace(h *handle) {
	s.mu.Lock()
	s.current = h
	s.mu.Unlock()
}

// clear removes h only if it is still the current handle.
func (s *handleSlot) clear(h *handle) {
	s.mu.Lock()
	if s.current == h {
		s.current = nil
	}
	s.mu.Unlock()
}

// take removes and returns the current handle, nil when nothing is in
// flight.
func (s *handleSlot) take() *handle {
	s.mu.Lock()
	h := s.current
	s.current = nil
	s.mu.Unlock()
	return h
}
