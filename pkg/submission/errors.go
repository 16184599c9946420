package submission

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/goliatone/go-formsubmit/pkg/transport"
)

// Error codes carried by submission failures. Remote failures carry a Status
// instead and only echo a code when the collaborator supplied one.
const (
	CodeValidation = "VALIDATION_ERROR"
	CodeNetwork    = "NETWORK_ERROR"
)

// Fixed messages for transport failures that carry no useful detail.
const (
	messageCancelled      = "Request cancelled"
	messageNetworkFailure = "Network error occurred"
)

// Error is the uniform failure shape surfaced by Submit and onError. Callers
// distinguish kinds by inspecting Code and Status rather than the type.
// Immutable once constructed.
type Error struct {
	Message     string
	Code        string
	Status      int
	FieldErrors map[string][]string
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	return e.Message
}

// IsValidation reports whether the failure happened before any network
// attempt.
func (e *Error) IsValidation() bool {
	return e != nil && e.Code == CodeValidation
}

// IsNetwork reports whether the failure was transport-level, including
// timeouts and cancellation.
func (e *Error) IsNetwork() bool {
	return e != nil && e.Code == CodeNetwork && e.Status == 0
}

// IsRemote reports whether the collaborator answered with a non-2xx status.
func (e *Error) IsRemote() bool {
	return e != nil && e.Status != 0
}

func newValidationError(fieldErrors map[string][]string) *Error {
	copied := make(map[string][]string, len(fieldErrors))
	for field, messages := range fieldErrors {
		copied[field] = append([]string(nil), messages...)
	}
	return &Error{
		Message:     "Validation failed",
		Code:        CodeValidation,
		FieldErrors: copied,
	}
}

func newCancelledError() *Error {
	return &Error{Message: messageCancelled, Code: CodeNetwork}
}

// remotePayload is the optional structured body collaborators may return on
// failure.
type remotePayload struct {
	Message string              `json:"message"`
	Code    string              `json:"code"`
	Errors  map[string][]string `json:"errors"`
}

// classifyResponse normalises a non-2xx collaborator response. JSON bodies
// contribute message/code/field errors; anything else degrades to the raw
// text body or a synthesized status message.
func classifyResponse(resp *transport.Response) *Error {
	subErr := &Error{Status: resp.StatusCode}

	body := bytes.TrimSpace(resp.Body)
	if len(body) > 0 {
		if strings.Contains(resp.ContentType(), "application/json") {
			var payload remotePayload
			if err := json.Unmarshal(body, &payload); err == nil {
				subErr.Message = strings.TrimSpace(payload.Message)
				subErr.Code = payload.Code
				if len(payload.Errors) > 0 {
					subErr.FieldErrors = payload.Errors
				}
			} else {
				subErr.Message = string(body)
			}
		} else {
			subErr.Message = string(body)
		}
	}

	if subErr.Message == "" {
		subErr.Message = fmt.Sprintf("Request failed with status %d", resp.StatusCode)
	}
	return subErr
}

// classifyNetworkError normalises a transport-level failure. Deadline
// expiry becomes a timeout message; empty error text falls back to a fixed
// message so callers always see something actionable.
func classifyNetworkError(err error, timeout time.Duration) *Error {
	if errors.Is(err, context.Canceled) {
		return newCancelledError()
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return &Error{
			Message: fmt.Sprintf("Request timed out after %s", timeout),
			Code:    CodeNetwork,
		}
	}
	message := ""
	if err != nil {
		message = strings.TrimSpace(err.Error())
	}
	if message == "" {
		message = messageNetworkFailure
	}
	return &Error{Message: message, Code: CodeNetwork}
}
