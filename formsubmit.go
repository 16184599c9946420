// Package formsubmit submits structured form data to a collaborator endpoint
// with timeout, retry, and cancellation policies, and renders notification
// content (themed HTML and plain text) for the caller's backend. The root
// package re-exports the main entry points; the pkg/ packages hold the
// implementations.
package formsubmit

import (
	"github.com/goliatone/go-formsubmit/pkg/notify"
	"github.com/goliatone/go-formsubmit/pkg/submission"
	"github.com/goliatone/go-formsubmit/pkg/validation"
)

// Client orchestrates submissions against a fixed endpoint.
type Client = submission.Client

// Option customises client construction.
type Option = submission.Option

// State is the observable submission lifecycle snapshot.
type State = submission.State

// Result is the success payload of a settled submission.
type Result = submission.Result

// Error is the uniform failure shape surfaced by Submit and onError.
type Error = submission.Error

// ValidationResult reports validator outcomes.
type ValidationResult = validation.Result

// Submission is the structured payload consumed by the notification
// renderers.
type Submission = notify.Submission

// RenderOption customises a single HTML render.
type RenderOption = notify.Option

// New constructs a submission client for the given endpoint.
func New(endpoint string, options ...Option) (*Client, error) {
	return submission.New(endpoint, options...)
}

// ContactValidator returns the built-in contact form policy: name, email,
// and message required, email shape checked.
func ContactValidator() validation.Func {
	return validation.Contact()
}

// RenderHTML renders a themed HTML notification using the embedded
// templates.
func RenderHTML(sub Submission, options ...RenderOption) (string, error) {
	return notify.HTML(sub, options...)
}

// RenderText renders the plain-text notification.
func RenderText(sub Submission) string {
	return notify.Text(sub)
}
