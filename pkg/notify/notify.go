// Package notify renders contact form submissions into notification content
// (themed HTML and plain text) for an outbound delivery collaborator. The
// renderer is deterministic and side-effect free: identical inputs and
// options always produce byte-identical output.
package notify

import (
	"fmt"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

// Submission is the structured contact form payload the renderers consume.
// Phone and Subject are optional; empty fields never appear in output.
type Submission struct {
	Name    string
	Email   string
	Phone   string
	Subject string
	Message string
}

// DefaultSubject is the heading used when a submission carries no subject.
const DefaultSubject = "New Contact Form Submission"

// DefaultFooter closes the HTML notification when the caller supplies none.
const DefaultFooter = "This notification was generated automatically."

// textSignature is the fixed footer appended to plain-text notifications.
const textSignature = "--\nSent via go-formsubmit"

// Option customises a single HTML render.
type Option func(*renderOptions)

type renderOptions struct {
	theme        string
	brandColor   string
	logoURL      string
	footerText   string
	markupPolicy *bluemonday.Policy
}

// WithTheme selects one of the built-in themes (minimal, branded, dark).
func WithTheme(name string) Option {
	return func(o *renderOptions) {
		o.theme = strings.TrimSpace(name)
	}
}

// WithBrandColor overrides the accent color used by the branded theme.
func WithBrandColor(color string) Option {
	return func(o *renderOptions) {
		o.brandColor = strings.TrimSpace(color)
	}
}

// WithLogoURL renders a logo image block above the heading.
func WithLogoURL(url string) Option {
	return func(o *renderOptions) {
		o.logoURL = strings.TrimSpace(url)
	}
}

// WithFooterText replaces the default footer line.
func WithFooterText(text string) Option {
	return func(o *renderOptions) {
		o.footerText = strings.TrimSpace(text)
	}
}

// WithMessageMarkup renders the message body through the given bluemonday
// policy instead of escaping it, allowing vetted rich content through. All
// other fields remain escaped unconditionally.
func WithMessageMarkup(policy *bluemonday.Policy) Option {
	return func(o *renderOptions) {
		o.markupPolicy = policy
	}
}

// Renderer binds a template engine to the notification layouts.
type Renderer struct {
	engine TemplateRenderer
}

// RendererOption customises renderer construction.
type RendererOption func(*rendererConfig)

type rendererConfig struct {
	engine TemplateRenderer
}

// WithTemplateRenderer injects a custom template engine implementation.
func WithTemplateRenderer(engine TemplateRenderer) RendererOption {
	return func(cfg *rendererConfig) {
		if engine != nil {
			cfg.engine = engine
		}
	}
}

// NewRenderer constructs a Renderer, defaulting to the embedded templates.
func NewRenderer(options ...RendererOption) (*Renderer, error) {
	cfg := rendererConfig{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	engine := cfg.engine
	if engine == nil {
		built, err := NewEngine(WithEngineFS(TemplatesFS()))
		if err != nil {
			return nil, fmt.Errorf("notify: configure template engine: %w", err)
		}
		engine = built
	}

	return &Renderer{engine: engine}, nil
}

// HTML renders the submission as a complete, minimal HTML document. Every
// caller-supplied value is escaped before interpolation; the only exception
// is the message body when WithMessageMarkup sanitizes it explicitly.
func (r *Renderer) HTML(sub Submission, options ...Option) (string, error) {
	if r == nil || r.engine == nil {
		return "", fmt.Errorf("notify: renderer is not initialised")
	}

	opts := renderOptions{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&opts)
	}

	themeConfig, err := resolveTheme(opts.theme, opts.brandColor)
	if err != nil {
		return "", err
	}

	subject := strings.TrimSpace(sub.Subject)
	if subject == "" {
		subject = DefaultSubject
	}
	footer := opts.footerText
	if footer == "" {
		footer = DefaultFooter
	}

	context := map[string]any{
		"subject":  subject,
		"name":     strings.TrimSpace(sub.Name),
		"email":    strings.TrimSpace(sub.Email),
		"phone":    strings.TrimSpace(sub.Phone),
		"message":  sub.Message,
		"logo_url": opts.logoURL,
		"footer":   footer,
		"theme":    themeConfig.Tokens,
	}
	if opts.markupPolicy != nil {
		context["message_html"] = opts.markupPolicy.Sanitize(sub.Message)
	}

	return r.engine.RenderTemplate("templates/email.html.tmpl", context)
}

// Text renders the plain-text notification: optional subject line, labeled
// fields, the message body verbatim, and a fixed signature. No escaping is
// applied.
func (r *Renderer) Text(sub Submission) string {
	var b strings.Builder
	if subject := strings.TrimSpace(sub.Subject); subject != "" {
		fmt.Fprintf(&b, "Subject: %s\n", subject)
	}
	fmt.Fprintf(&b, "Name: %s\n", sub.Name)
	fmt.Fprintf(&b, "Email: %s\n", sub.Email)
	if phone := strings.TrimSpace(sub.Phone); phone != "" {
		fmt.Fprintf(&b, "Phone: %s\n", phone)
	}
	b.WriteString("\nMessage:\n")
	b.WriteString(sub.Message)
	b.WriteString("\n\n")
	b.WriteString(textSignature)
	b.WriteString("\n")
	return b.String()
}

var (
	defaultRendererOnce sync.Once
	defaultRenderer     *Renderer
	defaultRendererErr  error
)

func sharedRenderer() (*Renderer, error) {
	defaultRendererOnce.Do(func() {
		defaultRenderer, defaultRendererErr = NewRenderer()
	})
	return defaultRenderer, defaultRendererErr
}

// HTML renders with the shared embedded-template renderer.
func HTML(sub Submission, options ...Option) (string, error) {
	renderer, err := sharedRenderer()
	if err != nil {
		return "", err
	}
	return renderer.HTML(sub, options...)
}

// Text renders the plain-text notification with default settings.
func Text(sub Submission) string {
	return (&Renderer{}).Text(sub)
}
