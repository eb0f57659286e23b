// Package notify renders and delivers credential notifications. The
// message content is assembled once into a typed structure and rendered
// twice, as HTML and as plain text, so the two bodies always derive
// from the same data.
package notify

import "context"

// Branding controls the look of rendered notifications. Zero-value
// fields fall back to the dispatcher's configured defaults.
type Branding struct {
	AppName     string
	AppURL      string
	LogoURL     string
	AccentColor string
}

// Request carries everything needed to notify a recipient of newly
// issued credentials. IssuedPassword is plaintext and one-time; it is
// never persisted by this package.
type Request struct {
	RecipientEmail string
	RecipientName  string
	IssuedEmail    string
	IssuedPassword string
	Role           string
	Permissions    []string
	SenderName     string
	SenderRole     string
	Locale         string
	Branding       *Branding
}

// Result reports a completed delivery.
type Result struct {
	MessageID string
}

// Transport delivers a rendered message. Implementations must not
// retry on behalf of the caller.
type Transport interface {
	Send(ctx context.Context, from, to, subject, html, text string) (string, error)
}
