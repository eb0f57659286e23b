package notify

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/user-admin-service/internal/config"
)

// Dispatcher renders credential notifications and hands them to the
// mail transport. Delivery is best-effort: a failure is reported to the
// caller and never affects the lifecycle mutation that triggered it.
// Exactly one outbound message is attempted per Dispatch call; resend
// deduplication is the caller's concern.
type Dispatcher struct {
	transport  Transport
	logger     *zap.Logger
	from       string
	senderName string
	defaults   Branding
	locale     string
}

// NewDispatcher builds the dispatcher from configuration.
func NewDispatcher(transport Transport, logger *zap.Logger, cfg config.NotificationConfig) *Dispatcher {
	return &Dispatcher{
		transport:  transport,
		logger:     logger,
		from:       cfg.EmailFrom,
		senderName: cfg.SenderName,
		defaults: Branding{
			AppName:     cfg.AppName,
			AppURL:      cfg.AppURL,
			AccentColor: "#1a7f5a",
		},
		locale: cfg.DefaultLocale,
	}
}

// Dispatch renders and attempts delivery of one credential notification.
func (d *Dispatcher) Dispatch(ctx context.Context, req Request) (Result, error) {
	if req.Locale == "" {
		req.Locale = d.locale
	}
	if req.SenderName == "" {
		req.SenderName = d.senderName
	}

	branding := d.defaults
	if req.Branding != nil {
		if req.Branding.AppName != "" {
			branding.AppName = req.Branding.AppName
		}
		if req.Branding.AppURL != "" {
			branding.AppURL = req.Branding.AppURL
		}
		if req.Branding.LogoURL != "" {
			branding.LogoURL = req.Branding.LogoURL
		}
		if req.Branding.AccentColor != "" {
			branding.AccentColor = req.Branding.AccentColor
		}
	}

	subject, html, text, err := render(req, branding)
	if err != nil {
		return Result{}, err
	}

	messageID, err := d.transport.Send(ctx, d.from, req.RecipientEmail, subject, html, text)
	if err != nil {
		d.logger.Warn("credential notification delivery failed",
			zap.String("recipient", req.RecipientEmail),
			zap.Error(err))
		return Result{}, err
	}

	d.logger.Info("credential notification sent",
		zap.String("recipient", req.RecipientEmail),
		zap.String("message_id", messageID))
	return Result{MessageID: messageID}, nil
}
