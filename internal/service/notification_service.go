package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/user-admin-service/internal/config"
	"github.com/spec-kit/user-admin-service/internal/events"
)

// NotificationService observes lifecycle events for audit and webhook
// fan-out. Credential emails are not sent from here; the coordinator
// dispatches those synchronously so their failure can be reported with
// the createUser result.
type NotificationService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
	cfg        config.NotificationConfig
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, logger *zap.Logger, cfg config.NotificationConfig) *NotificationService {
	return &NotificationService{
		dispatcher: dispatcher,
		logger:     logger,
		cfg:        cfg,
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventUserCreated, n.handleLifecycleEvent)
	n.dispatcher.Subscribe(events.EventUserUpdated, n.handleLifecycleEvent)
	n.dispatcher.Subscribe(events.EventUserDeleted, n.handleLifecycleEvent)
	n.dispatcher.Subscribe(events.EventPasswordReset, n.handleLifecycleEvent)
	n.dispatcher.Subscribe(events.EventSessionsRevoked, n.handleLifecycleEvent)
	n.dispatcher.Subscribe(events.EventResetLinkIssued, n.handleLifecycleEvent)
}

func (n *NotificationService) handleLifecycleEvent(ctx context.Context, event events.Event) error {
	n.logger.Info("lifecycle event",
		zap.String("type", string(event.Type)),
		zap.String("subject_id", event.SubjectID),
		zap.String("actor_id", event.ActorID),
		zap.Any("payload", event.Payload))
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) sendWebhookNotificationStub(ctx context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.WebhookURL) == "" {
		return
	}
	n.logger.Debug("sendWebhookNotificationStub",
		zap.String("url", n.cfg.WebhookURL),
		zap.String("subject_id", event.SubjectID),
		zap.String("event_type", string(event.Type)))
}
