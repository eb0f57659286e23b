package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/spec-kit/user-admin-service/internal/config"
	"github.com/spec-kit/user-admin-service/internal/events"
	"github.com/spec-kit/user-admin-service/internal/service"
)

func TestNotificationServiceObservesLifecycleEvents(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	logger := zap.New(core)

	dispatcher := events.NewInMemoryDispatcher()
	notificationService := service.NewNotificationService(dispatcher, logger, config.NotificationConfig{})
	notificationService.RegisterHandlers()

	_ = dispatcher.Publish(context.Background(), events.Event{
		Type:      events.EventUserDeleted,
		SubjectID: "acct-1",
		ActorID:   "admin-1",
		Payload:   events.UserDeletedPayload{Email: "t@x.com"},
	})

	entries := logs.FilterMessage("lifecycle event").All()
	assert.Len(t, entries, 1)
	assert.Equal(t, "user_deleted", entries[0].ContextMap()["type"])
	assert.Equal(t, "acct-1", entries[0].ContextMap()["subject_id"])
}
