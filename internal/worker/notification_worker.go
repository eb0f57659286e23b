package worker

import (
	"github.com/spec-kit/user-admin-service/internal/service"
)

// StartNotificationWorker subscribes the notification service to
// lifecycle events. Handlers run on the publisher's goroutine; the
// coordinator does not wait on them for its own result.
func StartNotificationWorker(notificationService *service.NotificationService) {
	if notificationService == nil {
		return
	}
	notificationService.RegisterHandlers()
}
