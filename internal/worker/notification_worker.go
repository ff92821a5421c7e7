package worker

import "github.com/spec-kit/field-report-service/internal/service"

// StartNotificationWorker subscribes the notification service to domain
// events. Dispatch is synchronous and in-process; this exists so wiring stays
// in one place if delivery moves to a background consumer.
func StartNotificationWorker(notifications *service.NotificationService) {
	notifications.RegisterHandlers()
}
