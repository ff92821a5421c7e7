package service

import (
	"context"
	"strings"
	"time"

	retry "github.com/avast/retry-go"
	"go.uber.org/zap"

	"github.com/spec-kit/field-report-service/internal/config"
	"github.com/spec-kit/field-report-service/internal/events"
	"github.com/spec-kit/field-report-service/internal/messaging"
)

// NotificationService forwards domain events to the notification broker and
// webhook. Delivery failures are logged and never surfaced to the action
// that produced the event.
type NotificationService struct {
	dispatcher events.Dispatcher
	publisher  messaging.Publisher
	logger     *zap.Logger
	cfg        config.NotificationConfig
}

// NewNotificationService creates the service. publisher may be nil when no
// broker is configured.
func NewNotificationService(dispatcher events.Dispatcher, publisher messaging.Publisher, logger *zap.Logger, cfg config.NotificationConfig) *NotificationService {
	return &NotificationService{
		dispatcher: dispatcher,
		publisher:  publisher,
		logger:     logger,
		cfg:        cfg,
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventReportCreated, n.handleReportCreated)
	n.dispatcher.Subscribe(events.EventReportReviewed, n.handleReportReviewed)
	n.dispatcher.Subscribe(events.EventUserCreated, n.handleUserCreated)
}

func (n *NotificationService) handleReportCreated(ctx context.Context, event events.Event) error {
	n.logger.Info("ReportCreated", zap.String("report_id", event.ReportID), zap.Any("payload", event.Payload))
	n.publishToBroker(ctx, messaging.RoutingKeyReportCreated, event)
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handleReportReviewed(ctx context.Context, event events.Event) error {
	n.logger.Info("ReportReviewed", zap.String("report_id", event.ReportID), zap.Any("payload", event.Payload))
	n.publishToBroker(ctx, messaging.RoutingKeyReportReviewed, event)
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handleUserCreated(ctx context.Context, event events.Event) error {
	n.logger.Info("UserCreated", zap.Any("payload", event.Payload))
	return nil
}

func (n *NotificationService) publishToBroker(ctx context.Context, routingKey string, event events.Event) {
	if n.publisher == nil {
		return
	}
	err := retry.Do(
		func() error {
			return n.publisher.Publish(ctx, routingKey, event)
		},
		retry.Attempts(3),
		retry.Delay(200*time.Millisecond),
	)
	if err != nil {
		n.logger.Warn("broker publish failed",
			zap.String("routing_key", routingKey),
			zap.String("event_id", event.ID),
			zap.Error(err))
	}
}

func (n *NotificationService) sendWebhookNotificationStub(ctx context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.WebhookURL) == "" {
		return
	}
	n.logger.Debug("sendWebhookNotificationStub",
		zap.String("url", n.cfg.WebhookURL),
		zap.String("event_type", string(event.Type)))
}
