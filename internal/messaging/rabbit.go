package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

const (
	// ExchangeName is the topic exchange notification consumers bind to.
	ExchangeName = "laporan.notifications"

	RoutingKeyReportCreated  = "laporan.created"
	RoutingKeyReportReviewed = "laporan.reviewed"

	publishTimeout = 5 * time.Second
)

// Publisher pushes notification messages to a broker.
type Publisher interface {
	Publish(ctx context.Context, routingKey string, message interface{}) error
	Close()
}

// RabbitPublisher is an AMQP-backed Publisher.
type RabbitPublisher struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	logger  *zap.Logger
}

// NewRabbitPublisher dials the broker and declares the notification exchange.
func NewRabbitPublisher(url string, logger *zap.Logger) (*RabbitPublisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("connect rabbitmq: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	if err := channel.ExchangeDeclare(
		ExchangeName,
		"topic",
		true,  // durable
		false, // auto-deleted
		false, // internal
		false, // no-wait
		nil,
	); err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("declare exchange: %w", err)
	}

	logger.Info("connected to rabbitmq", zap.String("exchange", ExchangeName))
	return &RabbitPublisher{conn: conn, channel: channel, logger: logger}, nil
}

// Publish marshals the message as JSON and publishes it persistently.
func (p *RabbitPublisher) Publish(ctx context.Context, routingKey string, message interface{}) error {
	body, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("marshal message: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	if err := p.channel.PublishWithContext(
		ctx,
		ExchangeName,
		routingKey,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Body:         body,
		},
	); err != nil {
		return fmt.Errorf("publish message: %w", err)
	}
	return nil
}

// Close releases channel and connection.
func (p *RabbitPublisher) Close() {
	if p.channel != nil {
		_ = p.channel.Close()
	}
	if p.conn != nil {
		_ = p.conn.Close()
	}
	p.logger.Info("rabbitmq connection closed")
}
