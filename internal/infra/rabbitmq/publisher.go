package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/veriscan/veriscan-detection-service/internal/domain/entity"
)

// VerdictPublisher emits one event per completed analysis so downstream
// consumers (moderation queues, audit trails) can react. Publishing is
// fire-and-forget from the request's point of view.
type VerdictPublisher struct {
	channel    *amqp.Channel
	exchange   string
	routingKey string
}

func NewVerdictPublisher(conn *amqp.Connection, exchange string) (*VerdictPublisher, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("open publisher channel: %w", err)
	}

	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		return nil, fmt.Errorf("declare exchange %s: %w", exchange, err)
	}

	return &VerdictPublisher{
		channel:    ch,
		exchange:   exchange,
		routingKey: "detection.verdict",
	}, nil
}

func (p *VerdictPublisher) PublishVerdict(ctx context.Context, event entity.VerdictEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal verdict event: %w", err)
	}

	return p.channel.PublishWithContext(ctx,
		p.exchange,
		p.routingKey,
		false, false,
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now().UTC(),
		},
	)
}

func (p *VerdictPublisher) Close() error {
	return p.channel.Close()
}
