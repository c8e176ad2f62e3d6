package mq

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	mqcontracts "fieldforce/contracts/mq"
	"fieldforce/pkg/metrics"
)

// Publisher writes lifecycle events to the events exchange, one contracts
// envelope per event with the kind as the routing key.
type Publisher struct {
	conn    *amqp091.Connection
	channel *amqp091.Channel
	logger  *zap.Logger
}

func NewPublisher(url string, logger *zap.Logger) (*Publisher, error) {
	conn, ch, err := connect(url)
	if err != nil {
		return nil, err
	}

	return &Publisher{
		conn:    conn,
		channel: ch,
		logger:  logger,
	}, nil
}

func (p *Publisher) Close() {
	if p.channel != nil {
		_ = p.channel.Close()
	}
	if p.conn != nil {
		_ = p.conn.Close()
	}
}

// IsConnected checks if the publisher connection is still alive.
func (p *Publisher) IsConnected() bool {
	if p.conn == nil || p.channel == nil {
		return false
	}
	if p.conn.IsClosed() {
		return false
	}
	return true
}

// PublishEvent wraps the payload and recipients in the shared envelope,
// stamps the emission time and publishes it persistently. Every outcome is
// counted per kind.
func (p *Publisher) PublishEvent(kind string, recipients []mqcontracts.Recipient, payload any) error {
	envelope := mqcontracts.Envelope{
		Kind:       kind,
		Recipients: recipients,
		Payload:    payload,
		EmittedAt:  time.Now().UTC(),
	}

	body, err := json.Marshal(envelope)
	if err != nil {
		metrics.IncrementEventPublished(kind, "failed")
		return fmt.Errorf("failed to marshal envelope: %w", err)
	}

	err = p.channel.Publish(
		ExchangeName,
		kind,
		false,
		false,
		amqp091.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp091.Persistent,
		},
	)
	if err != nil {
		metrics.IncrementEventPublished(kind, "failed")
		return err
	}
	metrics.IncrementEventPublished(kind, "success")

	p.logger.Debug("Published event",
		zap.String("kind", kind),
		zap.Int("recipients", len(recipients)),
	)
	return nil
}
