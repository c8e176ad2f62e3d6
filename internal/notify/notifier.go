// Package notify bridges lifecycle events onto the message broker.
package notify

import (
	"context"

	"go.uber.org/zap"

	mqcontracts "fieldforce/contracts/mq"
	"fieldforce/internal/lifecycle"
	"fieldforce/internal/model"
	"fieldforce/pkg/mq"
)

// MQNotifier adapts engine events to the wire contract and hands them to the
// publisher. The workers fan deliveries out per kind.
type MQNotifier struct {
	publisher *mq.Publisher
	logger    *zap.Logger
}

func NewMQNotifier(publisher *mq.Publisher, logger *zap.Logger) *MQNotifier {
	return &MQNotifier{publisher: publisher, logger: logger}
}

func (n *MQNotifier) Notify(_ context.Context, e lifecycle.Event) error {
	if err := n.publisher.PublishEvent(e.Kind, toWire(e.Recipients), e.Payload); err != nil {
		return err
	}

	n.logger.Info("Published event",
		zap.String("kind", e.Kind),
		zap.Int("recipients", len(e.Recipients)),
	)
	return nil
}

func toWire(recipients []model.Recipient) []mqcontracts.Recipient {
	out := make([]mqcontracts.Recipient, len(recipients))
	for i, r := range recipients {
		out[i] = mqcontracts.Recipient{
			UserID:  r.UserID,
			Name:    r.Name,
			Email:   r.Email,
			PhoneNo: r.PhoneNo,
		}
	}
	return out
}
