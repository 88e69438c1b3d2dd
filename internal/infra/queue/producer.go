package queue

import (
	"context"
	"encoding/json"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"github.com/oakline-studio/crm-backend/internal/usecase"
)

// AuditProducer publishes operator-action events to the audit queue. Record is
// strictly best-effort: a publish failure is logged and swallowed so the
// caller's primary operation never fails because of auditing.
type AuditProducer struct {
	Ch  *amqp.Channel
	Log *zap.Logger
}

func NewAuditProducer(ch *amqp.Channel, log *zap.Logger) *AuditProducer {
	return &AuditProducer{Ch: ch, Log: log}
}

func (p *AuditProducer) Record(ctx context.Context, event usecase.AuditEvent) {
	body, err := json.Marshal(event)
	if err != nil {
		p.Log.Error("failed to encode audit event", zap.Error(err))
		return
	}

	err = p.Ch.PublishWithContext(ctx,
		ExchangeName,
		RoutingKey,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
		},
	)
	if err != nil {
		p.Log.Error("failed to publish audit event",
			zap.String("action", event.Action),
			zap.Error(err),
		)
	}
}
