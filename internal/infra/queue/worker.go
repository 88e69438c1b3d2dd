package queue

import (
	"context"
	"encoding/json"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"github.com/oakline-studio/crm-backend/internal/usecase"
)

// AuditSink persists consumed audit events; implemented by the database
// audit-log repository.
type AuditSink interface {
	Insert(ctx context.Context, event usecase.AuditEvent) error
}

// Worker drains the audit queue into the sink. Malformed messages are rejected
// without requeue so a poisoned event cannot wedge the queue.
type Worker struct {
	Channel *amqp.Channel
	Sink    AuditSink
	Log     *zap.Logger
}

func NewWorker(ch *amqp.Channel, sink AuditSink, log *zap.Logger) *Worker {
	return &Worker{Channel: ch, Sink: sink, Log: log}
}

func (w *Worker) Start(ctx context.Context, queueName string) error {
	msgs, err := w.Channel.Consume(
		queueName,
		"",    // consumer
		false, // manual ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,
	)
	if err != nil {
		return err
	}

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case d, ok := <-msgs:
				if !ok {
					return
				}
				w.handle(ctx, d)
			}
		}
	}()

	return nil
}

func (w *Worker) handle(ctx context.Context, d amqp.Delivery) {
	var event usecase.AuditEvent
	if err := json.Unmarshal(d.Body, &event); err != nil {
		w.Log.Warn("rejecting malformed audit event", zap.Error(err))
		d.Nack(false, false)
		return
	}

	if err := w.Sink.Insert(ctx, event); err != nil {
		w.Log.Error("failed to persist audit event",
			zap.String("action", event.Action),
			zap.Error(err),
		)
		d.Nack(false, false)
		return
	}

	d.Ack(false)
}
