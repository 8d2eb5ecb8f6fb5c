package notification

import (
	"context"
	"encoding/json"
	"time"

	"go-school/internal/events"
	"go-school/internal/messaging/kafka"
	"go-school/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const enqueueTimeout = 3 * time.Second

// OutboxDispatcher queues alert notifications through the transactional
// outbox; the producer worker moves them onto Kafka and the consumer does the
// actual channel delivery. The bounded timeout keeps a slow database from
// stalling the check-in response.
type OutboxDispatcher struct {
	outbox kafka.OutboxRepository
	logger *zap.Logger
}

func NewOutboxDispatcher(outbox kafka.OutboxRepository, logger ...*zap.Logger) *OutboxDispatcher {
	l := zap.L().Named("notification.outbox_dispatcher")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("notification.outbox_dispatcher")
	}
	return &OutboxDispatcher{outbox: outbox, logger: l}
}

func (d *OutboxDispatcher) Send(ctx context.Context, schoolID, recipientRole, message string) error {
	rid := contextutil.GetRequestID(ctx)

	event := events.AlertRaisedEvent{
		EventType:     "alert.raised",
		SchoolID:      schoolID,
		RecipientRole: recipientRole,
		Message:       message,
		OccurredAt:    time.Now().UTC(),
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	enqueueCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), enqueueTimeout)
	defer cancel()

	err = d.outbox.Create(enqueueCtx, kafka.OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     rid,
		AggregateType: "principal_alert",
		AggregateID:   schoolID,
		EventType:     event.EventType,
		Topic:         events.AlertRaisedTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
	if err != nil {
		d.logger.Error("enqueue alert notification failed",
			zap.String("request_id", rid),
			zap.String("school_id", schoolID),
			zap.Error(err),
		)
		return err
	}

	return nil
}
