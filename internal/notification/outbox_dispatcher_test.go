package notification

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"go-school/internal/events"
	"go-school/internal/messaging/kafka"

	"github.com/stretchr/testify/assert"
)

type fakeOutbox struct {
	created []kafka.OutboxEvent
	err     error
}

func (f *fakeOutbox) WithTx(tx *sql.Tx) kafka.OutboxRepository { return f }
func (f *fakeOutbox) Create(ctx context.Context, event kafka.OutboxEvent) error {
	if f.err != nil {
		return f.err
	}
	f.created = append(f.created, event)
	return nil
}
func (f *fakeOutbox) ListPending(ctx context.Context, limit int) ([]kafka.OutboxEvent, error) {
	return f.created, nil
}
func (f *fakeOutbox) MarkSent(ctx context.Context, id string) error               { return nil }
func (f *fakeOutbox) MarkFailed(ctx context.Context, id string, reason string) error { return nil }

func TestOutboxDispatcher_Send(t *testing.T) {
	outbox := &fakeOutbox{}
	d := NewOutboxDispatcher(outbox)

	err := d.Send(context.Background(), "school-1", "principal",
		"Teacher Asha Rao marked attendance 150m from school (orange zone)")
	assert.NoError(t, err)

	if assert.Len(t, outbox.created, 1) {
		row := outbox.created[0]
		assert.Equal(t, events.AlertRaisedTopic, row.Topic)
		assert.Equal(t, "alert.raised", row.EventType)
		assert.Equal(t, kafka.OutboxStatusPending, row.Status)
		assert.Equal(t, "principal_alert", row.AggregateType)

		var event events.AlertRaisedEvent
		assert.NoError(t, json.Unmarshal(row.Payload, &event))
		assert.Equal(t, "school-1", event.SchoolID)
		assert.Equal(t, "principal", event.RecipientRole)
		assert.Contains(t, event.Message, "orange zone")
		assert.WithinDuration(t, time.Now(), event.OccurredAt, time.Minute)
	}
}

func TestOutboxDispatcher_SendSurvivesCanceledCaller(t *testing.T) {
	outbox := &fakeOutbox{}
	d := NewOutboxDispatcher(outbox)

	// a caller whose request context already ended must still enqueue
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := d.Send(ctx, "school-1", "principal", "message")
	assert.NoError(t, err)
	assert.Len(t, outbox.created, 1)
}

func TestOutboxDispatcher_SendReportsEnqueueFailure(t *testing.T) {
	outbox := &fakeOutbox{err: errors.New("db down")}
	d := NewOutboxDispatcher(outbox)

	err := d.Send(context.Background(), "school-1", "principal", "message")
	assert.Error(t, err)
}
