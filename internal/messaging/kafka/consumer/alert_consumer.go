package consumer

import (
	"context"
	"encoding/json"
	"time"

	"go-school/internal/events"
	"go-school/internal/notification"
	"go-school/internal/notification/whatsapp"
	"go-school/internal/school"
	"go-school/internal/settings"

	"github.com/google/uuid"
	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// ConsumeAlertNotifications delivers alert.raised events over the school's
// configured WhatsApp channel. Delivery problems are logged and committed
// anyway: an alert the principal already sees on the dashboard must not wedge
// the consumer group.
func ConsumeAlertNotifications(
	ctx context.Context,
	reader *kafkago.Reader,
	schoolRepo school.Repository,
	settingsStore settings.Store,
	client *whatsapp.Client,
	deliveryLogs notification.DeliveryLogRepository,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.alert_notifications")
	log.Info("alert notification consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("alert notification consumer stopped")
				return
			}
			log.Error("fetch alert notification message failed", zap.Error(err))
			continue
		}

		var event events.AlertRaisedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode alert.raised event failed", zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		deliverAlert(ctx, event, schoolRepo, settingsStore, client, deliveryLogs, log)

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit alert notification message failed", zap.Error(err))
		}
	}
}

func deliverAlert(
	ctx context.Context,
	event events.AlertRaisedEvent,
	schoolRepo school.Repository,
	settingsStore settings.Store,
	client *whatsapp.Client,
	deliveryLogs notification.DeliveryLogRepository,
	log *zap.Logger,
) {
	cfg, err := whatsapp.ConfigFor(ctx, settingsStore, event.SchoolID)
	if err != nil {
		log.Error("load whatsapp config failed",
			zap.String("school_id", event.SchoolID),
			zap.Error(err),
		)
		return
	}
	if !cfg.Enabled {
		log.Info("whatsapp not configured for school, skipping delivery",
			zap.String("school_id", event.SchoolID),
		)
		return
	}

	phone, err := schoolRepo.FindPrincipalPhone(ctx, event.SchoolID)
	if err != nil {
		log.Error("resolve principal phone failed",
			zap.String("school_id", event.SchoolID),
			zap.Error(err),
		)
		return
	}
	if phone == "" {
		log.Warn("no principal phone on file, skipping delivery",
			zap.String("school_id", event.SchoolID),
		)
		return
	}

	schoolUUID, err := uuid.Parse(event.SchoolID)
	if err != nil {
		log.Error("invalid school id in alert event", zap.String("school_id", event.SchoolID))
		return
	}

	entry := &notification.DeliveryLog{
		ID:             uuid.New(),
		SchoolID:       schoolUUID,
		RecipientPhone: phone,
		Message:        event.Message,
		SentAt:         time.Now().UTC(),
	}

	providerRef, err := client.SendText(ctx, cfg, phone, event.Message)
	if err != nil {
		entry.Status = notification.DeliveryStatusFailed
		log.Error("whatsapp delivery failed",
			zap.String("school_id", event.SchoolID),
			zap.Error(err),
		)
	} else {
		entry.Status = notification.DeliveryStatusSent
		entry.ProviderRef = &providerRef
	}

	if err := deliveryLogs.Create(ctx, entry); err != nil {
		log.Error("record delivery log failed",
			zap.String("school_id", event.SchoolID),
			zap.Error(err),
		)
	}
}
