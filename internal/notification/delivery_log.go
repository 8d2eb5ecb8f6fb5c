package notification

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	DeliveryStatusSent   = "sent"
	DeliveryStatusFailed = "failed"
)

// DeliveryLog records every attempted WhatsApp delivery, sent or failed, so
// the alert audit trail survives provider outages.
type DeliveryLog struct {
	ID             uuid.UUID `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	SchoolID       uuid.UUID `gorm:"column:school_id;type:uuid;not null;index"`
	RecipientPhone string    `gorm:"column:recipient_phone;type:varchar(30);not null"`
	Message        string    `gorm:"column:message;type:text;not null"`
	Status         string    `gorm:"column:status;type:varchar(20);not null"`
	ProviderRef    *string   `gorm:"column:provider_ref;type:varchar(100)"`
	SentAt         time.Time `gorm:"column:sent_at"`
}

func (DeliveryLog) TableName() string {
	return "whatsapp_alerts"
}

//go:generate mockgen -source=delivery_log.go -destination=mock/delivery_log_repo_mock.go -package=mock
type DeliveryLogRepository interface {
	Create(ctx context.Context, l *DeliveryLog) error
}

type deliveryLogRepository struct {
	db *gorm.DB
}

func NewDeliveryLogRepository(db *gorm.DB) DeliveryLogRepository {
	return &deliveryLogRepository{db: db}
}

func (r *deliveryLogRepository) Create(ctx context.Context, l *DeliveryLog) error {
	return r.db.WithContext(ctx).Create(l).Error
}
