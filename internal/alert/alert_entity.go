package alert

import (
	"time"

	"github.com/google/uuid"
)

type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

type PrincipalAlert struct {
	ID                uuid.UUID  `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	SchoolID          uuid.UUID  `gorm:"column:school_id;type:uuid;not null;index"`
	AlertType         string     `gorm:"column:alert_type;type:varchar(50);not null"`
	Severity          Severity   `gorm:"column:severity;type:varchar(20);not null;default:medium"`
	Title             string     `gorm:"column:title;type:varchar(255);not null"`
	Message           string     `gorm:"column:message;type:text;not null"`
	RelatedEntityType *string    `gorm:"column:related_entity_type;type:varchar(50)"`
	RelatedEntityID   *uuid.UUID `gorm:"column:related_entity_id;type:uuid"`
	GpsLogID          *uuid.UUID `gorm:"column:gps_log_id;type:uuid"`
	SentVia           string     `gorm:"column:sent_via;type:varchar(100)"`
	Acknowledged      bool       `gorm:"column:acknowledged;not null;default:false"`
	AcknowledgedBy    *uuid.UUID `gorm:"column:acknowledged_by;type:uuid"`
	AcknowledgedAt    *time.Time `gorm:"column:acknowledged_at"`
	ActionTaken       *string    `gorm:"column:action_taken;type:text"`
	Resolved          bool       `gorm:"column:resolved;not null;default:false"`
	ResolvedAt        *time.Time `gorm:"column:resolved_at"`
	CreatedAt         time.Time  `gorm:"column:created_at"`
}

func (PrincipalAlert) TableName() string {
	return "principal_alerts"
}
