package settings

import (
	"time"

	"github.com/google/uuid"
)

// Setting keys this service reads or writes. Each row is one school-scoped
// key/value pair.
const (
	KeyGpsAlerts     = "attendance_gps_alerts"
	KeyGpsRadius     = "attendance_gps_radius"
	KeyAlertMethod   = "attendance_alert_method"
	KeyLateAlert     = "attendance_late_alert"
	KeyLateThreshold = "attendance_late_threshold"

	KeyWhatsAppEnabled       = "whatsapp_enabled"
	KeyWhatsAppAPIKey        = "whatsapp_api_key"
	KeyWhatsAppPhoneNumberID = "whatsapp_phone_number_id"
)

// Alert delivery methods. Dashboard is the default and needs no dispatch.
const (
	AlertMethodDashboard = "dashboard"
	AlertMethodWhatsApp  = "whatsapp"
	AlertMethodArattai   = "arattai"
)

type SystemSetting struct {
	ID           uuid.UUID `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	SchoolID     uuid.UUID `gorm:"column:school_id;type:uuid;not null;uniqueIndex:uq_system_settings_school_key"`
	SettingKey   string    `gorm:"column:setting_key;type:varchar(100);not null;uniqueIndex:uq_system_settings_school_key"`
	SettingValue string    `gorm:"column:setting_value;type:text"`
	CreatedAt    time.Time `gorm:"column:created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at"`
}

func (SystemSetting) TableName() string {
	return "system_settings"
}
