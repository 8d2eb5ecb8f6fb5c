package gpsattendance

import (
	"time"

	"go-school/internal/geo"

	"github.com/google/uuid"
)

// GpsCheckIn is one teacher's attendance ping. Rows are append-only audit
// records; distance and zone are always derived at write time, never taken
// from the caller.
type GpsCheckIn struct {
	ID                   uuid.UUID  `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	SchoolID             uuid.UUID  `gorm:"column:school_id;type:uuid;not null;index"`
	TeacherID            uuid.UUID  `gorm:"column:teacher_id;type:uuid;not null;index"`
	TeacherUserProfileID *uuid.UUID `gorm:"column:teacher_user_profile_id;type:uuid"`
	Latitude             float64    `gorm:"column:latitude;not null"`
	Longitude            float64    `gorm:"column:longitude;not null"`
	MarkedAt             time.Time  `gorm:"column:marked_at;type:timestamptz;not null;index"`
	DistanceFromSchool   float64    `gorm:"column:distance_from_school;type:numeric(10,2);not null"`
	ZoneStatus           geo.Zone   `gorm:"column:status_color;type:varchar(20);not null;default:green"`
	OutOfRange           bool       `gorm:"column:out_of_range;not null;default:false"`
	BiometricVerified    bool       `gorm:"column:biometric_verified;not null;default:false"`
	BiometricData        *string    `gorm:"column:biometric_data;type:text"`
	DeviceInfo           []byte     `gorm:"column:device_info;type:jsonb"`
	CreatedAt            time.Time  `gorm:"column:created_at"`
}

func (GpsCheckIn) TableName() string {
	return "attendance_gps_logs"
}

// Session states. pending -> active on first check-in; completed and expired
// are terminal.
const (
	SessionStatusPending   = "pending"
	SessionStatusActive    = "active"
	SessionStatusCompleted = "completed"
	SessionStatusExpired   = "expired"
)

// GpsSession is one mobile-link grant and its running counters. At most one
// active session per teacher; the storage layer enforces it with a partial
// unique index on (school_id, teacher_id) WHERE status = 'active'.
type GpsSession struct {
	ID                   uuid.UUID  `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	SchoolID             uuid.UUID  `gorm:"column:school_id;type:uuid;not null;index"`
	TeacherID            uuid.UUID  `gorm:"column:teacher_id;type:uuid;not null;index"`
	TeacherUserProfileID *uuid.UUID `gorm:"column:teacher_user_profile_id;type:uuid"`
	MobileLink           *string    `gorm:"column:mobile_link;type:varchar(255)"`
	LinkExpiresAt        *time.Time `gorm:"column:link_expires_at"`
	SessionStarted       *time.Time `gorm:"column:session_started"`
	SessionEnded         *time.Time `gorm:"column:session_ended"`
	Status               string     `gorm:"column:status;type:varchar(50);not null;default:pending"`
	TotalCheckIns        int        `gorm:"column:total_check_ins;not null;default:0"`
	InRangeCheckIns      int        `gorm:"column:in_range_check_ins;not null;default:0"`
	OutOfRangeCheckIns   int        `gorm:"column:out_of_range_check_ins;not null;default:0"`
	CreatedAt            time.Time  `gorm:"column:created_at"`
}

func (GpsSession) TableName() string {
	return "gps_attendance_sessions"
}
