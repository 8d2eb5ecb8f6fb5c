package attendance

import (
	"time"

	"github.com/google/uuid"
)

// Student attendance records are owned by the classroom attendance module;
// this service only reads them to build the principal dashboard.

const (
	StatusPresent = "present"
	StatusAbsent  = "absent"
	StatusLate    = "late"
)

type Record struct {
	ID             uuid.UUID  `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	SchoolID       uuid.UUID  `gorm:"column:school_id;type:uuid;not null;index"`
	ClassID        *uuid.UUID `gorm:"column:class_id;type:uuid;index"`
	StudentID      uuid.UUID  `gorm:"column:student_id;type:uuid;not null;index"`
	AttendanceDate time.Time  `gorm:"column:attendance_date;type:date;not null;index"`
	Status         string     `gorm:"column:status;type:varchar(20);not null"`
	CreatedAt      time.Time  `gorm:"column:created_at"`
}

func (Record) TableName() string {
	return "attendance_records"
}

type Student struct {
	ID       uuid.UUID  `gorm:"column:id;type:uuid;primaryKey"`
	SchoolID uuid.UUID  `gorm:"column:school_id;type:uuid;not null;index"`
	ClassID  *uuid.UUID `gorm:"column:class_id;type:uuid;index"`
}

func (Student) TableName() string {
	return "students"
}

type Class struct {
	ID       uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	SchoolID uuid.UUID `gorm:"column:school_id;type:uuid;not null;index"`
	Name     string    `gorm:"column:name"`
	Section  string    `gorm:"column:section"`
}

func (Class) TableName() string {
	return "classes"
}
