package school

import (
	"time"

	"github.com/google/uuid"
)

type School struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	Name      string    `gorm:"column:name;type:varchar(255);not null"`
	Latitude  *float64  `gorm:"column:latitude"`
	Longitude *float64  `gorm:"column:longitude"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (School) TableName() string {
	return "schools"
}

// UserProfile is the slice of the identity table this service reads:
// principal contact lookup for alert delivery.
type UserProfile struct {
	ID       uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	SchoolID uuid.UUID `gorm:"column:school_id;type:uuid;not null;index"`
	Name     string    `gorm:"column:name"`
	Role     string    `gorm:"column:role;type:varchar(30)"`
	Phone    *string   `gorm:"column:phone;type:varchar(30)"`
}

func (UserProfile) TableName() string {
	return "user_profiles"
}
