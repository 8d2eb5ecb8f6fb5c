package teacher

import (
	"context"
	"errors"
	"time"

	"go-school/internal/tenant"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Teacher struct {
	ID            uuid.UUID `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	SchoolID      uuid.UUID `gorm:"column:school_id;type:uuid;not null;index"`
	UserProfileID uuid.UUID `gorm:"column:user_profile_id;type:uuid"`
	CreatedAt     time.Time `gorm:"column:created_at"`
}

func (Teacher) TableName() string {
	return "teachers"
}

//go:generate mockgen -source=teacher_repo.go -destination=mock/teacher_repo_mock.go -package=mock
type Repository interface {
	// FindDisplayName resolves the teacher's profile name; "Unknown" when the
	// teacher or profile row is missing, matching what alert messages expect.
	FindDisplayName(ctx context.Context, teacherID string) (string, error)
	CountBySchool(ctx context.Context, schoolID string) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) FindDisplayName(ctx context.Context, teacherID string) (string, error) {
	var name string
	err := r.db.WithContext(ctx).
		Table("teachers").
		Select("user_profiles.name").
		Joins("INNER JOIN user_profiles ON user_profiles.id = teachers.user_profile_id").
		Where("teachers.id = ?", teacherID).
		Scan(&name).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "Unknown", nil
		}
		return "", err
	}
	if name == "" {
		return "Unknown", nil
	}
	return name, nil
}

func (r *repository) CountBySchool(ctx context.Context, schoolID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&Teacher{}).
		Scopes(tenant.Scope(schoolID)).
		Count(&count).Error
	return count, err
}
