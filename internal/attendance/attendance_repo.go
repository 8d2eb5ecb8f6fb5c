package attendance

import (
	"context"
	"time"

	"go-school/internal/tenant"

	"gorm.io/gorm"
)

//go:generate mockgen -source=attendance_repo.go -destination=mock/attendance_repo_mock.go -package=mock
type Repository interface {
	FindRecordsByDate(ctx context.Context, schoolID string, date time.Time) ([]Record, error)
	FindStudentsBySchool(ctx context.Context, schoolID string) ([]Student, error)
	FindClassesBySchool(ctx context.Context, schoolID string) ([]Class, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) FindRecordsByDate(ctx context.Context, schoolID string, date time.Time) ([]Record, error) {
	var rows []Record
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(schoolID)).
		Where("attendance_date = ?", date.Format("2006-01-02")).
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindStudentsBySchool(ctx context.Context, schoolID string) ([]Student, error) {
	var rows []Student
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(schoolID)).
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindClassesBySchool(ctx context.Context, schoolID string) ([]Class, error) {
	var rows []Class
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(schoolID)).
		Order("name ASC, section ASC").
		Find(&rows).Error
	return rows, err
}
