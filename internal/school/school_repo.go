package school

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

// Location is the reference point for distance checks. Nil coordinates mean
// the school never registered one.
type Location struct {
	Latitude  float64
	Longitude float64
}

//go:generate mockgen -source=school_repo.go -destination=mock/school_repo_mock.go -package=mock
type Repository interface {
	// FindLocation returns nil (not an error) when the school has no
	// registered coordinates.
	FindLocation(ctx context.Context, schoolID string) (*Location, error)
	FindPrincipalPhone(ctx context.Context, schoolID string) (string, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) FindLocation(ctx context.Context, schoolID string) (*Location, error) {
	var s School
	err := r.db.WithContext(ctx).
		Select("latitude", "longitude").
		Where("id = ?", schoolID).
		First(&s).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	if s.Latitude == nil || s.Longitude == nil {
		return nil, nil
	}
	return &Location{Latitude: *s.Latitude, Longitude: *s.Longitude}, nil
}

func (r *repository) FindPrincipalPhone(ctx context.Context, schoolID string) (string, error) {
	var p UserProfile
	err := r.db.WithContext(ctx).
		Where("school_id = ?", schoolID).
		Where("role = ?", "principal").
		First(&p).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil
		}
		return "", err
	}
	if p.Phone == nil {
		return "", nil
	}
	return *p.Phone, nil
}
