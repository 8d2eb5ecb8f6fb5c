package settings

import (
	"context"
	"errors"

	"go-school/internal/tenant"

	"gorm.io/gorm"
)

//go:generate mockgen -source=settings_repo.go -destination=mock/settings_repo_mock.go -package=mock
type Repository interface {
	// Find returns ("", false, nil) when the key is not configured.
	Find(ctx context.Context, schoolID, key string) (string, bool, error)
	FindAllBySchool(ctx context.Context, schoolID string) ([]SystemSetting, error)
	Upsert(ctx context.Context, schoolID, key, value string) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Find(ctx context.Context, schoolID, key string) (string, bool, error) {
	var s SystemSetting
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(schoolID)).
		Where("setting_key = ?", key).
		First(&s).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", false, nil
		}
		return "", false, err
	}
	return s.SettingValue, true, nil
}

func (r *repository) FindAllBySchool(ctx context.Context, schoolID string) ([]SystemSetting, error) {
	var rows []SystemSetting
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(schoolID)).
		Order("setting_key ASC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) Upsert(ctx context.Context, schoolID, key, value string) error {
	// Atomic UPSERT on the (school_id, setting_key) unique index.
	return r.db.WithContext(ctx).Exec(`
		INSERT INTO system_settings (school_id, setting_key, setting_value, created_at, updated_at)
		VALUES (?, ?, ?, now(), now())
		ON CONFLICT (school_id, setting_key) DO UPDATE
		SET setting_value = EXCLUDED.setting_value, updated_at = now()
	`, schoolID, key, value).Error
}
