package alert

import (
	"context"
	"database/sql"
	"time"

	"go-school/internal/tenant"

	"gorm.io/gorm"
)

// ListFilter narrows the principal alert listing. Zero values mean "no
// filter"; Limit falls back to 50.
type ListFilter struct {
	UnacknowledgedOnly bool
	Severity           string
	Limit              int
}

//go:generate mockgen -source=alert_repo.go -destination=mock/alert_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, a *PrincipalAlert) error
	FindByIDAndSchool(ctx context.Context, schoolID, id string) (*PrincipalAlert, error)
	FindAllBySchool(ctx context.Context, schoolID string, filter ListFilter) ([]PrincipalAlert, error)
	FindByDate(ctx context.Context, schoolID string, date time.Time) ([]PrincipalAlert, error)
	Update(ctx context.Context, a *PrincipalAlert) error
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

func (r *repository) Create(ctx context.Context, a *PrincipalAlert) error {
	if r.tx != nil {
		_, err := r.tx.ExecContext(ctx, `
			INSERT INTO principal_alerts (
				id, school_id, alert_type, severity, title, message,
				related_entity_type, related_entity_id, gps_log_id, sent_via,
				acknowledged, resolved, created_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		`,
			a.ID, a.SchoolID, a.AlertType, a.Severity, a.Title, a.Message,
			a.RelatedEntityType, a.RelatedEntityID, a.GpsLogID, a.SentVia,
			a.Acknowledged, a.Resolved, a.CreatedAt,
		)
		return err
	}
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *repository) FindByIDAndSchool(ctx context.Context, schoolID, id string) (*PrincipalAlert, error) {
	var a PrincipalAlert
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(schoolID)).
		Where("id = ?", id).
		First(&a).Error
	return &a, err
}

func (r *repository) FindAllBySchool(ctx context.Context, schoolID string, filter ListFilter) ([]PrincipalAlert, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}

	q := r.db.WithContext(ctx).
		Scopes(tenant.Scope(schoolID))
	if filter.UnacknowledgedOnly {
		q = q.Where("acknowledged = ?", false)
	}
	if filter.Severity != "" {
		q = q.Where("severity = ?", filter.Severity)
	}

	var rows []PrincipalAlert
	err := q.Order("created_at DESC").
		Limit(limit).
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindByDate(ctx context.Context, schoolID string, date time.Time) ([]PrincipalAlert, error) {
	var rows []PrincipalAlert
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(schoolID)).
		Where("DATE(created_at) = ?", date.Format("2006-01-02")).
		Find(&rows).Error
	return rows, err
}

func (r *repository) Update(ctx context.Context, a *PrincipalAlert) error {
	return r.db.WithContext(ctx).Save(a).Error
}
