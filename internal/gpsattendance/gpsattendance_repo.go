package gpsattendance

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"go-school/internal/tenant"

	"gorm.io/gorm"
)

//go:generate mockgen -source=gpsattendance_repo.go -destination=mock/gpsattendance_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository

	CreateCheckIn(ctx context.Context, c *GpsCheckIn) error
	FindRecentBySchool(ctx context.Context, schoolID string, limit int) ([]GpsCheckIn, error)
	FindCheckInsByDate(ctx context.Context, schoolID string, date time.Time) ([]GpsCheckIn, error)

	CreateSession(ctx context.Context, s *GpsSession) error
	// FindCurrentSession returns the teacher's most recent pending or active
	// session, nil when there is none. When a data anomaly leaves several,
	// the highest session_started wins.
	FindCurrentSession(ctx context.Context, schoolID, teacherID string) (*GpsSession, error)
	FindSessionByIDAndSchool(ctx context.Context, schoolID, id string) (*GpsSession, error)
	ActivateSession(ctx context.Context, id string, startedAt time.Time) error
	IncrementSessionCounters(ctx context.Context, id string, outOfRange bool) error
	UpdateSession(ctx context.Context, s *GpsSession) error
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

func (r *repository) execer() interface {
	ExecContext(context.Context, string, ...any) (sql.Result, error)
} {
	if r.tx != nil {
		return r.tx
	}
	sqlDB, _ := r.db.DB()
	return sqlDB
}

func (r *repository) CreateCheckIn(ctx context.Context, c *GpsCheckIn) error {
	if r.tx != nil {
		_, err := r.tx.ExecContext(ctx, `
			INSERT INTO attendance_gps_logs (
				id, school_id, teacher_id, teacher_user_profile_id,
				latitude, longitude, marked_at, distance_from_school,
				status_color, out_of_range, biometric_verified, biometric_data,
				device_info, created_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		`,
			c.ID, c.SchoolID, c.TeacherID, c.TeacherUserProfileID,
			c.Latitude, c.Longitude, c.MarkedAt, c.DistanceFromSchool,
			c.ZoneStatus, c.OutOfRange, c.BiometricVerified, c.BiometricData,
			c.DeviceInfo, c.CreatedAt,
		)
		return err
	}
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *repository) FindRecentBySchool(ctx context.Context, schoolID string, limit int) ([]GpsCheckIn, error) {
	if limit <= 0 {
		limit = 50
	}
	var rows []GpsCheckIn
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(schoolID)).
		Order("marked_at DESC").
		Limit(limit).
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindCheckInsByDate(ctx context.Context, schoolID string, date time.Time) ([]GpsCheckIn, error) {
	var rows []GpsCheckIn
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(schoolID)).
		Where("DATE(marked_at) = ?", date.Format("2006-01-02")).
		Order("marked_at DESC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) CreateSession(ctx context.Context, s *GpsSession) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *repository) FindCurrentSession(ctx context.Context, schoolID, teacherID string) (*GpsSession, error) {
	var s GpsSession
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(schoolID)).
		Where("teacher_id = ?", teacherID).
		Where("status IN ?", []string{SessionStatusPending, SessionStatusActive}).
		Order("session_started DESC NULLS LAST, created_at DESC").
		First(&s).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

func (r *repository) FindSessionByIDAndSchool(ctx context.Context, schoolID, id string) (*GpsSession, error) {
	var s GpsSession
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(schoolID)).
		Where("id = ?", id).
		First(&s).Error
	return &s, err
}

// ActivateSession flips pending -> active. The partial unique index
// uq_gps_sessions_one_active (school_id, teacher_id) WHERE status = 'active'
// rejects a second activation with a 23505.
func (r *repository) ActivateSession(ctx context.Context, id string, startedAt time.Time) error {
	_, err := r.execer().ExecContext(ctx, `
		UPDATE gps_attendance_sessions
		SET status = $2, session_started = $3
		WHERE id = $1 AND status = $4
	`, id, SessionStatusActive, startedAt, SessionStatusPending)
	return err
}

// IncrementSessionCounters bumps the running totals in a single UPDATE so
// concurrent check-ins cannot lose increments to a read-modify-write race.
func (r *repository) IncrementSessionCounters(ctx context.Context, id string, outOfRange bool) error {
	_, err := r.execer().ExecContext(ctx, `
		UPDATE gps_attendance_sessions
		SET
			total_check_ins = total_check_ins + 1,
			in_range_check_ins = in_range_check_ins + CASE WHEN $2 THEN 0 ELSE 1 END,
			out_of_range_check_ins = out_of_range_check_ins + CASE WHEN $2 THEN 1 ELSE 0 END
		WHERE id = $1
	`, id, outOfRange)
	return err
}

func (r *repository) UpdateSession(ctx context.Context, s *GpsSession) error {
	return r.db.WithContext(ctx).Save(s).Error
}
