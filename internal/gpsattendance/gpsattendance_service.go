package gpsattendance

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"time"

	"go-school/internal/alert"
	"go-school/internal/geo"
	"go-school/internal/notification"
	"go-school/internal/school"
	"go-school/internal/settings"
	"go-school/internal/shared/apperror"
	"go-school/internal/shared/contextutil"
	"go-school/internal/teacher"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const mobileLinkTTL = 24 * time.Hour

//go:generate mockgen -source=gpsattendance_service.go -destination=mock/gpsattendance_service_mock.go -package=mock
type Service interface {
	RecordCheckIn(ctx context.Context, schoolID string, req RecordCheckInRequest) (RecordCheckInResponse, error)
	GetRecentCheckIns(ctx context.Context, schoolID string, limit int) ([]CheckInResponse, error)
	GenerateMobileLink(ctx context.Context, schoolID string, req GenerateMobileLinkRequest) (MobileLinkResponse, error)
	CloseSession(ctx context.Context, schoolID, sessionID string) (SessionResponse, error)
}

type service struct {
	db         *sql.DB
	repo       Repository
	alerts     alert.Repository
	teachers   teacher.Repository
	schools    school.Repository
	settings   settings.Store
	dispatcher notification.Dispatcher
	logger     *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	alerts alert.Repository,
	teachers teacher.Repository,
	schools school.Repository,
	settingsStore settings.Store,
	dispatcher notification.Dispatcher,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("gpsattendance.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("gpsattendance.service")
	}
	return &service{
		db:         db,
		repo:       repo,
		alerts:     alerts,
		teachers:   teachers,
		schools:    schools,
		settings:   settingsStore,
		dispatcher: dispatcher,
		logger:     l,
	}
}

// RecordCheckIn persists one GPS ping, classifies it against the school's
// radius, and raises a principal alert in the same transaction when the
// teacher is out of range. Alert delivery beyond the dashboard row is
// best-effort and never fails the check-in.
func (s *service) RecordCheckIn(ctx context.Context, schoolID string, req RecordCheckInRequest) (RecordCheckInResponse, error) {
	rid := contextutil.GetRequestID(ctx)

	teacherID, err := uuid.Parse(req.TeacherID)
	if err != nil {
		return RecordCheckInResponse{}, apperror.InvalidField("Teacher Id")
	}
	schoolUUID, err := uuid.Parse(schoolID)
	if err != nil {
		return RecordCheckInResponse{}, apperror.InvalidField("School Id")
	}
	if req.Latitude == nil || req.Longitude == nil {
		return RecordCheckInResponse{}, apperror.RequiredField("Latitude and longitude")
	}
	lat, lon := *req.Latitude, *req.Longitude
	if err := geo.ValidateCoordinate(lat, lon); err != nil {
		return RecordCheckInResponse{}, err
	}

	radius := s.effectiveRadius(ctx, schoolID)

	loc, err := s.schools.FindLocation(ctx, schoolID)
	if err != nil {
		return RecordCheckInResponse{}, apperror.Wrap(err, apperror.CodeInternalError, "Failed to load school location", http.StatusInternalServerError)
	}
	if loc == nil {
		// A school without coordinates degrades to the (0,0) origin. The
		// check-in still lands; the distance just becomes meaningless.
		s.logger.Warn("school has no registered location, using (0,0)",
			zap.String("request_id", rid),
			zap.String("school_id", schoolID),
		)
		loc = &school.Location{}
	}

	distance := geo.Distance(lat, lon, loc.Latitude, loc.Longitude)
	cls := geo.Classify(distance, radius)

	now := time.Now().UTC()
	checkIn := &GpsCheckIn{
		ID:                   uuid.New(),
		SchoolID:             schoolUUID,
		TeacherID:            teacherID,
		TeacherUserProfileID: callerProfileID(ctx),
		Latitude:             lat,
		Longitude:            lon,
		MarkedAt:             now,
		DistanceFromSchool:   cls.DistanceMeters,
		ZoneStatus:           cls.Zone,
		OutOfRange:           cls.OutOfRange,
		BiometricVerified:    req.BiometricVerified,
		BiometricData:        req.BiometricData,
		DeviceInfo:           req.DeviceInfo,
		CreatedAt:            now,
	}

	session, err := s.repo.FindCurrentSession(ctx, schoolID, req.TeacherID)
	if err != nil {
		return RecordCheckInResponse{}, err
	}

	var raised *alert.PrincipalAlert
	if cls.OutOfRange {
		name, nameErr := s.teachers.FindDisplayName(ctx, req.TeacherID)
		if nameErr != nil {
			s.logger.Warn("teacher name lookup failed, using fallback",
				zap.String("request_id", rid),
				zap.String("teacher_id", req.TeacherID),
				zap.Error(nameErr),
			)
			name = "Unknown"
		}
		raised = alert.NewOutOfRange(schoolUUID, teacherID, name, cls.DistanceMeters, cls.Zone, checkIn.ID)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return RecordCheckInResponse{}, apperror.Wrap(err, apperror.CodeInternalError, "Failed to start transaction", http.StatusInternalServerError)
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	if err := qtx.CreateCheckIn(ctx, checkIn); err != nil {
		return RecordCheckInResponse{}, apperror.Wrap(err, apperror.CodeInternalError, "Failed to record check-in", http.StatusInternalServerError)
	}

	if raised != nil {
		if err := s.alerts.WithTx(tx).Create(ctx, raised); err != nil {
			return RecordCheckInResponse{}, apperror.Wrap(err, apperror.CodeInternalError, "Failed to create alert", http.StatusInternalServerError)
		}
	}

	if session != nil {
		if session.Status == SessionStatusPending {
			if err := qtx.ActivateSession(ctx, session.ID.String(), now); err != nil && !isUniqueViolation(err) {
				return RecordCheckInResponse{}, apperror.Wrap(err, apperror.CodeInternalError, "Failed to activate session", http.StatusInternalServerError)
			}
		}
		if err := qtx.IncrementSessionCounters(ctx, session.ID.String(), cls.OutOfRange); err != nil {
			return RecordCheckInResponse{}, apperror.Wrap(err, apperror.CodeInternalError, "Failed to update session counters", http.StatusInternalServerError)
		}
	}

	if err := tx.Commit(); err != nil {
		return RecordCheckInResponse{}, apperror.Wrap(err, apperror.CodeInternalError, "Failed to commit check-in", http.StatusInternalServerError)
	}

	if raised != nil {
		s.logger.Info("out-of-range check-in recorded",
			zap.String("request_id", rid),
			zap.String("teacher_id", req.TeacherID),
			zap.Float64("distance_m", cls.DistanceMeters),
			zap.String("zone", string(cls.Zone)),
		)
		s.dispatchAlert(ctx, schoolID, raised.Message)
	}

	return RecordCheckInResponse{
		CheckIn:      mapCheckInToResponse(*checkIn),
		Distance:     cls.DistanceMeters,
		ZoneStatus:   cls.Zone,
		OutOfRange:   cls.OutOfRange,
		AlertCreated: raised != nil,
	}, nil
}

// effectiveRadius reads attendance_gps_radius for the school, falling back
// to the default when the setting is absent or unparseable.
func (s *service) effectiveRadius(ctx context.Context, schoolID string) float64 {
	value, found, err := s.settings.Get(ctx, schoolID, settings.KeyGpsRadius)
	if err != nil {
		s.logger.Warn("radius setting lookup failed, using default",
			zap.String("school_id", schoolID),
			zap.Error(err),
		)
		return geo.DefaultRadiusMeters
	}
	if !found {
		s.logger.Warn("radius setting not configured, using default",
			zap.String("school_id", schoolID),
			zap.Float64("radius_m", geo.DefaultRadiusMeters),
		)
		return geo.DefaultRadiusMeters
	}
	radius, err := strconv.ParseFloat(value, 64)
	if err != nil || radius <= 0 {
		s.logger.Warn("radius setting is not a positive number, using default",
			zap.String("school_id", schoolID),
			zap.String("value", value),
		)
		return geo.DefaultRadiusMeters
	}
	return radius
}

// callerProfileID resolves the acting user from the request context. Nil when
// the id is absent or not a UUID, so background callers still work.
func callerProfileID(ctx context.Context) *uuid.UUID {
	uid, err := uuid.Parse(contextutil.GetUserID(ctx))
	if err != nil {
		return nil
	}
	return &uid
}

// dispatchAlert forwards the alert through the configured external channel.
// Dashboard delivery already happened via the alert row, so dashboard (and
// unset) methods need nothing here.
func (s *service) dispatchAlert(ctx context.Context, schoolID, message string) {
	method, found, err := s.settings.Get(ctx, schoolID, settings.KeyAlertMethod)
	if err != nil {
		s.logger.Warn("alert method lookup failed, dashboard only",
			zap.String("school_id", schoolID),
			zap.Error(err),
		)
		return
	}
	if !found || method == settings.AlertMethodDashboard {
		return
	}
	if method != settings.AlertMethodWhatsApp && method != settings.AlertMethodArattai {
		s.logger.Warn("unknown alert method, dashboard only",
			zap.String("school_id", schoolID),
			zap.String("method", method),
		)
		return
	}

	if err := s.dispatcher.Send(ctx, schoolID, "principal", message); err != nil {
		s.logger.Error("alert dispatch failed",
			zap.String("school_id", schoolID),
			zap.String("method", method),
			zap.Error(err),
		)
	}
}

func (s *service) GetRecentCheckIns(ctx context.Context, schoolID string, limit int) ([]CheckInResponse, error) {
	rows, err := s.repo.FindRecentBySchool(ctx, schoolID, limit)
	if err != nil {
		return nil, err
	}

	out := make([]CheckInResponse, 0, len(rows))
	for _, row := range rows {
		out = append(out, mapCheckInToResponse(row))
	}
	return out, nil
}

// GenerateMobileLink issues a signed 24h link for phone-based check-ins and
// opens a pending session for it. An existing unexpired pending session is
// reissued rather than duplicated.
func (s *service) GenerateMobileLink(ctx context.Context, schoolID string, req GenerateMobileLinkRequest) (MobileLinkResponse, error) {
	teacherID, err := uuid.Parse(req.TeacherID)
	if err != nil {
		return MobileLinkResponse{}, apperror.InvalidField("Teacher Id")
	}
	schoolUUID, err := uuid.Parse(schoolID)
	if err != nil {
		return MobileLinkResponse{}, apperror.InvalidField("School Id")
	}

	now := time.Now().UTC()

	existing, err := s.repo.FindCurrentSession(ctx, schoolID, req.TeacherID)
	if err != nil {
		return MobileLinkResponse{}, err
	}
	if existing != nil && existing.Status == SessionStatusPending &&
		existing.MobileLink != nil && existing.LinkExpiresAt != nil && existing.LinkExpiresAt.After(now) {
		return MobileLinkResponse{
			SessionID:  existing.ID.String(),
			MobileLink: *existing.MobileLink,
			ExpiresAt:  existing.LinkExpiresAt.Format(time.RFC3339),
		}, nil
	}

	sessionID := uuid.New()
	expiresAt := now.Add(mobileLinkTTL)

	token, err := signMobileToken(sessionID.String(), req.TeacherID, schoolID, expiresAt)
	if err != nil {
		return MobileLinkResponse{}, apperror.Wrap(err, apperror.CodeInternalError, "Failed to sign mobile link", http.StatusInternalServerError)
	}

	link := fmt.Sprintf("%s/mobile-attendance?token=%s", baseURL(), token)
	session := &GpsSession{
		ID:                   sessionID,
		SchoolID:             schoolUUID,
		TeacherID:            teacherID,
		TeacherUserProfileID: callerProfileID(ctx),
		MobileLink:           &link,
		LinkExpiresAt:        &expiresAt,
		Status:               SessionStatusPending,
		CreatedAt:            now,
	}
	if err := s.repo.CreateSession(ctx, session); err != nil {
		return MobileLinkResponse{}, apperror.Wrap(err, apperror.CodeInternalError, "Failed to create session", http.StatusInternalServerError)
	}

	return MobileLinkResponse{
		SessionID:  sessionID.String(),
		MobileLink: link,
		ExpiresAt:  expiresAt.Format(time.RFC3339),
	}, nil
}

// CloseSession completes an active session or expires a pending one. Closing
// a session twice is a conflict, not a repeatable no-op.
func (s *service) CloseSession(ctx context.Context, schoolID, sessionID string) (SessionResponse, error) {
	session, err := s.repo.FindSessionByIDAndSchool(ctx, schoolID, sessionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return SessionResponse{}, apperror.ErrNotFound
		}
		return SessionResponse{}, err
	}

	now := time.Now().UTC()
	switch session.Status {
	case SessionStatusActive:
		session.Status = SessionStatusCompleted
		session.SessionEnded = &now
	case SessionStatusPending:
		session.Status = SessionStatusExpired
		session.SessionEnded = &now
	default:
		return SessionResponse{}, apperror.New(
			apperror.CodeInvalidState,
			fmt.Sprintf("Session is already %s", session.Status),
			http.StatusConflict,
		)
	}

	if err := s.repo.UpdateSession(ctx, session); err != nil {
		return SessionResponse{}, apperror.Wrap(err, apperror.CodeInternalError, "Failed to close session", http.StatusInternalServerError)
	}

	return mapSessionToResponse(*session), nil
}

func signMobileToken(sessionID, teacherID, schoolID string, expiresAt time.Time) (string, error) {
	claims := jwt.MapClaims{
		"type":       "gps_attendance",
		"session_id": sessionID,
		"teacher_id": teacherID,
		"school_id":  schoolID,
		"exp":        expiresAt.Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(os.Getenv("JWT_SECRET")))
}

func baseURL() string {
	if v := os.Getenv("BASE_URL"); v != "" {
		return v
	}
	return "http://localhost:8080"
}

// isUniqueViolation reports whether err is a Postgres unique_violation,
// which the partial index on active sessions raises under concurrent
// activation.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
