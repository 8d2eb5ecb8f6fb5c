package alert

import (
	"context"
	"errors"
	"time"

	"go-school/internal/shared/apperror"
	"go-school/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=alert_service.go -destination=mock/alert_service_mock.go -package=mock
type Service interface {
	GetAll(ctx context.Context, schoolID string, filter ListFilter) ([]AlertResponse, error)
	Acknowledge(ctx context.Context, schoolID, alertID, userID string, actionTaken *string) (AlertResponse, error)
	Resolve(ctx context.Context, schoolID, alertID string) (AlertResponse, error)
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("alert.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("alert.service")
	}
	return &service{repo: repo, logger: l}
}

func (s *service) GetAll(ctx context.Context, schoolID string, filter ListFilter) ([]AlertResponse, error) {
	rows, err := s.repo.FindAllBySchool(ctx, schoolID, filter)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(rows), nil
}

func (s *service) Acknowledge(ctx context.Context, schoolID, alertID, userID string, actionTaken *string) (AlertResponse, error) {
	rid := contextutil.GetRequestID(ctx)

	ackBy, err := uuid.Parse(userID)
	if err != nil {
		return AlertResponse{}, apperror.InvalidField("User Id")
	}

	row, err := s.repo.FindByIDAndSchool(ctx, schoolID, alertID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return AlertResponse{}, apperror.ErrNotFound
		}
		return AlertResponse{}, err
	}

	now := time.Now().UTC()
	row.Acknowledged = true
	row.AcknowledgedBy = &ackBy
	row.AcknowledgedAt = &now
	row.ActionTaken = actionTaken

	if err := s.repo.Update(ctx, row); err != nil {
		s.logger.Error("acknowledge alert failed",
			zap.String("request_id", rid),
			zap.String("alert_id", alertID),
			zap.Error(err),
		)
		return AlertResponse{}, err
	}

	return mapToResponse(*row), nil
}

func (s *service) Resolve(ctx context.Context, schoolID, alertID string) (AlertResponse, error) {
	row, err := s.repo.FindByIDAndSchool(ctx, schoolID, alertID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return AlertResponse{}, apperror.ErrNotFound
		}
		return AlertResponse{}, err
	}

	now := time.Now().UTC()
	row.Resolved = true
	row.ResolvedAt = &now

	if err := s.repo.Update(ctx, row); err != nil {
		return AlertResponse{}, err
	}

	return mapToResponse(*row), nil
}
