package schedule

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	scheduleerrors "github.com/nosakhare/simple-payroll/internal/schedule/errors"
)

//go:generate mockgen -source=schedule_service.go -destination=mock/schedule_service_mock.go -package=mock
type Service interface {
	GetByPayroll(ctx context.Context, payrollID string) ([]PaymentSchedule, error)
	UpdateStatus(ctx context.Context, id string, req UpdateScheduleStatusRequest) (*PaymentSchedule, error)
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository) Service {
	return &service{
		repo:   repo,
		logger: zap.L().Named("schedule.service"),
	}
}

func (s *service) GetByPayroll(ctx context.Context, payrollID string) ([]PaymentSchedule, error) {
	schedules, err := s.repo.FindByPayroll(ctx, payrollID)
	if err != nil {
		return nil, err
	}
	return schedules, nil
}

func (s *service) UpdateStatus(ctx context.Context, id string, req UpdateScheduleStatusRequest) (*PaymentSchedule, error) {
	if !ValidStatus(req.Status) || req.Status == StatusPending {
		return nil, scheduleerrors.ErrInvalidStatus
	}

	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, scheduleerrors.ErrScheduleNotFound
		}
		return nil, err
	}

	if existing.Status != StatusPending {
		return nil, scheduleerrors.ErrNotPending
	}

	if err := s.repo.UpdateStatus(ctx, id, req.Status, req.FailureReason); err != nil {
		return nil, err
	}

	s.logger.Info("payment schedule status updated",
		zap.String("schedule_id", id),
		zap.String("status", req.Status),
	)

	existing.Status = req.Status
	existing.FailureReason = req.FailureReason
	return existing, nil
}
