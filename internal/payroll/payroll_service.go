package payroll

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	payrollerrors "github.com/nosakhare/simple-payroll/internal/payroll/errors"
	"github.com/nosakhare/simple-payroll/internal/schedule"
	"github.com/nosakhare/simple-payroll/internal/shared/apperror"
)

//go:generate mockgen -source=payroll_service.go -destination=mock/payroll_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, actorID string, req CreatePayrollRequest) (*Payroll, error)
	GetAll(ctx context.Context) ([]Payroll, error)
	GetByID(ctx context.Context, id string) (*Payroll, error)
	Update(ctx context.Context, id string, req UpdatePayrollRequest) (*Payroll, error)
	Delete(ctx context.Context, id string) error
	Transition(ctx context.Context, id, actorID string, req TransitionRequest) (*TransitionResponse, error)
	Process(ctx context.Context, id, actorID string) (*ProcessResponse, error)

	GetItems(ctx context.Context, payrollID string) ([]PayrollItem, error)
	GetItem(ctx context.Context, itemID string) (*PayrollItem, error)
	AddAdjustment(ctx context.Context, itemID, actorID string, req CreateAdjustmentRequest) (*PayrollItem, error)
	GetAdjustments(ctx context.Context, itemID string) ([]PayrollAdjustment, error)

	GeneratePayslips(ctx context.Context, payrollID string) (int, error)
}

type service struct {
	db         *gorm.DB
	repo       Repository
	deps       ProcessorDeps
	scheduler  schedule.Generator
	payslipDir string
	logger     *zap.Logger
}

func NewService(
	db *gorm.DB,
	repo Repository,
	deps ProcessorDeps,
	scheduler schedule.Generator,
	payslipDir string,
) Service {
	return &service{
		db:         db,
		repo:       repo,
		deps:       deps,
		scheduler:  scheduler,
		payslipDir: payslipDir,
		logger:     zap.L().Named("payroll.service"),
	}
}

func (s *service) Create(ctx context.Context, actorID string, req CreatePayrollRequest) (*Payroll, error) {
	periodStart, periodEnd, paymentDate, err := parsePeriod(req.PeriodStart, req.PeriodEnd, req.PaymentDate)
	if err != nil {
		return nil, err
	}

	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	overlap, err := qtx.HasOverlappingPeriod(ctx, periodStart, periodEnd, nil)
	if err != nil {
		return nil, err
	}
	if overlap {
		return nil, payrollerrors.ErrPeriodOverlap
	}

	payroll := &Payroll{
		Name:        req.Name,
		PeriodStart: periodStart,
		PeriodEnd:   periodEnd,
		PaymentDate: paymentDate,
		Status:      StatusDraft,
		CreatedBy:   actorID,
	}

	if err := qtx.Create(ctx, payroll); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	s.logger.Info("payroll created",
		zap.String("payroll_id", payroll.ID),
		zap.String("period_start", req.PeriodStart),
		zap.String("period_end", req.PeriodEnd),
	)

	return payroll, nil
}

func (s *service) GetAll(ctx context.Context) ([]Payroll, error) {
	return s.repo.FindAll(ctx)
}

func (s *service) GetByID(ctx context.Context, id string) (*Payroll, error) {
	payroll, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, payrollerrors.ErrNotFound
		}
		return nil, err
	}
	return payroll, nil
}

func (s *service) Update(ctx context.Context, id string, req UpdatePayrollRequest) (*Payroll, error) {
	periodStart, periodEnd, paymentDate, err := parsePeriod(req.PeriodStart, req.PeriodEnd, req.PaymentDate)
	if err != nil {
		return nil, err
	}

	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	payroll, err := qtx.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, payrollerrors.ErrNotFound
		}
		return nil, err
	}

	if payroll.Status != StatusDraft {
		return nil, payrollerrors.ErrNotDraft.WithDetail("payroll " + id + " is " + payroll.Status)
	}

	overlap, err := qtx.HasOverlappingPeriod(ctx, periodStart, periodEnd, &id)
	if err != nil {
		return nil, err
	}
	if overlap {
		return nil, payrollerrors.ErrPeriodOverlap
	}

	payroll.Name = req.Name
	payroll.PeriodStart = periodStart
	payroll.PeriodEnd = periodEnd
	payroll.PaymentDate = paymentDate

	if err := qtx.Update(ctx, payroll); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	return payroll, nil
}

// Delete removes a Draft run together with its items and adjustments.
func (s *service) Delete(ctx context.Context, id string) error {
	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return tx.Error
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	payroll, err := qtx.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return payrollerrors.ErrNotFound
		}
		return err
	}

	if payroll.Status != StatusDraft {
		return payrollerrors.ErrNotDraft.WithDetail("cannot delete payroll " + id + " in status " + payroll.Status)
	}

	if err := qtx.DeleteAdjustmentsByPayroll(ctx, id); err != nil {
		return err
	}
	if err := qtx.DeleteItemsByPayroll(ctx, id); err != nil {
		return err
	}
	if err := qtx.Delete(ctx, id); err != nil {
		return err
	}

	if err := tx.Commit().Error; err != nil {
		return err
	}

	s.logger.Info("payroll deleted", zap.String("payroll_id", id))
	return nil
}

func (s *service) Transition(ctx context.Context, id, actorID string, req TransitionRequest) (*TransitionResponse, error) {
	if !ValidStatus(req.Status) {
		return nil, payrollerrors.ErrInvalidStatus.WithDetail(req.Status)
	}

	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	payroll, err := qtx.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, payrollerrors.ErrNotFound
		}
		return nil, err
	}

	from := payroll.Status
	to := req.Status

	if !CanTransition(from, to) {
		return nil, apperror.New(
			apperror.CodeInvalidState,
			fmt.Sprintf("payroll %s cannot move from %s to %s (allowed: %v)", id, from, to, AllowedTargets(from)),
			http.StatusBadRequest,
		)
	}

	if to == StatusActive {
		// Single-active invariant: clear every other run before raising
		// this one's flag.
		if err := qtx.DeactivateAllActive(ctx); err != nil {
			return nil, err
		}
		payroll.IsActive = true
	} else if from == StatusActive {
		payroll.IsActive = false
	}

	payroll.Status = to

	if err := qtx.Update(ctx, payroll); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	s.logger.Info("payroll status changed",
		zap.String("payroll_id", id),
		zap.String("from", from),
		zap.String("to", to),
	)

	resp := &TransitionResponse{Payroll: payroll}

	// Payment-schedule generation is best effort: a failure must not undo
	// the committed status change, only surface as a warning.
	if to == StatusProcessing && from != StatusProcessing {
		if _, err := s.scheduler.GenerateForRun(ctx, id, actorID); err != nil {
			s.logger.Warn("payment schedule generation failed",
				zap.String("payroll_id", id),
				zap.Error(err),
			)
			resp.Warning = "payment schedule generation failed: " + err.Error()
		}
	}

	return resp, nil
}

func (s *service) GetItems(ctx context.Context, payrollID string) ([]PayrollItem, error) {
	if _, err := s.GetByID(ctx, payrollID); err != nil {
		return nil, err
	}
	return s.repo.FindItems(ctx, payrollID)
}

func (s *service) GetItem(ctx context.Context, itemID string) (*PayrollItem, error) {
	item, err := s.repo.FindItemByID(ctx, itemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, payrollerrors.ErrItemNotFound
		}
		return nil, err
	}
	return item, nil
}

func (s *service) GetAdjustments(ctx context.Context, itemID string) ([]PayrollAdjustment, error) {
	if _, err := s.GetItem(ctx, itemID); err != nil {
		return nil, err
	}
	return s.repo.FindAdjustmentsByItem(ctx, itemID)
}

func parsePeriod(start, end, payment string) (time.Time, time.Time, time.Time, error) {
	periodStart, err := parseDate(start)
	if err != nil {
		return time.Time{}, time.Time{}, time.Time{}, err
	}
	periodEnd, err := parseDate(end)
	if err != nil {
		return time.Time{}, time.Time{}, time.Time{}, err
	}
	paymentDate, err := parseDate(payment)
	if err != nil {
		return time.Time{}, time.Time{}, time.Time{}, err
	}

	if periodStart.After(periodEnd) || paymentDate.Before(periodEnd) {
		return time.Time{}, time.Time{}, time.Time{}, payrollerrors.ErrInvalidPeriod
	}

	return periodStart, periodEnd, paymentDate, nil
}

func parseDate(v string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		return time.Time{}, apperror.InvalidField("date").WithDetail("expected format YYYY-MM-DD")
	}
	return t, nil
}
