package employee

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"

	employeeerrors "github.com/nosakhare/simple-payroll/internal/employee/errors"
	"github.com/nosakhare/simple-payroll/internal/shared/contextutil"
)

//go:generate mockgen -source=employee_service.go -destination=mock/employee_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, actorID string, req CreateEmployeeRequest) (EmployeeResponse, error)
	GetAll(ctx context.Context) ([]EmployeeResponse, error)
	GetByID(ctx context.Context, id string) (EmployeeResponse, error)
	GetHistory(ctx context.Context, id string) ([]CompensationHistoryResponse, error)
	Update(ctx context.Context, actorID, id string, req UpdateEmployeeRequest) (EmployeeResponse, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	db     *gorm.DB
	repo   Repository
	logger *zap.Logger
}

func NewService(db *gorm.DB, repo Repository) Service {
	return &service{
		db:     db,
		repo:   repo,
		logger: zap.L().Named("employee.service"),
	}
}

func (s *service) Create(
	ctx context.Context,
	actorID string,
	req CreateEmployeeRequest,
) (EmployeeResponse, error) {
	rid := contextutil.GetRequestID(ctx)

	changedBy, err := uuid.Parse(actorID)
	if err != nil {
		return EmployeeResponse{}, employeeerrors.ErrInvalidActorID
	}

	dateHired, err := time.Parse("2006-01-02", req.DateHired)
	if err != nil {
		return EmployeeResponse{}, employeeerrors.ErrInvalidDateFormat
	}

	basicSalary, err := decimal.NewFromString(req.BasicSalary)
	if err != nil || basicSalary.IsNegative() {
		return EmployeeResponse{}, employeeerrors.ErrInvalidSalary
	}

	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return EmployeeResponse{}, tx.Error
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	dupes, err := qtx.CountByEmail(ctx, req.Email, nil)
	if err != nil {
		return EmployeeResponse{}, err
	}
	if dupes > 0 {
		return EmployeeResponse{}, employeeerrors.ErrDuplicateEmail
	}

	if req.EmployeeNumber == "" {
		next, err := qtx.NextEmployeeNumber(ctx)
		if err != nil {
			return EmployeeResponse{}, err
		}
		req.EmployeeNumber = fmt.Sprintf("EMP%03d", next)
	}

	empl := &Employee{
		ID:             uuid.New(),
		EmployeeNumber: req.EmployeeNumber,
		FullName:       req.FullName,
		Email:          req.Email,
		PhoneNumber:    req.PhoneNumber,
		Department:     req.Department,
		Position:       req.Position,
		DateHired:      dateHired,
		Status:         StatusActive,
		IsContract:     req.IsContract,
		BankName:       req.BankName,
		AccountNumber:  req.AccountNumber,
		TaxID:          req.TaxID,
		PensionID:      req.PensionID,
		NHFID:          req.NHFID,
		BasicSalary:    basicSalary,
	}

	if err := qtx.Create(ctx, empl); err != nil {
		return EmployeeResponse{}, err
	}

	// Seed the compensation trail with the hiring salary.
	if err := qtx.AppendHistory(ctx, &CompensationHistory{
		ID:            uuid.New(),
		EmployeeID:    empl.ID,
		EffectiveDate: dateHired,
		BasicSalary:   basicSalary,
		ChangedBy:     changedBy,
		ChangeReason:  "Initial salary",
	}); err != nil {
		return EmployeeResponse{}, err
	}

	if err := tx.Commit().Error; err != nil {
		return EmployeeResponse{}, err
	}

	s.logger.Info("employee created",
		zap.String("request_id", rid),
		zap.String("employee_id", empl.ID.String()),
		zap.String("employee_number", empl.EmployeeNumber),
	)

	return mapToResponse(*empl), nil
}

func (s *service) GetAll(ctx context.Context) ([]EmployeeResponse, error) {
	employees, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	resp := make([]EmployeeResponse, len(employees))
	for i, empl := range employees {
		resp[i] = mapToResponse(empl)
	}
	return resp, nil
}

func (s *service) GetByID(ctx context.Context, id string) (EmployeeResponse, error) {
	empl, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return EmployeeResponse{}, employeeerrors.ErrNotFound
		}
		return EmployeeResponse{}, err
	}

	return mapToResponse(*empl), nil
}

func (s *service) GetHistory(ctx context.Context, id string) ([]CompensationHistoryResponse, error) {
	history, err := s.repo.FindHistoryByEmployee(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := make([]CompensationHistoryResponse, len(history))
	for i, entry := range history {
		resp[i] = CompensationHistoryResponse{
			ID:            entry.ID.String(),
			EmployeeID:    entry.EmployeeID.String(),
			EffectiveDate: entry.EffectiveDate.Format("2006-01-02"),
			BasicSalary:   entry.BasicSalary.String(),
			ChangedBy:     entry.ChangedBy.String(),
			ChangeReason:  entry.ChangeReason,
		}
	}
	return resp, nil
}

// Update edits the employee record. A changed basic salary appends a
// compensation history entry in the same transaction.
func (s *service) Update(
	ctx context.Context,
	actorID, id string,
	req UpdateEmployeeRequest,
) (EmployeeResponse, error) {
	changedBy, err := uuid.Parse(actorID)
	if err != nil {
		return EmployeeResponse{}, employeeerrors.ErrInvalidActorID
	}

	status := EmploymentStatus(req.Status)
	if !status.Valid() {
		return EmployeeResponse{}, employeeerrors.ErrInvalidStatus
	}

	basicSalary, err := decimal.NewFromString(req.BasicSalary)
	if err != nil || basicSalary.IsNegative() {
		return EmployeeResponse{}, employeeerrors.ErrInvalidSalary
	}

	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return EmployeeResponse{}, tx.Error
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	empl, err := qtx.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return EmployeeResponse{}, employeeerrors.ErrNotFound
		}
		return EmployeeResponse{}, err
	}

	dupes, err := qtx.CountByEmail(ctx, req.Email, &id)
	if err != nil {
		return EmployeeResponse{}, err
	}
	if dupes > 0 {
		return EmployeeResponse{}, employeeerrors.ErrDuplicateEmail
	}

	salaryChanged := !empl.BasicSalary.Equal(basicSalary)

	empl.FullName = req.FullName
	empl.Email = req.Email
	empl.PhoneNumber = req.PhoneNumber
	empl.Department = req.Department
	empl.Position = req.Position
	empl.Status = status
	empl.IsContract = req.IsContract
	empl.BankName = req.BankName
	empl.AccountNumber = req.AccountNumber
	empl.BasicSalary = basicSalary

	if err := qtx.Update(ctx, empl); err != nil {
		return EmployeeResponse{}, err
	}

	if salaryChanged {
		if err := qtx.AppendHistory(ctx, &CompensationHistory{
			ID:            uuid.New(),
			EmployeeID:    empl.ID,
			EffectiveDate: time.Now().UTC(),
			BasicSalary:   basicSalary,
			ChangedBy:     changedBy,
			ChangeReason:  req.ChangeReason,
		}); err != nil {
			return EmployeeResponse{}, err
		}
	}

	if err := tx.Commit().Error; err != nil {
		return EmployeeResponse{}, err
	}

	return mapToResponse(*empl), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return employeeerrors.ErrNotFound
		}
		return err
	}

	return s.repo.Delete(ctx, id)
}

func mapToResponse(empl Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:             empl.ID.String(),
		EmployeeNumber: empl.EmployeeNumber,
		FullName:       empl.FullName,
		Email:          empl.Email,
		PhoneNumber:    empl.PhoneNumber,
		Department:     empl.Department,
		Position:       empl.Position,
		DateHired:      empl.DateHired.Format("2006-01-02"),
		Status:         string(empl.Status),
		IsContract:     empl.IsContract,
		BankName:       empl.BankName,
		AccountNumber:  empl.AccountNumber,
		BasicSalary:    empl.BasicSalary.String(),
	}
}
