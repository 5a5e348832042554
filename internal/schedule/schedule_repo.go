package schedule

import (
	"context"

	"gorm.io/gorm"
)

//go:generate mockgen -source=schedule_repo.go -destination=mock/schedule_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	CreateBatch(ctx context.Context, schedules []PaymentSchedule) error
	FindByPayroll(ctx context.Context, payrollID string) ([]PaymentSchedule, error)
	FindByID(ctx context.Context, id string) (*PaymentSchedule, error)
	ExistsForPayroll(ctx context.Context, payrollID string) (bool, error)
	UpdateStatus(ctx context.Context, id, status, failureReason string) error
	DeleteByPayroll(ctx context.Context, payrollID string) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	return &repository{db: tx}
}

func (r *repository) CreateBatch(ctx context.Context, schedules []PaymentSchedule) error {
	if len(schedules) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&schedules).Error
}

func (r *repository) FindByPayroll(ctx context.Context, payrollID string) ([]PaymentSchedule, error) {
	var schedules []PaymentSchedule
	err := r.db.WithContext(ctx).
		Where("payroll_id = ?", payrollID).
		Order("employee_name ASC").
		Find(&schedules).Error
	return schedules, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*PaymentSchedule, error) {
	var s PaymentSchedule
	err := r.db.WithContext(ctx).
		First(&s, "id = ?", id).Error
	return &s, err
}

func (r *repository) ExistsForPayroll(ctx context.Context, payrollID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&PaymentSchedule{}).
		Where("payroll_id = ?", payrollID).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) UpdateStatus(ctx context.Context, id, status, failureReason string) error {
	return r.db.WithContext(ctx).
		Model(&PaymentSchedule{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":         status,
			"failure_reason": failureReason,
		}).Error
}

func (r *repository) DeleteByPayroll(ctx context.Context, payrollID string) error {
	return r.db.WithContext(ctx).
		Delete(&PaymentSchedule{}, "payroll_id = ?", payrollID).Error
}
