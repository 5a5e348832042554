package payroll

import (
	"context"
	"time"

	"gorm.io/gorm"
)

//go:generate mockgen -source=payroll_repo.go -destination=mock/payroll_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *gorm.DB) Repository

	Create(ctx context.Context, payroll *Payroll) error
	FindAll(ctx context.Context) ([]Payroll, error)
	FindByID(ctx context.Context, id string) (*Payroll, error)
	Update(ctx context.Context, payroll *Payroll) error
	Delete(ctx context.Context, id string) error
	HasOverlappingPeriod(ctx context.Context, periodStart, periodEnd time.Time, excludeID *string) (bool, error)
	DeactivateAllActive(ctx context.Context) error

	CreateItem(ctx context.Context, item *PayrollItem) error
	FindItems(ctx context.Context, payrollID string) ([]PayrollItem, error)
	FindItemByID(ctx context.Context, id string) (*PayrollItem, error)
	UpdateItem(ctx context.Context, item *PayrollItem) error
	DeleteItemsByPayroll(ctx context.Context, payrollID string) error

	CreateAdjustment(ctx context.Context, adjustment *PayrollAdjustment) error
	FindAdjustmentsByItem(ctx context.Context, itemID string) ([]PayrollAdjustment, error)
	DeleteAdjustmentsByPayroll(ctx context.Context, payrollID string) error
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

func (r *repository) Create(ctx context.Context, payroll *Payroll) error {
	return r.db.WithContext(ctx).Create(payroll).Error
}

func (r *repository) FindAll(ctx context.Context) ([]Payroll, error) {
	var payrolls []Payroll
	err := r.db.WithContext(ctx).
		Order("period_start DESC").
		Find(&payrolls).Error
	return payrolls, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*Payroll, error) {
	var payroll Payroll
	err := r.db.WithContext(ctx).
		First(&payroll, "id = ?", id).Error
	return &payroll, err
}

func (r *repository) Update(ctx context.Context, payroll *Payroll) error {
	return r.db.WithContext(ctx).Save(payroll).Error
}

func (r *repository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&Payroll{}, "id = ?", id).Error
}

func (r *repository) HasOverlappingPeriod(
	ctx context.Context,
	periodStart, periodEnd time.Time,
	excludeID *string,
) (bool, error) {
	// Two closed ranges overlap unless one ends before the other starts.
	db := r.db.WithContext(ctx).
		Model(&Payroll{}).
		Where("NOT (period_end < ? OR period_start > ?)", periodStart, periodEnd).
		Where("status <> ?", StatusCancelled)

	if excludeID != nil && *excludeID != "" {
		db = db.Where("id <> ?", *excludeID)
	}

	var count int64
	err := db.Count(&count).Error
	return count > 0, err
}

func (r *repository) DeactivateAllActive(ctx context.Context) error {
	return r.db.WithContext(ctx).
		Model(&Payroll{}).
		Where("is_active = ?", true).
		Update("is_active", false).Error
}

func (r *repository) CreateItem(ctx context.Context, item *PayrollItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *repository) FindItems(ctx context.Context, payrollID string) ([]PayrollItem, error) {
	var items []PayrollItem
	err := r.db.WithContext(ctx).
		Where("payroll_id = ?", payrollID).
		Order("employee_name ASC").
		Find(&items).Error
	return items, err
}

func (r *repository) FindItemByID(ctx context.Context, id string) (*PayrollItem, error) {
	var item PayrollItem
	err := r.db.WithContext(ctx).
		First(&item, "id = ?", id).Error
	return &item, err
}

func (r *repository) UpdateItem(ctx context.Context, item *PayrollItem) error {
	return r.db.WithContext(ctx).Save(item).Error
}

func (r *repository) DeleteItemsByPayroll(ctx context.Context, payrollID string) error {
	return r.db.WithContext(ctx).
		Delete(&PayrollItem{}, "payroll_id = ?", payrollID).Error
}

func (r *repository) CreateAdjustment(ctx context.Context, adjustment *PayrollAdjustment) error {
	return r.db.WithContext(ctx).Create(adjustment).Error
}

func (r *repository) FindAdjustmentsByItem(ctx context.Context, itemID string) ([]PayrollAdjustment, error) {
	var adjustments []PayrollAdjustment
	err := r.db.WithContext(ctx).
		Where("payroll_item_id = ?", itemID).
		Order("created_at ASC").
		Find(&adjustments).Error
	return adjustments, err
}

func (r *repository) DeleteAdjustmentsByPayroll(ctx context.Context, payrollID string) error {
	return r.db.WithContext(ctx).
		Delete(&PayrollAdjustment{}, "payroll_id = ?", payrollID).Error
}
