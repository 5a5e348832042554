package employee

import (
	"context"

	"gorm.io/gorm"
)

//go:generate mockgen -source=employee_repo.go -destination=mock/employee_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, empl *Employee) error
	FindAll(ctx context.Context) ([]Employee, error)
	FindByID(ctx context.Context, id string) (*Employee, error)
	FindByStatus(ctx context.Context, status EmploymentStatus) ([]Employee, error)
	Update(ctx context.Context, empl *Employee) error
	Delete(ctx context.Context, id string) error
	CountByEmail(ctx context.Context, email string, excludeID *string) (int64, error)
	NextEmployeeNumber(ctx context.Context) (int64, error)

	AppendHistory(ctx context.Context, entry *CompensationHistory) error
	FindHistoryByEmployee(ctx context.Context, employeeID string) ([]CompensationHistory, error)
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

func (r *repository) Create(ctx context.Context, empl *Employee) error {
	return r.db.WithContext(ctx).Create(empl).Error
}

func (r *repository) FindAll(ctx context.Context) ([]Employee, error) {
	var employees []Employee
	err := r.db.WithContext(ctx).
		Order("full_name ASC").
		Find(&employees).Error
	return employees, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*Employee, error) {
	var empl Employee
	err := r.db.WithContext(ctx).
		First(&empl, "id = ?", id).Error
	return &empl, err
}

func (r *repository) FindByStatus(ctx context.Context, status EmploymentStatus) ([]Employee, error) {
	var employees []Employee
	err := r.db.WithContext(ctx).
		Where("status = ?", status).
		Order("employee_number ASC").
		Find(&employees).Error
	return employees, err
}

func (r *repository) Update(ctx context.Context, empl *Employee) error {
	return r.db.WithContext(ctx).Save(empl).Error
}

// Delete removes the employee record only. Compensation history rows are
// intentionally left behind as an audit trail.
func (r *repository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&Employee{}, "id = ?", id).Error
}

func (r *repository) CountByEmail(ctx context.Context, email string, excludeID *string) (int64, error) {
	db := r.db.WithContext(ctx).
		Model(&Employee{}).
		Where("email = ?", email)

	if excludeID != nil && *excludeID != "" {
		db = db.Where("id <> ?", *excludeID)
	}

	var count int64
	err := db.Count(&count).Error
	return count, err
}

func (r *repository) NextEmployeeNumber(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&Employee{}).
		Count(&count).Error
	return count + 1, err
}

func (r *repository) AppendHistory(ctx context.Context, entry *CompensationHistory) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *repository) FindHistoryByEmployee(ctx context.Context, employeeID string) ([]CompensationHistory, error) {
	var history []CompensationHistory
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Order("effective_date DESC").
		Find(&history).Error
	return history, err
}
