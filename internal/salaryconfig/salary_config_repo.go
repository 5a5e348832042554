package salaryconfig

import (
	"context"

	"gorm.io/gorm"
)

//go:generate mockgen -source=salary_config_repo.go -destination=mock/salary_config_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, config *SalaryConfiguration) error
	FindAll(ctx context.Context) ([]SalaryConfiguration, error)
	FindByID(ctx context.Context, id string) (*SalaryConfiguration, error)
	FindActive(ctx context.Context) (*SalaryConfiguration, error)
	Update(ctx context.Context, config *SalaryConfiguration) error
	DeactivateAll(ctx context.Context) error
	Delete(ctx context.Context, id string) error
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

func (r *repository) Create(ctx context.Context, config *SalaryConfiguration) error {
	return r.db.WithContext(ctx).Create(config).Error
}

func (r *repository) FindAll(ctx context.Context) ([]SalaryConfiguration, error) {
	var configs []SalaryConfiguration
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&configs).Error
	return configs, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*SalaryConfiguration, error) {
	var config SalaryConfiguration
	err := r.db.WithContext(ctx).
		First(&config, "id = ?", id).Error
	return &config, err
}

// FindActive returns nil without error when no configuration is active.
func (r *repository) FindActive(ctx context.Context) (*SalaryConfiguration, error) {
	var configs []SalaryConfiguration
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Limit(1).
		Find(&configs).Error
	if err != nil {
		return nil, err
	}
	if len(configs) == 0 {
		return nil, nil
	}
	return &configs[0], nil
}

func (r *repository) Update(ctx context.Context, config *SalaryConfiguration) error {
	return r.db.WithContext(ctx).Save(config).Error
}

func (r *repository) DeactivateAll(ctx context.Context) error {
	return r.db.WithContext(ctx).
		Model(&SalaryConfiguration{}).
		Where("is_active = ?", true).
		Update("is_active", false).Error
}

func (r *repository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&SalaryConfiguration{}, "id = ?", id).Error
}
