package taxbracket

import (
	"context"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

//go:generate mockgen -source=tax_bracket_repo.go -destination=mock/tax_bracket_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, bracket *TaxBracket) error
	FindAllOrdered(ctx context.Context) ([]TaxBracket, error)
	FindByID(ctx context.Context, id string) (*TaxBracket, error)
	Update(ctx context.Context, bracket *TaxBracket) error
	Delete(ctx context.Context, id string) error
	HasUnbounded(ctx context.Context, excludeID *string) (bool, error)
	HasOverlap(ctx context.Context, lower decimal.Decimal, upper *decimal.Decimal, excludeID *string) (bool, error)
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

func (r *repository) Create(ctx context.Context, bracket *TaxBracket) error {
	return r.db.WithContext(ctx).Create(bracket).Error
}

func (r *repository) FindAllOrdered(ctx context.Context) ([]TaxBracket, error) {
	var brackets []TaxBracket
	err := r.db.WithContext(ctx).
		Order("lower_limit ASC").
		Find(&brackets).Error
	return brackets, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*TaxBracket, error) {
	var bracket TaxBracket
	err := r.db.WithContext(ctx).
		First(&bracket, "id = ?", id).Error
	return &bracket, err
}

func (r *repository) Update(ctx context.Context, bracket *TaxBracket) error {
	return r.db.WithContext(ctx).Save(bracket).Error
}

func (r *repository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&TaxBracket{}, "id = ?", id).Error
}

func (r *repository) HasUnbounded(ctx context.Context, excludeID *string) (bool, error) {
	db := r.db.WithContext(ctx).
		Model(&TaxBracket{}).
		Where("upper_limit IS NULL")

	if excludeID != nil && *excludeID != "" {
		db = db.Where("id <> ?", *excludeID)
	}

	var count int64
	err := db.Count(&count).Error
	return count > 0, err
}

func (r *repository) HasOverlap(
	ctx context.Context,
	lower decimal.Decimal,
	upper *decimal.Decimal,
	excludeID *string,
) (bool, error) {
	// An existing band [l, u) overlaps [lower, upper) when u > lower (or u is
	// unbounded) and l < upper (or upper is unbounded).
	db := r.db.WithContext(ctx).
		Model(&TaxBracket{}).
		Where("(upper_limit IS NULL OR upper_limit > ?)", lower)

	if upper != nil {
		db = db.Where("lower_limit < ?", *upper)
	}

	if excludeID != nil && *excludeID != "" {
		db = db.Where("id <> ?", *excludeID)
	}

	var count int64
	err := db.Count(&count).Error
	return count > 0, err
}
