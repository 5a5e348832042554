package taxbracket

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/nosakhare/simple-payroll/internal/statutory"
	taxbracketerrors "github.com/nosakhare/simple-payroll/internal/taxbracket/errors"
)

//go:generate mockgen -source=tax_bracket_service.go -destination=mock/tax_bracket_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateTaxBracketRequest) (TaxBracketResponse, error)
	GetAll(ctx context.Context) ([]TaxBracketResponse, error)
	Update(ctx context.Context, id string, req UpdateTaxBracketRequest) (TaxBracketResponse, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	db   *gorm.DB
	repo Repository
}

func NewService(db *gorm.DB, repo Repository) Service {
	return &service{db: db, repo: repo}
}

func (s *service) Create(ctx context.Context, req CreateTaxBracketRequest) (TaxBracketResponse, error) {
	lower, upper, rate, err := parseBracketRequest(req.LowerLimit, req.UpperLimit, req.Rate)
	if err != nil {
		return TaxBracketResponse{}, err
	}

	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return TaxBracketResponse{}, tx.Error
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if upper == nil {
		unbounded, err := qtx.HasUnbounded(ctx, nil)
		if err != nil {
			return TaxBracketResponse{}, err
		}
		if unbounded {
			return TaxBracketResponse{}, taxbracketerrors.ErrDuplicateUnbounded
		}
	}

	overlap, err := qtx.HasOverlap(ctx, lower, upper, nil)
	if err != nil {
		return TaxBracketResponse{}, err
	}
	if overlap {
		return TaxBracketResponse{}, taxbracketerrors.ErrOverlap
	}

	bracket := &TaxBracket{
		ID:         uuid.New(),
		LowerLimit: lower,
		UpperLimit: upper,
		Rate:       rate,
	}

	if err := qtx.Create(ctx, bracket); err != nil {
		return TaxBracketResponse{}, err
	}

	if err := tx.Commit().Error; err != nil {
		return TaxBracketResponse{}, err
	}

	return mapToResponse(*bracket), nil
}

// GetAll returns the configured table, or the statutory default table when
// nothing is configured, so the calculator and the API always agree.
func (s *service) GetAll(ctx context.Context) ([]TaxBracketResponse, error) {
	rows, err := s.repo.FindAllOrdered(ctx)
	if err != nil {
		return nil, err
	}

	if len(rows) == 0 {
		return defaultResponses(), nil
	}

	resp := make([]TaxBracketResponse, len(rows))
	for i, row := range rows {
		resp[i] = mapToResponse(row)
	}
	return resp, nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateTaxBracketRequest) (TaxBracketResponse, error) {
	lower, upper, rate, err := parseBracketRequest(req.LowerLimit, req.UpperLimit, req.Rate)
	if err != nil {
		return TaxBracketResponse{}, err
	}

	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return TaxBracketResponse{}, tx.Error
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	bracket, err := qtx.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return TaxBracketResponse{}, taxbracketerrors.ErrNotFound
		}
		return TaxBracketResponse{}, err
	}

	if upper == nil {
		unbounded, err := qtx.HasUnbounded(ctx, &id)
		if err != nil {
			return TaxBracketResponse{}, err
		}
		if unbounded {
			return TaxBracketResponse{}, taxbracketerrors.ErrDuplicateUnbounded
		}
	}

	overlap, err := qtx.HasOverlap(ctx, lower, upper, &id)
	if err != nil {
		return TaxBracketResponse{}, err
	}
	if overlap {
		return TaxBracketResponse{}, taxbracketerrors.ErrOverlap
	}

	bracket.LowerLimit = lower
	bracket.UpperLimit = upper
	bracket.Rate = rate

	if err := qtx.Update(ctx, bracket); err != nil {
		return TaxBracketResponse{}, err
	}

	if err := tx.Commit().Error; err != nil {
		return TaxBracketResponse{}, err
	}

	return mapToResponse(*bracket), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

func parseBracketRequest(lowerRaw string, upperRaw *string, rateRaw string) (decimal.Decimal, *decimal.Decimal, decimal.Decimal, error) {
	lower, err := decimal.NewFromString(lowerRaw)
	if err != nil || lower.IsNegative() {
		return decimal.Zero, nil, decimal.Zero, taxbracketerrors.ErrInvalidAmount
	}

	rate, err := decimal.NewFromString(rateRaw)
	if err != nil || rate.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, nil, decimal.Zero, taxbracketerrors.ErrInvalidRate
	}

	var upper *decimal.Decimal
	if upperRaw != nil && *upperRaw != "" {
		u, err := decimal.NewFromString(*upperRaw)
		if err != nil || u.IsNegative() {
			return decimal.Zero, nil, decimal.Zero, taxbracketerrors.ErrInvalidAmount
		}
		if u.LessThanOrEqual(lower) {
			return decimal.Zero, nil, decimal.Zero, taxbracketerrors.ErrUpperNotAboveLower
		}
		upper = &u
	}

	return lower, upper, rate, nil
}

func mapToResponse(bracket TaxBracket) TaxBracketResponse {
	resp := TaxBracketResponse{
		ID:         bracket.ID.String(),
		LowerLimit: bracket.LowerLimit.String(),
		Rate:       bracket.Rate.String(),
	}
	if bracket.UpperLimit != nil {
		v := bracket.UpperLimit.String()
		resp.UpperLimit = &v
	}
	return resp
}

func defaultResponses() []TaxBracketResponse {
	defaults := statutory.DefaultBrackets()
	resp := make([]TaxBracketResponse, len(defaults))
	for i, bracket := range defaults {
		resp[i] = TaxBracketResponse{
			LowerLimit: bracket.Lower.String(),
			Rate:       bracket.Rate.String(),
			IsDefault:  true,
		}
		if bracket.Upper != nil {
			v := bracket.Upper.String()
			resp[i].UpperLimit = &v
		}
	}
	return resp
}
