package calculator_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/nosakhare/simple-payroll/internal/calculator"
	"github.com/nosakhare/simple-payroll/internal/salaryconfig"
	"github.com/nosakhare/simple-payroll/internal/taxbracket"
)

func dec(v int64) decimal.Decimal {
	return decimal.NewFromInt(v)
}

type fakeConfigService struct {
	getActiveFn func(ctx context.Context) (salaryconfig.SalaryConfiguration, error)
}

func (f *fakeConfigService) Create(ctx context.Context, actorID string, req salaryconfig.CreateSalaryConfigurationRequest) (salaryconfig.SalaryConfigurationResponse, error) {
	return salaryconfig.SalaryConfigurationResponse{}, nil
}

func (f *fakeConfigService) GetAll(ctx context.Context) ([]salaryconfig.SalaryConfigurationResponse, error) {
	return nil, nil
}

func (f *fakeConfigService) GetActive(ctx context.Context) (salaryconfig.SalaryConfiguration, error) {
	if f.getActiveFn != nil {
		return f.getActiveFn(ctx)
	}
	return salaryconfig.DefaultConfiguration(), nil
}

func (f *fakeConfigService) Update(ctx context.Context, id string, req salaryconfig.UpdateSalaryConfigurationRequest) (salaryconfig.SalaryConfigurationResponse, error) {
	return salaryconfig.SalaryConfigurationResponse{}, nil
}

func (f *fakeConfigService) Activate(ctx context.Context, id string) (salaryconfig.SalaryConfigurationResponse, error) {
	return salaryconfig.SalaryConfigurationResponse{}, nil
}

func (f *fakeConfigService) Delete(ctx context.Context, id string) error { return nil }

type fakeBracketRepository struct {
	findAllOrderedFn func(ctx context.Context) ([]taxbracket.TaxBracket, error)
}

func (f *fakeBracketRepository) WithTx(tx *gorm.DB) taxbracket.Repository { return f }
func (f *fakeBracketRepository) Create(ctx context.Context, bracket *taxbracket.TaxBracket) error {
	return nil
}

func (f *fakeBracketRepository) FindAllOrdered(ctx context.Context) ([]taxbracket.TaxBracket, error) {
	if f.findAllOrderedFn != nil {
		return f.findAllOrderedFn(ctx)
	}
	return nil, nil
}

func (f *fakeBracketRepository) FindByID(ctx context.Context, id string) (*taxbracket.TaxBracket, error) {
	return nil, gorm.ErrRecordNotFound
}
func (f *fakeBracketRepository) Update(ctx context.Context, bracket *taxbracket.TaxBracket) error {
	return nil
}
func (f *fakeBracketRepository) Delete(ctx context.Context, id string) error { return nil }
func (f *fakeBracketRepository) HasUnbounded(ctx context.Context, excludeID *string) (bool, error) {
	return false, nil
}
func (f *fakeBracketRepository) HasOverlap(ctx context.Context, lower decimal.Decimal, upper *decimal.Decimal, excludeID *string) (bool, error) {
	return false, nil
}

// flatTenPercent is a single unbounded band taxing all income at 10%.
func flatTenPercent() []taxbracket.TaxBracket {
	return []taxbracket.TaxBracket{
		{
			ID:         uuid.New(),
			LowerLimit: decimal.Zero,
			UpperLimit: nil,
			Rate:       dec(10),
		},
	}
}

func TestCalculatorService_Statutory(t *testing.T) {
	ctx := context.Background()

	t.Run("decomposes and applies the statutory rules", func(t *testing.T) {
		configs := &fakeConfigService{}
		brackets := &fakeBracketRepository{
			findAllOrderedFn: func(ctx context.Context) ([]taxbracket.TaxBracket, error) {
				return flatTenPercent(), nil
			},
		}
		svc := calculator.NewService(configs, brackets)

		resp, err := svc.Statutory(ctx, calculator.StatutoryRequest{BasicSalary: dec(150_000)})

		assert.NoError(t, err)
		assert.Equal(t, "Default Split", resp.ConfigName)
		assert.True(t, dec(250_000).Equal(resp.Components.Total), "total %s", resp.Components.Total)
		assert.True(t, dec(17_000).Equal(resp.Deductions.MonthlyPension), "pension %s", resp.Deductions.MonthlyPension)
		assert.True(t, dec(3_750).Equal(resp.Deductions.MonthlyNHF), "nhf %s", resp.Deductions.MonthlyNHF)

		// Annual taxable 2,551,000 at a flat 10%.
		assert.True(t, dec(2_551_000).Equal(resp.Deductions.AnnualTaxableIncome), "taxable %s", resp.Deductions.AnnualTaxableIncome)
		assert.True(t, dec(255_100).Equal(resp.Deductions.AnnualTax), "tax %s", resp.Deductions.AnnualTax)
	})

	t.Run("contract staff keep the pension column at zero", func(t *testing.T) {
		configs := &fakeConfigService{}
		brackets := &fakeBracketRepository{}
		svc := calculator.NewService(configs, brackets)

		resp, err := svc.Statutory(ctx, calculator.StatutoryRequest{
			BasicSalary: dec(150_000),
			IsContract:  true,
		})

		assert.NoError(t, err)
		assert.True(t, resp.Deductions.MonthlyPension.IsZero())
		assert.True(t, resp.Deductions.IsPensionExempt)
	})

	t.Run("negative salary rejected", func(t *testing.T) {
		svc := calculator.NewService(&fakeConfigService{}, &fakeBracketRepository{})

		_, err := svc.Statutory(ctx, calculator.StatutoryRequest{BasicSalary: dec(-1)})

		assert.Error(t, err)
	})
}

func TestCalculatorService_Proration(t *testing.T) {
	ctx := context.Background()
	svc := calculator.NewService(&fakeConfigService{}, &fakeBracketRepository{})

	t.Run("no dates means the full amount", func(t *testing.T) {
		resp, err := svc.Proration(ctx, calculator.ProrationRequest{
			Amount: dec(300_000),
			Month:  6,
			Year:   2026,
		})

		assert.NoError(t, err)
		assert.True(t, decimal.NewFromInt(1).Equal(resp.Factor), "factor %s", resp.Factor)
		assert.True(t, dec(300_000).Equal(resp.ProratedAmount))
	})

	t.Run("mid-month start prorates by working days", func(t *testing.T) {
		start := "2026-06-16"

		resp, err := svc.Proration(ctx, calculator.ProrationRequest{
			Amount:    dec(300_000),
			StartDate: &start,
			Month:     6,
			Year:      2026,
		})

		assert.NoError(t, err)
		// June 2026 has 22 working days; the 16th through the 30th
		// cover 11 of them.
		expected := dec(11).Div(dec(22))
		assert.True(t, expected.Equal(resp.Factor), "factor %s", resp.Factor)
		assert.True(t, dec(150_000).Equal(resp.ProratedAmount), "prorated %s", resp.ProratedAmount)
	})

	t.Run("bad date rejected", func(t *testing.T) {
		start := "16/06/2026"

		_, err := svc.Proration(ctx, calculator.ProrationRequest{
			Amount:    dec(300_000),
			StartDate: &start,
			Month:     6,
			Year:      2026,
		})

		assert.Error(t, err)
	})
}
