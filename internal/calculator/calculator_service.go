package calculator

import (
	"context"
	"time"

	"github.com/nosakhare/simple-payroll/internal/proration"
	"github.com/nosakhare/simple-payroll/internal/salaryconfig"
	"github.com/nosakhare/simple-payroll/internal/shared/apperror"
	"github.com/nosakhare/simple-payroll/internal/statutory"
	"github.com/nosakhare/simple-payroll/internal/taxbracket"
)

// Service exposes the payroll calculators as standalone what-if tools. The
// computations are identical to the ones the run processor applies; nothing
// is persisted.
//
//go:generate mockgen -source=calculator_service.go -destination=mock/calculator_service_mock.go -package=mock
type Service interface {
	Statutory(ctx context.Context, req StatutoryRequest) (*StatutoryResponse, error)
	Proration(ctx context.Context, req ProrationRequest) (*ProrationResponse, error)
}

type service struct {
	configs  salaryconfig.Service
	brackets taxbracket.Repository
}

func NewService(configs salaryconfig.Service, brackets taxbracket.Repository) Service {
	return &service{configs: configs, brackets: brackets}
}

func (s *service) Statutory(ctx context.Context, req StatutoryRequest) (*StatutoryResponse, error) {
	if req.BasicSalary.IsNegative() {
		return nil, apperror.InvalidField("basic_salary")
	}

	config, err := s.configs.GetActive(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := s.brackets.FindAllOrdered(ctx)
	if err != nil {
		return nil, err
	}

	comps := config.Decompose(req.BasicSalary)
	other := comps.Utility.Add(comps.Meal).Add(comps.Clothing)

	result := statutory.ComputeDeductions(taxbracket.ToBrackets(rows), statutory.DeductionInput{
		Basic:      comps.Basic,
		Transport:  comps.Transport,
		Housing:    comps.Housing,
		Other:      other,
		IsContract: req.IsContract,
	})

	return &StatutoryResponse{
		Components: comps,
		ConfigName: config.Name,
		Deductions: result,
	}, nil
}

func (s *service) Proration(ctx context.Context, req ProrationRequest) (*ProrationResponse, error) {
	if req.Amount.IsNegative() {
		return nil, apperror.InvalidField("amount")
	}

	start, err := parseOptionalDate(req.StartDate, "start_date")
	if err != nil {
		return nil, err
	}
	end, err := parseOptionalDate(req.EndDate, "end_date")
	if err != nil {
		return nil, err
	}

	factor := proration.Factor(start, end, req.Month, req.Year)
	prorated := proration.Prorate(req.Amount, start, end, req.Month, req.Year)

	return &ProrationResponse{
		Factor:         factor,
		OriginalAmount: req.Amount,
		ProratedAmount: prorated,
	}, nil
}

func parseOptionalDate(v *string, field string) (*time.Time, error) {
	if v == nil || *v == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", *v)
	if err != nil {
		return nil, apperror.InvalidField(field).WithDetail("expected format YYYY-MM-DD")
	}
	return &t, nil
}
