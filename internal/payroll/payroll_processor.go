package payroll

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/nosakhare/simple-payroll/internal/employee"
	"github.com/nosakhare/simple-payroll/internal/events"
	"github.com/nosakhare/simple-payroll/internal/messaging/kafka"
	payrollerrors "github.com/nosakhare/simple-payroll/internal/payroll/errors"
	"github.com/nosakhare/simple-payroll/internal/salaryconfig"
	"github.com/nosakhare/simple-payroll/internal/shared/contextutil"
	"github.com/nosakhare/simple-payroll/internal/statutory"
	"github.com/nosakhare/simple-payroll/internal/taxbracket"
)

// ProcessorDeps are the read-side collaborators of a payroll run. The
// processor reads employees, the active salary split and the tax table, and
// records an outbox event alongside its writes.
type ProcessorDeps struct {
	Employees employee.Repository
	Configs   salaryconfig.Repository
	Brackets  taxbracket.Repository
	Outbox    kafka.OutboxRepository
}

// Process runs the payroll computation for every Active employee. The run
// must still be Draft; re-invoking on a processed run is rejected, which is
// what keeps item creation idempotent. All writes happen in one transaction
// so an interrupted run leaves no partial items behind.
func (s *service) Process(ctx context.Context, id, actorID string) (*ProcessResponse, error) {
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

	employees, err := s.deps.Employees.WithTx(tx).FindByStatus(ctx, employee.StatusActive)
	if err != nil {
		return nil, err
	}

	// The split is re-read on every run so a configuration change applies
	// to the next run, never retroactively to stored items.
	config, err := s.deps.Configs.WithTx(tx).FindActive(ctx)
	if err != nil {
		return nil, err
	}
	if config == nil {
		def := salaryconfig.DefaultConfiguration()
		config = &def
	}

	bracketRows, err := s.deps.Brackets.WithTx(tx).FindAllOrdered(ctx)
	if err != nil {
		return nil, err
	}
	brackets := taxbracket.ToBrackets(bracketRows)

	totalGross := decimal.Zero
	totalDeductions := decimal.Zero
	totalNet := decimal.Zero

	for i := range employees {
		emp := &employees[i]
		item := buildPayrollItem(id, emp, *config, brackets)

		if err := qtx.CreateItem(ctx, item); err != nil {
			return nil, err
		}

		totalGross = totalGross.Add(item.GrossPay)
		totalDeductions = totalDeductions.Add(item.GrossPay.Sub(item.NetPay))
		totalNet = totalNet.Add(item.NetPay)
	}

	now := time.Now().UTC()
	payroll.Status = StatusCompleted
	payroll.TotalGross = totalGross
	payroll.TotalDeductions = totalDeductions
	payroll.TotalNet = totalNet
	payroll.EmployeeCount = len(employees)
	payroll.ProcessedAt = &now

	if err := qtx.Update(ctx, payroll); err != nil {
		return nil, err
	}

	if err := s.recordProcessedEvent(ctx, tx, payroll, actorID); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	s.logger.Info("payroll processed",
		zap.String("payroll_id", id),
		zap.Int("employee_count", len(employees)),
		zap.String("total_net", totalNet.String()),
	)

	return &ProcessResponse{Payroll: payroll, ItemCount: len(employees)}, nil
}

// buildPayrollItem decomposes one employee's compensation and applies the
// statutory deduction rules, capturing the full breakdown for the payslip.
func buildPayrollItem(
	payrollID string,
	emp *employee.Employee,
	config salaryconfig.SalaryConfiguration,
	brackets []statutory.Bracket,
) *PayrollItem {
	comps := config.Decompose(emp.BasicSalary)
	other := comps.Utility.Add(comps.Meal).Add(comps.Clothing)

	result := statutory.ComputeDeductions(brackets, statutory.DeductionInput{
		Basic:      comps.Basic,
		Transport:  comps.Transport,
		Housing:    comps.Housing,
		Other:      other,
		IsContract: emp.IsContract,
	})

	return &PayrollItem{
		PayrollID:       payrollID,
		EmployeeID:      emp.ID.String(),
		EmployeeName:    emp.FullName,
		EmployeeNumber:  emp.EmployeeNumber,
		BasicSalary:     comps.Basic,
		GrossPay:        result.MonthlyGross,
		TaxableIncome:   result.AnnualTaxableIncome.Div(decimal.NewFromInt(12)),
		TaxAmount:       result.MonthlyTax,
		PensionAmount:   result.MonthlyPension,
		EmployerPension: result.MonthlyEmployerPension,
		NHFAmount:       result.MonthlyNHF,
		OtherDeductions: decimal.Zero,
		NetPay:          result.MonthlyNetPay,
		Allowances: []BreakdownLine{
			{Label: "Basic Salary", Amount: comps.Basic},
			{Label: "Transport Allowance", Amount: comps.Transport},
			{Label: "Housing Allowance", Amount: comps.Housing},
			{Label: "Utility Allowance", Amount: comps.Utility},
			{Label: "Meal Allowance", Amount: comps.Meal},
			{Label: "Clothing Allowance", Amount: comps.Clothing},
		},
		Deductions: []BreakdownLine{
			{Label: "PAYE Tax", Amount: result.MonthlyTax},
			{Label: "Pension", Amount: result.MonthlyPension},
			{Label: "NHF", Amount: result.MonthlyNHF},
		},
		TaxDetails: TaxDetails{
			AnnualGross:         result.AnnualGross,
			AnnualPension:       result.MonthlyPension.Mul(decimal.NewFromInt(12)),
			AnnualNHF:           result.MonthlyNHF.Mul(decimal.NewFromInt(12)),
			ConsolidatedRelief:  result.ConsolidatedRelief,
			AnnualTaxableIncome: result.AnnualTaxableIncome,
			AnnualTax:           result.AnnualTax,
			MonthlyTax:          result.MonthlyTax,
			Brackets:            result.TaxLines,
		},
	}
}

func (s *service) recordProcessedEvent(ctx context.Context, tx *gorm.DB, payroll *Payroll, actorID string) error {
	event := events.PayrollProcessedEvent{
		EventType:     "payroll.processed",
		PayrollID:     payroll.ID,
		PeriodStart:   payroll.PeriodStart,
		PeriodEnd:     payroll.PeriodEnd,
		EmployeeCount: payroll.EmployeeCount,
		ProcessedBy:   actorID,
		OccurredAt:    time.Now().UTC(),
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return s.deps.Outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     contextutil.GetRequestID(ctx),
		AggregateType: "payroll",
		AggregateID:   payroll.ID,
		EventType:     event.EventType,
		Topic:         events.PayrollProcessedTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
}
