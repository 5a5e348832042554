package payroll_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/nosakhare/simple-payroll/internal/employee"
	"github.com/nosakhare/simple-payroll/internal/messaging/kafka"
	"github.com/nosakhare/simple-payroll/internal/payroll"
	payrollerrors "github.com/nosakhare/simple-payroll/internal/payroll/errors"
	"github.com/nosakhare/simple-payroll/internal/salaryconfig"
	"github.com/nosakhare/simple-payroll/internal/taxbracket"
)

func dec(v int64) decimal.Decimal {
	return decimal.NewFromInt(v)
}

type fakePayrollRepository struct {
	createFn               func(ctx context.Context, p *payroll.Payroll) error
	findAllFn              func(ctx context.Context) ([]payroll.Payroll, error)
	findByIDFn             func(ctx context.Context, id string) (*payroll.Payroll, error)
	updateFn               func(ctx context.Context, p *payroll.Payroll) error
	deleteFn               func(ctx context.Context, id string) error
	hasOverlappingPeriodFn func(ctx context.Context, periodStart, periodEnd time.Time, excludeID *string) (bool, error)
	deactivateAllActiveFn  func(ctx context.Context) error

	createItemFn           func(ctx context.Context, item *payroll.PayrollItem) error
	findItemsFn            func(ctx context.Context, payrollID string) ([]payroll.PayrollItem, error)
	findItemByIDFn         func(ctx context.Context, id string) (*payroll.PayrollItem, error)
	updateItemFn           func(ctx context.Context, item *payroll.PayrollItem) error
	deleteItemsFn          func(ctx context.Context, payrollID string) error
	createAdjustmentFn     func(ctx context.Context, adj *payroll.PayrollAdjustment) error
	findAdjustmentsFn      func(ctx context.Context, itemID string) ([]payroll.PayrollAdjustment, error)
	deleteAdjByPayrollFn   func(ctx context.Context, payrollID string) error
}

func (f *fakePayrollRepository) WithTx(tx *gorm.DB) payroll.Repository { return f }

func (f *fakePayrollRepository) Create(ctx context.Context, p *payroll.Payroll) error {
	if f.createFn != nil {
		return f.createFn(ctx, p)
	}
	return nil
}

func (f *fakePayrollRepository) FindAll(ctx context.Context) ([]payroll.Payroll, error) {
	if f.findAllFn != nil {
		return f.findAllFn(ctx)
	}
	return nil, nil
}

func (f *fakePayrollRepository) FindByID(ctx context.Context, id string) (*payroll.Payroll, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakePayrollRepository) Update(ctx context.Context, p *payroll.Payroll) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, p)
	}
	return nil
}

func (f *fakePayrollRepository) Delete(ctx context.Context, id string) error {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, id)
	}
	return nil
}

func (f *fakePayrollRepository) HasOverlappingPeriod(ctx context.Context, periodStart, periodEnd time.Time, excludeID *string) (bool, error) {
	if f.hasOverlappingPeriodFn != nil {
		return f.hasOverlappingPeriodFn(ctx, periodStart, periodEnd, excludeID)
	}
	return false, nil
}

func (f *fakePayrollRepository) DeactivateAllActive(ctx context.Context) error {
	if f.deactivateAllActiveFn != nil {
		return f.deactivateAllActiveFn(ctx)
	}
	return nil
}

func (f *fakePayrollRepository) CreateItem(ctx context.Context, item *payroll.PayrollItem) error {
	if f.createItemFn != nil {
		return f.createItemFn(ctx, item)
	}
	return nil
}

func (f *fakePayrollRepository) FindItems(ctx context.Context, payrollID string) ([]payroll.PayrollItem, error) {
	if f.findItemsFn != nil {
		return f.findItemsFn(ctx, payrollID)
	}
	return nil, nil
}

func (f *fakePayrollRepository) FindItemByID(ctx context.Context, id string) (*payroll.PayrollItem, error) {
	if f.findItemByIDFn != nil {
		return f.findItemByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakePayrollRepository) UpdateItem(ctx context.Context, item *payroll.PayrollItem) error {
	if f.updateItemFn != nil {
		return f.updateItemFn(ctx, item)
	}
	return nil
}

func (f *fakePayrollRepository) DeleteItemsByPayroll(ctx context.Context, payrollID string) error {
	if f.deleteItemsFn != nil {
		return f.deleteItemsFn(ctx, payrollID)
	}
	return nil
}

func (f *fakePayrollRepository) CreateAdjustment(ctx context.Context, adj *payroll.PayrollAdjustment) error {
	if f.createAdjustmentFn != nil {
		return f.createAdjustmentFn(ctx, adj)
	}
	return nil
}

func (f *fakePayrollRepository) FindAdjustmentsByItem(ctx context.Context, itemID string) ([]payroll.PayrollAdjustment, error) {
	if f.findAdjustmentsFn != nil {
		return f.findAdjustmentsFn(ctx, itemID)
	}
	return nil, nil
}

func (f *fakePayrollRepository) DeleteAdjustmentsByPayroll(ctx context.Context, payrollID string) error {
	if f.deleteAdjByPayrollFn != nil {
		return f.deleteAdjByPayrollFn(ctx, payrollID)
	}
	return nil
}

type fakeEmployeeRepository struct {
	findByStatusFn func(ctx context.Context, status employee.EmploymentStatus) ([]employee.Employee, error)
}

func (f *fakeEmployeeRepository) WithTx(tx *gorm.DB) employee.Repository { return f }
func (f *fakeEmployeeRepository) Create(ctx context.Context, empl *employee.Employee) error {
	return nil
}
func (f *fakeEmployeeRepository) FindAll(ctx context.Context) ([]employee.Employee, error) {
	return nil, nil
}
func (f *fakeEmployeeRepository) FindByID(ctx context.Context, id string) (*employee.Employee, error) {
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeEmployeeRepository) FindByStatus(ctx context.Context, status employee.EmploymentStatus) ([]employee.Employee, error) {
	if f.findByStatusFn != nil {
		return f.findByStatusFn(ctx, status)
	}
	return nil, nil
}

func (f *fakeEmployeeRepository) Update(ctx context.Context, empl *employee.Employee) error {
	return nil
}
func (f *fakeEmployeeRepository) Delete(ctx context.Context, id string) error { return nil }
func (f *fakeEmployeeRepository) CountByEmail(ctx context.Context, email string, excludeID *string) (int64, error) {
	return 0, nil
}
func (f *fakeEmployeeRepository) NextEmployeeNumber(ctx context.Context) (int64, error) {
	return 1, nil
}
func (f *fakeEmployeeRepository) AppendHistory(ctx context.Context, entry *employee.CompensationHistory) error {
	return nil
}
func (f *fakeEmployeeRepository) FindHistoryByEmployee(ctx context.Context, employeeID string) ([]employee.CompensationHistory, error) {
	return nil, nil
}

type fakeConfigRepository struct {
	findActiveFn func(ctx context.Context) (*salaryconfig.SalaryConfiguration, error)
}

func (f *fakeConfigRepository) WithTx(tx *gorm.DB) salaryconfig.Repository { return f }
func (f *fakeConfigRepository) Create(ctx context.Context, config *salaryconfig.SalaryConfiguration) error {
	return nil
}
func (f *fakeConfigRepository) FindAll(ctx context.Context) ([]salaryconfig.SalaryConfiguration, error) {
	return nil, nil
}
func (f *fakeConfigRepository) FindByID(ctx context.Context, id string) (*salaryconfig.SalaryConfiguration, error) {
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeConfigRepository) FindActive(ctx context.Context) (*salaryconfig.SalaryConfiguration, error) {
	if f.findActiveFn != nil {
		return f.findActiveFn(ctx)
	}
	return nil, nil
}

func (f *fakeConfigRepository) Update(ctx context.Context, config *salaryconfig.SalaryConfiguration) error {
	return nil
}
func (f *fakeConfigRepository) DeactivateAll(ctx context.Context) error      { return nil }
func (f *fakeConfigRepository) Delete(ctx context.Context, id string) error { return nil }

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

type fakeOutboxRepository struct {
	createFn func(ctx context.Context, event kafka.OutboxEvent) error
}

func (f *fakeOutboxRepository) WithTx(tx *gorm.DB) kafka.OutboxRepository { return f }

func (f *fakeOutboxRepository) Create(ctx context.Context, event kafka.OutboxEvent) error {
	if f.createFn != nil {
		return f.createFn(ctx, event)
	}
	return nil
}

func (f *fakeOutboxRepository) ListPending(ctx context.Context, limit int) ([]kafka.OutboxEvent, error) {
	return nil, nil
}
func (f *fakeOutboxRepository) MarkSent(ctx context.Context, id string) error { return nil }
func (f *fakeOutboxRepository) MarkFailed(ctx context.Context, id string, reason string) error {
	return nil
}

type fakeScheduleGenerator struct {
	generateFn func(ctx context.Context, payrollID, actorID string) (int, error)
}

func (f *fakeScheduleGenerator) GenerateForRun(ctx context.Context, payrollID, actorID string) (int, error) {
	if f.generateFn != nil {
		return f.generateFn(ctx, payrollID, actorID)
	}
	return 0, nil
}

type payrollServiceDeps struct {
	sqlMock   sqlmock.Sqlmock
	service   payroll.Service
	repo      *fakePayrollRepository
	employees *fakeEmployeeRepository
	configs   *fakeConfigRepository
	brackets  *fakeBracketRepository
	outbox    *fakeOutboxRepository
	scheduler *fakeScheduleGenerator
}

func setupPayrollServiceTest(t *testing.T) *payrollServiceDeps {
	t.Helper()

	sqlDB, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{})
	assert.NoError(t, err)

	repo := &fakePayrollRepository{}
	employees := &fakeEmployeeRepository{}
	configs := &fakeConfigRepository{}
	brackets := &fakeBracketRepository{}
	outbox := &fakeOutboxRepository{}
	scheduler := &fakeScheduleGenerator{}

	svc := payroll.NewService(
		gormDB,
		repo,
		payroll.ProcessorDeps{
			Employees: employees,
			Configs:   configs,
			Brackets:  brackets,
			Outbox:    outbox,
		},
		scheduler,
		t.TempDir(),
	)

	return &payrollServiceDeps{
		sqlMock:   sqlMock,
		service:   svc,
		repo:      repo,
		employees: employees,
		configs:   configs,
		brackets:  brackets,
		outbox:    outbox,
		scheduler: scheduler,
	}
}

func expectTx(t *testing.T, mock sqlmock.Sqlmock, commit bool) {
	t.Helper()
	mock.ExpectBegin()
	if commit {
		mock.ExpectCommit()
	} else {
		mock.ExpectRollback()
	}
}

func TestPayrollService_Create(t *testing.T) {
	ctx := context.Background()
	actorID := uuid.New().String()

	t.Run("success", func(t *testing.T) {
		deps := setupPayrollServiceTest(t)
		expectTx(t, deps.sqlMock, true)

		deps.repo.createFn = func(ctx context.Context, p *payroll.Payroll) error {
			p.ID = uuid.New().String()
			assert.Equal(t, payroll.StatusDraft, p.Status)
			assert.False(t, p.IsActive)
			return nil
		}

		resp, err := deps.service.Create(ctx, actorID, payroll.CreatePayrollRequest{
			Name:        "June 2026",
			PeriodStart: "2026-06-01",
			PeriodEnd:   "2026-06-30",
			PaymentDate: "2026-06-30",
		})

		assert.NoError(t, err)
		assert.Equal(t, payroll.StatusDraft, resp.Status)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("overlapping period rejected", func(t *testing.T) {
		deps := setupPayrollServiceTest(t)
		expectTx(t, deps.sqlMock, false)

		deps.repo.hasOverlappingPeriodFn = func(ctx context.Context, start, end time.Time, excludeID *string) (bool, error) {
			return true, nil
		}

		_, err := deps.service.Create(ctx, actorID, payroll.CreatePayrollRequest{
			Name:        "June again",
			PeriodStart: "2026-06-15",
			PeriodEnd:   "2026-07-14",
			PaymentDate: "2026-07-15",
		})

		assert.ErrorIs(t, err, payrollerrors.ErrPeriodOverlap)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("end before start rejected", func(t *testing.T) {
		deps := setupPayrollServiceTest(t)

		_, err := deps.service.Create(ctx, actorID, payroll.CreatePayrollRequest{
			Name:        "backwards",
			PeriodStart: "2026-06-30",
			PeriodEnd:   "2026-06-01",
			PaymentDate: "2026-07-01",
		})

		assert.ErrorIs(t, err, payrollerrors.ErrInvalidPeriod)
	})

	t.Run("payment date before period end rejected", func(t *testing.T) {
		deps := setupPayrollServiceTest(t)

		_, err := deps.service.Create(ctx, actorID, payroll.CreatePayrollRequest{
			Name:        "early payment",
			PeriodStart: "2026-06-01",
			PeriodEnd:   "2026-06-30",
			PaymentDate: "2026-06-15",
		})

		assert.ErrorIs(t, err, payrollerrors.ErrInvalidPeriod)
	})
}

func TestPayrollService_Delete_OnlyDraft(t *testing.T) {
	ctx := context.Background()
	payrollID := uuid.New().String()

	deps := setupPayrollServiceTest(t)
	expectTx(t, deps.sqlMock, false)

	deps.repo.findByIDFn = func(ctx context.Context, id string) (*payroll.Payroll, error) {
		return &payroll.Payroll{ID: id, Status: payroll.StatusCompleted}, nil
	}

	err := deps.service.Delete(ctx, payrollID)

	assert.ErrorIs(t, err, payrollerrors.ErrNotDraft)
	assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
}

func TestPayrollService_Delete_CascadesDraft(t *testing.T) {
	ctx := context.Background()
	payrollID := uuid.New().String()

	deps := setupPayrollServiceTest(t)
	expectTx(t, deps.sqlMock, true)

	deps.repo.findByIDFn = func(ctx context.Context, id string) (*payroll.Payroll, error) {
		return &payroll.Payroll{ID: id, Status: payroll.StatusDraft}, nil
	}

	var deletedAdjustments, deletedItems, deletedRun bool
	deps.repo.deleteAdjByPayrollFn = func(ctx context.Context, id string) error {
		deletedAdjustments = true
		return nil
	}
	deps.repo.deleteItemsFn = func(ctx context.Context, id string) error {
		deletedItems = true
		return nil
	}
	deps.repo.deleteFn = func(ctx context.Context, id string) error {
		deletedRun = true
		return nil
	}

	err := deps.service.Delete(ctx, payrollID)

	assert.NoError(t, err)
	assert.True(t, deletedAdjustments)
	assert.True(t, deletedItems)
	assert.True(t, deletedRun)
	assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
}

func TestPayrollService_Transition(t *testing.T) {
	ctx := context.Background()
	actorID := uuid.New().String()
	payrollID := uuid.New().String()

	t.Run("activating deactivates all others", func(t *testing.T) {
		deps := setupPayrollServiceTest(t)
		expectTx(t, deps.sqlMock, true)

		deps.repo.findByIDFn = func(ctx context.Context, id string) (*payroll.Payroll, error) {
			return &payroll.Payroll{ID: id, Status: payroll.StatusDraft}, nil
		}

		deactivated := false
		deps.repo.deactivateAllActiveFn = func(ctx context.Context) error {
			deactivated = true
			return nil
		}

		resp, err := deps.service.Transition(ctx, payrollID, actorID, payroll.TransitionRequest{Status: payroll.StatusActive})

		assert.NoError(t, err)
		assert.True(t, deactivated)
		assert.True(t, resp.Payroll.IsActive)
		assert.Equal(t, payroll.StatusActive, resp.Payroll.Status)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("leaving active clears the flag", func(t *testing.T) {
		deps := setupPayrollServiceTest(t)
		expectTx(t, deps.sqlMock, true)

		deps.repo.findByIDFn = func(ctx context.Context, id string) (*payroll.Payroll, error) {
			return &payroll.Payroll{ID: id, Status: payroll.StatusActive, IsActive: true}, nil
		}

		resp, err := deps.service.Transition(ctx, payrollID, actorID, payroll.TransitionRequest{Status: payroll.StatusClosed})

		assert.NoError(t, err)
		assert.False(t, resp.Payroll.IsActive)
		assert.Equal(t, payroll.StatusClosed, resp.Payroll.Status)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("entering processing triggers schedule generation", func(t *testing.T) {
		deps := setupPayrollServiceTest(t)
		expectTx(t, deps.sqlMock, true)

		deps.repo.findByIDFn = func(ctx context.Context, id string) (*payroll.Payroll, error) {
			return &payroll.Payroll{ID: id, Status: payroll.StatusActive, IsActive: true}, nil
		}

		generated := false
		deps.scheduler.generateFn = func(ctx context.Context, pid, aid string) (int, error) {
			generated = true
			assert.Equal(t, payrollID, pid)
			return 3, nil
		}

		resp, err := deps.service.Transition(ctx, payrollID, actorID, payroll.TransitionRequest{Status: payroll.StatusProcessing})

		assert.NoError(t, err)
		assert.True(t, generated)
		assert.Empty(t, resp.Warning)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("schedule failure becomes a warning, not an error", func(t *testing.T) {
		deps := setupPayrollServiceTest(t)
		expectTx(t, deps.sqlMock, true)

		deps.repo.findByIDFn = func(ctx context.Context, id string) (*payroll.Payroll, error) {
			return &payroll.Payroll{ID: id, Status: payroll.StatusActive, IsActive: true}, nil
		}
		deps.scheduler.generateFn = func(ctx context.Context, pid, aid string) (int, error) {
			return 0, errors.New("bank gateway unreachable")
		}

		resp, err := deps.service.Transition(ctx, payrollID, actorID, payroll.TransitionRequest{Status: payroll.StatusProcessing})

		assert.NoError(t, err)
		assert.Equal(t, payroll.StatusProcessing, resp.Payroll.Status)
		assert.Contains(t, resp.Warning, "bank gateway unreachable")
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("disallowed transition names the target", func(t *testing.T) {
		deps := setupPayrollServiceTest(t)
		expectTx(t, deps.sqlMock, false)

		deps.repo.findByIDFn = func(ctx context.Context, id string) (*payroll.Payroll, error) {
			return &payroll.Payroll{ID: id, Status: payroll.StatusClosed}, nil
		}

		_, err := deps.service.Transition(ctx, payrollID, actorID, payroll.TransitionRequest{Status: payroll.StatusActive})

		assert.Error(t, err)
		assert.Contains(t, err.Error(), payroll.StatusClosed)
		assert.Contains(t, err.Error(), payroll.StatusActive)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("unknown status rejected before loading", func(t *testing.T) {
		deps := setupPayrollServiceTest(t)

		_, err := deps.service.Transition(ctx, payrollID, actorID, payroll.TransitionRequest{Status: "Archived"})

		assert.ErrorIs(t, err, payrollerrors.ErrInvalidStatus)
	})
}

func activeEmployee(name, number string, basic int64, contract bool) employee.Employee {
	return employee.Employee{
		ID:             uuid.New(),
		EmployeeNumber: number,
		FullName:       name,
		Status:         employee.StatusActive,
		IsContract:     contract,
		BasicSalary:    dec(basic),
	}
}

func TestPayrollService_Process(t *testing.T) {
	ctx := context.Background()
	actorID := uuid.New().String()
	payrollID := uuid.New().String()

	t.Run("computes items and totals for active employees", func(t *testing.T) {
		deps := setupPayrollServiceTest(t)
		expectTx(t, deps.sqlMock, true)

		deps.repo.findByIDFn = func(ctx context.Context, id string) (*payroll.Payroll, error) {
			return &payroll.Payroll{
				ID:          id,
				Status:      payroll.StatusDraft,
				PeriodStart: time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC),
				PeriodEnd:   time.Date(2026, 6, 30, 0, 0, 0, 0, time.UTC),
			}, nil
		}
		deps.employees.findByStatusFn = func(ctx context.Context, status employee.EmploymentStatus) ([]employee.Employee, error) {
			assert.Equal(t, employee.StatusActive, status)
			return []employee.Employee{
				activeEmployee("Ngozi Okafor", "EMP001", 150_000, false),
			}, nil
		}

		var created []payroll.PayrollItem
		deps.repo.createItemFn = func(ctx context.Context, item *payroll.PayrollItem) error {
			created = append(created, *item)
			return nil
		}

		var outboxEvents []string
		deps.outbox.createFn = func(ctx context.Context, event kafka.OutboxEvent) error {
			outboxEvents = append(outboxEvents, event.Topic)
			assert.Equal(t, payrollID, event.AggregateID)
			return nil
		}

		var savedRun *payroll.Payroll
		deps.repo.updateFn = func(ctx context.Context, p *payroll.Payroll) error {
			savedRun = p
			return nil
		}

		resp, err := deps.service.Process(ctx, payrollID, actorID)

		assert.NoError(t, err)
		assert.Equal(t, 1, resp.ItemCount)
		assert.Len(t, created, 1)

		// Basic 150,000 under the default 60% split back-solves a
		// 250,000 total: pension 8% of 212,500, NHF 2.5% of basic.
		item := created[0]
		assert.True(t, item.GrossPay.Equal(dec(250_000)), "gross %s", item.GrossPay)
		assert.True(t, item.PensionAmount.Equal(dec(17_000)), "pension %s", item.PensionAmount)
		assert.True(t, item.NHFAmount.Equal(dec(3_750)), "nhf %s", item.NHFAmount)
		assert.True(t, item.EmployerPension.Equal(dec(21_250)), "employer pension %s", item.EmployerPension)

		// Annual gross 3,000,000; relief 200,000 + 204,000 + 45,000;
		// annual taxable 2,551,000 → annual PAYE 423,710. The item rows
		// carry monthly figures.
		expectedMonthlyTaxable := dec(2_551_000).Div(dec(12))
		assert.True(t, item.TaxableIncome.Equal(expectedMonthlyTaxable), "taxable %s", item.TaxableIncome)
		expectedMonthlyTax := dec(423_710).Div(dec(12))
		assert.True(t, item.TaxAmount.Equal(expectedMonthlyTax), "tax %s", item.TaxAmount)

		expectedNet := item.GrossPay.Sub(item.PensionAmount).Sub(item.NHFAmount).Sub(item.TaxAmount)
		assert.True(t, item.NetPay.Equal(expectedNet), "net %s", item.NetPay)

		assert.Len(t, item.Allowances, 6)
		assert.Equal(t, "Basic Salary", item.Allowances[0].Label)
		assert.Len(t, item.Deductions, 3)
		assert.NotEmpty(t, item.TaxDetails.Brackets)

		assert.NotNil(t, savedRun)
		assert.Equal(t, payroll.StatusCompleted, savedRun.Status)
		assert.Equal(t, 1, savedRun.EmployeeCount)
		assert.True(t, savedRun.TotalGross.Equal(item.GrossPay))
		assert.True(t, savedRun.TotalNet.Equal(item.NetPay))
		assert.True(t, savedRun.TotalDeductions.Equal(item.GrossPay.Sub(item.NetPay)))
		assert.NotNil(t, savedRun.ProcessedAt)

		assert.Equal(t, []string{"payroll.run.processed.v1"}, outboxEvents)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("contract employee pays no pension", func(t *testing.T) {
		deps := setupPayrollServiceTest(t)
		expectTx(t, deps.sqlMock, true)

		deps.repo.findByIDFn = func(ctx context.Context, id string) (*payroll.Payroll, error) {
			return &payroll.Payroll{ID: id, Status: payroll.StatusDraft}, nil
		}
		deps.employees.findByStatusFn = func(ctx context.Context, status employee.EmploymentStatus) ([]employee.Employee, error) {
			return []employee.Employee{
				activeEmployee("Tunde Bakare", "EMP002", 150_000, true),
			}, nil
		}

		var created []payroll.PayrollItem
		deps.repo.createItemFn = func(ctx context.Context, item *payroll.PayrollItem) error {
			created = append(created, *item)
			return nil
		}

		_, err := deps.service.Process(ctx, payrollID, actorID)

		assert.NoError(t, err)
		assert.Len(t, created, 1)
		assert.True(t, created[0].PensionAmount.IsZero())
		assert.True(t, created[0].EmployerPension.IsZero())
		assert.True(t, created[0].NHFAmount.Equal(dec(3_750)))
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("second invocation is rejected", func(t *testing.T) {
		deps := setupPayrollServiceTest(t)
		expectTx(t, deps.sqlMock, false)

		deps.repo.findByIDFn = func(ctx context.Context, id string) (*payroll.Payroll, error) {
			return &payroll.Payroll{ID: id, Status: payroll.StatusCompleted}, nil
		}

		itemsCreated := 0
		deps.repo.createItemFn = func(ctx context.Context, item *payroll.PayrollItem) error {
			itemsCreated++
			return nil
		}

		_, err := deps.service.Process(ctx, payrollID, actorID)

		assert.ErrorIs(t, err, payrollerrors.ErrNotDraft)
		assert.Zero(t, itemsCreated)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("mid-run failure rolls everything back", func(t *testing.T) {
		deps := setupPayrollServiceTest(t)
		expectTx(t, deps.sqlMock, false)

		deps.repo.findByIDFn = func(ctx context.Context, id string) (*payroll.Payroll, error) {
			return &payroll.Payroll{ID: id, Status: payroll.StatusDraft}, nil
		}
		deps.employees.findByStatusFn = func(ctx context.Context, status employee.EmploymentStatus) ([]employee.Employee, error) {
			return []employee.Employee{
				activeEmployee("Ngozi Okafor", "EMP001", 150_000, false),
				activeEmployee("Tunde Bakare", "EMP002", 90_000, false),
			}, nil
		}

		calls := 0
		deps.repo.createItemFn = func(ctx context.Context, item *payroll.PayrollItem) error {
			calls++
			if calls == 2 {
				return errors.New("disk full")
			}
			return nil
		}

		_, err := deps.service.Process(ctx, payrollID, actorID)

		assert.Error(t, err)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("no active employees completes with zero totals", func(t *testing.T) {
		deps := setupPayrollServiceTest(t)
		expectTx(t, deps.sqlMock, true)

		deps.repo.findByIDFn = func(ctx context.Context, id string) (*payroll.Payroll, error) {
			return &payroll.Payroll{ID: id, Status: payroll.StatusDraft}, nil
		}
		deps.employees.findByStatusFn = func(ctx context.Context, status employee.EmploymentStatus) ([]employee.Employee, error) {
			return nil, nil
		}

		itemsCreated := 0
		deps.repo.createItemFn = func(ctx context.Context, item *payroll.PayrollItem) error {
			itemsCreated++
			return nil
		}

		var savedRun *payroll.Payroll
		deps.repo.updateFn = func(ctx context.Context, p *payroll.Payroll) error {
			savedRun = p
			return nil
		}

		resp, err := deps.service.Process(ctx, payrollID, actorID)

		assert.NoError(t, err)
		assert.Equal(t, 0, resp.ItemCount)
		assert.Zero(t, itemsCreated)
		assert.NotNil(t, savedRun)
		assert.Equal(t, payroll.StatusCompleted, savedRun.Status)
		assert.Equal(t, 0, savedRun.EmployeeCount)
		assert.True(t, savedRun.TotalGross.IsZero())
		assert.True(t, savedRun.TotalNet.IsZero())
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}
