package schedule_test

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/nosakhare/simple-payroll/internal/schedule"
	scheduleerrors "github.com/nosakhare/simple-payroll/internal/schedule/errors"
)

func setupGeneratorTest(t *testing.T) (schedule.Generator, sqlmock.Sqlmock, *fakeRepository) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	assert.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{})
	assert.NoError(t, err)

	repo := &fakeRepository{}
	return schedule.NewGenerator(gormDB, repo), mock, repo
}

func TestScheduleGenerator_GenerateForRun(t *testing.T) {
	ctx := context.Background()
	payrollID := uuid.New().String()
	actorID := uuid.New().String()

	t.Run("creates one pending instruction per item", func(t *testing.T) {
		gen, mock, repo := setupGeneratorTest(t)

		paymentDate := time.Date(2026, 6, 28, 0, 0, 0, 0, time.UTC)
		mock.ExpectQuery("SELECT payment_date FROM payrolls").
			WithArgs(payrollID).
			WillReturnRows(sqlmock.NewRows([]string{"payment_date"}).AddRow(paymentDate))

		mock.ExpectQuery("FROM payroll_items pi").
			WithArgs(payrollID).
			WillReturnRows(sqlmock.NewRows([]string{
				"payroll_item_id", "employee_id", "employee_name",
				"net_pay", "bank_name", "account_number", "account_name",
			}).
				AddRow("item-1", "emp-1", "Ngozi Okafor", "193941", "GTBank", "0123456789", "Ngozi Okafor").
				AddRow("item-2", "emp-2", "Tunde Bakare", "120500", "Zenith", "9876543210", "Tunde Bakare"))

		mock.ExpectBegin()
		mock.ExpectCommit()

		var created []schedule.PaymentSchedule
		repo.createBatchFn = func(ctx context.Context, schedules []schedule.PaymentSchedule) error {
			created = schedules
			return nil
		}

		count, err := gen.GenerateForRun(ctx, payrollID, actorID)

		assert.NoError(t, err)
		assert.Equal(t, 2, count)
		assert.Len(t, created, 2)

		first := created[0]
		assert.Equal(t, payrollID, first.PayrollID)
		assert.Equal(t, "item-1", first.PayrollItemID)
		assert.Equal(t, "Ngozi Okafor", first.EmployeeName)
		assert.Equal(t, "GTBank", first.BankName)
		assert.Equal(t, "0123456789", first.AccountNumber)
		assert.Equal(t, "Ngozi Okafor", first.AccountName)
		assert.True(t, first.Amount.Equal(decimal.NewFromInt(193_941)))
		assert.Equal(t, paymentDate, first.PaymentDate)
		assert.Equal(t, schedule.StatusPending, first.Status)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("already generated run is skipped", func(t *testing.T) {
		gen, mock, repo := setupGeneratorTest(t)

		repo.existsForPayrollFn = func(ctx context.Context, id string) (bool, error) {
			return true, nil
		}

		count, err := gen.GenerateForRun(ctx, payrollID, actorID)

		assert.NoError(t, err)
		assert.Zero(t, count)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unknown payroll is rejected", func(t *testing.T) {
		gen, mock, _ := setupGeneratorTest(t)

		mock.ExpectQuery("SELECT payment_date FROM payrolls").
			WithArgs(payrollID).
			WillReturnRows(sqlmock.NewRows([]string{"payment_date"}))

		_, err := gen.GenerateForRun(ctx, payrollID, actorID)

		assert.ErrorIs(t, err, scheduleerrors.ErrPayrollNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("run without items creates nothing", func(t *testing.T) {
		gen, mock, repo := setupGeneratorTest(t)

		mock.ExpectQuery("SELECT payment_date FROM payrolls").
			WithArgs(payrollID).
			WillReturnRows(sqlmock.NewRows([]string{"payment_date"}).
				AddRow(time.Date(2026, 6, 28, 0, 0, 0, 0, time.UTC)))
		mock.ExpectQuery("FROM payroll_items pi").
			WithArgs(payrollID).
			WillReturnRows(sqlmock.NewRows([]string{
				"payroll_item_id", "employee_id", "employee_name",
				"net_pay", "bank_name", "account_number", "account_name",
			}))

		batchCalls := 0
		repo.createBatchFn = func(ctx context.Context, schedules []schedule.PaymentSchedule) error {
			batchCalls++
			return nil
		}

		count, err := gen.GenerateForRun(ctx, payrollID, actorID)

		assert.NoError(t, err)
		assert.Zero(t, count)
		assert.Zero(t, batchCalls)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
