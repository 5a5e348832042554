package schedule

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"

	scheduleerrors "github.com/nosakhare/simple-payroll/internal/schedule/errors"
)

//go:generate mockgen -source=schedule_generator.go -destination=mock/schedule_generator_mock.go -package=mock
type Generator interface {
	// GenerateForRun creates one pending payment instruction per payroll
	// item of the run. Generation is idempotent: a run that already has
	// instructions is left untouched.
	GenerateForRun(ctx context.Context, payrollID, actorID string) (int, error)
}

type generator struct {
	db     *gorm.DB
	repo   Repository
	logger *zap.Logger
}

func NewGenerator(db *gorm.DB, repo Repository) Generator {
	return &generator{
		db:     db,
		repo:   repo,
		logger: zap.L().Named("schedule.generator"),
	}
}

// paymentSourceRow projects a payroll item together with the bank details of
// its employee.
type paymentSourceRow struct {
	PayrollItemID string
	EmployeeID    string
	EmployeeName  string
	NetPay        decimal.Decimal
	BankName      string
	AccountNumber string
	AccountName   string
}

func (g *generator) GenerateForRun(ctx context.Context, payrollID, actorID string) (int, error) {
	exists, err := g.repo.ExistsForPayroll(ctx, payrollID)
	if err != nil {
		return 0, err
	}
	if exists {
		g.logger.Info("payment schedules already generated, skipping",
			zap.String("payroll_id", payrollID),
		)
		return 0, nil
	}

	var paymentDate time.Time
	err = g.db.WithContext(ctx).
		Raw(`SELECT payment_date FROM payrolls WHERE id = $1`, payrollID).
		Scan(&paymentDate).Error
	if err != nil {
		return 0, err
	}
	if paymentDate.IsZero() {
		return 0, scheduleerrors.ErrPayrollNotFound
	}

	var rows []paymentSourceRow
	err = g.db.WithContext(ctx).
		Raw(`
SELECT
	pi.id AS payroll_item_id,
	pi.employee_id,
	pi.employee_name,
	pi.net_pay,
	e.bank_name,
	e.account_number,
	e.full_name AS account_name
FROM payroll_items pi
JOIN employees e ON e.id = pi.employee_id
WHERE pi.payroll_id = $1
ORDER BY pi.employee_name ASC
`, payrollID).
		Scan(&rows).Error
	if err != nil {
		return 0, err
	}

	if len(rows) == 0 {
		return 0, nil
	}

	schedules := make([]PaymentSchedule, 0, len(rows))
	for _, row := range rows {
		schedules = append(schedules, PaymentSchedule{
			PayrollID:     payrollID,
			PayrollItemID: row.PayrollItemID,
			EmployeeID:    row.EmployeeID,
			EmployeeName:  row.EmployeeName,
			BankName:      row.BankName,
			AccountNumber: row.AccountNumber,
			AccountName:   row.AccountName,
			Amount:        row.NetPay,
			PaymentDate:   paymentDate,
			Status:        StatusPending,
		})
	}

	tx := g.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return 0, tx.Error
	}
	defer tx.Rollback()

	if err := g.repo.WithTx(tx).CreateBatch(ctx, schedules); err != nil {
		return 0, err
	}

	if err := tx.Commit().Error; err != nil {
		return 0, err
	}

	g.logger.Info("payment schedules generated",
		zap.String("payroll_id", payrollID),
		zap.String("actor_id", actorID),
		zap.Int("count", len(schedules)),
	)

	return len(schedules), nil
}
