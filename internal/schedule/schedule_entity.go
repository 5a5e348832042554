package schedule

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	StatusPending   = "Pending"
	StatusPaid      = "Paid"
	StatusFailed    = "Failed"
	StatusCancelled = "Cancelled"
)

// PaymentSchedule is a bank transfer instruction derived from one payroll
// item. Bank details are copied at generation time so later edits to the
// employee record do not rewrite instructions already handed to the bank.
type PaymentSchedule struct {
	ID            string          `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	PayrollID     string          `gorm:"type:uuid;not null;index" json:"payroll_id"`
	PayrollItemID string          `gorm:"type:uuid;not null;uniqueIndex" json:"payroll_item_id"`
	EmployeeID    string          `gorm:"type:uuid;not null" json:"employee_id"`
	EmployeeName  string          `gorm:"size:200;not null" json:"employee_name"`
	BankName      string          `gorm:"size:100" json:"bank_name"`
	AccountNumber string          `gorm:"size:20" json:"account_number"`
	AccountName   string          `gorm:"size:200" json:"account_name"`
	Amount        decimal.Decimal `gorm:"type:decimal(18,4);not null" json:"amount"`
	PaymentDate   time.Time       `gorm:"not null" json:"payment_date"`
	Status        string          `gorm:"size:20;not null;default:'Pending'" json:"status"`
	FailureReason string          `gorm:"size:500" json:"failure_reason,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

func (PaymentSchedule) TableName() string {
	return "payment_schedules"
}

func ValidStatus(status string) bool {
	switch status {
	case StatusPending, StatusPaid, StatusFailed, StatusCancelled:
		return true
	}
	return false
}
