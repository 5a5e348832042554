package employee

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// EmploymentStatus is a closed enumeration; only Active employees are
// eligible for a payroll run.
type EmploymentStatus string

const (
	StatusActive     EmploymentStatus = "Active"
	StatusOnLeave    EmploymentStatus = "On Leave"
	StatusSuspended  EmploymentStatus = "Suspended"
	StatusTerminated EmploymentStatus = "Terminated"
)

func (s EmploymentStatus) Valid() bool {
	switch s {
	case StatusActive, StatusOnLeave, StatusSuspended, StatusTerminated:
		return true
	}
	return false
}

type Employee struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	EmployeeNumber string    `gorm:"type:varchar(16);uniqueIndex;not null"`
	FullName       string    `gorm:"type:varchar(128);not null"`
	Email          string    `gorm:"type:varchar(120);uniqueIndex;not null"`
	PhoneNumber    string    `gorm:"type:varchar(20)"`

	Department string `gorm:"type:varchar(64)"`
	Position   string `gorm:"type:varchar(64)"`
	DateHired  time.Time
	Status     EmploymentStatus `gorm:"type:varchar(20);not null;default:'Active';index"`
	IsContract bool             `gorm:"not null;default:false"`

	BankName      string `gorm:"type:varchar(64)"`
	AccountNumber string `gorm:"type:varchar(20)"`
	TaxID         string `gorm:"type:varchar(20)"`
	PensionID     string `gorm:"type:varchar(20)"`
	NHFID         string `gorm:"type:varchar(20)"`

	// Monthly basic component in naira; allowances are derived from the
	// active salary configuration at run time.
	BasicSalary decimal.Decimal `gorm:"type:decimal(18,4);not null"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// CompensationHistory is an append-only audit trail of basic salary changes.
// Rows are never updated or deleted and are kept even when the employee
// record is removed.
type CompensationHistory struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey"`
	EmployeeID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	EffectiveDate time.Time       `gorm:"type:date;not null"`
	BasicSalary   decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	ChangedBy     uuid.UUID       `gorm:"type:uuid;not null"`
	ChangeReason  string          `gorm:"type:varchar(256)"`
	CreatedAt     time.Time
}

func (CompensationHistory) TableName() string {
	return "compensation_history"
}
