package payroll

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/nosakhare/simple-payroll/internal/statutory"
)

// Payroll is one payroll run over a calendar period. Item rows are created
// by the run processor; totals are aggregates over those rows.
type Payroll struct {
	ID              string          `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Name            string          `gorm:"size:200;not null" json:"name"`
	PeriodStart     time.Time       `gorm:"not null;index" json:"period_start"`
	PeriodEnd       time.Time       `gorm:"not null;index" json:"period_end"`
	PaymentDate     time.Time       `gorm:"not null" json:"payment_date"`
	Status          string          `gorm:"size:20;not null;default:'Draft'" json:"status"`
	IsActive        bool            `gorm:"not null;default:false" json:"is_active"`
	TotalGross      decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0" json:"total_gross"`
	TotalDeductions decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0" json:"total_deductions"`
	TotalNet        decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0" json:"total_net"`
	EmployeeCount   int             `gorm:"not null;default:0" json:"employee_count"`
	ProcessedAt     *time.Time      `json:"processed_at,omitempty"`
	CreatedBy       string          `gorm:"type:uuid" json:"created_by"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

func (Payroll) TableName() string {
	return "payrolls"
}

// BreakdownLine is one labelled amount on a pay statement. Lines are stored
// as an ordered list because the order drives payslip layout.
type BreakdownLine struct {
	Label  string          `json:"label"`
	Amount decimal.Decimal `json:"amount"`
}

// TaxDetails records how the monthly PAYE figure was derived, including the
// bracket-by-bracket trace, so a payslip can be audited without re-running
// the calculation.
type TaxDetails struct {
	AnnualGross         decimal.Decimal           `json:"annual_gross"`
	AnnualPension       decimal.Decimal           `json:"annual_pension"`
	AnnualNHF           decimal.Decimal           `json:"annual_nhf"`
	ConsolidatedRelief  decimal.Decimal           `json:"consolidated_relief"`
	AnnualTaxableIncome decimal.Decimal           `json:"annual_taxable_income"`
	AnnualTax           decimal.Decimal           `json:"annual_tax"`
	MonthlyTax          decimal.Decimal           `json:"monthly_tax"`
	Brackets            []statutory.BracketTaxLine `json:"brackets"`
}

// PayrollItem is the computed pay statement for one employee in one run.
type PayrollItem struct {
	ID              string          `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	PayrollID       string          `gorm:"type:uuid;not null;index;uniqueIndex:uq_payroll_employee,priority:1" json:"payroll_id"`
	EmployeeID      string          `gorm:"type:uuid;not null;uniqueIndex:uq_payroll_employee,priority:2" json:"employee_id"`
	EmployeeName    string          `gorm:"size:200;not null" json:"employee_name"`
	EmployeeNumber  string          `gorm:"size:20" json:"employee_number"`
	BasicSalary     decimal.Decimal `gorm:"type:decimal(18,4);not null" json:"basic_salary"`
	GrossPay        decimal.Decimal `gorm:"type:decimal(18,4);not null" json:"gross_pay"`
	TaxableIncome   decimal.Decimal `gorm:"type:decimal(18,4);not null" json:"taxable_income"`
	TaxAmount       decimal.Decimal `gorm:"type:decimal(18,4);not null" json:"tax_amount"`
	PensionAmount   decimal.Decimal `gorm:"type:decimal(18,4);not null" json:"pension_amount"`
	EmployerPension decimal.Decimal `gorm:"type:decimal(18,4);not null" json:"employer_pension"`
	NHFAmount       decimal.Decimal `gorm:"type:decimal(18,4);not null" json:"nhf_amount"`
	OtherDeductions decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0" json:"other_deductions"`
	NetPay          decimal.Decimal `gorm:"type:decimal(18,4);not null" json:"net_pay"`
	IsAdjusted      bool            `gorm:"not null;default:false" json:"is_adjusted"`
	Allowances      []BreakdownLine `gorm:"serializer:json" json:"allowances"`
	Deductions      []BreakdownLine `gorm:"serializer:json" json:"deductions"`
	TaxDetails      TaxDetails      `gorm:"serializer:json" json:"tax_details"`
	PayslipPath     string          `gorm:"size:500" json:"payslip_path,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

func (PayrollItem) TableName() string {
	return "payroll_items"
}

const (
	AdjustmentBonus         = "bonus"
	AdjustmentReimbursement = "reimbursement"
	AdjustmentDeduction     = "deduction"
)

// PayrollAdjustment is an append-only ledger entry against one payroll item.
// Deduction amounts are stored negative; bonus and reimbursement positive.
type PayrollAdjustment struct {
	ID            string          `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	PayrollID     string          `gorm:"type:uuid;not null;index" json:"payroll_id"`
	PayrollItemID string          `gorm:"type:uuid;not null;index" json:"payroll_item_id"`
	Type          string          `gorm:"size:20;not null" json:"type"`
	Description   string          `gorm:"size:500;not null" json:"description"`
	Amount        decimal.Decimal `gorm:"type:decimal(18,4);not null" json:"amount"`
	CreatedBy     string          `gorm:"type:uuid" json:"created_by"`
	CreatedAt     time.Time       `json:"created_at"`
}

func (PayrollAdjustment) TableName() string {
	return "payroll_adjustments"
}

func ValidAdjustmentType(t string) bool {
	switch t {
	case AdjustmentBonus, AdjustmentReimbursement, AdjustmentDeduction:
		return true
	}
	return false
}
