package payroll

import "github.com/shopspring/decimal"

type CreatePayrollRequest struct {
	Name        string `json:"name" binding:"required"`
	PeriodStart string `json:"period_start" binding:"required"`
	PeriodEnd   string `json:"period_end" binding:"required"`
	PaymentDate string `json:"payment_date" binding:"required"`
}

type UpdatePayrollRequest struct {
	Name        string `json:"name" binding:"required"`
	PeriodStart string `json:"period_start" binding:"required"`
	PeriodEnd   string `json:"period_end" binding:"required"`
	PaymentDate string `json:"payment_date" binding:"required"`
}

type TransitionRequest struct {
	Status string `json:"status" binding:"required"`
}

type CreateAdjustmentRequest struct {
	Type        string          `json:"type" binding:"required"`
	Description string          `json:"description" binding:"required"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
}

// TransitionResponse carries the updated run plus an optional warning when a
// best-effort side action (payment-schedule generation) failed.
type TransitionResponse struct {
	Payroll *Payroll `json:"payroll"`
	Warning string   `json:"warning,omitempty"`
}

type ProcessResponse struct {
	Payroll   *Payroll `json:"payroll"`
	ItemCount int      `json:"item_count"`
}
