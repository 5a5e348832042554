package calculator

import (
	"github.com/shopspring/decimal"

	"github.com/nosakhare/simple-payroll/internal/salaryconfig"
	"github.com/nosakhare/simple-payroll/internal/statutory"
)

type StatutoryRequest struct {
	BasicSalary decimal.Decimal `json:"basic_salary" binding:"required"`
	IsContract  bool            `json:"is_contract"`
}

type StatutoryResponse struct {
	Components salaryconfig.Components   `json:"components"`
	ConfigName string                    `json:"config_name"`
	Deductions statutory.DeductionResult `json:"deductions"`
}

type ProrationRequest struct {
	Amount    decimal.Decimal `json:"amount" binding:"required"`
	StartDate *string         `json:"start_date"`
	EndDate   *string         `json:"end_date"`
	Month     int             `json:"month"`
	Year      int             `json:"year"`
}

type ProrationResponse struct {
	Factor         decimal.Decimal `json:"factor"`
	OriginalAmount decimal.Decimal `json:"original_amount"`
	ProratedAmount decimal.Decimal `json:"prorated_amount"`
}
