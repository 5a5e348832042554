// Package statutory implements the Nigerian statutory deduction rules:
// progressive PAYE income tax, employee and employer pension, the National
// Housing Fund levy and the consolidated relief allowance. Every function is
// a pure computation over its inputs; callers are expected to reject
// negative money or rate values before invoking.
package statutory

import "github.com/shopspring/decimal"

var (
	hundred = decimal.NewFromInt(100)
	twelve  = decimal.NewFromInt(12)

	// Monthly pensionable pay below this is pension exempt.
	pensionFloor = decimal.NewFromInt(30_000)

	// Consolidated relief is the higher of 200,000 or 1% of annual gross.
	reliefFloor  = decimal.NewFromInt(200_000)
	reliefOnePct = decimal.NewFromFloat(0.01)
)

var (
	DefaultPensionRate         = decimal.NewFromFloat(8.0)
	DefaultEmployerPensionRate = decimal.NewFromFloat(10.0)
	DefaultNHFRate             = decimal.NewFromFloat(2.5)
)

// CalculatePAYE walks the brackets in ascending order and taxes the income
// band by band, stopping once the income is exhausted. It returns the total
// annual tax together with a trace of exactly the brackets that contributed.
// An empty bracket slice falls back to DefaultBrackets.
func CalculatePAYE(brackets []Bracket, annualTaxableIncome decimal.Decimal) (decimal.Decimal, []BracketTaxLine) {
	if len(brackets) == 0 {
		brackets = DefaultBrackets()
	}

	totalTax := decimal.Zero
	remaining := annualTaxableIncome
	var lines []BracketTaxLine

	for _, bracket := range brackets {
		if remaining.LessThanOrEqual(decimal.Zero) {
			break
		}

		var taxableInBracket decimal.Decimal
		if bracket.Upper == nil {
			taxableInBracket = remaining
		} else {
			taxableInBracket = decimal.Min(remaining, bracket.Upper.Sub(bracket.Lower))
		}

		taxInBracket := taxableInBracket.Mul(bracket.Rate).Div(hundred)
		totalTax = totalTax.Add(taxInBracket)

		lines = append(lines, BracketTaxLine{
			Lower:         bracket.Lower,
			Upper:         bracket.Upper,
			Rate:          bracket.Rate,
			TaxableAmount: taxableInBracket,
			Tax:           taxInBracket,
		})

		remaining = remaining.Sub(taxableInBracket)
	}

	return totalTax, lines
}

// CalculatePension returns the monthly employee pension contribution.
// Contract staff and employees whose pensionable pay (basic + transport +
// housing) is below 30,000 a month are exempt.
func CalculatePension(basic, transport, housing decimal.Decimal, isContract bool, rate decimal.Decimal) decimal.Decimal {
	monthlySalary := basic.Add(transport).Add(housing)
	if isContract || monthlySalary.LessThan(pensionFloor) {
		return decimal.Zero
	}
	return monthlySalary.Mul(rate).Div(hundred)
}

// CalculateEmployerPension follows the same eligibility rule as the employee
// contribution. The amount is reported on the payslip but never deducted
// from net pay.
func CalculateEmployerPension(basic, transport, housing decimal.Decimal, isContract bool, rate decimal.Decimal) decimal.Decimal {
	return CalculatePension(basic, transport, housing, isContract, rate)
}

// CalculateNHF returns the monthly National Housing Fund levy. The levy has
// no contract or low-income exemption.
func CalculateNHF(basic, rate decimal.Decimal) decimal.Decimal {
	return basic.Mul(rate).Div(hundred)
}

// CalculateConsolidatedRelief returns the annual tax-exempt allowance:
// max(200,000, 1% of annual gross) plus the annual pension and NHF amounts.
func CalculateConsolidatedRelief(annualGross, annualPension, annualNHF decimal.Decimal) decimal.Decimal {
	base := decimal.Max(reliefFloor, annualGross.Mul(reliefOnePct))
	return base.Add(annualPension).Add(annualNHF)
}

// DeductionInput carries one employee-month of compensation components.
// Other aggregates every allowance that is neither transport nor housing.
type DeductionInput struct {
	Basic      decimal.Decimal
	Transport  decimal.Decimal
	Housing    decimal.Decimal
	Other      decimal.Decimal
	IsContract bool
}

type DeductionResult struct {
	MonthlyBasic     decimal.Decimal `json:"monthly_basic"`
	MonthlyTransport decimal.Decimal `json:"monthly_transport"`
	MonthlyHousing   decimal.Decimal `json:"monthly_housing"`
	MonthlyOther     decimal.Decimal `json:"monthly_other"`
	MonthlyGross     decimal.Decimal `json:"monthly_gross"`

	MonthlyPension         decimal.Decimal `json:"monthly_pension"`
	MonthlyEmployerPension decimal.Decimal `json:"monthly_employer_pension"`
	MonthlyNHF             decimal.Decimal `json:"monthly_nhf"`
	MonthlyTax             decimal.Decimal `json:"monthly_tax"`
	TotalMonthlyDeductions decimal.Decimal `json:"total_monthly_deductions"`
	MonthlyNetPay          decimal.Decimal `json:"monthly_net_pay"`

	AnnualBasic         decimal.Decimal `json:"annual_basic"`
	AnnualGross         decimal.Decimal `json:"annual_gross"`
	ConsolidatedRelief  decimal.Decimal `json:"consolidated_relief"`
	AnnualTaxableIncome decimal.Decimal `json:"annual_taxable_income"`
	AnnualTax           decimal.Decimal `json:"annual_tax"`

	IsContract      bool `json:"is_contract"`
	IsPensionExempt bool `json:"is_pension_exempt"`

	TaxLines []BracketTaxLine `json:"tax_brackets"`
}

// ComputeDeductions runs the full monthly statutory computation for one
// employee: gross, pension, NHF, consolidated relief, annualized PAYE and
// net pay. The employer pension is memo-only and excluded from deductions.
func ComputeDeductions(brackets []Bracket, in DeductionInput) DeductionResult {
	monthlyGross := in.Basic.Add(in.Transport).Add(in.Housing).Add(in.Other)

	pension := CalculatePension(in.Basic, in.Transport, in.Housing, in.IsContract, DefaultPensionRate)
	employerPension := CalculateEmployerPension(in.Basic, in.Transport, in.Housing, in.IsContract, DefaultEmployerPensionRate)
	nhf := CalculateNHF(in.Basic, DefaultNHFRate)

	annualGross := monthlyGross.Mul(twelve)
	annualPension := pension.Mul(twelve)
	annualNHF := nhf.Mul(twelve)

	relief := CalculateConsolidatedRelief(annualGross, annualPension, annualNHF)
	annualTaxable := decimal.Max(decimal.Zero, annualGross.Sub(relief))

	annualTax, taxLines := CalculatePAYE(brackets, annualTaxable)
	monthlyTax := annualTax.Div(twelve)

	totalDeductions := pension.Add(nhf).Add(monthlyTax)

	pensionablePay := in.Basic.Add(in.Transport).Add(in.Housing)

	return DeductionResult{
		MonthlyBasic:     in.Basic,
		MonthlyTransport: in.Transport,
		MonthlyHousing:   in.Housing,
		MonthlyOther:     in.Other,
		MonthlyGross:     monthlyGross,

		MonthlyPension:         pension,
		MonthlyEmployerPension: employerPension,
		MonthlyNHF:             nhf,
		MonthlyTax:             monthlyTax,
		TotalMonthlyDeductions: totalDeductions,
		MonthlyNetPay:          monthlyGross.Sub(totalDeductions),

		AnnualBasic:         in.Basic.Mul(twelve),
		AnnualGross:         annualGross,
		ConsolidatedRelief:  relief,
		AnnualTaxableIncome: annualTaxable,
		AnnualTax:           annualTax,

		IsContract:      in.IsContract,
		IsPensionExempt: in.IsContract || pensionablePay.LessThan(pensionFloor),

		TaxLines: taxLines,
	}
}
