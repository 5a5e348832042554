package salaryconfig

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SalaryConfiguration is the percentage split used to structure total
// compensation into its components. Exactly one configuration may be active
// system-wide; the six percentages must sum to 100.
type SalaryConfiguration struct {
	ID                 uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Name               string          `gorm:"type:varchar(64);not null"`
	BasicPercent       decimal.Decimal `gorm:"type:decimal(10,4);not null"`
	TransportPercent   decimal.Decimal `gorm:"type:decimal(10,4);not null;default:0"`
	HousingPercent     decimal.Decimal `gorm:"type:decimal(10,4);not null;default:0"`
	UtilityPercent     decimal.Decimal `gorm:"type:decimal(10,4);not null;default:0"`
	MealPercent        decimal.Decimal `gorm:"type:decimal(10,4);not null;default:0"`
	ClothingPercent    decimal.Decimal `gorm:"type:decimal(10,4);not null;default:0"`
	IsActive           bool            `gorm:"not null;default:false;index"`
	CreatedBy          uuid.UUID       `gorm:"type:uuid;not null"`
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

func (SalaryConfiguration) TableName() string {
	return "salary_configurations"
}

// TotalPercent sums the six component percentages.
func (c SalaryConfiguration) TotalPercent() decimal.Decimal {
	return c.BasicPercent.
		Add(c.TransportPercent).
		Add(c.HousingPercent).
		Add(c.UtilityPercent).
		Add(c.MealPercent).
		Add(c.ClothingPercent)
}

// Components is one decomposed monthly compensation. Total is the back-solved
// total compensation; the component amounts sum to Total.
type Components struct {
	Total     decimal.Decimal
	Basic     decimal.Decimal
	Transport decimal.Decimal
	Housing   decimal.Decimal
	Utility   decimal.Decimal
	Meal      decimal.Decimal
	Clothing  decimal.Decimal
}

var oneHundred = decimal.NewFromInt(100)

// Decompose back-solves total compensation from the stored basic salary
// (total = basic * 100 / basic_pct) and derives every other component from
// its percentage. The split is recomputed against the active configuration
// on every run, never cached on the employee.
func (c SalaryConfiguration) Decompose(basicSalary decimal.Decimal) Components {
	if c.BasicPercent.LessThanOrEqual(decimal.Zero) {
		return Components{Total: basicSalary, Basic: basicSalary}
	}

	total := basicSalary.Mul(oneHundred).Div(c.BasicPercent)

	return Components{
		Total:     total,
		Basic:     basicSalary,
		Transport: total.Mul(c.TransportPercent).Div(oneHundred),
		Housing:   total.Mul(c.HousingPercent).Div(oneHundred),
		Utility:   total.Mul(c.UtilityPercent).Div(oneHundred),
		Meal:      total.Mul(c.MealPercent).Div(oneHundred),
		Clothing:  total.Mul(c.ClothingPercent).Div(oneHundred),
	}
}

// DefaultConfiguration is the 60/10/15/5/5/5 split applied when no
// configuration has been activated.
func DefaultConfiguration() SalaryConfiguration {
	return SalaryConfiguration{
		Name:             "Default Split",
		BasicPercent:     decimal.NewFromInt(60),
		TransportPercent: decimal.NewFromInt(10),
		HousingPercent:   decimal.NewFromInt(15),
		UtilityPercent:   decimal.NewFromInt(5),
		MealPercent:      decimal.NewFromInt(5),
		ClothingPercent:  decimal.NewFromInt(5),
	}
}
