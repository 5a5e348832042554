package taxbracket

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/nosakhare/simple-payroll/internal/statutory"
)

type TaxBracket struct {
	ID         uuid.UUID        `gorm:"type:uuid;primaryKey"`
	LowerLimit decimal.Decimal  `gorm:"type:decimal(18,4);not null;uniqueIndex"`
	UpperLimit *decimal.Decimal `gorm:"type:decimal(18,4)"` // NULL for the unbounded top band
	Rate       decimal.Decimal  `gorm:"type:decimal(10,4);not null"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (TaxBracket) TableName() string {
	return "tax_brackets"
}

// ToBrackets converts stored rows into the calculator's bracket table.
func ToBrackets(rows []TaxBracket) []statutory.Bracket {
	brackets := make([]statutory.Bracket, len(rows))
	for i, row := range rows {
		brackets[i] = statutory.Bracket{
			Lower: row.LowerLimit,
			Upper: row.UpperLimit,
			Rate:  row.Rate,
		}
	}
	return brackets
}
