package statutory

import "github.com/shopspring/decimal"

// Bracket is one progressive PAYE band. Brackets are ordered by Lower
// ascending; Upper is nil only for the unbounded top band.
type Bracket struct {
	Lower decimal.Decimal
	Upper *decimal.Decimal
	Rate  decimal.Decimal // percent, 7 means 7%
}

// BracketTaxLine is one entry of the per-bracket tax trace. Amounts are raw
// decimals; currency formatting is a presentation concern.
type BracketTaxLine struct {
	Lower         decimal.Decimal  `json:"lower"`
	Upper         *decimal.Decimal `json:"upper,omitempty"`
	Rate          decimal.Decimal  `json:"rate"`
	TaxableAmount decimal.Decimal  `json:"taxable_amount"`
	Tax           decimal.Decimal  `json:"tax"`
}

func bounded(lower, upper, rate int64) Bracket {
	u := decimal.NewFromInt(upper)
	return Bracket{
		Lower: decimal.NewFromInt(lower),
		Upper: &u,
		Rate:  decimal.NewFromInt(rate),
	}
}

// DefaultBrackets returns the statutory Nigerian PAYE table used whenever no
// brackets are configured:
//
//	first 300,000 @ 7%, next 300,000 @ 11%, next 500,000 @ 15%,
//	next 500,000 @ 19%, next 1,600,000 @ 21%, above 3,200,000 @ 24%.
func DefaultBrackets() []Bracket {
	return []Bracket{
		bounded(0, 300_000, 7),
		bounded(300_000, 600_000, 11),
		bounded(600_000, 1_100_000, 15),
		bounded(1_100_000, 1_600_000, 19),
		bounded(1_600_000, 3_200_000, 21),
		{Lower: decimal.NewFromInt(3_200_000), Upper: nil, Rate: decimal.NewFromInt(24)},
	}
}
