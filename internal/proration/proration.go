// Package proration scales monetary amounts by the fraction of working days
// an employee actually covered within a calendar month. Weekends are
// Saturday and Sunday; public holidays are not modelled.
package proration

import (
	"time"

	"github.com/shopspring/decimal"
)

// CountWorkingDays counts the Monday-Friday days in [start, end] inclusive.
// Returns 0 when start is after end.
func CountWorkingDays(start, end time.Time) int {
	start = truncateToDay(start)
	end = truncateToDay(end)

	count := 0
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		switch d.Weekday() {
		case time.Saturday, time.Sunday:
		default:
			count++
		}
	}
	return count
}

// Factor returns the working-day proration factor in [0, 1] for the given
// month. A nil start clamps to the month's first day, a nil end to its last;
// dates outside the month are clamped to its bounds. Month and year default
// to the current date when zero.
func Factor(start, end *time.Time, month, year int) decimal.Decimal {
	monthStart, monthEnd := monthBounds(month, year)

	effectiveStart := monthStart
	if start != nil && start.After(monthStart) {
		effectiveStart = truncateToDay(*start)
	}

	effectiveEnd := monthEnd
	if end != nil && end.Before(monthEnd) {
		effectiveEnd = truncateToDay(*end)
	}

	fullMonthDays := CountWorkingDays(monthStart, monthEnd)
	if fullMonthDays == 0 {
		// Cannot happen for a real month, but never divide by zero.
		return decimal.Zero
	}

	workedDays := CountWorkingDays(effectiveStart, effectiveEnd)

	return decimal.NewFromInt(int64(workedDays)).
		Div(decimal.NewFromInt(int64(fullMonthDays)))
}

// Prorate scales amount by the month's proration factor. With neither a
// start nor an end date the amount passes through unchanged.
func Prorate(amount decimal.Decimal, start, end *time.Time, month, year int) decimal.Decimal {
	if start == nil && end == nil {
		return amount
	}
	return amount.Mul(Factor(start, end, month, year))
}

func monthBounds(month, year int) (time.Time, time.Time) {
	now := time.Now()
	if month == 0 {
		month = int(now.Month())
	}
	if year == 0 {
		year = now.Year()
	}

	first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)
	return first, last
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
