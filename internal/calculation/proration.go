package calculation

import (
	"github.com/rgehrsitz/passrefund/internal/domain"
	"github.com/shopspring/decimal"
)

// UsedDecades converts elapsed days to billed ten-day decades. Any partial
// decade is billed as a full one.
func UsedDecades(days int) int {
	if days <= 0 {
		return 0
	}
	decades := days / domain.DecadeDays
	if days%domain.DecadeDays != 0 {
		decades++
	}
	return decades
}

// DailyFare divides amount by baseDays and rounds up to the next whole yen.
func DailyFare(amount decimal.Decimal, baseDays int) decimal.Decimal {
	if baseDays <= 0 {
		return decimal.Zero
	}
	return amount.Div(decimal.NewFromInt(int64(baseDays))).Ceil()
}
