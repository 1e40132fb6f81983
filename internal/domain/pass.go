package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// PassTier is the duration of a commuter pass in months.
type PassTier int

const (
	TierOneMonth   PassTier = 1
	TierThreeMonth PassTier = 3
	TierSixMonth   PassTier = 6
)

// Fare rule constants shared by every calculation.
const (
	// ProcessingFeeAmount is the fixed refund handling fee in yen
	ProcessingFeeAmount int64 = 220

	// GracePeriodDays is the last elapsed day on which the day-rate rule applies
	GracePeriodDays = 7

	// DecadeDays is the length of one billing decade (jun)
	DecadeDays = 10

	// SectionChangeCeilingMonths bounds how late a section change refund may be requested
	SectionChangeCeilingMonths = 6
)

// ProcessingFee returns the fixed processing fee as a decimal.
func ProcessingFee() decimal.Decimal {
	return decimal.NewFromInt(ProcessingFeeAmount)
}

// AllTiers lists the supported tiers in ascending order
var AllTiers = []PassTier{TierOneMonth, TierThreeMonth, TierSixMonth}

// IsValid reports whether the tier is one of the supported durations.
func (t PassTier) IsValid() bool {
	switch t {
	case TierOneMonth, TierThreeMonth, TierSixMonth:
		return true
	}
	return false
}

// Months returns the calendar months the pass covers.
func (t PassTier) Months() int {
	return int(t)
}

// BaseDays returns the day count used for daily fare proration (30/90/180).
func (t PassTier) BaseDays() int {
	switch t {
	case TierOneMonth:
		return 30
	case TierThreeMonth:
		return 90
	case TierSixMonth:
		return 180
	}
	return 0
}

func (t PassTier) String() string {
	if !t.IsValid() {
		return fmt.Sprintf("PassTier(%d)", int(t))
	}
	return fmt.Sprintf("%d-month", int(t))
}

// MarshalText encodes the tier as "1-month", "3-month" or "6-month".
func (t PassTier) MarshalText() ([]byte, error) {
	if !t.IsValid() {
		return nil, fmt.Errorf("unsupported pass tier %d", int(t))
	}
	return []byte(t.String()), nil
}

// UnmarshalText accepts any spelling understood by ParsePassTier.
func (t *PassTier) UnmarshalText(text []byte) error {
	parsed, err := ParsePassTier(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// ParsePassTier parses "1", "1m", "1-month", "one-month" and the 3/6 equivalents.
func ParsePassTier(s string) (PassTier, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "1m", "1-month", "one-month", "one_month":
		return TierOneMonth, nil
	case "3", "3m", "3-month", "three-month", "three_month":
		return TierThreeMonth, nil
	case "6", "6m", "6-month", "six-month", "six_month":
		return TierSixMonth, nil
	}
	return 0, fmt.Errorf("unsupported pass tier %q (want 1, 3 or 6)", s)
}
