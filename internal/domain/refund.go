package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// RefundKind distinguishes the two refund rule sets
type RefundKind string

const (
	KindRegular       RefundKind = "regular"
	KindSectionChange RefundKind = "section_change"
)

// RegularRefundInput describes a standard mid-period cancellation of a pass.
// ThreeMonthFare is only consulted for six-month passes, where it is required.
type RegularRefundInput struct {
	StartDate      time.Time        `yaml:"start_date" json:"start_date"`
	Tier           PassTier         `yaml:"tier" json:"tier"`
	PurchasePrice  decimal.Decimal  `yaml:"purchase_price" json:"purchase_price"`
	RefundDate     time.Time        `yaml:"refund_date" json:"refund_date"`
	OneWayFare     decimal.Decimal  `yaml:"one_way_fare" json:"one_way_fare"`
	OneMonthFare   decimal.Decimal  `yaml:"one_month_fare" json:"one_month_fare"`
	ThreeMonthFare *decimal.Decimal `yaml:"three_month_fare,omitempty" json:"three_month_fare,omitempty"`
}

// SectionChangeRefundInput describes a refund issued because the pass route changed.
type SectionChangeRefundInput struct {
	StartDate     time.Time       `yaml:"start_date" json:"start_date"`
	Tier          PassTier        `yaml:"tier" json:"tier"`
	PurchasePrice decimal.Decimal `yaml:"purchase_price" json:"purchase_price"`
	RefundDate    time.Time       `yaml:"refund_date" json:"refund_date"`
}

// SectionChange projects the fields a section change refund needs.
func (in RegularRefundInput) SectionChange() SectionChangeRefundInput {
	return SectionChangeRefundInput{
		StartDate:     in.StartDate,
		Tier:          in.Tier,
		PurchasePrice: in.PurchasePrice,
		RefundDate:    in.RefundDate,
	}
}

// WithRefundDate returns a copy of the input with a different refund date.
func (in RegularRefundInput) WithRefundDate(d time.Time) RegularRefundInput {
	in.RefundDate = d
	return in
}

// CalculationMethod names the rule that produced a result
type CalculationMethod string

const (
	MethodWithinSevenDays CalculationMethod = "within_seven_days"
	MethodMonthly         CalculationMethod = "monthly"
	MethodDecade          CalculationMethod = "decade"
	MethodNoRefund        CalculationMethod = "no_refund"
)

// Breakdown is the structured audit trail of a calculation.
type Breakdown struct {
	Method      CalculationMethod `json:"method"`
	AppliedRule string            `json:"applied_rule"`
	Steps       []string          `json:"steps,omitempty"`
	ElapsedDays int               `json:"elapsed_days"`
	UsedMonths  int               `json:"used_months,omitempty"`
	UsedDecades int               `json:"used_decades,omitempty"`
	DailyFare   decimal.Decimal   `json:"daily_fare,omitempty"`
}

// RefundResult is the outcome of a refund calculation. Amounts are whole
// yen and never negative.
type RefundResult struct {
	Kind          RefundKind      `json:"kind"`
	RefundAmount  decimal.Decimal `json:"refund_amount"`
	UsedAmount    decimal.Decimal `json:"used_amount"`
	ProcessingFee decimal.Decimal `json:"processing_fee"`
	Details       string          `json:"details"`
	Breakdown     Breakdown       `json:"breakdown"`
}

// IsRefundable reports whether any money is returned.
func (r *RefundResult) IsRefundable() bool {
	return r.RefundAmount.IsPositive()
}
