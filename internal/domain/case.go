package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CaseFile is the top-level structure of a YAML refund case file.
type CaseFile struct {
	Cases []RefundCase `yaml:"cases" json:"cases"`
}

// RefundCase is one refund request in a case file. Regular cases need the
// fare fields; section change cases only use dates, tier and price.
type RefundCase struct {
	Name           string           `yaml:"name" json:"name"`
	Kind           RefundKind       `yaml:"kind" json:"kind"`
	StartDate      time.Time        `yaml:"start_date" json:"start_date"`
	RefundDate     time.Time        `yaml:"refund_date" json:"refund_date"`
	Tier           PassTier         `yaml:"tier" json:"tier"`
	PurchasePrice  decimal.Decimal  `yaml:"purchase_price" json:"purchase_price"`
	OneWayFare     decimal.Decimal  `yaml:"one_way_fare,omitempty" json:"one_way_fare,omitempty"`
	OneMonthFare   decimal.Decimal  `yaml:"one_month_fare,omitempty" json:"one_month_fare,omitempty"`
	ThreeMonthFare *decimal.Decimal `yaml:"three_month_fare,omitempty" json:"three_month_fare,omitempty"`

	// Expected, when set, is checked against the computed result
	Expected *ExpectedOutcome `yaml:"expected,omitempty" json:"expected,omitempty"`
}

// ExpectedOutcome holds the amounts a case is expected to produce
type ExpectedOutcome struct {
	RefundAmount decimal.Decimal  `yaml:"refund_amount" json:"refund_amount"`
	UsedAmount   *decimal.Decimal `yaml:"used_amount,omitempty" json:"used_amount,omitempty"`
}

// RegularInput converts the case to a regular refund input.
func (c RefundCase) RegularInput() RegularRefundInput {
	return RegularRefundInput{
		StartDate:      c.StartDate,
		Tier:           c.Tier,
		PurchasePrice:  c.PurchasePrice,
		RefundDate:     c.RefundDate,
		OneWayFare:     c.OneWayFare,
		OneMonthFare:   c.OneMonthFare,
		ThreeMonthFare: c.ThreeMonthFare,
	}
}

// SectionChangeInput converts the case to a section change refund input.
func (c RefundCase) SectionChangeInput() SectionChangeRefundInput {
	return c.RegularInput().SectionChange()
}

// DeepCopy returns a copy of the case that shares no pointers with c.
func (c *RefundCase) DeepCopy() *RefundCase {
	out := *c
	if c.ThreeMonthFare != nil {
		fare := *c.ThreeMonthFare
		out.ThreeMonthFare = &fare
	}
	if c.Expected != nil {
		expected := *c.Expected
		if c.Expected.UsedAmount != nil {
			used := *c.Expected.UsedAmount
			expected.UsedAmount = &used
		}
		out.Expected = &expected
	}
	return &out
}

// Matches reports whether a result satisfies the expectation.
func (e *ExpectedOutcome) Matches(r *RefundResult) bool {
	if e == nil || r == nil {
		return e == nil
	}
	if !e.RefundAmount.Equal(r.RefundAmount) {
		return false
	}
	if e.UsedAmount != nil && !e.UsedAmount.Equal(r.UsedAmount) {
		return false
	}
	return true
}
