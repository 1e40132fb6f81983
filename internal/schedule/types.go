package schedule

import (
	"time"

	"github.com/rgehrsitz/passrefund/internal/domain"
	"github.com/shopspring/decimal"
)

// Point is the refund available on one calendar date
type Point struct {
	Date         time.Time                `json:"date"`
	RefundAmount decimal.Decimal          `json:"refund_amount"`
	UsedAmount   decimal.Decimal          `json:"used_amount"`
	Method       domain.CalculationMethod `json:"method"`
}

// Segment is a run of consecutive dates with the same refund amount
type Segment struct {
	From         time.Time                `json:"from"`
	To           time.Time                `json:"to"`
	RefundAmount decimal.Decimal          `json:"refund_amount"`
	Method       domain.CalculationMethod `json:"method"`
}

// Days is the number of calendar days the segment covers
func (s Segment) Days() int {
	return int(s.To.Sub(s.From).Hours()/24) + 1
}

// Timeline is the refund for every date a pass can be surrendered on
type Timeline struct {
	Kind      domain.RefundKind `json:"kind"`
	Tier      domain.PassTier   `json:"tier"`
	StartDate time.Time         `json:"start_date"`
	LastDate  time.Time         `json:"last_date"`
	Points    []Point           `json:"points"`
	Segments  []Segment         `json:"segments"`

	// LastRefundableDate is the last date with a positive refund, nil when
	// no date returns money
	LastRefundableDate *time.Time `json:"last_refundable_date,omitempty"`
}

// At returns the point for date d, false when d is outside the timeline
func (tl *Timeline) At(d time.Time) (Point, bool) {
	for _, p := range tl.Points {
		if p.Date.Equal(d) {
			return p, true
		}
	}
	return Point{}, false
}
