package calculation

import (
	"time"

	"github.com/rgehrsitz/passrefund/internal/dateutil"
	"github.com/rgehrsitz/passrefund/internal/domain"
	"github.com/rgehrsitz/passrefund/internal/validation"
	"github.com/shopspring/decimal"
)

// RegularTerms is a validated regular refund input together with every
// value derived from it. It can only be built through NewRegularTerms, so
// a six-month pass always carries its three-month fare.
type RegularTerms struct {
	StartDate     time.Time
	RefundDate    time.Time
	Tier          domain.PassTier
	PurchasePrice decimal.Decimal
	OneMonthFare  decimal.Decimal

	EndDate         time.Time
	ElapsedDays     int
	RemainingDays   int
	RemainingMonths int
	UsedMonths      int
	RoundTripFare   decimal.Decimal
	ProcessingFee   decimal.Decimal

	// BaseTierFare is the fare billed for the first three months once
	// three or more months are used: the three-month fare for a six-month
	// pass, the purchase price itself for a three-month pass.
	BaseTierFare decimal.Decimal
}

// NewRegularTerms validates in and derives its calendar and fare values.
// Validation failures are returned as validation.Errors.
func NewRegularTerms(in domain.RegularRefundInput) (RegularTerms, error) {
	if errs := validation.ValidateRegular(in); len(errs) > 0 {
		return RegularTerms{}, errs
	}

	start := dateutil.Normalize(in.StartDate)
	refund := dateutil.Normalize(in.RefundDate)
	end := dateutil.EndDate(start, in.Tier.Months())

	baseTierFare := in.PurchasePrice
	if in.Tier == domain.TierSixMonth {
		baseTierFare = *in.ThreeMonthFare
	}

	return RegularTerms{
		StartDate:       start,
		RefundDate:      refund,
		Tier:            in.Tier,
		PurchasePrice:   in.PurchasePrice,
		OneMonthFare:    in.OneMonthFare,
		EndDate:         end,
		ElapsedDays:     dateutil.ElapsedDays(start, refund),
		RemainingDays:   dateutil.RemainingDays(refund, end),
		RemainingMonths: dateutil.RemainingMonths(refund, end),
		UsedMonths:      dateutil.UsedMonths(start, refund, domain.GracePeriodDays),
		RoundTripFare:   in.OneWayFare.Mul(decimal.NewFromInt(2)),
		ProcessingFee:   domain.ProcessingFee(),
		BaseTierFare:    baseTierFare,
	}, nil
}

// SectionTerms is a validated section change input with its derived values.
type SectionTerms struct {
	StartDate     time.Time
	RefundDate    time.Time
	Tier          domain.PassTier
	PurchasePrice decimal.Decimal

	ElapsedDays   int
	UsedDecades   int
	DailyFare     decimal.Decimal
	ProcessingFee decimal.Decimal
}

// NewSectionTerms validates in and derives its decade and fare values.
func NewSectionTerms(in domain.SectionChangeRefundInput) (SectionTerms, error) {
	if errs := validation.ValidateSectionChange(in); len(errs) > 0 {
		return SectionTerms{}, errs
	}

	start := dateutil.Normalize(in.StartDate)
	refund := dateutil.Normalize(in.RefundDate)
	elapsed := dateutil.ElapsedDays(start, refund)

	return SectionTerms{
		StartDate:     start,
		RefundDate:    refund,
		Tier:          in.Tier,
		PurchasePrice: in.PurchasePrice,
		ElapsedDays:   elapsed,
		UsedDecades:   UsedDecades(elapsed),
		DailyFare:     DailyFare(in.PurchasePrice, in.Tier.BaseDays()),
		ProcessingFee: domain.ProcessingFee(),
	}, nil
}
