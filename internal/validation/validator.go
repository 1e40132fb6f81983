// Package validation checks refund inputs before any calculation runs.
//
// Validation is fail-soft: every rule is evaluated and all violations are
// returned together as Errors, so a caller can report them in one pass.
package validation

import (
	"time"

	"github.com/rgehrsitz/passrefund/internal/dateutil"
	"github.com/rgehrsitz/passrefund/internal/domain"
	"github.com/shopspring/decimal"
)

// Field names used in violations
const (
	FieldStartDate      = "start_date"
	FieldRefundDate     = "refund_date"
	FieldTier           = "tier"
	FieldPurchasePrice  = "purchase_price"
	FieldOneWayFare     = "one_way_fare"
	FieldOneMonthFare   = "one_month_fare"
	FieldThreeMonthFare = "three_month_fare"
)

// ValidateRegular checks a regular refund input. The refund date must fall
// within the pass validity period.
func ValidateRegular(in domain.RegularRefundInput) Errors {
	var errs Errors

	tierOK := validateTier(&errs, in.Tier)
	datesOK := validateDates(&errs, in.StartDate, in.RefundDate)

	if datesOK && tierOK {
		end := dateutil.EndDate(in.StartDate, in.Tier.Months())
		if dateutil.Normalize(in.RefundDate).After(end) {
			errs.add(DateRangeViolation, FieldRefundDate,
				"refund date %s is after the pass expiry %s",
				dateutil.Format(in.RefundDate), dateutil.Format(end))
		}
	}

	validateAmount(&errs, FieldPurchasePrice, "purchase price", in.PurchasePrice)
	validateAmount(&errs, FieldOneWayFare, "one-way fare", in.OneWayFare)
	validateAmount(&errs, FieldOneMonthFare, "one-month fare", in.OneMonthFare)

	switch {
	case in.ThreeMonthFare != nil:
		validateAmount(&errs, FieldThreeMonthFare, "three-month fare", *in.ThreeMonthFare)
	case in.Tier == domain.TierSixMonth:
		errs.add(MissingRequiredField, FieldThreeMonthFare,
			"a three-month fare is required to refund a six-month pass")
	}

	return errs
}

// ValidateSectionChange checks a section change refund input. Section
// changes have no natural period end, so refunds later than six months
// after the start date are rejected.
func ValidateSectionChange(in domain.SectionChangeRefundInput) Errors {
	var errs Errors

	validateTier(&errs, in.Tier)
	if validateDates(&errs, in.StartDate, in.RefundDate) {
		ceiling := dateutil.AddMonths(in.StartDate, domain.SectionChangeCeilingMonths)
		if dateutil.Normalize(in.RefundDate).After(ceiling) {
			errs.add(DateRangeViolation, FieldRefundDate,
				"refund date %s is more than %d months after the start date (latest %s)",
				dateutil.Format(in.RefundDate), domain.SectionChangeCeilingMonths, dateutil.Format(ceiling))
		}
	}
	validateAmount(&errs, FieldPurchasePrice, "purchase price", in.PurchasePrice)

	return errs
}

// CheckResult verifies a computed result: amounts non-negative and whole,
// fee equal to the fixed constant.
func CheckResult(r *domain.RefundResult) Errors {
	var errs Errors
	if r == nil {
		errs.add(CalculationFailure, "result", "no result was produced")
		return errs
	}
	if r.RefundAmount.IsNegative() {
		errs.add(CalculationFailure, "refund_amount", "refund amount is negative (%s)", r.RefundAmount)
	}
	if r.UsedAmount.IsNegative() {
		errs.add(CalculationFailure, "used_amount", "used amount is negative (%s)", r.UsedAmount)
	}
	if !r.RefundAmount.IsInteger() || !r.UsedAmount.IsInteger() {
		errs.add(CalculationFailure, "refund_amount", "amounts must be whole yen")
	}
	if !r.ProcessingFee.Equal(domain.ProcessingFee()) {
		errs.add(CalculationFailure, "processing_fee", "processing fee %s differs from %d", r.ProcessingFee, domain.ProcessingFeeAmount)
	}
	return errs
}

func validateTier(errs *Errors, tier domain.PassTier) bool {
	if tier.IsValid() {
		return true
	}
	if tier == 0 {
		errs.add(MissingRequiredField, FieldTier, "pass tier is required")
	} else {
		errs.add(MissingRequiredField, FieldTier, "a supported pass tier (1, 3 or 6 months) is required, got %d", int(tier))
	}
	return false
}

// validateDates reports whether both dates are present and ordered.
func validateDates(errs *Errors, start, refund time.Time) bool {
	ok := true
	if start.IsZero() {
		errs.add(MissingRequiredField, FieldStartDate, "start date is required")
		ok = false
	}
	if refund.IsZero() {
		errs.add(MissingRequiredField, FieldRefundDate, "refund date is required")
		ok = false
	}
	if !ok {
		return false
	}
	if dateutil.Normalize(refund).Before(dateutil.Normalize(start)) {
		errs.add(DateRangeViolation, FieldRefundDate,
			"refund date %s is before the start date %s",
			dateutil.Format(refund), dateutil.Format(start))
		return false
	}
	return true
}

func validateAmount(errs *Errors, field, label string, amount decimal.Decimal) {
	if !amount.IsPositive() {
		errs.add(InvalidAmount, field, "%s must be positive, got %s", label, amount)
		return
	}
	if !amount.IsInteger() {
		errs.add(InvalidAmount, field, "%s must be a whole yen amount, got %s", label, amount)
	}
}
