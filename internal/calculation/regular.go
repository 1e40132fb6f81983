package calculation

import (
	"fmt"

	"github.com/rgehrsitz/passrefund/internal/domain"
	"github.com/shopspring/decimal"
)

// Applied rule descriptions for regular refunds
const (
	ruleWithinSevenDays   = "within 7 days of the start date: refunded at the round-trip day rate"
	ruleMonthly           = "monthly calculation: used months billed at tier fares"
	ruleOneMonthExpired   = "one-month passes are not refundable after the first 7 days"
	ruleUnderOneMonthLeft = "less than one full month remains; no refund"
	ruleNothingLeft       = "used fare and fee meet or exceed the purchase price; no refund"
)

// regularRefund applies the regular refund decision table. The first
// matching rule is terminal.
func regularRefund(t RegularTerms, log Logger) *domain.RefundResult {
	log.Debugf("regular refund: tier=%s elapsed=%d used_months=%d remaining_months=%d remaining_days=%d",
		t.Tier, t.ElapsedDays, t.UsedMonths, t.RemainingMonths, t.RemainingDays)

	switch {
	case t.ElapsedDays <= domain.GracePeriodDays:
		return withinGracePeriod(t)
	case t.Tier == domain.TierOneMonth:
		return noRegularRefund(t, ruleOneMonthExpired, nil)
	case t.RemainingMonths < 1:
		return noRegularRefund(t, ruleUnderOneMonthLeft, nil)
	}

	used := usedFare(t)
	refund := t.PurchasePrice.Sub(used).Sub(t.ProcessingFee)
	steps := []string{
		usedFareStep(t, used),
		fmt.Sprintf("refund = %s - %s - %s = %s", yen(t.PurchasePrice), yen(used), yen(t.ProcessingFee), yen(refund)),
	}
	if !refund.IsPositive() {
		log.Warnf("regular refund: computed %s is not positive, reporting no refund", refund)
		return noRegularRefund(t, ruleNothingLeft, steps)
	}

	return assemble(domain.KindRegular, refund, used, t.ProcessingFee, domain.Breakdown{
		Method:      domain.MethodMonthly,
		AppliedRule: fmt.Sprintf("%s (%s pass, %d month(s) used)", ruleMonthly, t.Tier, t.UsedMonths),
		Steps:       steps,
		ElapsedDays: t.ElapsedDays,
		UsedMonths:  t.UsedMonths,
	})
}

func withinGracePeriod(t RegularTerms) *domain.RefundResult {
	used := t.RoundTripFare.Mul(decimal.NewFromInt(int64(t.ElapsedDays)))
	raw := t.PurchasePrice.Sub(used).Sub(t.ProcessingFee)
	refund := clampZero(raw)

	steps := []string{
		fmt.Sprintf("used fare = round-trip fare %s x %d day(s) = %s", yen(t.RoundTripFare), t.ElapsedDays, yen(used)),
		fmt.Sprintf("refund = %s - %s - %s = %s", yen(t.PurchasePrice), yen(used), yen(t.ProcessingFee), yen(raw)),
	}
	if raw.IsNegative() {
		steps = append(steps, "negative result clamped to "+yen(refund))
	}

	return assemble(domain.KindRegular, refund, used, t.ProcessingFee, domain.Breakdown{
		Method:      domain.MethodWithinSevenDays,
		AppliedRule: ruleWithinSevenDays,
		Steps:       steps,
		ElapsedDays: t.ElapsedDays,
	})
}

// usedFare bills the used months: one-month fares for up to two months,
// then the base tier fare plus one-month fares beyond the third month.
func usedFare(t RegularTerms) decimal.Decimal {
	if t.UsedMonths <= 2 {
		return t.OneMonthFare.Mul(decimal.NewFromInt(int64(t.UsedMonths)))
	}
	additional := decimal.NewFromInt(int64(t.UsedMonths - 3))
	return t.BaseTierFare.Add(t.OneMonthFare.Mul(additional))
}

func usedFareStep(t RegularTerms, used decimal.Decimal) string {
	if t.UsedMonths <= 2 {
		return fmt.Sprintf("used fare = one-month fare %s x %d month(s) = %s", yen(t.OneMonthFare), t.UsedMonths, yen(used))
	}
	label := "three-month fare"
	if t.Tier == domain.TierThreeMonth {
		label = "purchase price as three-month fare"
	}
	return fmt.Sprintf("used fare = %s (%s) + one-month fare %s x %d additional month(s) = %s",
		yen(t.BaseTierFare), label, yen(t.OneMonthFare), t.UsedMonths-3, yen(used))
}

// noRegularRefund reports a zero refund. As in the fare rules' own result
// slips, the used amount is reported as zero when nothing is refunded.
func noRegularRefund(t RegularTerms, reason string, steps []string) *domain.RefundResult {
	return assemble(domain.KindRegular, decimal.Zero, decimal.Zero, t.ProcessingFee, domain.Breakdown{
		Method:      domain.MethodNoRefund,
		AppliedRule: reason,
		Steps:       steps,
		ElapsedDays: t.ElapsedDays,
		UsedMonths:  t.UsedMonths,
	})
}
