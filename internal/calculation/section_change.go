package calculation

import (
	"fmt"

	"github.com/rgehrsitz/passrefund/internal/domain"
	"github.com/shopspring/decimal"
)

const ruleDecade = "section change: used days billed in ten-day decades at the daily fare"

// sectionChangeRefund bills whole decades regardless of how much of the
// last decade was used. There is no remaining-month gate.
func sectionChangeRefund(t SectionTerms, log Logger) *domain.RefundResult {
	log.Debugf("section change refund: tier=%s elapsed=%d decades=%d daily_fare=%s",
		t.Tier, t.ElapsedDays, t.UsedDecades, t.DailyFare)

	used := t.DailyFare.Mul(decimal.NewFromInt(int64(t.UsedDecades * domain.DecadeDays)))
	raw := t.PurchasePrice.Sub(used).Sub(t.ProcessingFee)

	steps := []string{
		fmt.Sprintf("daily fare = ceil(%s / %d days) = %s", yen(t.PurchasePrice), t.Tier.BaseDays(), yen(t.DailyFare)),
		fmt.Sprintf("used decades = ceil(%d day(s) / %d) = %d", t.ElapsedDays, domain.DecadeDays, t.UsedDecades),
		fmt.Sprintf("used fare = %d decade(s) x %s x %d = %s", t.UsedDecades, yen(t.DailyFare), domain.DecadeDays, yen(used)),
		fmt.Sprintf("refund = %s - %s - %s = %s", yen(t.PurchasePrice), yen(used), yen(t.ProcessingFee), yen(raw)),
	}
	if raw.IsNegative() {
		log.Warnf("section change refund: computed %s is negative, clamping to zero", raw)
		steps = append(steps, "negative result clamped to "+yen(decimal.Zero))
	}

	return assemble(domain.KindSectionChange, raw, used, t.ProcessingFee, domain.Breakdown{
		Method:      domain.MethodDecade,
		AppliedRule: ruleDecade,
		Steps:       steps,
		ElapsedDays: t.ElapsedDays,
		UsedDecades: t.UsedDecades,
		DailyFare:   t.DailyFare,
	})
}
