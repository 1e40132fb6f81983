package calculation

import (
	"strings"

	"github.com/rgehrsitz/passrefund/internal/domain"
	"github.com/shopspring/decimal"
)

// assemble packages the numeric outcome and its breakdown into a result.
// Amounts are clamped at zero here so no caller ever sees a negative value.
func assemble(kind domain.RefundKind, refund, used, fee decimal.Decimal, bd domain.Breakdown) *domain.RefundResult {
	return &domain.RefundResult{
		Kind:          kind,
		RefundAmount:  clampZero(refund),
		UsedAmount:    clampZero(used),
		ProcessingFee: fee,
		Details:       renderDetails(bd),
		Breakdown:     bd,
	}
}

// renderDetails turns a breakdown into the advisory audit-trail text.
func renderDetails(bd domain.Breakdown) string {
	var sb strings.Builder
	sb.WriteString(bd.AppliedRule)
	for _, step := range bd.Steps {
		sb.WriteString("\n  ")
		sb.WriteString(step)
	}
	return sb.String()
}

func clampZero(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}

func yen(d decimal.Decimal) string {
	return domain.FormatYen(d)
}
