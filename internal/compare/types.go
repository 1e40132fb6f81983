package compare

import (
	"fmt"
	"time"

	"github.com/rgehrsitz/passrefund/internal/domain"
	"github.com/rgehrsitz/passrefund/internal/validation"
	"github.com/shopspring/decimal"
)

// RuleOutcome is the result of one refund rule applied to a pass
type RuleOutcome struct {
	Kind   domain.RefundKind    `json:"kind"`
	Result *domain.RefundResult `json:"result,omitempty"`
	Errors validation.Errors    `json:"errors,omitempty"`
}

// Applicable reports whether the rule accepted the input
func (o RuleOutcome) Applicable() bool {
	return o.Result != nil
}

// Refund returns the refund amount, zero when the rule did not apply
func (o RuleOutcome) Refund() decimal.Decimal {
	if o.Result == nil {
		return decimal.Zero
	}
	return o.Result.RefundAmount
}

// RuleComparison holds both refund rules evaluated for the same pass and date
type RuleComparison struct {
	StartDate     time.Time       `json:"startDate"`
	RefundDate    time.Time       `json:"refundDate"`
	Tier          domain.PassTier `json:"tier"`
	PurchasePrice decimal.Decimal `json:"purchasePrice"`

	Regular       RuleOutcome `json:"regular"`
	SectionChange RuleOutcome `json:"sectionChange"`

	// Difference is the section change refund minus the regular refund
	Difference decimal.Decimal `json:"difference"`
	// Higher names the rule with the larger refund; empty when they tie
	Higher domain.RefundKind `json:"higher,omitempty"`

	Recommendations []string `json:"recommendations"`
}

// calculateDifference fills Difference and Higher from the two outcomes
func (rc *RuleComparison) calculateDifference() {
	rc.Difference = rc.SectionChange.Refund().Sub(rc.Regular.Refund())
	switch {
	case rc.Difference.IsPositive():
		rc.Higher = domain.KindSectionChange
	case rc.Difference.IsNegative():
		rc.Higher = domain.KindRegular
	default:
		rc.Higher = ""
	}
}

// GenerateRecommendations explains the comparison in plain sentences
func GenerateRecommendations(rc *RuleComparison) []string {
	recommendations := []string{}

	if !rc.Regular.Applicable() {
		recommendations = append(recommendations,
			"Regular refund is not available: "+rc.Regular.Errors.Error())
	}
	if !rc.SectionChange.Applicable() {
		recommendations = append(recommendations,
			"Section change refund is not available: "+rc.SectionChange.Errors.Error())
	}

	switch rc.Higher {
	case domain.KindSectionChange:
		recommendations = append(recommendations,
			fmt.Sprintf("A route change refund returns %s more than a regular cancellation", domain.FormatYen(rc.Difference)))
	case domain.KindRegular:
		recommendations = append(recommendations,
			fmt.Sprintf("A regular cancellation returns %s more than a route change refund", domain.FormatYen(rc.Difference.Neg())))
	default:
		if rc.Regular.Applicable() && rc.SectionChange.Applicable() {
			recommendations = append(recommendations, "Both rules return the same amount")
		}
	}

	if rc.Regular.Applicable() && !rc.Regular.Result.IsRefundable() &&
		rc.SectionChange.Applicable() && !rc.SectionChange.Result.IsRefundable() {
		recommendations = append(recommendations, "Neither rule returns any money on this date")
	}

	return recommendations
}
