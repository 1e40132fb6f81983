package compare

import (
	"fmt"
	"strings"

	"github.com/rgehrsitz/passrefund/internal/dateutil"
	"github.com/rgehrsitz/passrefund/internal/domain"
)

// TableFormatter formats comparison results as a console table
type TableFormatter struct{}

// Format generates a formatted table comparing the two rules
func (tf *TableFormatter) Format(rc *RuleComparison) string {
	var sb strings.Builder

	sb.WriteString("REFUND RULE COMPARISON\n")
	sb.WriteString(strings.Repeat("=", 72) + "\n")
	sb.WriteString(fmt.Sprintf("Pass:        %s, purchased for %s\n", rc.Tier, domain.FormatYen(rc.PurchasePrice)))
	sb.WriteString(fmt.Sprintf("Period:      %s to refund on %s\n", dateutil.Format(rc.StartDate), dateutil.Format(rc.RefundDate)))
	sb.WriteString("\n")

	nameWidth := 16
	numWidth := 12

	sb.WriteString(fmt.Sprintf("%-*s %*s %*s %*s  %s\n",
		nameWidth, "Rule",
		numWidth, "Refund",
		numWidth, "Used",
		numWidth, "Fee",
		"Method"))
	sb.WriteString(strings.Repeat("-", 72) + "\n")
	sb.WriteString(tf.formatRow("Regular", rc.Regular, nameWidth, numWidth))
	sb.WriteString(tf.formatRow("Section change", rc.SectionChange, nameWidth, numWidth))
	sb.WriteString(strings.Repeat("=", 72) + "\n")

	sb.WriteString(fmt.Sprintf("Difference (section change - regular): %s\n", tf.formatDiff(rc)))

	if len(rc.Recommendations) > 0 {
		sb.WriteString("\nNOTES\n")
		sb.WriteString(strings.Repeat("-", 72) + "\n")
		for _, rec := range rc.Recommendations {
			sb.WriteString("• " + rec + "\n")
		}
	}

	return sb.String()
}

// formatRow formats a single rule row
func (tf *TableFormatter) formatRow(label string, o RuleOutcome, nameWidth, numWidth int) string {
	if !o.Applicable() {
		codes := make([]string, 0, len(o.Errors))
		for _, e := range o.Errors {
			codes = append(codes, e.Code())
		}
		return fmt.Sprintf("%-*s %*s  not applicable (%s)\n", nameWidth, label, numWidth, "-", strings.Join(codes, ", "))
	}
	r := o.Result
	return fmt.Sprintf("%-*s %*s %*s %*s  %s\n",
		nameWidth, label,
		numWidth, domain.FormatYen(r.RefundAmount),
		numWidth, domain.FormatYen(r.UsedAmount),
		numWidth, domain.FormatYen(r.ProcessingFee),
		r.Breakdown.Method)
}

// formatDiff renders the difference with an explicit sign
func (tf *TableFormatter) formatDiff(rc *RuleComparison) string {
	if rc.Difference.IsPositive() {
		return "+" + domain.FormatYen(rc.Difference)
	}
	return domain.FormatYen(rc.Difference)
}
