package breakeven

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rgehrsitz/passrefund/internal/dateutil"
	"github.com/rgehrsitz/passrefund/internal/domain"
)

// TableFormatter formats solver results as a console table
type TableFormatter struct{}

// Format generates a formatted table for a solver result
func (tf *TableFormatter) Format(result *Result) string {
	var sb strings.Builder

	sb.WriteString("REFUND BREAK-EVEN ANALYSIS\n")
	sb.WriteString(strings.Repeat("=", 72) + "\n")
	sb.WriteString(fmt.Sprintf("Target:       %s\n", result.Request.Target))
	sb.WriteString(fmt.Sprintf("Pass:         %s from %s\n", result.Request.Base.Tier, dateutil.Format(result.Request.Base.StartDate)))
	sb.WriteString(fmt.Sprintf("Status:       %s\n", tf.formatStatus(result.Success)))
	sb.WriteString(fmt.Sprintf("Iterations:   %d\n", result.Iterations))
	if result.ConvergenceInfo != "" {
		sb.WriteString(fmt.Sprintf("Convergence:  %s\n", result.ConvergenceInfo))
	}
	sb.WriteString("\n")

	switch result.Request.Target {
	case TargetLastDate:
		c := result.Request.Constraints
		sb.WriteString("LAST REFUND DATE\n")
		sb.WriteString(strings.Repeat("-", 72) + "\n")
		sb.WriteString(fmt.Sprintf("Rule:            %s\n", c.Kind))
		if c.MinimumRefund != nil {
			sb.WriteString(fmt.Sprintf("Minimum refund:  %s\n", domain.FormatYen(*c.MinimumRefund)))
		}
		if result.Date != nil {
			sb.WriteString(fmt.Sprintf("Last date:       %s\n", dateutil.Format(*result.Date)))
			sb.WriteString(fmt.Sprintf("Refund then:     %s\n", domain.FormatYen(result.Refund.RefundAmount)))
		} else {
			sb.WriteString("Last date:       none\n")
		}
	case TargetRuleLead:
		sb.WriteString(tf.formatLeads(result.Leads))
	}

	return sb.String()
}

// FormatThresholds formats the last dates for several amounts
func (tf *TableFormatter) FormatThresholds(thresholds []Threshold) string {
	var sb strings.Builder

	sb.WriteString("REFUND THRESHOLDS\n")
	sb.WriteString(strings.Repeat("=", 72) + "\n")
	sb.WriteString(fmt.Sprintf("%-16s %14s  %-12s %14s\n", "Rule", "At least", "Last date", "Refund"))
	sb.WriteString(strings.Repeat("-", 72) + "\n")
	for _, t := range thresholds {
		date, refund := "none", "-"
		if t.Result != nil && t.Result.Date != nil {
			date = dateutil.Format(*t.Result.Date)
			refund = domain.FormatYen(t.Result.Refund.RefundAmount)
		}
		sb.WriteString(fmt.Sprintf("%-16s %14s  %-12s %14s\n", t.Kind, domain.FormatYen(t.MinimumRefund), date, refund))
	}
	return sb.String()
}

func (tf *TableFormatter) formatLeads(leads []Lead) string {
	var sb strings.Builder
	sb.WriteString("BETTER RULE BY DATE\n")
	sb.WriteString(strings.Repeat("-", 72) + "\n")
	sb.WriteString(fmt.Sprintf("%-12s %-12s %5s  %-16s %14s\n", "From", "To", "Days", "Better rule", "Largest gap"))
	for _, l := range leads {
		leader := string(l.Leader)
		if leader == "" {
			leader = "tie"
		}
		sb.WriteString(fmt.Sprintf("%-12s %-12s %5d  %-16s %14s\n",
			dateutil.Format(l.From), dateutil.Format(l.To), l.Days(), leader, domain.FormatYen(l.MaxDifference)))
	}
	return sb.String()
}

func (tf *TableFormatter) formatStatus(success bool) string {
	if success {
		return "✓ Found"
	}
	return "⚠ Not found"
}

// JSONFormatter formats results as JSON
type JSONFormatter struct {
	Pretty bool
}

// Format generates JSON output
func (jf *JSONFormatter) Format(result *Result) (string, error) {
	return jf.marshal(result)
}

// FormatThresholds generates JSON output for thresholds
func (jf *JSONFormatter) FormatThresholds(thresholds []Threshold) (string, error) {
	return jf.marshal(thresholds)
}

func (jf *JSONFormatter) marshal(v any) (string, error) {
	var data []byte
	var err error

	if jf.Pretty {
		data, err = json.MarshalIndent(v, "", "  ")
	} else {
		data, err = json.Marshal(v)
	}

	if err != nil {
		return "", err
	}

	return string(data), nil
}
