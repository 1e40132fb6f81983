package compare

import (
	"encoding/csv"
	"strconv"
	"strings"

	"github.com/rgehrsitz/passrefund/internal/dateutil"
)

// CSVFormatter formats comparison results as CSV
type CSVFormatter struct{}

// Format generates CSV output with one row per rule and refund date
func (cf *CSVFormatter) Format(comparisons ...*RuleComparison) (string, error) {
	var sb strings.Builder
	writer := csv.NewWriter(&sb)

	header := []string{
		"Refund Date",
		"Rule",
		"Applicable",
		"Refund Amount",
		"Used Amount",
		"Processing Fee",
		"Method",
		"Difference",
	}
	if err := writer.Write(header); err != nil {
		return "", err
	}

	for _, rc := range comparisons {
		for _, o := range []RuleOutcome{rc.Regular, rc.SectionChange} {
			if err := writer.Write(cf.formatRow(rc, o)); err != nil {
				return "", err
			}
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", err
	}

	return sb.String(), nil
}

// formatRow formats one rule outcome as a CSV row
func (cf *CSVFormatter) formatRow(rc *RuleComparison, o RuleOutcome) []string {
	row := []string{
		dateutil.Format(rc.RefundDate),
		string(o.Kind),
		strconv.FormatBool(o.Applicable()),
		"", "", "", "",
		rc.Difference.StringFixed(0),
	}
	if r := o.Result; r != nil {
		row[3] = r.RefundAmount.StringFixed(0)
		row[4] = r.UsedAmount.StringFixed(0)
		row[5] = r.ProcessingFee.StringFixed(0)
		row[6] = string(r.Breakdown.Method)
	}
	return row
}
