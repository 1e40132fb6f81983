package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/rgehrsitz/passrefund/internal/batch"
	"github.com/rgehrsitz/passrefund/internal/domain"
)

// ConsoleFormatter renders human-readable text.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console" }

func (c ConsoleFormatter) FormatResult(result *domain.RefundResult) ([]byte, error) {
	var buf bytes.Buffer
	writeResult(&buf, result, "")
	return buf.Bytes(), nil
}

func (c ConsoleFormatter) FormatReport(report *batch.Report) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintln(&buf, "=================================================================")
	fmt.Fprintln(&buf, "PASS REFUND BATCH REPORT")
	fmt.Fprintln(&buf, "=================================================================")
	fmt.Fprintf(&buf, "Report ID:  %s\n", report.ID)
	fmt.Fprintf(&buf, "Generated:  %s\n", report.GeneratedAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintln(&buf)

	for i, e := range report.Entries {
		fmt.Fprintf(&buf, "CASE %d: %s (%s) [%s]\n", i+1, e.Name, e.Kind, strings.ToUpper(string(e.Status)))
		fmt.Fprintln(&buf, strings.Repeat("-", 65))
		switch {
		case len(e.Errors) > 0:
			for _, err := range e.Errors {
				fmt.Fprintf(&buf, "  %s (%s)\n", err.Error(), err.Field)
			}
		case e.Error != "":
			fmt.Fprintf(&buf, "  error: %s\n", e.Error)
		case e.Result != nil:
			writeResult(&buf, e.Result, "  ")
			if e.Status == batch.StatusMismatch && e.Expected != nil {
				fmt.Fprintf(&buf, "  Expected refund:  %s\n", FormatCurrency(e.Expected.RefundAmount))
				if e.Expected.UsedAmount != nil {
					fmt.Fprintf(&buf, "  Expected used:    %s\n", FormatCurrency(*e.Expected.UsedAmount))
				}
			}
		}
		fmt.Fprintln(&buf)
	}

	s := report.Summary
	fmt.Fprintf(&buf, "SUMMARY: %d case(s), %d ok, %d mismatched, %d invalid\n", s.Total, s.OK, s.Mismatched, s.Invalid)
	return buf.Bytes(), nil
}

func writeResult(buf *bytes.Buffer, r *domain.RefundResult, indent string) {
	fmt.Fprintf(buf, "%sRefund amount:    %s\n", indent, FormatCurrency(r.RefundAmount))
	fmt.Fprintf(buf, "%sUsed amount:      %s\n", indent, FormatCurrency(r.UsedAmount))
	fmt.Fprintf(buf, "%sProcessing fee:   %s\n", indent, FormatCurrency(r.ProcessingFee))
	fmt.Fprintf(buf, "%sMethod:           %s\n", indent, r.Breakdown.Method)
	fmt.Fprintf(buf, "%sRule:             %s\n", indent, r.Breakdown.AppliedRule)
	for _, step := range r.Breakdown.Steps {
		fmt.Fprintf(buf, "%s  • %s\n", indent, step)
	}
}
