package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/rgehrsitz/passrefund/internal/dateutil"
	"github.com/rgehrsitz/passrefund/internal/domain"
	"github.com/rgehrsitz/passrefund/internal/output"
	"github.com/rgehrsitz/passrefund/internal/schedule"
	"github.com/spf13/cobra"
)

func scheduleCmd() *cobra.Command {
	var pf passFlags
	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Show how the refund changes over the life of a pass",
		Example: "  passrefund schedule --start 2025-06-05 --tier 3 --price 45000 --one-way 500 --one-month 16000\n" +
			"  passrefund schedule --kind section_change --start 2025-06-05 --tier 3 --price 45000",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			kindFlag, _ := cmd.Flags().GetString("kind")
			kind := domain.RefundKind(strings.ReplaceAll(kindFlag, "-", "_"))
			if kind == domain.KindSectionChange {
				pf.fares = false
			}

			in, err := pf.parse()
			if err != nil {
				return err
			}

			builder := schedule.NewBuilder()
			builder.Logger = loggerFor(cmd)
			tl, err := builder.Build(cmd.Context(), in, kind)
			if err != nil {
				return err
			}

			outputFormat, _ := cmd.Flags().GetString("format")
			switch outputFormat {
			case "table", "console":
				writeTimeline(cmd.OutOrStdout(), tl)
				return nil
			case "json":
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(tl)
			default:
				return fmt.Errorf("unsupported format: %s (available: table, json)", outputFormat)
			}
		},
	}
	pf.register(cmd, true)
	cmd.Flags().String("kind", string(domain.KindRegular), "Refund rule: regular or section_change")
	cmd.Flags().StringP("format", "f", "table", "Output format (table, json)")
	cmd.Flags().Bool("debug", false, "Enable debug output for detailed calculations")
	return cmd
}

func writeTimeline(w io.Writer, tl *schedule.Timeline) {
	fmt.Fprintln(w, "REFUND SCHEDULE")
	fmt.Fprintln(w, strings.Repeat("=", 60))
	fmt.Fprintf(w, "Rule:       %s\n", tl.Kind)
	fmt.Fprintf(w, "Pass tier:  %s\n", tl.Tier)
	fmt.Fprintf(w, "Dates:      %s to %s\n", dateutil.Format(tl.StartDate), dateutil.Format(tl.LastDate))
	fmt.Fprintln(w)

	fmt.Fprintf(w, "%-12s %-12s %5s %12s  %s\n", "FROM", "TO", "DAYS", "REFUND", "METHOD")
	fmt.Fprintln(w, strings.Repeat("-", 60))
	for _, s := range tl.Segments {
		fmt.Fprintf(w, "%-12s %-12s %5d %12s  %s\n",
			dateutil.Format(s.From), dateutil.Format(s.To), s.Days(), output.FormatCurrency(s.RefundAmount), s.Method)
	}
	fmt.Fprintln(w)

	if tl.LastRefundableDate != nil {
		fmt.Fprintf(w, "Last refundable date: %s\n", dateutil.Format(*tl.LastRefundableDate))
	} else {
		fmt.Fprintln(w, "No date returns a refund")
	}
}
