package main

import (
	"fmt"
	"strings"

	"github.com/rgehrsitz/passrefund/internal/breakeven"
	"github.com/rgehrsitz/passrefund/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

func breakevenCmd() *cobra.Command {
	var pf passFlags
	cmd := &cobra.Command{
		Use:   "breakeven",
		Short: "Find the last date a pass still returns an amount, or which rule pays more when",
		Example: "  passrefund breakeven --minimum 20000 --start 2025-06-05 --tier 3 --price 45000 --one-way 500 --one-month 16000\n" +
			"  passrefund breakeven --minimum 30000,20000,10000 --start 2025-06-05 --tier 3 --price 45000 --one-way 500 --one-month 16000\n" +
			"  passrefund breakeven --lead --start 2025-06-05 --tier 3 --price 45000 --one-way 500 --one-month 16000",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := pf.parse()
			if err != nil {
				return err
			}

			lead, _ := cmd.Flags().GetBool("lead")
			minimums, _ := cmd.Flags().GetStringSlice("minimum")
			if !lead && len(minimums) == 0 {
				return fmt.Errorf("either --minimum or --lead is required")
			}

			solver := breakeven.NewDefaultSolver()
			solver.Logger = loggerFor(cmd)

			outputFormat, _ := cmd.Flags().GetString("format")
			if outputFormat != "table" && outputFormat != "json" {
				return fmt.Errorf("unsupported format: %s (available: table, json)", outputFormat)
			}
			table := &breakeven.TableFormatter{}
			js := &breakeven.JSONFormatter{Pretty: true}

			var out string
			switch {
			case lead:
				result, err := solver.Solve(cmd.Context(), breakeven.Request{Base: in, Target: breakeven.TargetRuleLead})
				if err != nil {
					return err
				}
				if outputFormat == "json" {
					out, err = js.Format(result)
				} else {
					out = table.Format(result)
				}
				if err != nil {
					return err
				}

			case len(minimums) == 1:
				minimum, err := parseYen(minimums[0])
				if err != nil {
					return err
				}
				kindFlag, _ := cmd.Flags().GetString("kind")
				result, err := solver.Solve(cmd.Context(), breakeven.Request{
					Base:   in,
					Target: breakeven.TargetLastDate,
					Constraints: breakeven.Constraints{
						Kind:          domain.RefundKind(strings.ReplaceAll(kindFlag, "-", "_")),
						MinimumRefund: &minimum,
					},
				})
				if err != nil {
					return err
				}
				if outputFormat == "json" {
					out, err = js.Format(result)
				} else {
					out = table.Format(result)
				}
				if err != nil {
					return err
				}

			default:
				amounts := make([]decimal.Decimal, 0, len(minimums))
				for _, m := range minimums {
					amount, err := parseYen(m)
					if err != nil {
						return err
					}
					amounts = append(amounts, amount)
				}
				thresholds, err := solver.SolveThresholds(cmd.Context(), in, amounts)
				if err != nil {
					return err
				}
				if outputFormat == "json" {
					out, err = js.FormatThresholds(thresholds)
				} else {
					out = table.FormatThresholds(thresholds)
				}
				if err != nil {
					return err
				}
			}

			fmt.Fprintln(cmd.OutOrStdout(), strings.TrimRight(out, "\n"))
			return nil
		},
	}
	pf.register(cmd, true)
	cmd.Flags().StringSlice("minimum", nil, "Refund amount(s) in yen that must still be returned")
	cmd.Flags().Bool("lead", false, "Show which rule returns more on every date")
	cmd.Flags().String("kind", string(domain.KindRegular), "Refund rule searched with a single --minimum")
	cmd.Flags().StringP("format", "f", "table", "Output format (table, json)")
	cmd.Flags().Bool("debug", false, "Enable debug output for detailed calculations")
	return cmd
}

func parseYen(raw string) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(strings.ReplaceAll(strings.TrimSpace(raw), ",", ""))
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount %q: %w", raw, err)
	}
	return amount, nil
}
