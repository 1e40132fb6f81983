package main

import (
	"fmt"

	"github.com/rgehrsitz/passrefund/internal/compare"
	"github.com/spf13/cobra"
)

func compareCmd() *cobra.Command {
	var pf passFlags
	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Compare the regular and section change refunds for the same pass",
		Example: "  passrefund compare --start 2025-06-05 --refund 2025-07-04 --tier 3 \\\n" +
			"    --price 45000 --one-way 500 --one-month 16000",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := pf.parse()
			if err != nil {
				return err
			}

			engine := compare.NewCompareEngine()
			engine.Logger = loggerFor(cmd)
			rc, err := engine.Compare(cmd.Context(), in)
			if err != nil {
				return err
			}

			outputFormat, _ := cmd.Flags().GetString("format")
			var out string
			switch outputFormat {
			case "table", "console":
				out = (&compare.TableFormatter{}).Format(rc)
			case "json":
				out, err = (&compare.JSONFormatter{Pretty: true}).Format(rc)
			case "csv":
				out, err = (&compare.CSVFormatter{}).Format(rc)
			default:
				return fmt.Errorf("unsupported format: %s (available: table, json, csv)", outputFormat)
			}
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), out)
			return nil
		},
	}
	pf.register(cmd, true)
	cmd.Flags().StringP("format", "f", "table", "Output format (table, json, csv)")
	cmd.Flags().Bool("debug", false, "Enable debug output for detailed calculations")
	return cmd
}

