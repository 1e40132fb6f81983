package main

import (
	"fmt"

	"github.com/rgehrsitz/passrefund/internal/calculation"
	"github.com/rgehrsitz/passrefund/internal/domain"
	"github.com/rgehrsitz/passrefund/internal/output"
	"github.com/spf13/cobra"
)

func regularCmd() *cobra.Command {
	var pf passFlags
	cmd := &cobra.Command{
		Use:   "regular",
		Short: "Calculate the refund for a regular mid-period cancellation",
		Example: "  passrefund regular --start 2025-06-05 --refund 2025-07-04 --tier 3 \\\n" +
			"    --price 45000 --one-way 500 --one-month 16000",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := pf.parse()
			if err != nil {
				return err
			}
			result, err := calculation.ComputeRegularRefund(in, calculation.WithLogger(loggerFor(cmd)))
			if err != nil {
				return err
			}
			return writeResult(cmd, result)
		},
	}
	pf.register(cmd, true)
	addOutputFlags(cmd)
	return cmd
}

func sectionChangeCmd() *cobra.Command {
	var pf passFlags
	cmd := &cobra.Command{
		Use:     "section-change",
		Aliases: []string{"section"},
		Short:   "Calculate the refund for a pass surrendered because its route changed",
		Example: "  passrefund section-change --start 2025-06-05 --refund 2025-07-11 --tier 3 --price 45000",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := pf.parse()
			if err != nil {
				return err
			}
			result, err := calculation.ComputeSectionChangeRefund(in.SectionChange(), calculation.WithLogger(loggerFor(cmd)))
			if err != nil {
				return err
			}
			return writeResult(cmd, result)
		},
	}
	pf.register(cmd, false)
	addOutputFlags(cmd)
	return cmd
}

func addOutputFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("format", "f", "console", "Output format (console, json, csv, html)")
	cmd.Flags().Bool("debug", false, "Enable debug output for detailed calculations")
}

func formatterFor(cmd *cobra.Command) (output.Formatter, error) {
	name, _ := cmd.Flags().GetString("format")
	f := output.GetFormatterByName(name)
	if f == nil {
		return nil, fmt.Errorf("unsupported format: %s (available: %v)", name, output.AvailableFormats())
	}
	return f, nil
}

func writeResult(cmd *cobra.Command, result *domain.RefundResult) error {
	f, err := formatterFor(cmd)
	if err != nil {
		return err
	}
	data, err := f.FormatResult(result)
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}
