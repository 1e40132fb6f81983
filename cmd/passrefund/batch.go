package main

import (
	"fmt"

	"github.com/rgehrsitz/passrefund/internal/batch"
	"github.com/rgehrsitz/passrefund/internal/config"
	"github.com/rgehrsitz/passrefund/internal/domain"
	"github.com/rgehrsitz/passrefund/internal/transform"
	"github.com/rgehrsitz/passrefund/internal/validation"
	"github.com/spf13/cobra"
)

func batchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "batch [case-file]",
		Short: "Calculate every refund case in a YAML case file",
		Long: "Calculates every case in a YAML case file and prints a report. Cases with an\n" +
			"expected outcome are checked against it; with --strict any mismatch or invalid\n" +
			"case makes the command fail. Templates and transforms rewrite every case before\n" +
			"it is calculated and drop its expected outcome.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			inputFile := args[0]
			if !fileExists(inputFile) {
				return fmt.Errorf("case file %s does not exist", inputFile)
			}

			f, err := formatterFor(cmd)
			if err != nil {
				return err
			}

			file, err := config.NewInputParser().LoadFromFile(inputFile)
			if err != nil {
				return err
			}

			templateNames, _ := cmd.Flags().GetStringSlice("template")
			specs, _ := cmd.Flags().GetStringArray("transform")
			transforms, err := transform.Resolve(transform.CreateBuiltInTemplates(), transform.NewTransformRegistry(), templateNames, specs)
			if err != nil {
				return err
			}
			if file, err = transform.ApplyToCaseFile(file, transforms); err != nil {
				return err
			}

			runner := batch.NewRunner()
			runner.Clock = cliClock
			runner.Logger = loggerFor(cmd)
			report, err := runner.Run(cmd.Context(), file)
			if err != nil {
				return err
			}

			data, err := f.FormatReport(report)
			if err != nil {
				return err
			}
			if _, err := cmd.OutOrStdout().Write(data); err != nil {
				return err
			}

			if strict, _ := cmd.Flags().GetBool("strict"); strict && !report.Passed() {
				return fmt.Errorf("%d of %d case(s) did not pass (%d mismatched, %d invalid)",
					report.Summary.Mismatched+report.Summary.Invalid, report.Summary.Total,
					report.Summary.Mismatched, report.Summary.Invalid)
			}
			return nil
		},
	}
	addOutputFlags(cmd)
	cmd.Flags().Bool("strict", false, "Fail when any case is invalid or misses its expected outcome")
	cmd.Flags().StringSlice("template", nil, "What-if templates applied to every case (see 'passrefund templates')")
	cmd.Flags().StringArray("transform", nil, "What-if transform applied to every case, e.g. shift_refund_date:days=7")
	return cmd
}

func templatesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "templates",
		Short: "List the what-if templates and transforms available to batch",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprint(out, transform.GetTemplateHelp(transform.CreateBuiltInTemplates()))
			fmt.Fprintln(out)
			fmt.Fprintln(out, "Available Transforms:")
			for _, name := range transform.NewTransformRegistry().List() {
				fmt.Fprintf(out, "  %s\n", name)
			}
		},
	}
}

func validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [case-file]",
		Short: "Validate a case file without calculating refunds",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			inputFile := args[0]
			file, err := config.NewInputParser().LoadFromFile(inputFile)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			invalid := 0
			for _, c := range file.Cases {
				errs := validateCase(c)
				if len(errs) == 0 {
					continue
				}
				invalid++
				fmt.Fprintf(out, "%s:\n", c.Name)
				for _, e := range errs {
					fmt.Fprintf(out, "  %s\n", e.Error())
				}
			}

			if invalid > 0 {
				return fmt.Errorf("%d of %d case(s) in %s are invalid", invalid, len(file.Cases), inputFile)
			}
			fmt.Fprintf(out, "Case file %s is valid (%d case(s))\n", inputFile, len(file.Cases))
			return nil
		},
	}
}

func validateCase(c domain.RefundCase) validation.Errors {
	if c.Kind == domain.KindSectionChange {
		return validation.ValidateSectionChange(c.SectionChangeInput())
	}
	return validation.ValidateRegular(c.RegularInput())
}
