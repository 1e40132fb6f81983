package main

import (
	"fmt"
	"log"
	"os"
	"runtime/debug"

	"github.com/rgehrsitz/passrefund/internal/calculation"
	"github.com/rgehrsitz/passrefund/internal/clock"
	"github.com/spf13/cobra"
)

// simpleCLILogger implements calculation.Logger using the standard log package
type simpleCLILogger struct{}

func (simpleCLILogger) Debugf(format string, args ...any) { log.Printf("DEBUG: "+format, args...) }
func (simpleCLILogger) Infof(format string, args ...any)  { log.Printf("INFO: "+format, args...) }
func (simpleCLILogger) Warnf(format string, args ...any)  { log.Printf("WARN: "+format, args...) }
func (simpleCLILogger) Errorf(format string, args ...any) { log.Printf("ERROR: "+format, args...) }

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// cliClock supplies today's date when --refund is omitted
var cliClock clock.Clock = clock.System{}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "passrefund %s (commit %s, built %s)\n", version, commit, date)
			if info := buildInfo(); info != "" {
				fmt.Fprintln(cmd.OutOrStdout(), info)
			}
		},
	}
}

func buildInfo() string {
	if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
		return bi.String()
	}
	return ""
}

// loggerFor returns the CLI logger when --debug is set
func loggerFor(cmd *cobra.Command) calculation.Logger {
	if debugMode, _ := cmd.Flags().GetBool("debug"); debugMode {
		return simpleCLILogger{}
	}
	return calculation.NopLogger{}
}

// fileExists checks if a file exists
func fileExists(filename string) bool {
	_, err := os.Stat(filename)
	return !os.IsNotExist(err)
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "passrefund",
		Short: "Commuter pass refund calculator",
		Long: "Calculates the refund for a commuter rail pass surrendered before it expires,\n" +
			"under the regular cancellation rule or the section change rule.",
		SilenceUsage: true,
	}

	rootCmd.AddCommand(regularCmd())
	rootCmd.AddCommand(sectionChangeCmd())
	rootCmd.AddCommand(compareCmd())
	rootCmd.AddCommand(scheduleCmd())
	rootCmd.AddCommand(breakevenCmd())
	rootCmd.AddCommand(batchCmd())
	rootCmd.AddCommand(validateCmd())
	rootCmd.AddCommand(templatesCmd())
	rootCmd.AddCommand(versionCmd())
	return rootCmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
