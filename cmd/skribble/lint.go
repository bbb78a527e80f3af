package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yacobolo/skribble"
	"github.com/yacobolo/skribble/internal/report"
)

var lintCmd = &cobra.Command{
	Use:   "lint",
	Short: "Lint class name chains",
	Long: `Check the class name chains in the sources against the style configuration.
Reports conflicting or unknown tokens and chains that never receive a value.`,
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return loadConfig(cmd)
	},
	RunE: runLint,
}

func init() {
	f := lintCmd.Flags()
	f.Bool("strict", false, "Exit 1 on any issue, warnings included (CI mode)")
	f.String("output-format", "", "Output format: issues|summary|full|json")
	f.Int("max-issues", 0, "Max issues to show (0=unlimited)")
	f.Int("max-same-issues", 0, "Max repeated issues to show (0=unlimited)")
	f.Bool("print-lines", true, "Show source lines with issues")
	// golangci-lint problem matchers expect the "(linter)" suffix
	f.Bool("print-linter-name", true, "Show (skribble) suffix on issues")
}

func runLint(cmd *cobra.Command, _ []string) error {
	opts := buildOptions()
	opts.Logger = newLogger()

	lintResult, err := skribble.Lint(cmd.Context(), opts)
	if err != nil {
		return fmt.Errorf("lint failed: %w", err)
	}

	quiet := getBoolWithFallback("quiet", "quiet", false)
	outputFormat := getStringWithFallback("output-format", "lint.output-format", "")
	format := report.DetermineOutputFormat(outputFormat, quiet)

	if !quiet {
		report.WriteOutput(cmd.OutOrStdout(), lintResult.Result, format, reportOptions())
	}

	// Exit code logic - "Soft Gate" approach
	strict := getBoolWithFallback("strict", "lint.strict", false)
	if strict {
		// Strict mode: any issue (error or warning) or unreadable file fails the build
		if len(lintResult.Issues) > 0 || lintResult.FileErrors != nil {
			os.Exit(1)
		}
	} else if lintResult.Errors() > 0 {
		// Default "Soft Gate" mode: only errors fail the build
		os.Exit(1)
	}

	return nil
}
