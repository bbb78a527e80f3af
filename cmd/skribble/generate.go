package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yacobolo/skribble"
	"github.com/yacobolo/skribble/internal/report"
)

var generateCmd = &cobra.Command{
	Use:     "generate",
	Aliases: []string{"gen"},
	Short:   "Generate the stylesheet and typings",
	Long: `Scan the sources for class name chains and write a stylesheet holding
exactly the rules in use. Invalid chains are reported and left out.`,
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return loadConfig(cmd)
	},
	RunE: runGenerate,
}

func init() {
	addGenerateFlags(generateCmd)
}

func addGenerateFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.String("css-output", "", "Stylesheet path (default "+defaultCSSOutput+")")
	f.String("types-output", "", "TypeScript declarations path (default "+defaultTypesOutput+")")
	f.Bool("no-types", false, "Skip the TypeScript declarations")
	f.Bool("check", false, "Fail when the outputs on disk are out of date instead of writing them")
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	opts := buildOptions()
	opts.Logger = newLogger()

	result, err := skribble.Generate(cmd.Context(), opts)
	if err != nil {
		return fmt.Errorf("generation failed: %w", err)
	}

	if !getBoolWithFallback("quiet", "quiet", false) {
		printGenerateResult(cmd.OutOrStdout(), result, opts)
	}

	if len(result.Stale) > 0 {
		return fmt.Errorf("out of date: %s", strings.Join(result.Stale, ", "))
	}
	return nil
}

// generateOnce runs a generation for watch mode, where errors are reported
// without stopping the watcher.
func generateOnce(ctx context.Context, w io.Writer, opts skribble.Options) {
	result, err := skribble.Generate(ctx, opts)
	if err != nil {
		opts.Logger.Error("generation failed", "err", err)
		return
	}
	printGenerateResult(w, result, opts)
}

func printGenerateResult(w io.Writer, result *skribble.Result, opts skribble.Options) {
	if len(result.Issues) > 0 {
		report.WriteOutput(w, report.Result{
			FilesScanned: result.FilesScanned,
			ClassNames:   result.ClassNames,
			Issues:       result.Issues,
		}, report.OutputIssues, reportOptions())
	}

	switch {
	case opts.Check:
		if len(result.Stale) == 0 {
			fmt.Fprintln(w, "Outputs are up to date")
			return
		}
		for _, path := range result.Stale {
			fmt.Fprintf(w, "Out of date: %s\n", path)
		}
		for _, class := range result.Missing {
			fmt.Fprintf(w, "  missing: %s\n", class)
		}
	case len(result.Written) == 0:
		fmt.Fprintln(w, "Outputs unchanged")
	default:
		for _, path := range result.Written {
			fmt.Fprintf(w, "Wrote %s\n", path)
		}
	}

	fmt.Fprintf(w, "  Files scanned: %d\n", result.FilesScanned)
	fmt.Fprintf(w, "  Class names generated: %d\n", result.ClassNames)
	if result.InvalidClassNames > 0 {
		fmt.Fprintf(w, "  Invalid class names: %d\n", result.InvalidClassNames)
	}
	for _, warning := range result.Warnings {
		fmt.Fprintf(w, "  Warning: %s\n", warning)
	}
}

func reportOptions() report.Options {
	return report.Options{
		UseColors:        getBoolWithFallback("color", "color", false),
		PrintIssuedLines: getBoolWithFallback("print-lines", "lint.print-lines", true),
		PrintLinterName:  getBoolWithFallback("print-linter-name", "lint.print-linter-name", true),
	}
}
