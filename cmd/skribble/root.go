package main

import (
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "skribble",
	Short: "Atomic CSS generator and linter for skribble class name chains",
	Long: `Scan JavaScript and TypeScript sources for class name chains such as
c.sm.hover.p.$4 and generate a stylesheet holding exactly the rules in use,
plus TypeScript declarations for the client object.`,
	// Default behavior: run generate when no subcommand is given.
	// We must call loadConfig here because PreRunE of generateCmd
	// is not triggered when delegating via rootCmd.RunE.
	RunE: func(cmd *cobra.Command, _ []string) error {
		if err := loadConfig(cmd); err != nil {
			return err
		}
		return runGenerate(cmd, nil)
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	// Global persistent flags (inherited by all subcommands)
	pf := rootCmd.PersistentFlags()
	pf.BoolP("verbose", "v", false, "Enable verbose logging")
	pf.Bool("quiet", false, "Suppress all output (exit code only)")
	pf.Bool("color", false, "Force color output")
	pf.String("config", defaultSettingsFile, "Settings file path")
	pf.String("style-config", "", "Style configuration (default "+defaultStyleConfig+", or the built-in configuration)")
	pf.StringSlice("include", nil, "Glob patterns of the sources to scan")
	pf.StringSlice("imports", nil, `Tracked client imports as "package:name"`)
	pf.Int("concurrency", 0, "Files scanned at once (0 = one per CPU)")

	// generate's flags are also accepted without the subcommand
	addGenerateFlags(rootCmd)

	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(lintCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(completionCmd)
	rootCmd.AddCommand(versionCmd)
}

// newLogger returns the CLI logger. Debug output is enabled by --verbose.
func newLogger() *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{Prefix: "skribble"})
	if getBoolWithFallback("verbose", "verbose", false) {
		logger.SetLevel(log.DebugLevel)
	}
	if getBoolWithFallback("quiet", "quiet", false) {
		logger.SetLevel(log.ErrorLevel)
	}
	return logger
}
