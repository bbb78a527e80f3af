// Package skribble generates atomic CSS from class name chains written in
// JavaScript and TypeScript sources.
//
// Sources reference class names through a typed client object:
//
//	import { c } from 'skribble-css/client';
//
//	<button className={cx(c.px.$4, c.md.hover.bg.$primary, c.p('10px'))} />
//
// Only the class names actually used are rendered into the stylesheet.
//
// # Generation
//
//	result, err := skribble.Generate(ctx, skribble.Options{
//		Include:     []string{"src/**/*.{ts,tsx}"},
//		CSSOutput:   "src/styles/skribble.css",
//		TypesOutput: "src/skribble.d.ts",
//	})
//
// # Linting
//
// Lint reports invalid chains (conflicting breakpoints, unknown values) and
// chains that never receive a value:
//
//	result, err := skribble.Lint(ctx, skribble.Options{Include: []string{"src/**/*.tsx"}})
//
// # CLI Tool
//
//	go install github.com/yacobolo/skribble/cmd/skribble@latest
package skribble

import (
	"github.com/charmbracelet/log"

	"github.com/yacobolo/skribble/internal/report"
)

// Options configure Generate and Lint.
type Options struct {
	// Include lists the glob patterns of the sources to scan. Defaults to
	// DefaultInclude.
	Include []string
	// StyleConfig is the path of the style configuration. Empty uses the
	// embedded default configuration.
	StyleConfig string
	// CSSOutput is the stylesheet path written by Generate.
	CSSOutput string
	// TypesOutput is the TypeScript declaration path written by Generate.
	// Empty skips the declarations.
	TypesOutput string
	// Imports lists the tracked client imports as "package:name". Defaults
	// to the skribble-css client.
	Imports []string
	// Concurrency bounds the number of files scanned at once. Zero or less
	// means one per CPU.
	Concurrency int
	// Check compares the outputs with the files on disk instead of writing
	// them.
	Check bool

	// MaxIssues and MaxSameIssues limit lint output. Zero means unlimited.
	MaxIssues     int
	MaxSameIssues int

	// Logger receives progress and per-usage diagnostics. Defaults to the
	// charmbracelet/log default logger.
	Logger *log.Logger
}

// Result contains generation stats
type Result struct {
	ScanStats
	ClassNames        int // valid class names rendered
	InvalidClassNames int
	CSS               string
	Types             string
	Written           []string // outputs whose content changed on disk
	Issues            []report.Issue
	Warnings          []string
	// FileErrors combines the failures of the files that could not be
	// scanned; multierr.Errors splits it. Nil when every file was scanned.
	FileErrors error

	// Check mode only
	Stale   []string // outputs that differ from the generated content
	Missing []string // class names absent from the stylesheet on disk
}

// LintResult contains lint results ready for the reporters
type LintResult struct {
	report.Result
	Stats      ScanStats
	FileErrors error // as in Result
}

func (o Options) logger() *log.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return log.Default()
}

func (o Options) include() []string {
	if len(o.Include) == 0 {
		return DefaultInclude
	}
	return o.Include
}
