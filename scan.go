package skribble

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/charmbracelet/log"
	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"

	"github.com/yacobolo/skribble/internal/config"
	"github.com/yacobolo/skribble/internal/report"
	"github.com/yacobolo/skribble/internal/scanner"
)

// fileScan is the outcome of scanning one source file.
type fileScan struct {
	path      string
	collector *scanner.Collector
	issues    []report.Issue
}

// projectScan is the outcome of scanning every discovered file.
type projectScan struct {
	cfg      *config.Config
	stats    ScanStats
	merged   *scanner.Collector
	issues   []report.Issue
	warnings []string
	failed   error // per-file failures, combined
}

// loadStyleConfig returns the configuration at path or the embedded default.
func loadStyleConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Default(), nil
	}
	return config.LoadFile(path)
}

// parseImports parses "package:name" specs, falling back to the client
// defaults.
func parseImports(specs []string) ([]scanner.Import, error) {
	if len(specs) == 0 {
		return scanner.DefaultImports, nil
	}
	imports := make([]scanner.Import, 0, len(specs))
	for _, spec := range specs {
		imp, err := scanner.ParseImport(spec)
		if err != nil {
			return nil, fmt.Errorf("invalid import %q: %w", spec, err)
		}
		imports = append(imports, imp)
	}
	return imports, nil
}

// scanProject discovers and scans every source file. Per-file failures never
// stop the other files: they are combined into projectScan.failed and listed
// as warnings.
func scanProject(ctx context.Context, opts Options) (*projectScan, error) {
	logger := opts.logger()

	cfg, err := loadStyleConfig(opts.StyleConfig)
	if err != nil {
		return nil, err
	}
	imports, err := parseImports(opts.Imports)
	if err != nil {
		return nil, err
	}

	files, stats, err := expandGlobPatterns(opts.include())
	if err != nil {
		return nil, fmt.Errorf("scan failed: %w", err)
	}
	logger.Debug("discovered sources", "files", stats.FilesScanned, "skipped", stats.FilesSkipped)

	scans := make([]*fileScan, len(files))
	errs := make([]error, len(files))

	g, ctx := errgroup.WithContext(ctx)
	limit := opts.Concurrency
	if limit <= 0 {
		limit = runtime.NumCPU()
	}
	g.SetLimit(limit)

	for i, file := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			scan, err := scanFile(ctx, file, cfg, imports, logger)
			if err != nil {
				errs[i] = fmt.Errorf("%s: %w", file, err)
				return nil
			}
			scans[i] = scan
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	result := &projectScan{cfg: cfg, stats: stats}
	var collectors []*scanner.Collector
	for _, scan := range scans {
		if scan == nil {
			continue
		}
		collectors = append(collectors, scan.collector)
		result.issues = append(result.issues, scan.issues...)
	}
	result.failed = multierr.Combine(errs...)
	if failures := multierr.Errors(result.failed); len(failures) > 0 {
		logger.Warn("skipped files", "count", len(failures), "err", result.failed)
		for _, err := range failures {
			result.warnings = append(result.warnings, err.Error())
		}
	}

	result.merged = scanner.Merge(collectors...)
	return result, nil
}

// scanFile collects the class names of one file and turns invalid and
// incomplete chains into issues.
func scanFile(ctx context.Context, path string, cfg *config.Config, imports []scanner.Import, logger *log.Logger) (*fileScan, error) {
	// #nosec G304 - path comes from the configured include patterns
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	collector := scanner.New(imports, cfg)
	if err := collector.ScanFile(ctx, path, source); err != nil {
		return nil, err
	}
	collector.Sort()

	name := path
	if filepath.IsAbs(path) {
		name = GetRelativePath(path)
	}
	lines := strings.Split(string(source), "\n")

	var issues []report.Issue
	for _, found := range collector.Issues() {
		logger.Debug("invalid class name", "file", name, "line", found.Line, "chain", found.Chain, "err", found.Err)
		issues = append(issues, newIssue(name, lines, found, report.SeverityError,
			fmt.Sprintf(report.IssueInvalidClassName, found.Chain, found.Err)))
	}
	for _, found := range collector.Incomplete() {
		issues = append(issues, newIssue(name, lines, found, report.SeverityWarning,
			fmt.Sprintf(report.IssueIncompleteClassName, found.Chain)))
	}

	logger.Debug("scanned", "file", name, "classNames", len(collector.ClassNames()), "issues", len(issues))
	return &fileScan{path: path, collector: collector, issues: issues}, nil
}

func newIssue(file string, lines []string, found scanner.Issue, severity, text string) report.Issue {
	issue := report.Issue{
		FromLinter: report.LinterName,
		Text:       text,
		Severity:   severity,
		Pos: report.IssuePos{
			Filename: file,
			Line:     found.Line,
			Column:   found.Column,
		},
	}
	if found.Line > 0 && found.Line <= len(lines) {
		issue.SourceLines = []string{strings.TrimRight(lines[found.Line-1], "\r")}
	}
	return issue
}
