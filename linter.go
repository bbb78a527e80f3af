package skribble

import (
	"context"

	"github.com/yacobolo/skribble/internal/report"
)

// Lint scans the sources and reports invalid and incomplete class names.
// Nothing is written.
func Lint(ctx context.Context, opts Options) (*LintResult, error) {
	scan, err := scanProject(ctx, opts)
	if err != nil {
		return nil, err
	}

	result := &LintResult{
		Result: report.Result{
			FilesScanned: scan.stats.FilesScanned,
			ClassNames:   len(scan.merged.ClassNames()),
			Issues:       scan.issues,
			Warnings:     scan.warnings,
		},
		Stats:      scan.stats,
		FileErrors: scan.failed,
	}

	if opts.MaxIssues > 0 || opts.MaxSameIssues > 0 {
		result.Issues, result.TruncatedCount = limitIssues(result.Issues, opts)
	}

	return result, nil
}

// limitIssues applies the max-issues and max-same-issues constraints
func limitIssues(issues []report.Issue, opts Options) ([]report.Issue, int) {
	originalCount := len(issues)

	// Apply max-same-issues (deduplication by message text)
	if opts.MaxSameIssues > 0 {
		issues = deduplicateSameIssues(issues, opts.MaxSameIssues)
	}

	// Apply max-issues
	if opts.MaxIssues > 0 && len(issues) > opts.MaxIssues {
		issues = issues[:opts.MaxIssues]
	}

	return issues, originalCount - len(issues)
}

// deduplicateSameIssues limits how many times the same message appears
func deduplicateSameIssues(issues []report.Issue, maxSame int) []report.Issue {
	messageCounts := make(map[string]int)
	var filtered []report.Issue

	for _, issue := range issues {
		if messageCounts[issue.Text] < maxSame {
			filtered = append(filtered, issue)
			messageCounts[issue.Text]++
		}
	}

	return filtered
}
